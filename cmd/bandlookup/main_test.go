package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestNearestText(t *testing.T) {
	code, out, _ := runCLI(t, "nearest", "355", "852")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "band1")
	assert.Contains(t, out, "band71")
	assert.Contains(t, out, "851.92")
}

func TestNearestJSON(t *testing.T) {
	code, out, _ := runCLI(t, "--json", "nearest", "447.17")
	require.Equal(t, 0, code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 447.17, got[0]["query_nm"])
	assert.Equal(t, 9.0, got[0]["index"])
	assert.Equal(t, "band10", got[0]["band"])
}

func TestNearestRejectsBadWavelength(t *testing.T) {
	code, _, errOut := runCLI(t, "nearest", "blue")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "not a finite wavelength")
}

func TestESun(t *testing.T) {
	code, out, _ := runCLI(t, "--json", "esun", "1", "150")
	require.Equal(t, 0, code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 1295.62, got[0]["spectral_irradiance_wm2um"])
	assert.Equal(t, 188.2, got[1]["spectral_irradiance_wm2um"])
}

func TestESunUnknownBand(t *testing.T) {
	code, _, errOut := runCLI(t, "esun", "band1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "band not found")
}

func TestESunNormalized(t *testing.T) {
	code, out, _ := runCLI(t, "--normalize-irradiance", "esun", "band2")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "1367.46")
}

func TestBands(t *testing.T) {
	code, out, _ := runCLI(t, "--json", "bands")
	require.Equal(t, 0, code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 242)
	assert.Equal(t, "band242", got[241]["band"])
}

func TestDataDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Hyperion_Spectral_coverage.tab"),
		[]byte("title\nHyperion_Band\tAverage_Wavelength_nm\nB1\t400\nB2\t500\n"), 0o600))

	code, out, _ := runCLI(t, "--data-dir", dir, "nearest", "480")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "band2")

	code, _, errOut := runCLI(t, "--data-dir", dir, "esun", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "open irradiance table")
}

func TestUsageErrors(t *testing.T) {
	code, _, errOut := runCLI(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "USAGE")

	code, _, errOut = runCLI(t, "teleport")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown command")

	code, _, _ = runCLI(t, "--no-such-flag", "bands")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI(t, "--help")
	assert.Equal(t, 0, code)
}

func TestLegacyTextFlag(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Hyperion_Spectral_coverage.tab"),
		[]byte("title\nHyperion_Band\tAverage_Wavelength_nm\nB\xff1\t400\n"), 0o600))

	code, _, errOut := runCLI(t, "--data-dir", dir, "bands")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "not valid UTF-8")

	code, out, _ := runCLI(t, "--data-dir", dir, "--legacy-text", "bands")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "band\xff1")
}
