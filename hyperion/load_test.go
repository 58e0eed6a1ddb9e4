package hyperion

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bundledBandCount = 242

// mapFS builds an in-memory table directory.
func mapFS(bands, irradiance string) fstest.MapFS {
	fsys := fstest.MapFS{}
	if bands != "" {
		fsys[BandFile] = &fstest.MapFile{Data: []byte(bands)}
	}
	if irradiance != "" {
		fsys[IrradianceFile] = &fstest.MapFile{Data: []byte(irradiance)}
	}
	return fsys
}

func TestBundledBands(t *testing.T) {
	table, err := LoadBands()
	require.NoError(t, err)
	require.Equal(t, bundledBandCount, table.Len())

	assert.Equal(t, []string{ColumnBand, ColumnAverageWavelength, "FWHM_nm"}, table.Columns)
	for i, b := range table.Rows {
		assert.Equal(t, i, b.Index)
		assert.Equal(t, fmt.Sprintf("band%d", i+1), b.Name)
		assert.Greater(t, b.AverageWavelengthNM, 0.0)
	}

	assert.Equal(t, 355.59, table.Rows[0].AverageWavelengthNM)
	assert.Equal(t, 2577.08, table.Rows[bundledBandCount-1].AverageWavelengthNM)
}

func TestBundledBands_Idempotent(t *testing.T) {
	first, err := LoadBands()
	require.NoError(t, err)
	second, err := LoadBands()
	require.NoError(t, err)

	assert.Equal(t, first.Len(), second.Len())
	assert.Equal(t, first, second)

	// Snapshots are independent.
	first.Rows[0].Name = "mutated"
	third, err := LoadBands()
	require.NoError(t, err)
	assert.Equal(t, "band1", third.Rows[0].Name)
}

func TestBundledIrradiance(t *testing.T) {
	table, err := LoadIrradiance()
	require.NoError(t, err)
	require.Equal(t, bundledBandCount, table.Len())

	assert.Equal(t, []string{ColumnIrradianceBand, ColumnSpectralIrradiance}, table.Columns)
	for i, r := range table.Rows {
		assert.Equal(t, fmt.Sprintf("%d", i+1), r.Band)
		assert.Greater(t, r.SpectralIrradiance, 0.0)
	}
}

func TestBundledLegacyTextMode(t *testing.T) {
	modern, err := Embedded().Bands()
	require.NoError(t, err)
	legacy, err := Embedded(WithLegacyTextMode()).Bands()
	require.NoError(t, err)

	assert.Equal(t, modern, legacy)
}

func TestBundledNormalizedIrradiance(t *testing.T) {
	table, err := Embedded(WithNormalizedIrradianceBands()).Irradiance()
	require.NoError(t, err)

	bands, err := LoadBands()
	require.NoError(t, err)
	assert.Equal(t, bands.Names(), table.Names())
}

func TestLoader_MissingFiles(t *testing.T) {
	l := NewLoader(fstest.MapFS{})

	_, err := l.Bands()
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "open band table")

	_, err = l.Irradiance()
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "open irradiance table")
}

func TestLoader_MalformedFiles(t *testing.T) {
	l := NewLoader(mapFS(
		tableText("Band\tWavelength", "B1\t355.59"),
		tableText("Hyperion_band\tSpectral_irradiance_Wm2mu", "b1\tlots"),
	))

	_, err := l.Bands()
	require.ErrorIs(t, err, ErrMalformedTable)

	_, err = l.Irradiance()
	require.ErrorIs(t, err, ErrMalformedTable)
}

func TestLoader_ReadsEveryCall(t *testing.T) {
	fsys := mapFS(tableText(testBandHeader, "B1\t355.59\t11.39"), "")
	l := NewLoader(fsys)

	first, err := l.Bands()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Len())

	fsys[BandFile] = &fstest.MapFile{Data: []byte(tableText(testBandHeader, "B1\t355.59\t11.39", "B2\t365.77\t11.39"))}

	second, err := l.Bands()
	require.NoError(t, err)
	assert.Equal(t, 2, second.Len())
}

func TestBundledTablesAreMarkedApproximate(t *testing.T) {
	for _, name := range []string{BandFile, IrradianceFile} {
		data, err := fs.ReadFile(bundled, "data/"+name)
		require.NoError(t, err)

		title, _, _ := strings.Cut(string(data), "\n")
		assert.Contains(t, title, "approximate", name)
		assert.Contains(t, title, "USGS", name)
	}
}
