// Command validate performs integrity checks on a pair of Hyperion band
// tables: row counts, band identifiers, spectral coverage ordering per
// detector, irradiance to band cross references, and value ranges.
//
// Usage:
//
//	go run ./cmd/validate                      # bundled tables
//	go run ./cmd/validate --data-dir ./tables  # tables on disk
package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/couchcryptid/hyperion-bands/hyperion"
	"github.com/couchcryptid/hyperion-bands/internal/config"
	"github.com/spf13/pflag"
)

// Detector band ranges, 1-based and inclusive.
const (
	vnirFirst = 1
	vnirLast  = 70
	swirFirst = 71
	swirLast  = 242
)

// columnFWHM is the optional bandwidth column of the coverage table.
const columnFWHM = "FWHM_nm"

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfg config.Config
	fs.StringVarP(&cfg.DataDir, "data-dir", "d", "", "directory containing the band tables (default: bundled tables)")
	fs.BoolVar(&cfg.LegacyTextMode, "legacy-text", false, "skip UTF-8 validation of band labels")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	src := cfg.Source()

	fmt.Fprintln(stdout, "=== Hyperion Band Table Validation ===")
	fmt.Fprintln(stdout)

	bands, err := src.Bands()
	if err != nil {
		fmt.Fprintf(stderr, "FATAL: load band table: %v\n", err)
		return 1
	}
	irr, err := src.Irradiance()
	if err != nil {
		fmt.Fprintf(stderr, "FATAL: load irradiance table: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRowCounts(bands, irr),
		validateBandNames(bands),
		validateCoverage(bands),
		validateCrossReference(bands, irr),
		validateValues(bands, irr),
	}

	fmt.Fprintln(stdout)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(stdout, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "Rows: %d bands, %d irradiance\n", bands.Len(), irr.Len())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(stdout, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(stdout, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(stdout, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(stdout, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Row Counts ──

func validateRowCounts(bands hyperion.BandTable, irr hyperion.IrradianceTable) *phase {
	p := &phase{name: "Phase 1: Row Counts"}
	if bands.Len() != swirLast {
		p.errorf("band table: expected %d rows, got %d", swirLast, bands.Len())
	}
	if irr.Len() != bands.Len() {
		p.errorf("irradiance table has %d rows, band table has %d", irr.Len(), bands.Len())
	}
	return p
}

// ── Phase 2: Band Identifiers ──
// Row i must be labelled band<i+1>.

func validateBandNames(bands hyperion.BandTable) *phase {
	p := &phase{name: "Phase 2: Band Identifiers"}
	for i, b := range bands.Rows {
		if want := fmt.Sprintf("band%d", i+1); b.Name != want {
			p.errorf("row %d: label %q, want %q", i, b.Name, want)
		}
		if b.Index != i {
			p.errorf("row %d: index %d", i, b.Index)
		}
	}
	return p
}

// ── Phase 3: Spectral Coverage ──
// Wavelengths rise strictly within each detector. The detectors overlap, so
// the SWIR range starts below the end of the VNIR range.

func validateCoverage(bands hyperion.BandTable) *phase {
	p := &phase{name: "Phase 3: Spectral Coverage"}
	checkMonotonic(p, "VNIR", bands, vnirFirst, vnirLast)
	checkMonotonic(p, "SWIR", bands, swirFirst, swirLast)
	return p
}

func checkMonotonic(p *phase, detector string, bands hyperion.BandTable, first, last int) {
	last = min(last, bands.Len())
	for n := first + 1; n <= last; n++ {
		prev, cur := bands.Rows[n-2], bands.Rows[n-1]
		if !(cur.AverageWavelengthNM > prev.AverageWavelengthNM) {
			p.errorf("%s: %s at %.2f nm does not follow %s at %.2f nm",
				detector, cur.Name, cur.AverageWavelengthNM, prev.Name, prev.AverageWavelengthNM)
		}
	}
}

// ── Phase 4: Cross Reference ──
// Every irradiance row names a band in the coverage table, at most once.

func validateCrossReference(bands hyperion.BandTable, irr hyperion.IrradianceTable) *phase {
	p := &phase{name: "Phase 4: Irradiance Cross Reference"}

	known := make(map[string]bool, bands.Len())
	for _, b := range bands.Rows {
		known[b.Name] = true
	}

	seen := map[string]int{}
	for i, r := range irr.Rows {
		name := "band" + strings.TrimPrefix(r.Band, "band")
		if !known[name] {
			p.errorf("irradiance row %d: %q has no matching band", i, r.Band)
		}
		if prev, dup := seen[name]; dup {
			p.errorf("irradiance row %d: %q duplicates row %d", i, r.Band, prev)
			continue
		}
		seen[name] = i
	}

	for _, b := range bands.Rows {
		if _, ok := seen[b.Name]; !ok {
			p.errorf("%s: no irradiance row", b.Name)
		}
	}
	return p
}

// ── Phase 5: Values ──

func validateValues(bands hyperion.BandTable, irr hyperion.IrradianceTable) *phase {
	p := &phase{name: "Phase 5: Value Ranges"}
	for _, b := range bands.Rows {
		checkPositive(p, b.Name, hyperion.ColumnAverageWavelength, b.AverageWavelengthNM)
		if fwhm, ok := b.Field(columnFWHM); ok {
			checkPositive(p, b.Name, columnFWHM, fwhm)
		}
	}
	for _, r := range irr.Rows {
		checkPositive(p, r.Band, hyperion.ColumnSpectralIrradiance, r.SpectralIrradiance)
	}
	return p
}

func checkPositive(p *phase, band, column string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		p.errorf("%s: %s = %v, want a positive finite value", band, column, v)
	}
}
