package hyperion

import (
	"fmt"
	"math"
)

// Catalog answers band lookups against a Source. Every call asks the Source
// for a fresh table.
type Catalog struct {
	src Source
}

// NewCatalog creates a Catalog over src.
func NewCatalog(src Source) *Catalog {
	return &Catalog{src: src}
}

var defaultCatalog = NewCatalog(Embedded())

// LoadBands loads the bundled spectral coverage table.
func LoadBands() (BandTable, error) { return defaultCatalog.Bands() }

// LoadIrradiance loads the bundled spectral irradiance table.
func LoadIrradiance() (IrradianceTable, error) { return defaultCatalog.Irradiance() }

// ESun returns the bundled solar irradiance for band, labelled as in the
// irradiance table ("12", not "band12").
func ESun(band string) (float64, error) { return defaultCatalog.ESun(band) }

// FindNearest returns the bundled band closest to wavelength (nm).
func FindNearest(wavelength float64) (Nearest, error) { return defaultCatalog.FindNearest(wavelength) }

// Bands returns the spectral coverage table.
func (c *Catalog) Bands() (BandTable, error) {
	return c.src.Bands()
}

// Irradiance returns the spectral irradiance table.
func (c *Catalog) Irradiance() (IrradianceTable, error) {
	return c.src.Irradiance()
}

// ESun returns the spectral irradiance of the first row whose label equals
// band exactly. A missing band is an ErrBandNotFound error.
func (c *Catalog) ESun(band string) (float64, error) {
	table, err := c.src.Irradiance()
	if err != nil {
		return 0, err
	}
	for _, r := range table.Rows {
		if r.Band == band {
			return r.SpectralIrradiance, nil
		}
	}
	return 0, fmt.Errorf("esun %q: %w", band, ErrBandNotFound)
}

// FindNearest returns the band whose average wavelength has the smallest
// absolute difference from wavelength. Ties go to the lower index. Any
// wavelength is accepted, including ones outside the sensor's coverage.
func (c *Catalog) FindNearest(wavelength float64) (Nearest, error) {
	table, err := c.src.Bands()
	if err != nil {
		return Nearest{}, err
	}
	return nearest(table, wavelength)
}

func nearest(table BandTable, wavelength float64) (Nearest, error) {
	if table.Len() == 0 {
		return Nearest{}, fmt.Errorf("nearest band: %w: empty band table", ErrMalformedTable)
	}

	best := 0
	bestDiff := math.Abs(table.Rows[0].AverageWavelengthNM - wavelength)
	for i := 1; i < len(table.Rows); i++ {
		if d := math.Abs(table.Rows[i].AverageWavelengthNM - wavelength); d < bestDiff {
			best, bestDiff = i, d
		}
	}

	b := table.Rows[best]
	return Nearest{Index: b.Index, Band: b.Name, WavelengthNM: b.AverageWavelengthNM}, nil
}
