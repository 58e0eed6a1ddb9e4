package hyperion

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Header tokens of the bundled tables. Lookups address columns by these names.
const (
	ColumnBand               = "Hyperion_Band"
	ColumnAverageWavelength  = "Average_Wavelength_nm"
	ColumnIrradianceBand     = "Hyperion_band"
	ColumnSpectralIrradiance = "Spectral_irradiance_Wm2mu"
)

var (
	// ErrMalformedTable reports a table whose header or rows do not match the
	// expected layout.
	ErrMalformedTable = errors.New("malformed table")

	// ErrBandNotFound reports a lookup for a band identifier absent from the table.
	ErrBandNotFound = errors.New("band not found")
)

// Band is one row of the spectral coverage table.
type Band struct {
	Index               int     `json:"index"`
	Name                string  `json:"band"`
	AverageWavelengthNM float64 `json:"average_wavelength_nm"`

	fields map[string]float64
}

// Field returns the numeric column value for name.
func (b Band) Field(name string) (float64, bool) {
	v, ok := b.fields[name]
	return v, ok
}

// Irradiance is one row of the spectral irradiance table.
type Irradiance struct {
	Band               string  `json:"band"`
	SpectralIrradiance float64 `json:"spectral_irradiance_wm2um"`

	fields map[string]float64
}

// Field returns the numeric column value for name.
func (r Irradiance) Field(name string) (float64, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Nearest is the result of a nearest-band search.
type Nearest struct {
	Index        int     `json:"index"`
	Band         string  `json:"band"`
	WavelengthNM float64 `json:"wavelength_nm"`
}

// BandTable is the parsed coverage table in file row order.
type BandTable struct {
	Columns []string
	Rows    []Band
}

// Len returns the number of bands.
func (t BandTable) Len() int { return len(t.Rows) }

// Names returns the normalized band labels in row order.
func (t BandTable) Names() []string {
	names := make([]string, len(t.Rows))
	for i, b := range t.Rows {
		names[i] = b.Name
	}
	return names
}

// Column returns the values of a numeric column in row order.
func (t BandTable) Column(name string) ([]float64, error) {
	if name == ColumnBand {
		return nil, fmt.Errorf("column %q is not numeric", name)
	}
	if !slices.Contains(t.Columns, name) {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	values := make([]float64, len(t.Rows))
	for i, b := range t.Rows {
		values[i] = b.fields[name]
	}
	return values, nil
}

// Clone returns a deep copy of the table.
func (t BandTable) Clone() BandTable {
	rows := make([]Band, len(t.Rows))
	for i, b := range t.Rows {
		b.fields = maps.Clone(b.fields)
		rows[i] = b
	}
	return BandTable{Columns: slices.Clone(t.Columns), Rows: rows}
}

// IrradianceTable is the parsed irradiance table in file row order.
type IrradianceTable struct {
	Columns []string
	Rows    []Irradiance
}

// Len returns the number of rows.
func (t IrradianceTable) Len() int { return len(t.Rows) }

// Names returns the normalized band labels in row order.
func (t IrradianceTable) Names() []string {
	names := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		names[i] = r.Band
	}
	return names
}

// Column returns the values of a numeric column in row order.
func (t IrradianceTable) Column(name string) ([]float64, error) {
	if name == ColumnIrradianceBand {
		return nil, fmt.Errorf("column %q is not numeric", name)
	}
	if !slices.Contains(t.Columns, name) {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	values := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		values[i] = r.fields[name]
	}
	return values, nil
}

// Clone returns a deep copy of the table.
func (t IrradianceTable) Clone() IrradianceTable {
	rows := make([]Irradiance, len(t.Rows))
	for i, r := range t.Rows {
		r.fields = maps.Clone(r.fields)
		rows[i] = r
	}
	return IrradianceTable{Columns: slices.Clone(t.Columns), Rows: rows}
}
