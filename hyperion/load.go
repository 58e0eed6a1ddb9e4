package hyperion

import (
	"embed"
	"fmt"
	"io/fs"
)

// File names of the tables inside a table directory.
const (
	BandFile       = "Hyperion_Spectral_coverage.tab"
	IrradianceFile = "Hyperion_Spectral_Irradiance.txt"
)

//go:embed data/Hyperion_Spectral_coverage.tab data/Hyperion_Spectral_Irradiance.txt
var bundled embed.FS

// Source supplies freshly loaded tables.
type Source interface {
	Bands() (BandTable, error)
	Irradiance() (IrradianceTable, error)
}

// Loader reads and parses both tables from a file system on every call.
type Loader struct {
	fsys fs.FS
	opts []Option
}

// NewLoader creates a Loader reading BandFile and IrradianceFile from fsys.
func NewLoader(fsys fs.FS, opts ...Option) *Loader {
	return &Loader{fsys: fsys, opts: opts}
}

// Embedded creates a Loader over the tables bundled with this package.
func Embedded(opts ...Option) *Loader {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		panic(fmt.Sprintf("hyperion: bundled data: %v", err))
	}
	return NewLoader(sub, opts...)
}

// Bands loads the spectral coverage table.
func (l *Loader) Bands() (BandTable, error) {
	f, err := l.fsys.Open(BandFile)
	if err != nil {
		return BandTable{}, fmt.Errorf("open band table: %w", err)
	}
	defer f.Close()

	return ParseBands(f, l.opts...)
}

// Irradiance loads the spectral irradiance table.
func (l *Loader) Irradiance() (IrradianceTable, error) {
	f, err := l.fsys.Open(IrradianceFile)
	if err != nil {
		return IrradianceTable{}, fmt.Errorf("open irradiance table: %w", err)
	}
	defer f.Close()

	return ParseIrradiance(f, l.opts...)
}
