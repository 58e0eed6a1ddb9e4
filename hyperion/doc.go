// Package hyperion loads the EO-1 Hyperion spectral reference tables and
// answers band lookups against them.
//
// # Data Source
//
// Two tab-delimited tables are bundled under data/ and embedded at build time.
// They follow the layout of the tables published on the USGS EO-1 Hyperion
// sensor pages (http://eo1.usgs.gov/sensors/hyperioncoverage):
//
//	Hyperion_Spectral_coverage.tab    band label, average wavelength, FWHM
//	Hyperion_Spectral_Irradiance.txt  band label, exoatmospheric solar irradiance
//
// The bundled values are approximations, not the published calibration data.
// Wavelengths are interpolated linearly across each detector and irradiance
// is a 5778 K blackbody scaled to 1 AU. For calibrated work, load the USGS
// tables with [NewLoader] (for example over os.DirFS) instead of [Embedded].
//
// # File Layout
//
// Line 1 is a free-text title and is skipped. Line 2 is the header; its tokens
// become the column names (surrounding space trimmed, inner spaces turned into
// underscores). Every following non-blank line is one band. Numeric columns
// parse as float64. The average wavelength and spectral irradiance columns
// must hold a finite value on every row; an empty cell in any other column is
// NaN.
//
// # Band Identifiers
//
// The two tables label bands differently and the loaders keep that difference:
//
//	coverage table:   "B12"  →  "band12"
//	irradiance table: "b12"  →  "12"
//
// [WithNormalizedIrradianceBands] rewrites irradiance labels to "band12" so that
// a [Nearest] result can be fed straight into [Catalog.ESun].
//
// The band ordinal ([Band.Index]) is the zero-based row position in the
// coverage table, never parsed from the label. The sensor has two detectors
// (VNIR bands 1–70, SWIR bands 71–242) whose ranges overlap between roughly
// 850 and 1060 nm, so wavelength is not monotonic across the whole table.
//
// # Label Decoding
//
// Some historical copies of the coverage table were produced by tooling that
// handed the label column through as undecoded bytes. The default loader
// decodes labels as UTF-8 and rejects invalid sequences before normalizing.
// [WithLegacyTextMode] skips the decoding check and normalizes the raw text.
//
// # Irradiance Units
//
// Spectral irradiance is in W·m⁻²·µm⁻¹ (the "Esun" term of radiometric
// calibration).
package hyperion
