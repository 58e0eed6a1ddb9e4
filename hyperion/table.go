package hyperion

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Option adjusts how tables are parsed.
type Option func(*options)

type options struct {
	legacyText          bool
	normalizeIrradiance bool
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLegacyTextMode normalizes band labels as raw text without first
// checking that they decode as UTF-8.
func WithLegacyTextMode() Option {
	return func(o *options) { o.legacyText = true }
}

// WithNormalizedIrradianceBands labels irradiance rows "band<N>" instead of
// "<N>", matching the coverage table.
func WithNormalizedIrradianceBands() Option {
	return func(o *options) { o.normalizeIrradiance = true }
}

// ParseBands parses a spectral coverage table.
func ParseBands(r io.Reader, opts ...Option) (BandTable, error) {
	o := newOptions(opts)
	raw, err := readTable(r, ColumnBand, []string{ColumnAverageWavelength}, bandLabel, o.legacyText)
	if err != nil {
		return BandTable{}, fmt.Errorf("parse band table: %w", err)
	}

	rows := make([]Band, len(raw.labels))
	for i := range raw.labels {
		rows[i] = Band{
			Index:               i,
			Name:                raw.labels[i],
			AverageWavelengthNM: raw.fields[i][ColumnAverageWavelength],
			fields:              raw.fields[i],
		}
	}
	return BandTable{Columns: raw.columns, Rows: rows}, nil
}

// ParseIrradiance parses a spectral irradiance table.
func ParseIrradiance(r io.Reader, opts ...Option) (IrradianceTable, error) {
	o := newOptions(opts)
	label := irradianceLabel
	if o.normalizeIrradiance {
		label = func(s string) string { return bandLabel("B" + irradianceLabel(s)) }
	}

	raw, err := readTable(r, ColumnIrradianceBand, []string{ColumnSpectralIrradiance}, label, o.legacyText)
	if err != nil {
		return IrradianceTable{}, fmt.Errorf("parse irradiance table: %w", err)
	}

	rows := make([]Irradiance, len(raw.labels))
	for i := range raw.labels {
		rows[i] = Irradiance{
			Band:               raw.labels[i],
			SpectralIrradiance: raw.fields[i][ColumnSpectralIrradiance],
			fields:             raw.fields[i],
		}
	}
	return IrradianceTable{Columns: raw.columns, Rows: rows}, nil
}

// bandLabel turns a coverage label "B12" into "band12".
func bandLabel(s string) string {
	if strings.HasPrefix(s, "band") {
		return s
	}
	if rest, ok := strings.CutPrefix(s, "B"); ok {
		return "band" + rest
	}
	return s
}

// irradianceLabel strips the "b" artifact: "b12" becomes "12".
func irradianceLabel(s string) string {
	return strings.TrimPrefix(s, "b")
}

// rawTable holds a parsed table before it is shaped into typed rows.
type rawTable struct {
	columns []string
	labels  []string
	fields  []map[string]float64
}

// readTable reads the title line, the header line, and the tab-delimited rows.
// The first column is the band label and is passed through label; every other
// column is numeric. Required columns must hold a finite value on every row.
func readTable(r io.Reader, labelColumn string, required []string, label func(string) string, legacy bool) (rawTable, error) {
	br := bufio.NewReader(r)
	if _, err := br.ReadString('\n'); err != nil {
		if errors.Is(err, io.EOF) {
			return rawTable{}, fmt.Errorf("%w: missing header line", ErrMalformedTable)
		}
		return rawTable{}, err
	}

	cr := csv.NewReader(br)
	cr.Comma = '\t'
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return rawTable{}, fmt.Errorf("%w: missing header line", ErrMalformedTable)
	}
	if err != nil {
		return rawTable{}, fmt.Errorf("%w: %w", ErrMalformedTable, err)
	}

	columns, err := parseHeader(header, labelColumn, required)
	if err != nil {
		return rawTable{}, err
	}

	var t rawTable
	t.columns = columns
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rawTable{}, fmt.Errorf("%w: %w", ErrMalformedTable, err)
		}
		line, _ := cr.FieldPos(0)
		line++ // title line consumed before the csv reader

		raw := strings.TrimSpace(rec[0])
		if !legacy && !utf8.ValidString(raw) {
			return rawTable{}, fmt.Errorf("%w: line %d: band label is not valid UTF-8", ErrMalformedTable, line)
		}

		fields := make(map[string]float64, len(columns)-1)
		for j := 1; j < len(columns); j++ {
			v, err := parseCell(rec[j])
			if err != nil {
				return rawTable{}, fmt.Errorf("%w: line %d: column %q: %w", ErrMalformedTable, line, columns[j], err)
			}
			if (math.IsNaN(v) || math.IsInf(v, 0)) && slices.Contains(required, columns[j]) {
				return rawTable{}, fmt.Errorf("%w: line %d: column %q: missing or non-finite value", ErrMalformedTable, line, columns[j])
			}
			fields[columns[j]] = v
		}

		t.labels = append(t.labels, label(raw))
		t.fields = append(t.fields, fields)
	}

	if len(t.labels) == 0 {
		return rawTable{}, fmt.Errorf("%w: no data rows", ErrMalformedTable)
	}
	return t, nil
}

// parseHeader sanitizes header tokens into column names and checks that the
// label column leads and every required column is present.
func parseHeader(header []string, labelColumn string, required []string) ([]string, error) {
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.Join(strings.Fields(h), "_")
		if columns[i] == "" {
			return nil, fmt.Errorf("%w: header column %d is empty", ErrMalformedTable, i+1)
		}
		if slices.Contains(columns[:i], columns[i]) {
			return nil, fmt.Errorf("%w: duplicate header column %q", ErrMalformedTable, columns[i])
		}
	}

	if columns[0] != labelColumn {
		return nil, fmt.Errorf("%w: first header column is %q, want %q", ErrMalformedTable, columns[0], labelColumn)
	}
	for _, name := range required {
		if !slices.Contains(columns, name) {
			return nil, fmt.Errorf("%w: missing header column %q", ErrMalformedTable, name)
		}
	}
	return columns, nil
}

// parseCell parses a numeric cell. Empty cells are missing values.
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
