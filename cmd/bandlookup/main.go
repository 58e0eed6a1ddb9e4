// Bandlookup queries the Hyperion band tables from the command line: the
// band nearest a wavelength, the solar irradiance of a band, or the full
// coverage table.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/couchcryptid/hyperion-bands/hyperion"
	"github.com/couchcryptid/hyperion-bands/internal/config"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		cfg     config.Config
		jsonOut bool
	)
	fs := pflag.NewFlagSet("bandlookup", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	fs.BoolVar(&jsonOut, "json", false, "Output JSON instead of formatted text")
	fs.StringVarP(&cfg.DataDir, "data-dir", "d", "", "Directory holding the band tables (default: bundled tables)")
	fs.BoolVar(&cfg.LegacyTextMode, "legacy-text", false, "Skip UTF-8 validation of band labels")
	fs.BoolVar(&cfg.NormalizeIrradianceBand, "normalize-irradiance", false, "Label irradiance rows band<N> instead of <N>")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() < 1 {
		usage(stderr)
		return 2
	}

	cat := hyperion.NewCatalog(cfg.Source())
	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]

	var err error
	switch cmd {
	case "nearest":
		err = nearest(stdout, cat, cmdArgs, jsonOut)
	case "esun":
		err = esun(stdout, cat, cmdArgs, jsonOut)
	case "bands":
		err = bands(stdout, cat, jsonOut)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", cmd)
		usage(stderr)
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func nearest(w io.Writer, cat *hyperion.Catalog, args []string, jsonOut bool) error {
	if len(args) == 0 {
		return errors.New("nearest: at least one wavelength (nm) is required")
	}

	type result struct {
		QueryNM float64 `json:"query_nm"`
		hyperion.Nearest
	}
	results := make([]result, 0, len(args))
	for _, a := range args {
		wl, err := strconv.ParseFloat(a, 64)
		if err != nil || math.IsNaN(wl) || math.IsInf(wl, 0) {
			return fmt.Errorf("nearest: %q is not a finite wavelength", a)
		}
		n, err := cat.FindNearest(wl)
		if err != nil {
			return err
		}
		results = append(results, result{QueryNM: wl, Nearest: n})
	}

	if jsonOut {
		return writeJSON(w, results)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "QUERY_NM\tINDEX\tBAND\tWAVELENGTH_NM")
	for _, r := range results {
		fmt.Fprintf(tw, "%g\t%d\t%s\t%.2f\n", r.QueryNM, r.Index, r.Band, r.WavelengthNM)
	}
	return tw.Flush()
}

func esun(w io.Writer, cat *hyperion.Catalog, args []string, jsonOut bool) error {
	if len(args) == 0 {
		return errors.New("esun: at least one band label is required")
	}

	type result struct {
		Band               string  `json:"band"`
		SpectralIrradiance float64 `json:"spectral_irradiance_wm2um"`
	}
	results := make([]result, 0, len(args))
	for _, b := range args {
		v, err := cat.ESun(b)
		if err != nil {
			return err
		}
		results = append(results, result{Band: b, SpectralIrradiance: v})
	}

	if jsonOut {
		return writeJSON(w, results)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BAND\tESUN_WM2UM")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%.2f\n", r.Band, r.SpectralIrradiance)
	}
	return tw.Flush()
}

func bands(w io.Writer, cat *hyperion.Catalog, jsonOut bool) error {
	table, err := cat.Bands()
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(w, table.Rows)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tBAND\tWAVELENGTH_NM")
	for _, b := range table.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\n", b.Index, b.Name, b.AverageWavelengthNM)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usage(w io.Writer) {
	fmt.Fprint(w, `
  bandlookup - Hyperion band table queries

  USAGE
    bandlookup [flags] <command> [args]

  COMMANDS
    nearest <nm>...     Band whose average wavelength is closest to each query
    esun <band>...      Exoatmospheric solar irradiance (W m-2 um-1) per band
    bands               List the spectral coverage table

  FLAGS
    --json                  Output JSON instead of formatted text
    -d, --data-dir DIR      Load tables from DIR instead of the bundled copies
    --legacy-text           Skip UTF-8 validation of band labels
    --normalize-irradiance  Label irradiance rows band<N> instead of <N>

`)
}
