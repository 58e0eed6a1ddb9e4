package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/couchcryptid/hyperion-bands/hyperion"
	"github.com/couchcryptid/hyperion-bands/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Summary describes the loaded tables.
type Summary struct {
	Bands           int       `json:"bands"`
	IrradianceRows  int       `json:"irradiance_rows"`
	MinWavelengthNM float64   `json:"min_wavelength_nm"`
	MaxWavelengthNM float64   `json:"max_wavelength_nm"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// Service answers band lookups and records metrics for every table load and query.
type Service struct {
	catalog *hyperion.Catalog
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// New creates a Service over src. Pass a nil clock to use real time.
func New(src hyperion.Source, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	if _, ok := src.(*hyperion.CachedSource); ok {
		metrics.TablesCached.Set(1)
	} else {
		metrics.TablesCached.Set(0)
	}

	inst := &instrumentedSource{inner: src, logger: logger, metrics: metrics, clock: clock}
	return &Service{
		catalog: hyperion.NewCatalog(inst),
		logger:  logger,
		metrics: metrics,
		clock:   clock,
	}
}

// Bands returns the spectral coverage table.
func (s *Service) Bands() (hyperion.BandTable, error) {
	return s.catalog.Bands()
}

// Irradiance returns the spectral irradiance table.
func (s *Service) Irradiance() (hyperion.IrradianceTable, error) {
	return s.catalog.Irradiance()
}

// ESun returns the spectral irradiance for band.
func (s *Service) ESun(band string) (float64, error) {
	v, err := s.catalog.ESun(band)
	switch {
	case errors.Is(err, hyperion.ErrBandNotFound):
		s.metrics.Lookups.WithLabelValues("esun", "miss").Inc()
		s.logger.Debug("esun lookup miss", "band", band)
	case err != nil:
		s.metrics.Lookups.WithLabelValues("esun", "error").Inc()
		s.logger.Error("esun lookup failed", "band", band, "error", err)
	default:
		s.metrics.Lookups.WithLabelValues("esun", "hit").Inc()
	}
	return v, err
}

// FindNearest returns the band closest to wavelength (nm).
func (s *Service) FindNearest(wavelength float64) (hyperion.Nearest, error) {
	n, err := s.catalog.FindNearest(wavelength)
	if err != nil {
		s.metrics.Lookups.WithLabelValues("nearest", "error").Inc()
		s.logger.Error("nearest band lookup failed", "wavelength_nm", wavelength, "error", err)
		return n, err
	}
	s.metrics.Lookups.WithLabelValues("nearest", "hit").Inc()
	s.logger.Debug("nearest band", "wavelength_nm", wavelength, "band", n.Band, "index", n.Index)
	return n, nil
}

// Summary loads both tables and reports their size and spectral coverage.
func (s *Service) Summary() (Summary, error) {
	bands, err := s.catalog.Bands()
	if err != nil {
		return Summary{}, err
	}
	irr, err := s.catalog.Irradiance()
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		Bands:           bands.Len(),
		IrradianceRows:  irr.Len(),
		MinWavelengthNM: math.Inf(1),
		MaxWavelengthNM: math.Inf(-1),
		GeneratedAt:     s.clock.Now().UTC(),
	}
	for _, b := range bands.Rows {
		sum.MinWavelengthNM = math.Min(sum.MinWavelengthNM, b.AverageWavelengthNM)
		sum.MaxWavelengthNM = math.Max(sum.MaxWavelengthNM, b.AverageWavelengthNM)
	}
	return sum, nil
}

// CheckReadiness returns nil when both tables load.
func (s *Service) CheckReadiness(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.catalog.Bands(); err != nil {
		return fmt.Errorf("band table unavailable: %w", err)
	}
	if _, err := s.catalog.Irradiance(); err != nil {
		return fmt.Errorf("irradiance table unavailable: %w", err)
	}
	return nil
}

// instrumentedSource times every table load and counts its outcome.
type instrumentedSource struct {
	inner   hyperion.Source
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

func (s *instrumentedSource) Bands() (hyperion.BandTable, error) {
	start := s.clock.Now()
	t, err := s.inner.Bands()
	s.observe("bands", start, t.Len(), err)
	return t, err
}

func (s *instrumentedSource) Irradiance() (hyperion.IrradianceTable, error) {
	start := s.clock.Now()
	t, err := s.inner.Irradiance()
	s.observe("irradiance", start, t.Len(), err)
	return t, err
}

func (s *instrumentedSource) observe(table string, start time.Time, rows int, err error) {
	s.metrics.TableLoadDuration.WithLabelValues(table).Observe(s.clock.Since(start).Seconds())
	if err != nil {
		s.metrics.TableLoads.WithLabelValues(table, "error").Inc()
		s.logger.Error("table load failed", "table", table, "error", err)
		return
	}
	s.metrics.TableLoads.WithLabelValues(table, "success").Inc()
	s.logger.Debug("table loaded", "table", table, "rows", rows)
}
