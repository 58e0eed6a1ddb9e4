package http

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/hyperion-bands/hyperion"
	"github.com/couchcryptid/hyperion-bands/internal/lookup"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BandLookup answers the queries served over HTTP.
type BandLookup interface {
	sharedobs.ReadinessChecker
	Bands() (hyperion.BandTable, error)
	ESun(band string) (float64, error)
	FindNearest(wavelength float64) (hyperion.Nearest, error)
	Summary() (lookup.Summary, error)
}

// Server exposes health, readiness, metrics, and band lookup HTTP endpoints.
type Server struct {
	httpServer *http.Server
	lookup     BandLookup
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the lookup routes.
func NewServer(addr string, lookup BandLookup, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		lookup: lookup,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(lookup))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /bands", s.handleBands)
	mux.HandleFunc("GET /bands/nearest", s.handleNearest)
	mux.HandleFunc("GET /irradiance/{band}", s.handleIrradiance)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type bandsResponse struct {
	lookup.Summary
	Items []hyperion.Band `json:"items"`
}

func (s *Server) handleBands(w http.ResponseWriter, _ *http.Request) {
	summary, err := s.lookup.Summary()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	bands, err := s.lookup.Bands()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, bandsResponse{Summary: summary, Items: bands.Rows})
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("wavelength")
	if raw == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("missing wavelength query parameter"))
		return
	}
	wavelength, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(wavelength) || math.IsInf(wavelength, 0) {
		s.writeError(w, http.StatusBadRequest, errors.New("wavelength must be a finite number in nm"))
		return
	}

	n, err := s.lookup.FindNearest(wavelength)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, n)
}

type irradianceResponse struct {
	Band               string  `json:"band"`
	SpectralIrradiance float64 `json:"spectral_irradiance_wm2um"`
}

func (s *Server) handleIrradiance(w http.ResponseWriter, r *http.Request) {
	band := r.PathValue("band")
	v, err := s.lookup.ESun(band)
	switch {
	case errors.Is(err, hyperion.ErrBandNotFound):
		s.writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, irradianceResponse{Band: band, SpectralIrradiance: v})
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	}
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}
