package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/couchcryptid/hyperion-bands/internal/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestLogger(t *testing.T, level, format string) *slog.Logger {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	return NewLogger(&config.Config{LogLevel: level, LogFormat: format})
}

func TestNewLogger_JSON(t *testing.T) {
	logger := newTestLogger(t, "info", "json")

	_, ok := logger.Handler().(*slog.JSONHandler)
	assert.True(t, ok)
	assert.Same(t, logger, slog.Default())
}

func TestNewLogger_Text(t *testing.T) {
	logger := newTestLogger(t, "debug", "TEXT")

	_, ok := logger.Handler().(*slog.TextHandler)
	assert.True(t, ok)
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "warn", want: slog.LevelWarn},
		{level: "warning", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "info", want: slog.LevelInfo},
		{level: "bogus", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := newTestLogger(t, tt.level, "json")
			ctx := context.Background()

			assert.True(t, logger.Enabled(ctx, tt.want))
			assert.False(t, logger.Enabled(ctx, tt.want-1))
		})
	}
}

func TestNewMetricsForTesting(t *testing.T) {
	m := NewMetricsForTesting()

	m.TableLoads.WithLabelValues("bands", "success").Inc()
	m.Lookups.WithLabelValues("esun", "miss").Add(2)
	m.TablesCached.Set(1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TableLoads.WithLabelValues("bands", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues("esun", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TablesCached))

	// Unregistered collectors can be created repeatedly.
	assert.NotPanics(t, func() { NewMetricsForTesting() })
}
