package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/hyperion-bands/hyperion"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Table loading. An empty DataDir uses the tables bundled with the binary.
	DataDir                 string
	LegacyTextMode          bool
	NormalizeIrradianceBand bool
	CacheTables             bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	legacy, err := parseBool("HYPERION_LEGACY_TEXT_MODE")
	if err != nil {
		return nil, err
	}
	normalize, err := parseBool("HYPERION_NORMALIZE_IRRADIANCE_BANDS")
	if err != nil {
		return nil, err
	}
	cache, err := parseBool("HYPERION_CACHE_TABLES")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataDir:                 os.Getenv("HYPERION_DATA_DIR"),
		LegacyTextMode:          legacy,
		NormalizeIrradianceBand: normalize,
		CacheTables:             cache,
	}

	if cfg.DataDir != "" {
		info, err := os.Stat(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("HYPERION_DATA_DIR: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("HYPERION_DATA_DIR: %s is not a directory", cfg.DataDir)
		}
	}

	return cfg, nil
}

// TableOptions returns the parse options selected by the configuration.
func (c *Config) TableOptions() []hyperion.Option {
	var opts []hyperion.Option
	if c.LegacyTextMode {
		opts = append(opts, hyperion.WithLegacyTextMode())
	}
	if c.NormalizeIrradianceBand {
		opts = append(opts, hyperion.WithNormalizedIrradianceBands())
	}
	return opts
}

// Source builds the table source selected by the configuration.
func (c *Config) Source() hyperion.Source {
	var src hyperion.Source
	if c.DataDir != "" {
		src = hyperion.NewLoader(os.DirFS(c.DataDir), c.TableOptions()...)
	} else {
		src = hyperion.Embedded(c.TableOptions()...)
	}
	if c.CacheTables {
		src = hyperion.NewCachedSource(src)
	}
	return src
}

func parseBool(key string) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, s)
	}
	return v, nil
}
