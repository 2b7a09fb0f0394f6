package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"pageload/internal/probe"
	"pageload/internal/report"
	"pageload/internal/sampling"
	"pageload/internal/stats"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sampling            sampling.Config
	Fences              stats.FenceMultipliers
	Width               int
	Probe               probe.Config
	EnableMermaidCharts bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try the executable's directory first
	if exePath, err := os.Executable(); err == nil {
		envPath := filepath.Join(filepath.Dir(exePath), ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	return FromLookup(os.LookupEnv), nil
}

// FromLookup builds the configuration from lookup, falling back to defaults for
// unset or malformed values.
func FromLookup(lookup func(string) (string, bool)) *AppConfig {
	env := envReader(lookup)
	timeoutSecs := env.getInt("PAGELOAD_TIMEOUT_SECONDS", int(probe.DefaultTimeout/time.Second))

	return &AppConfig{
		Sampling: sampling.Config{
			Warmup:             env.getInt("PAGELOAD_WARMUP", sampling.DefaultWarmup),
			MinIterations:      env.getInt("PAGELOAD_MIN_ITERATIONS", sampling.DefaultMinIterations),
			MaxIterations:      env.getInt("PAGELOAD_MAX_ITERATIONS", sampling.DefaultMaxIterations),
			StabilityThreshold: env.getFloat("PAGELOAD_STABILITY_THRESHOLD", stats.DefaultStabilityThreshold),
		},
		Fences: stats.FenceMultipliers{
			Inner: env.getFloat("PAGELOAD_INNER_FENCE", stats.DefaultInnerFence),
			Outer: env.getFloat("PAGELOAD_OUTER_FENCE", stats.DefaultOuterFence),
		},
		Width: env.getInt("PAGELOAD_WIDTH", report.DefaultWidth),
		Probe: probe.Config{
			Timeout:   time.Duration(timeoutSecs) * time.Second,
			UserAgent: env.getString("PAGELOAD_USER_AGENT", probe.DefaultUserAgent),
			StrictTLS: env.getBool("PAGELOAD_STRICT_TLS", false),
		},
		EnableMermaidCharts: env.getBool("ENABLE_MERMAID_CHARTS", false),
	}
}

type envReader func(string) (string, bool)

func (e envReader) getString(key, fallback string) string {
	if value, ok := e(key); ok {
		return value
	}
	return fallback
}

func (e envReader) getInt(key string, fallback int) int {
	if value, ok := e(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring malformed integer setting")
	}
	return fallback
}

func (e envReader) getFloat(key string, fallback float64) float64 {
	if value, ok := e(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring malformed number setting")
	}
	return fallback
}

func (e envReader) getBool(key string, fallback bool) bool {
	if value, ok := e(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
