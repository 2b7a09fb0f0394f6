package config

import (
	"os"
	"testing"
	"time"

	"pageload/internal/probe"
	"pageload/internal/sampling"

	"github.com/joho/godotenv"
)

func readEnvFile(t *testing.T, content string) func(string) (string, bool) {
	t.Helper()
	tmpfile, err := os.CreateTemp("", ".env.test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(tmpfile.Name())
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg := FromLookup(func(string) (string, bool) { return "", false })

	if cfg.Sampling != sampling.DefaultConfig() {
		t.Errorf("Expected default sampling config, got %+v", cfg.Sampling)
	}
	if cfg.Fences.Inner != 1.5 || cfg.Fences.Outer != 3.0 {
		t.Errorf("Expected 1.5/3.0 fences, got %+v", cfg.Fences)
	}
	if cfg.Width != 50 {
		t.Errorf("Expected width 50, got %d", cfg.Width)
	}
	if cfg.Probe.Timeout != probe.DefaultTimeout {
		t.Errorf("Expected timeout %v, got %v", probe.DefaultTimeout, cfg.Probe.Timeout)
	}
	if cfg.Probe.StrictTLS {
		t.Errorf("Expected lenient TLS by default")
	}
}

func TestFromLookupEnvFile(t *testing.T) {
	lookup := readEnvFile(t, `
PAGELOAD_WARMUP=2
PAGELOAD_MIN_ITERATIONS=10
PAGELOAD_MAX_ITERATIONS=30
PAGELOAD_STABILITY_THRESHOLD=0.05
PAGELOAD_WIDTH=80
PAGELOAD_INNER_FENCE=2
PAGELOAD_OUTER_FENCE=4
PAGELOAD_TIMEOUT_SECONDS=5
PAGELOAD_USER_AGENT='bench "nightly"'
PAGELOAD_STRICT_TLS=true
ENABLE_MERMAID_CHARTS=1
`)
	cfg := FromLookup(lookup)

	want := sampling.Config{Warmup: 2, MinIterations: 10, MaxIterations: 30, StabilityThreshold: 0.05}
	if cfg.Sampling != want {
		t.Errorf("Expected %+v, got %+v", want, cfg.Sampling)
	}
	if cfg.Width != 80 {
		t.Errorf("Expected width 80, got %d", cfg.Width)
	}
	if cfg.Fences.Inner != 2 || cfg.Fences.Outer != 4 {
		t.Errorf("Expected 2/4 fences, got %+v", cfg.Fences)
	}
	if cfg.Probe.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", cfg.Probe.Timeout)
	}
	if cfg.Probe.UserAgent != `bench "nightly"` {
		t.Errorf("Expected quoted user agent to survive, got %q", cfg.Probe.UserAgent)
	}
	if !cfg.Probe.StrictTLS || !cfg.EnableMermaidCharts {
		t.Errorf("Expected boolean settings to be enabled, got %+v", cfg)
	}
}

func TestFromLookupMalformedFallsBack(t *testing.T) {
	lookup := readEnvFile(t, `
PAGELOAD_WARMUP=five
PAGELOAD_STABILITY_THRESHOLD=one-percent
PAGELOAD_STRICT_TLS=maybe
`)
	cfg := FromLookup(lookup)

	if cfg.Sampling.Warmup != sampling.DefaultWarmup {
		t.Errorf("Expected default warm-up, got %d", cfg.Sampling.Warmup)
	}
	if cfg.Sampling.StabilityThreshold != 0.01 {
		t.Errorf("Expected default threshold, got %v", cfg.Sampling.StabilityThreshold)
	}
	if cfg.Probe.StrictTLS {
		t.Errorf("Expected default StrictTLS=false")
	}
}
