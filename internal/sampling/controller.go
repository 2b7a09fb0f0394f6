package sampling

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"pageload/internal/stats"

	"github.com/rs/zerolog/log"
)

const (
	DefaultWarmup        = 5
	DefaultMinIterations = 25
	DefaultMaxIterations = 50
)

// Probe yields one latency observation in milliseconds per call.
type Probe interface {
	Measure(ctx context.Context) (float64, error)
}

// ProbeFunc adapts a plain function to the Probe interface.
type ProbeFunc func(ctx context.Context) (float64, error)

// Measure calls f(ctx).
func (f ProbeFunc) Measure(ctx context.Context) (float64, error) {
	return f(ctx)
}

// Progress receives each measurement as it is taken. Iterations start at 1.
type Progress func(iteration int, latencyMs float64)

// Config controls when sampling stops.
type Config struct {
	Warmup             int
	MinIterations      int
	MaxIterations      int
	StabilityThreshold float64
}

// DefaultConfig returns 5 warm-up calls, 25..50 measurements and a 1%
// relative IQR threshold.
func DefaultConfig() Config {
	return Config{
		Warmup:             DefaultWarmup,
		MinIterations:      DefaultMinIterations,
		MaxIterations:      DefaultMaxIterations,
		StabilityThreshold: stats.DefaultStabilityThreshold,
	}
}

// Validate checks that the iteration bounds form a usable range.
func (c Config) Validate() error {
	if c.Warmup < 0 {
		return fmt.Errorf("warm-up count must be >= 0, got %d", c.Warmup)
	}
	if c.MinIterations < 1 {
		return fmt.Errorf("min iterations must be >= 1, got %d", c.MinIterations)
	}
	if c.MaxIterations < c.MinIterations {
		return fmt.Errorf("max iterations (%d) must be >= min iterations (%d)", c.MaxIterations, c.MinIterations)
	}
	if c.StabilityThreshold < 0 {
		return errors.New("stability threshold must be >= 0")
	}
	return nil
}

// Result is the outcome of one sampling run.
type Result struct {
	Samples    []float64 // ascending
	Sequence   []float64 // in measurement order
	Converged  bool
	Iterations int
}

// Run warms the probe up, then samples it one call at a time until the median
// is stable or cfg.MaxIterations is reached. Any probe error aborts the run.
func Run(ctx context.Context, probe Probe, cfg Config, progress Progress) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	log.Debug().Int("count", cfg.Warmup).Msg("Warming up")
	for i := 1; i <= cfg.Warmup; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		v, err := probe.Measure(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("warm-up %d: %w", i, err)
		}
		log.Trace().Int("warmup", i).Float64("latency_ms", v).Msg("Discarded warm-up sample")
	}

	// MaxIterations is caller-supplied and may be huge; let append grow the slice.
	var samples []float64
	converged := false
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		iteration := len(samples) + 1
		v, err := probe.Measure(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("sample %d: %w", iteration, err)
		}
		samples = append(samples, v)
		if progress != nil {
			progress(iteration, v)
		}

		if iteration < cfg.MinIterations {
			continue
		}
		if stats.IsMedianStable(samples, cfg.StabilityThreshold) {
			converged = true
			break
		}
		if iteration >= cfg.MaxIterations {
			break
		}
	}

	log.Debug().Int("iterations", len(samples)).Bool("converged", converged).Msg("Sampling finished")

	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return Result{
		Samples:    sorted,
		Sequence:   samples,
		Converged:  converged,
		Iterations: len(samples),
	}, nil
}
