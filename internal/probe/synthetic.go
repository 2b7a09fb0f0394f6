package probe

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

const (
	ScenarioMild  = "mild"
	ScenarioChaos = "chaos"
	ScenarioDrift = "drift"

	DistributionUniform = "uniform"
	DistributionWeibull = "weibull"
)

// SyntheticConfig describes a generated latency series.
type SyntheticConfig struct {
	Scenario     string  // mild, chaos or drift
	Distribution string  // uniform or weibull
	BaseMs       float64 // typical latency
	Horizon      int     // calls over which drift plays out
	Seed         int64
}

// SyntheticProbe returns generated latencies instead of loading a page. It is
// used to exercise the sampler without a server.
type SyntheticProbe struct {
	cfg   SyntheticConfig
	rng   *rand.Rand
	calls int
}

// NewSyntheticProbe validates cfg and seeds the generator.
func NewSyntheticProbe(cfg SyntheticConfig) (*SyntheticProbe, error) {
	switch cfg.Scenario {
	case ScenarioMild, ScenarioChaos, ScenarioDrift:
	default:
		return nil, fmt.Errorf("unknown scenario %q (want mild, chaos or drift)", cfg.Scenario)
	}
	switch cfg.Distribution {
	case DistributionUniform, DistributionWeibull:
	default:
		return nil, fmt.Errorf("unknown distribution %q (want uniform or weibull)", cfg.Distribution)
	}
	if cfg.BaseMs <= 0 {
		return nil, fmt.Errorf("base latency must be > 0, got %v", cfg.BaseMs)
	}
	if cfg.Horizon <= 0 {
		cfg.Horizon = 50
	}
	return &SyntheticProbe{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}, nil
}

// Measure returns the next generated latency in milliseconds.
func (p *SyntheticProbe) Measure(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	i := p.calls
	p.calls++

	base := p.cfg.BaseMs
	if p.cfg.Scenario == ScenarioDrift {
		ratio := math.Min(float64(i)/float64(p.cfg.Horizon), 1)
		base *= 1 + 0.5*ratio // Creeps up to +50% over the horizon
	}

	if p.cfg.Distribution == DistributionWeibull {
		k, lambda := 2.5, 0.004 // Mild: ~0.35% typical jitter
		if p.cfg.Scenario == ScenarioChaos {
			k, lambda = 0.8, 0.5
		}
		return base * (1 + p.weibullSample(k, lambda)), nil
	}

	// Uniform baseline: within 1% of base
	v := base * (1 + 0.01*p.rng.Float64())
	if p.cfg.Scenario == ScenarioChaos && p.rng.Float64() < 0.2 {
		v += base * (1 + 1.5*p.rng.Float64()) // Occasional stalls
	}
	if p.cfg.Scenario == ScenarioDrift && i > p.cfg.Horizon/2 {
		v *= 2.0
	}
	return v, nil
}

func (p *SyntheticProbe) weibullSample(k, lambda float64) float64 {
	u := p.rng.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}
