package probe

import (
	"context"
	"testing"

	"pageload/internal/sampling"
)

func TestNewSyntheticProbeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SyntheticConfig
		wantErr bool
	}{
		{"Mild", SyntheticConfig{Scenario: "mild", Distribution: "uniform", BaseMs: 100}, false},
		{"ChaosWeibull", SyntheticConfig{Scenario: "chaos", Distribution: "weibull", BaseMs: 100}, false},
		{"UnknownScenario", SyntheticConfig{Scenario: "calm", Distribution: "uniform", BaseMs: 100}, true},
		{"UnknownDistribution", SyntheticConfig{Scenario: "mild", Distribution: "normal", BaseMs: 100}, true},
		{"ZeroBase", SyntheticConfig{Scenario: "mild", Distribution: "uniform"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSyntheticProbe(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSyntheticProbe() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSyntheticProbeDeterministic(t *testing.T) {
	cfg := SyntheticConfig{Scenario: "chaos", Distribution: "uniform", BaseMs: 200, Seed: 42}
	a, _ := NewSyntheticProbe(cfg)
	b, _ := NewSyntheticProbe(cfg)

	for i := 0; i < 20; i++ {
		va, _ := a.Measure(context.Background())
		vb, _ := b.Measure(context.Background())
		if va != vb {
			t.Fatalf("Call %d: expected identical values for the same seed, got %v and %v", i, va, vb)
		}
		if va < 200 {
			t.Fatalf("Call %d: expected latency >= base, got %v", i, va)
		}
	}
}

func TestSyntheticScenariosAgainstSampler(t *testing.T) {
	tests := []struct {
		name          string
		cfg           SyntheticConfig
		wantConverged bool
	}{
		{"MildUniform", SyntheticConfig{Scenario: "mild", Distribution: "uniform", BaseMs: 150, Seed: 1}, true},
		{"ChaosWeibull", SyntheticConfig{Scenario: "chaos", Distribution: "weibull", BaseMs: 150, Seed: 1}, false},
		{"DriftUniform", SyntheticConfig{Scenario: "drift", Distribution: "uniform", BaseMs: 150, Seed: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewSyntheticProbe(tt.cfg)
			if err != nil {
				t.Fatal(err)
			}
			res, err := sampling.Run(context.Background(), p, sampling.DefaultConfig(), nil)
			if err != nil {
				t.Fatal(err)
			}
			if res.Converged != tt.wantConverged {
				t.Errorf("Expected converged=%v, got %v after %d iterations", tt.wantConverged, res.Converged, res.Iterations)
			}
		})
	}
}

func TestSyntheticProbeCancelled(t *testing.T) {
	p, _ := NewSyntheticProbe(SyntheticConfig{Scenario: "mild", Distribution: "uniform", BaseMs: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Measure(ctx); err == nil {
		t.Errorf("Expected error for cancelled context")
	}
}
