package stats

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestQuantile(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		p        float64
		expected float64
	}{
		{"SingleItem", []float64{5.5}, 0.5, 5.5},
		{"MinAtZero", []float64{3, 1, 2}, 0, 1},
		{"MaxAtOne", []float64{3, 1, 2}, 1, 3},
		{"OddMedian", []float64{1, 3, 2, 4, 5}, 0.5, 3},
		{"EvenMedian", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"Interpolated", []float64{10, 20, 30, 40}, 0.1, 13},
		{"Ties", []float64{7, 7, 7, 7}, 0.9, 7},
		{"Tenth", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantile(tt.values, tt.p); math.Abs(got-tt.expected) > epsilon {
				t.Errorf("Quantile(%v, %v) = %v, want %v", tt.values, tt.p, got, tt.expected)
			}
		})
	}
}

func TestQuartilesReferenceFixture(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	shuffled := []float64{7, 2, 10, 5, 1, 9, 3, 8, 6, 4}

	for name, values := range map[string][]float64{"Sorted": sorted, "Unsorted": shuffled} {
		t.Run(name, func(t *testing.T) {
			if got := FirstQuartile(values); math.Abs(got-3.25) > epsilon {
				t.Errorf("Expected q1 3.25, got %v", got)
			}
			if got := Median(values); math.Abs(got-5.5) > epsilon {
				t.Errorf("Expected median 5.5, got %v", got)
			}
			if got := ThirdQuartile(values); math.Abs(got-7.75) > epsilon {
				t.Errorf("Expected q3 7.75, got %v", got)
			}
			if got := InterquartileRange(values); math.Abs(got-4.5) > epsilon {
				t.Errorf("Expected IQR 4.5, got %v", got)
			}
			if got := Min(values); got != 1 {
				t.Errorf("Expected min 1, got %v", got)
			}
			if got := Max(values); got != 10 {
				t.Errorf("Expected max 10, got %v", got)
			}
		})
	}
}

func TestQuantileDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	_ = Median(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("Expected input to stay [3 1 2], got %v", values)
	}
}

func TestQuantileEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic on empty sample set")
		}
	}()
	Median(nil)
}

func TestSummaryOrdering(t *testing.T) {
	fixtures := [][]float64{
		{42},
		{1, 1000, 1, 1000, 1},
		{10, 12, 11, 13, 12, 14, 100},
		{0.5, 0.25, 9.75, 3.5, 3.5, 2, 8},
		{5, 4, 3, 2, 1, 0},
	}

	for _, values := range fixtures {
		d := Describe(values, DefaultFenceMultipliers())
		s := d.Summary
		if !(s.Min <= s.Q1 && s.Q1 <= s.Median && s.Median <= s.Q3 && s.Q3 <= s.Max) {
			t.Errorf("Summary out of order for %v: %+v", values, s)
		}
		f := d.Fences
		if !(f.OuterLower <= f.InnerLower && f.InnerLower <= s.Q1 && s.Q3 <= f.InnerUpper && f.InnerUpper <= f.OuterUpper) {
			t.Errorf("Fences out of order for %v: %+v", values, f)
		}
	}
}
