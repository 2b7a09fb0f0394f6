package stats

import "fmt"

const (
	// DefaultInnerFence is the classic Tukey multiplier for "outside" values.
	DefaultInnerFence = 1.5
	// DefaultOuterFence is the Tukey multiplier for "far out" values.
	DefaultOuterFence = 3.0
)

// Summary is the five-number summary of a sample set.
type Summary struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// FenceMultipliers scale the IQR to place the inner and outer fences.
type FenceMultipliers struct {
	Inner float64 `json:"inner"`
	Outer float64 `json:"outer"`
}

// DefaultFenceMultipliers returns the 1.5 / 3.0 Tukey multipliers.
func DefaultFenceMultipliers() FenceMultipliers {
	return FenceMultipliers{Inner: DefaultInnerFence, Outer: DefaultOuterFence}
}

// Validate requires 0 <= Inner <= Outer so that the fences stay ordered
// outerLower <= innerLower <= q1 and q3 <= innerUpper <= outerUpper.
func (m FenceMultipliers) Validate() error {
	if !(m.Inner >= 0) {
		return fmt.Errorf("inner fence multiplier must be >= 0, got %v", m.Inner)
	}
	if !(m.Outer >= m.Inner) {
		return fmt.Errorf("outer fence multiplier (%v) must be >= inner fence multiplier (%v)", m.Outer, m.Inner)
	}
	return nil
}

// Fences are the outlier thresholds derived from q1, q3 and the IQR.
type Fences struct {
	InnerLower float64 `json:"inner_lower"`
	InnerUpper float64 `json:"inner_upper"`
	OuterLower float64 `json:"outer_lower"`
	OuterUpper float64 `json:"outer_upper"`
}

// ComputeFences places the fences m.Inner and m.Outer IQRs beyond the quartiles.
func ComputeFences(q1, q3 float64, m FenceMultipliers) Fences {
	iqr := q3 - q1
	return Fences{
		InnerLower: q1 - m.Inner*iqr,
		InnerUpper: q3 + m.Inner*iqr,
		OuterLower: q1 - m.Outer*iqr,
		OuterUpper: q3 + m.Outer*iqr,
	}
}

// IsOutlier reports whether v lies strictly outside the inner fences.
func (f Fences) IsOutlier(v float64) bool {
	return v < f.InnerLower || v > f.InnerUpper
}

// IsFarOut reports whether v lies strictly outside the outer fences.
func (f Fences) IsFarOut(v float64) bool {
	return v < f.OuterLower || v > f.OuterUpper
}

// Distribution is everything a single report needs about a sample set.
type Distribution struct {
	Samples  []float64 `json:"samples"` // ascending
	Summary  Summary   `json:"summary"`
	IQR      float64   `json:"iqr"`
	Fences   Fences    `json:"fences"`
	Outliers []float64 `json:"outliers"` // ascending
}

// IQRPercent returns the IQR as a percentage of the median. ok is false when
// the median is zero.
func (d Distribution) IQRPercent() (pct float64, ok bool) {
	if d.Summary.Median == 0 {
		return 0, false
	}
	return d.IQR / d.Summary.Median * 100, true
}
