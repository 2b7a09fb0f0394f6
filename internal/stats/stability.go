package stats

// DefaultStabilityThreshold is the relative IQR (1%) below which a median is
// considered stable.
const DefaultStabilityThreshold = 0.01

// RelativeIQR returns IQR / median. ok is false when the median is zero.
func RelativeIQR(samples []float64) (ratio float64, ok bool) {
	sorted := sortedCopy(samples)
	median := quantileSorted(sorted, 0.5)
	if median == 0 {
		return 0, false
	}
	iqr := quantileSorted(sorted, 0.75) - quantileSorted(sorted, 0.25)
	return iqr / median, true
}

// IsMedianStable reports whether the interquartile range of samples is within
// threshold of the median. A zero median is never stable.
func IsMedianStable(samples []float64, threshold float64) bool {
	ratio, ok := RelativeIQR(samples)
	if !ok {
		return false
	}
	return ratio <= threshold
}

// Describe sorts samples and computes the five-number summary, fences and
// outliers for one report.
func Describe(samples []float64, m FenceMultipliers) Distribution {
	sorted := sortedCopy(samples)
	n := len(sorted)

	summary := Summary{
		Min:    sorted[0],
		Q1:     quantileSorted(sorted, 0.25),
		Median: quantileSorted(sorted, 0.5),
		Q3:     quantileSorted(sorted, 0.75),
		Max:    sorted[n-1],
	}
	fences := ComputeFences(summary.Q1, summary.Q3, m)

	return Distribution{
		Samples:  sorted,
		Summary:  summary,
		IQR:      summary.Q3 - summary.Q1,
		Fences:   fences,
		Outliers: Outliers(sorted, fences),
	}
}

// Outliers returns the values strictly outside the inner fences, in the order
// they appear in samples.
func Outliers(samples []float64, f Fences) []float64 {
	var out []float64
	for _, v := range samples {
		if f.IsOutlier(v) {
			out = append(out, v)
		}
	}
	return out
}
