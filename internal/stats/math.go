package stats

import (
	"math"
	"slices"
)

// Quantile returns the p-th quantile of samples using linear interpolation
// between order statistics (Hyndman & Fan type 7, the default in R and NumPy).
// The input may be in any order; a sorted copy is used.
func Quantile(samples []float64, p float64) float64 {
	return quantileSorted(sortedCopy(samples), p)
}

// Median returns the 0.5 quantile of samples.
func Median(samples []float64) float64 {
	return Quantile(samples, 0.5)
}

// FirstQuartile returns the 0.25 quantile of samples.
func FirstQuartile(samples []float64) float64 {
	return Quantile(samples, 0.25)
}

// ThirdQuartile returns the 0.75 quantile of samples.
func ThirdQuartile(samples []float64) float64 {
	return Quantile(samples, 0.75)
}

// InterquartileRange returns q3 - q1.
func InterquartileRange(samples []float64) float64 {
	sorted := sortedCopy(samples)
	return quantileSorted(sorted, 0.75) - quantileSorted(sorted, 0.25)
}

// Min returns the smallest sample.
func Min(samples []float64) float64 {
	return sortedCopy(samples)[0]
}

// Max returns the largest sample.
func Max(samples []float64) float64 {
	sorted := sortedCopy(samples)
	return sorted[len(sorted)-1]
}

func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	mustNotBeEmpty(n)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	pos := p * float64(n-1)
	lo := math.Floor(pos)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1]
	}
	frac := pos - lo
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

// sortedCopy returns an ascending copy so callers never observe a reordering
// of their own slice.
func sortedCopy(samples []float64) []float64 {
	mustNotBeEmpty(len(samples))

	temp := make([]float64, len(samples))
	copy(temp, samples)
	slices.Sort(temp)
	return temp
}

func mustNotBeEmpty(n int) {
	if n == 0 {
		panic("stats: statistics of an empty sample set are undefined")
	}
}
