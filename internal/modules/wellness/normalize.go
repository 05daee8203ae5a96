package wellness

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// Percentile bounds used to trim baseline outliers before scaling.
	ClipLowerPercentile = 1.0
	ClipUpperPercentile = 99.0

	// FlatBaselineScore is returned when the clipped baseline has no spread.
	FlatBaselineScore = 50.0

	closeAbsTol = 1e-8
	closeRelTol = 1e-5
)

// isClose compares two floats with the absolute/relative tolerance used for
// the flat-baseline and zero-variance checks.
func isClose(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, closeAbsTol, closeRelTol)
}

// Percentile returns the p-th percentile (0..100) of series using linear
// interpolation between the closest ranks of a sorted copy.
func Percentile(series []float64, p float64) float64 {
	if len(series) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(series))
	copy(sorted, series)
	sort.Float64s(sorted)

	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	p = math.Max(0, math.Min(100, p))
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// ClipOutliers returns a copy of series with every value clamped to the
// [lower, upper] percentile range of the series.
func ClipOutliers(series []float64, lower, upper float64) []float64 {
	if len(series) == 0 {
		return nil
	}

	sorted := make([]float64, len(series))
	copy(sorted, series)
	sort.Float64s(sorted)
	low := percentileSorted(sorted, lower)
	high := percentileSorted(sorted, upper)

	clipped := make([]float64, len(series))
	for i, v := range series {
		clipped[i] = math.Max(low, math.Min(high, v))
	}
	return clipped
}

// Normalize maps value onto 0..100 relative to the outlier-clipped range of
// baseline. Only the baseline range is clipped, so a value outside it
// saturates at 0 or 100. A baseline with no spread yields FlatBaselineScore.
func Normalize(value float64, baseline []float64) float64 {
	if len(baseline) == 0 {
		return FlatBaselineScore
	}

	clipped := ClipOutliers(baseline, ClipLowerPercentile, ClipUpperPercentile)
	minVal, maxVal := floats.Min(clipped), floats.Max(clipped)
	if isClose(maxVal, minVal) {
		return FlatBaselineScore
	}

	normalized := 100.0 * (value - minVal) / (maxVal - minVal)
	if math.IsNaN(normalized) {
		return FlatBaselineScore
	}
	return math.Max(0, math.Min(100, normalized))
}
