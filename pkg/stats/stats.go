// Package stats provides the numeric utility functions used by the
// cross-file analyzer. Missing observations are represented as NaN and
// are ignored rather than treated as errors.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// finite returns the finite entries of values, dropping NaN and ±Inf.
func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// SampleStdDev returns the sample standard deviation (n-1 denominator)
// of the finite entries of values, or 0 when fewer than two exist.
func SampleStdDev(values []float64) float64 {
	valid := finite(values)
	if len(valid) < 2 {
		return 0
	}
	return stat.StdDev(valid, nil)
}

// PercentChange returns the percent change from baseline to current.
// A zero baseline has no defined percent change unless the current
// value is also zero, in which case the change is 0. Nil is returned
// for the undefined cases and for non-finite inputs.
func PercentChange(baseline, current float64) *float64 {
	if math.IsNaN(baseline) || math.IsNaN(current) ||
		math.IsInf(baseline, 0) || math.IsInf(current, 0) {
		return nil
	}
	if baseline == 0 {
		if current == 0 {
			zero := 0.0
			return &zero
		}
		return nil
	}
	pct := (current - baseline) / baseline * 100
	return &pct
}

// LinearTrend fits an ordinary least-squares line to series against
// x = 0..n-1 and returns one fitted value per input index. NaN entries
// are excluded from the fit but still receive a fitted value. With
// fewer than two points the result is empty; with fewer than two
// finite points the result is all NaN.
func LinearTrend(series []float64) []float64 {
	n := len(series)
	if n < 2 {
		return []float64{}
	}

	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i, y := range series {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, y)
	}

	out := make([]float64, n)
	if len(ys) < 2 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	var intercept, slope float64
	if stat.Variance(xs, nil) == 0 {
		// Cannot happen for distinct indices, but guard the degenerate fit.
		intercept = stat.Mean(ys, nil)
	} else {
		intercept, slope = stat.LinearRegression(xs, ys, nil, false)
	}

	for i := range out {
		out[i] = intercept + slope*float64(i)
	}
	return out
}

// Mean returns the mean of the finite entries, or 0 when none exist.
func Mean(values []float64) float64 {
	valid := finite(values)
	if len(valid) == 0 {
		return 0
	}
	return stat.Mean(valid, nil)
}

// Median returns the median of the finite entries, averaging the two
// middle values for even counts, or 0 when none exist.
func Median(values []float64) float64 {
	valid := finite(values)
	if len(valid) == 0 {
		return 0
	}
	sort.Float64s(valid)
	mid := len(valid) / 2
	if len(valid)%2 == 1 {
		return valid[mid]
	}
	return (valid[mid-1] + valid[mid]) / 2
}
