// Package stats provides the descriptive statistics, regression, and
// hypothesis tests backing significance analysis. Every function tolerates
// degenerate input (short series, zero variance) by returning a defined
// zero result rather than NaN.
package stats

import "math"

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the sample standard deviation (n-1 denominator), or 0 when
// fewer than two values are present.
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// CoefficientOfVariation returns stddev/|mean|, the scale-free volatility
// measure. A zero mean returns 0.
func CoefficientOfVariation(values []float64) float64 {
	mean := Mean(values)
	if mean == 0 {
		return 0
	}
	return StdDev(values) / math.Abs(mean)
}

// Skewness returns the adjusted Fisher-Pearson sample skewness. Series
// shorter than 3 values, or with zero variance, return 0.
func Skewness(values []float64) float64 {
	n := float64(len(values))
	if n < 3 {
		return 0
	}
	mean := Mean(values)
	sd := StdDev(values)
	if sd == 0 {
		return 0
	}
	var m3 float64
	for _, v := range values {
		d := (v - mean) / sd
		m3 += d * d * d
	}
	return n / ((n - 1) * (n - 2)) * m3
}

// Lag1Autocorrelation returns the lag-1 sample autocorrelation, used to
// detect trending or seasonal series where independence assumptions fail.
func Lag1Autocorrelation(values []float64) float64 {
	n := len(values)
	if n < 3 {
		return 0
	}
	mean := Mean(values)
	var num, den float64
	for i, v := range values {
		d := v - mean
		den += d * d
		if i > 0 {
			num += d * (values[i-1] - mean)
		}
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// DurbinWatson returns the Durbin-Watson statistic of a residual sequence.
// Values near 2 indicate no autocorrelation; near 0 strong positive
// autocorrelation. Degenerate input returns 2 (the no-autocorrelation
// value) so downstream checks stay conservative.
func DurbinWatson(residuals []float64) float64 {
	if len(residuals) < 2 {
		return 2
	}
	var num, den float64
	for i, r := range residuals {
		den += r * r
		if i > 0 {
			d := r - residuals[i-1]
			num += d * d
		}
	}
	if den == 0 {
		return 2
	}
	return num / den
}

// Diffs returns the period-over-period changes of a series: out[i] =
// values[i+1] - values[i].
func Diffs(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}
