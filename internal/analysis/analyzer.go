package analysis

import (
	"fmt"
	"math"

	"github.com/lunaroak/tally-ho/internal/series"
	"github.com/lunaroak/tally-ho/internal/stats"
)

// Thresholds governing which comparison method is valid for a series.
const (
	// skewNormalLimit is the |skewness| above which the series is treated
	// as non-normal and the rank test is used instead of Welch's t.
	skewNormalLimit = 1.0
	// autocorrLimit is the lag-1 autocorrelation above which independence
	// is considered violated and only bootstrap resampling is trusted.
	autocorrLimit = 0.5
	// durbinWatsonLow is the DW statistic below which residuals show
	// strong positive autocorrelation.
	durbinWatsonLow = 1.0
	// stableSlopeFraction is the fraction of the value range below which
	// a per-period slope reads as "stable".
	stableSlopeFraction = 0.01
	// consistencyThreshold is the directional-consistency level above
	// which a trend is significant.
	consistencyThreshold = 0.75
	// bootstrapIterations fixes the resample count for the bootstrap test.
	bootstrapIterations = 1000
)

// Analyze produces the significance verdict for a complete-period series.
//
// It is a pure function: no state is kept between calls and identical
// inputs always yield identical results. The only enforced precondition is
// the minimum sample size; everything else degrades to a defined result.
func Analyze(s series.CompleteSeries, cfg Config) Result {
	cfg = cfg.withDefaults()
	values := s.Values()

	result := Result{
		Type:       TypeNone,
		Metric:     cfg.Metric,
		SampleSize: len(values),
	}

	// Hard gate: inference on a short series produces false positives no
	// matter how extreme the values look.
	if len(values) < cfg.MinimumSampleSize {
		result.Reasons = []string{fmt.Sprintf(
			"insufficient data: %d complete periods available, %d required for reliable inference",
			len(values), cfg.MinimumSampleSize)}
		result.Statistics.TrendDirection = TrendStable
		return result
	}

	result.Statistics = describe(values)
	result.Growth = growthRates(values)

	reg := stats.LinearRegression(values)
	result.Statistics.TrendSlope = reg.Slope
	result.Statistics.TrendR2 = reg.R2
	result.Statistics.PercentChange = reg.PercentChange()
	result.Statistics.TrendDirection = direction(reg.Slope, values)
	result.Statistics.DurbinWatson = stats.DurbinWatson(reg.Residuals(values))

	consistency, directional := trendConsistency(values, cfg.TrendWindowSize)
	result.Statistics.Consistency = consistency
	result.Statistics.DirectionalChanges = directional

	test, conservative := compare(values, result.Statistics)
	result.Statistics.Method = test.Method
	result.Statistics.TestStatistic = test.Statistic
	result.Statistics.PValue = test.PValue

	latestSigma := latestChangeSigma(values)
	result.Statistics.LatestChangeSigma = latestSigma

	// Individual rules.
	practical := practicalSignificant(cfg, result, latestAbsoluteChange(values))
	alpha := 1 - cfg.ConfidenceLevel
	if conservative {
		// Assumptions are shaky, so demand stronger evidence.
		alpha /= 2
	}
	statistical := test.PValue < alpha
	trend := consistency > consistencyThreshold && directional >= 2
	volatile := result.Statistics.StdDev > 0 &&
		math.Abs(latestSigma) > cfg.VolatilityThreshold

	fired := 0
	for _, hit := range []struct {
		t  Type
		ok bool
	}{
		{TypePractical, practical},
		{TypeStatistical, statistical},
		{TypeTrend, trend},
		{TypeVolatility, volatile},
	} {
		if hit.ok {
			fired++
			if result.Type == TypeNone {
				result.Type = hit.t
			}
		}
	}
	if fired > 1 {
		result.Type = TypeCombined
	}
	result.IsSignificant = fired > 0
	result.Confidence = confidence(len(values), cfg.MinimumSampleSize, reg.R2, fired)

	result.Reasons, result.Recommendations = narrative(cfg, result,
		practical, statistical, trend, volatile)
	return result
}

// describe fills in the descriptive statistics of the raw series.
func describe(values []float64) Statistics {
	return Statistics{
		Mean:            stats.Mean(values),
		StdDev:          stats.StdDev(values),
		Volatility:      stats.CoefficientOfVariation(values),
		Skewness:        stats.Skewness(values),
		Autocorrelation: stats.Lag1Autocorrelation(values),
	}
}

// compare picks the valid comparison test for the series' shape and runs it
// over the first half vs the second half. The second return is true when
// the assumptions were shaky enough that a conservative alpha should apply.
func compare(values []float64, desc Statistics) (stats.TestResult, bool) {
	half := len(values) / 2
	first, second := values[:half], values[half:]

	autocorrelated := desc.Autocorrelation > autocorrLimit || desc.DurbinWatson > 0 && desc.DurbinWatson < durbinWatsonLow
	nonNormal := math.Abs(desc.Skewness) > skewNormalLimit

	switch {
	case autocorrelated:
		// Dependence invalidates both parametric and rank tests; resample
		// instead, and stay conservative when the shape is bad too.
		return stats.BootstrapMeanDiff(first, second, bootstrapIterations), nonNormal
	case nonNormal:
		return stats.MannWhitneyU(first, second), false
	default:
		return stats.WelchT(first, second), false
	}
}

// direction converts a slope into a trend direction, reading slopes smaller
// than a fraction of the value range as stable.
func direction(slope float64, values []float64) TrendDirection {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	valueRange := hi - lo
	if valueRange == 0 || math.Abs(slope) < stableSlopeFraction*valueRange {
		return TrendStable
	}
	if slope > 0 {
		return TrendUp
	}
	return TrendDown
}

// trendConsistency counts directional changes over the last window periods
// and returns the dominant direction's share plus the number of directional
// (non-flat) changes.
func trendConsistency(values []float64, window int) (float64, int) {
	diffs := stats.Diffs(values)
	if len(diffs) > window {
		diffs = diffs[len(diffs)-window:]
	}
	if len(diffs) == 0 {
		return 0, 0
	}

	var up, down int
	for _, d := range diffs {
		switch {
		case d > 0:
			up++
		case d < 0:
			down++
		}
	}

	dominant := up
	if down > dominant {
		dominant = down
	}
	return float64(dominant) / float64(len(diffs)), up + down
}

// latestChangeSigma measures how many historical standard deviations the
// most recent period-over-period change sits from the mean change. Zero
// when history is too short or has no spread.
func latestChangeSigma(values []float64) float64 {
	diffs := stats.Diffs(values)
	if len(diffs) < 3 {
		return 0
	}
	latest := diffs[len(diffs)-1]
	history := diffs[:len(diffs)-1]
	sd := stats.StdDev(history)
	if sd == 0 {
		return 0
	}
	return (latest - stats.Mean(history)) / sd
}

// growthRates computes the three distinct growth figures.
func growthRates(values []float64) Growth {
	n := len(values)
	var g Growth
	if n >= 2 {
		g.WeekOverWeek = percentChange(values[n-2], values[n-1])
	}
	if n >= 5 {
		g.Monthly = percentChange(values[n-5], values[n-1])
	}

	diffs := stats.Diffs(values)
	if len(diffs) > 0 {
		var sum float64
		for i, d := range diffs {
			base := values[i]
			if base != 0 {
				sum += d / math.Abs(base) * 100
			}
		}
		g.Average = sum / float64(len(diffs))
	}
	return g
}

// practicalSignificant applies the business thresholds: the fitted percent
// change or the latest week-over-week move crossing the percentage
// threshold, or the latest absolute move crossing the absolute threshold
// when one is configured.
func practicalSignificant(cfg Config, r Result, latestAbs float64) bool {
	if math.Abs(r.Statistics.PercentChange) >= cfg.PercentageThreshold {
		return true
	}
	if math.Abs(r.Growth.WeekOverWeek) >= cfg.PercentageThreshold {
		return true
	}
	return cfg.AbsoluteThreshold > 0 && latestAbs >= cfg.AbsoluteThreshold
}

// latestAbsoluteChange returns |latest - previous|, 0 for short series.
func latestAbsoluteChange(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return math.Abs(values[len(values)-1] - values[len(values)-2])
}

// confidence scores the verdict in [0,1]: more data, a better trend fit,
// and agreement across rules all raise it.
func confidence(sampleSize, minimum int, r2 float64, fired int) float64 {
	sampleFactor := float64(sampleSize) / float64(2*minimum)
	if sampleFactor > 1 {
		sampleFactor = 1
	}
	score := 0.2 + 0.3*sampleFactor + 0.2*r2 + 0.1*float64(fired)
	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}

func percentChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	pct := (to - from) / math.Abs(from) * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return pct
}
