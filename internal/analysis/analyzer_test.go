package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunaroak/tally-ho/internal/series"
)

func analyzeValues(values []float64, metric MetricType) Result {
	return Analyze(series.FromValues(values), DefaultConfig(metric))
}

func TestAnalyze_SampleSizeGate(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{name: "empty", values: nil},
		{name: "single value", values: []float64{100}},
		{name: "two diverging values", values: []float64{1, 100}},
		{name: "extreme jump below minimum", values: []float64{1, 1, 1, 1, 1, 100}},
		{name: "eleven points", values: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := analyzeValues(tt.values, MetricSales)

			assert.False(t, res.IsSignificant)
			assert.Equal(t, TypeNone, res.Type)
			require.Len(t, res.Reasons, 1)
			assert.Contains(t, res.Reasons[0], "insufficient data")
		})
	}
}

func TestAnalyze_ZeroVarianceSafety(t *testing.T) {
	constant := make([]float64, 14)
	for i := range constant {
		constant[i] = 250
	}

	res := analyzeValues(constant, MetricSales)

	assert.False(t, res.IsSignificant)
	assert.Equal(t, TypeNone, res.Type)
	assert.Zero(t, res.Statistics.Volatility)
	assert.Equal(t, TrendStable, res.Statistics.TrendDirection)
	assertNoNaN(t, res)
}

func TestAnalyze_TrendConsistency(t *testing.T) {
	// Twelve points ending in three consecutive rises: trend rule fires.
	rising := []float64{100, 99, 101, 100, 99, 100, 101, 100, 99, 102, 104, 106}
	res := analyzeValues(rising, MetricSales)

	assert.InDelta(t, 1.0, res.Statistics.Consistency, 1e-9)
	assert.GreaterOrEqual(t, res.Statistics.DirectionalChanges, 2)
	assert.True(t, res.IsSignificant)

	// Alternating series: consistency under threshold, trend rule quiet.
	alternating := []float64{100, 110, 100, 110, 100, 110, 100, 110, 100, 110, 100, 110}
	res = analyzeValues(alternating, MetricOrders)
	assert.LessOrEqual(t, res.Statistics.Consistency, 0.75)
}

func TestAnalyze_GrowthRateDistinctness(t *testing.T) {
	// Flat for eleven periods, then a level jump in the latest one. The
	// week-over-week figure must not collapse into the whole-series mean.
	values := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 120}
	res := analyzeValues(values, MetricSales)

	assert.InDelta(t, 20, res.Growth.WeekOverWeek, 1e-9)
	assert.NotEqual(t, res.Growth.WeekOverWeek, res.Growth.Average)
	assert.InDelta(t, 20.0/11, res.Growth.Average, 1e-6)
	assert.InDelta(t, 20, res.Growth.Monthly, 1e-9) // vs 4 periods back, also 100
}

func TestAnalyze_TwelveWeekSalesScenario(t *testing.T) {
	values := []float64{100, 102, 99, 101, 103, 98, 104, 106, 103, 108, 110, 107}
	res := analyzeValues(values, MetricSales)

	assert.Equal(t, MetricSales, res.Metric)
	assert.Equal(t, 12, res.SampleSize)
	assert.Equal(t, TrendUp, res.Statistics.TrendDirection)
	assert.Greater(t, res.Statistics.TrendR2, 0.0)
	assert.LessOrEqual(t, res.Statistics.TrendR2, 1.0)

	// The halves differ cleanly (means ~100.5 vs ~106.3), so the verdict
	// comes from the statistical rule even though the ~9% fitted change
	// stays under the 10% practical threshold.
	assert.True(t, res.IsSignificant)
	assert.NotEqual(t, TypeNone, res.Type)
	assert.NotEmpty(t, res.Reasons)
	assert.NotEmpty(t, res.Recommendations)
	assertNoNaN(t, res)
}

func TestAnalyze_Deterministic(t *testing.T) {
	values := []float64{100, 102, 99, 101, 103, 98, 104, 106, 103, 108, 110, 107}
	first := analyzeValues(values, MetricSales)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, analyzeValues(values, MetricSales))
	}
}

func TestAnalyze_MethodSelection(t *testing.T) {
	t.Run("steady ramp uses bootstrap", func(t *testing.T) {
		ramp := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21}
		res := analyzeValues(ramp, MetricSales)
		assert.Equal(t, "bootstrap", res.Statistics.Method)
	})

	t.Run("skewed independent series uses rank test", func(t *testing.T) {
		skewed := []float64{10, 11, 10, 12, 11, 10, 12, 95, 10, 12, 11, 10, 11, 12}
		res := analyzeValues(skewed, MetricOther)
		assert.Greater(t, res.Statistics.Skewness, 1.0)
		assert.Equal(t, "mann-whitney-u", res.Statistics.Method)
	})

	t.Run("noisy level series uses welch", func(t *testing.T) {
		noisy := []float64{100, 104, 97, 102, 99, 103, 98, 101, 104, 96, 103, 100}
		res := analyzeValues(noisy, MetricSales)
		assert.Equal(t, "welch-t", res.Statistics.Method)
	})
}

func TestAnalyze_VolatilityRule(t *testing.T) {
	// Small steady changes, then a violent one in the latest period.
	values := []float64{100, 101, 100, 102, 101, 100, 101, 102, 101, 100, 101, 140}
	res := analyzeValues(values, MetricSales)

	assert.True(t, res.IsSignificant)
	assert.Greater(t, math.Abs(res.Statistics.LatestChangeSigma), 2.0)
}

func TestAnalyze_CombinedType(t *testing.T) {
	// Strong rise fires practical and trend (and usually statistical) at once.
	values := []float64{100, 100, 101, 100, 101, 100, 110, 120, 130, 140, 150, 160}
	res := analyzeValues(values, MetricSales)

	assert.True(t, res.IsSignificant)
	assert.Equal(t, TypeCombined, res.Type)
}

func TestAnalyze_ConfidenceBounds(t *testing.T) {
	cases := [][]float64{
		{100, 102, 99, 101, 103, 98, 104, 106, 103, 108, 110, 107},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{100, 100, 101, 100, 101, 100, 110, 120, 130, 140, 150, 160},
	}
	for _, values := range cases {
		res := analyzeValues(values, MetricSales)
		assert.GreaterOrEqual(t, res.Confidence, 0.0)
		assert.LessOrEqual(t, res.Confidence, 1.0)
	}
}

func TestAnalyze_ConfigDefaults(t *testing.T) {
	values := []float64{100, 102, 99, 101, 103, 98, 104, 106, 103, 108, 110, 107}

	// A zero config behaves like the "other" preset instead of crashing.
	res := Analyze(series.FromValues(values), Config{})
	assert.Equal(t, MetricOther, res.Metric)
	assert.Equal(t, 12, res.SampleSize)
}

func TestDefaultConfig_Presets(t *testing.T) {
	assert.InDelta(t, 10, DefaultConfig(MetricSales).PercentageThreshold, 1e-9)
	assert.InDelta(t, 15, DefaultConfig(MetricOrders).PercentageThreshold, 1e-9)
	assert.InDelta(t, 8, DefaultConfig(MetricEfficiency).PercentageThreshold, 1e-9)
	assert.Equal(t, 12, DefaultConfig(MetricSales).MinimumSampleSize)
}

func TestParseMetricType(t *testing.T) {
	assert.Equal(t, MetricSales, ParseMetricType("sales"))
	assert.Equal(t, MetricEfficiency, ParseMetricType("efficiency"))
	assert.Equal(t, MetricOther, ParseMetricType("page-views"))
}

func assertNoNaN(t *testing.T, res Result) {
	t.Helper()
	s := res.Statistics
	for name, v := range map[string]float64{
		"confidence":     res.Confidence,
		"test statistic": s.TestStatistic,
		"p value":        s.PValue,
		"slope":          s.TrendSlope,
		"r2":             s.TrendR2,
		"pct change":     s.PercentChange,
		"consistency":    s.Consistency,
		"volatility":     s.Volatility,
		"latest sigma":   s.LatestChangeSigma,
		"skewness":       s.Skewness,
		"autocorr":       s.Autocorrelation,
		"durbin watson":  s.DurbinWatson,
		"wow":            res.Growth.WeekOverWeek,
		"monthly":        res.Growth.Monthly,
		"avg growth":     res.Growth.Average,
	} {
		assert.False(t, math.IsNaN(v), "%s is NaN", name)
		assert.False(t, math.IsInf(v, 0), "%s is infinite", name)
	}
}
