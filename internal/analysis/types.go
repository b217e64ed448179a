// Package analysis implements the significance and trend analyzer: given a
// complete-period metric series it decides whether an observed change is
// business-meaningful and explains why in plain language.
package analysis

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies which rule caused a change to be flagged significant.
type Type string

const (
	// TypeStatistical means a hypothesis test rejected "no change".
	TypeStatistical Type = "statistical"
	// TypeTrend means directional consistency crossed its threshold.
	TypeTrend Type = "trend"
	// TypeVolatility means the latest change is an outlier against history.
	TypeVolatility Type = "volatility"
	// TypeCombined means more than one rule fired.
	TypeCombined Type = "combined"
	// TypePractical means a business percentage/absolute threshold was crossed.
	TypePractical Type = "practical"
	// TypeNone means nothing fired, or the sample was too small to test.
	TypeNone Type = "none"
)

// TrendDirection is the slope-derived direction of a series.
type TrendDirection string

const (
	// TrendUp indicates a rising fitted line.
	TrendUp TrendDirection = "up"
	// TrendDown indicates a falling fitted line.
	TrendDown TrendDirection = "down"
	// TrendStable indicates a slope too small relative to the value range
	// to call a direction.
	TrendStable TrendDirection = "stable"
)

// Statistics carries the supporting numbers behind a verdict. Every field
// is finite; degenerate series produce zeros, never NaN.
type Statistics struct {
	Method             string         `json:"method"`
	TrendDirection     TrendDirection `json:"trend_direction"`
	TestStatistic      float64        `json:"test_statistic"`
	PValue             float64        `json:"p_value"`
	TrendSlope         float64        `json:"trend_slope"`
	TrendR2            float64        `json:"trend_r2"`
	PercentChange      float64        `json:"percent_change"`
	Consistency        float64        `json:"consistency"`
	DirectionalChanges int            `json:"directional_changes"`
	Volatility         float64        `json:"volatility"`
	LatestChangeSigma  float64        `json:"latest_change_sigma"`
	Skewness           float64        `json:"skewness"`
	Autocorrelation    float64        `json:"autocorrelation"`
	DurbinWatson       float64        `json:"durbin_watson"`
	Mean               float64        `json:"mean"`
	StdDev             float64        `json:"std_dev"`
}

// Growth is the family of growth-rate figures. The three are deliberately
// distinct metrics: latest vs previous period, latest vs four periods back,
// and the mean of all period-over-period changes.
type Growth struct {
	WeekOverWeek float64 `json:"week_over_week"`
	Monthly      float64 `json:"monthly"`
	Average      float64 `json:"average"`
}

// Result is the analyzer's verdict for one series. It is produced fresh per
// call and never mutated.
type Result struct {
	Type            Type       `json:"significance_type"`
	Metric          MetricType `json:"metric_type"`
	Reasons         []string   `json:"reasons"`
	Recommendations []string   `json:"recommendations"`
	Statistics      Statistics `json:"statistics"`
	Growth          Growth     `json:"growth"`
	Confidence      float64    `json:"confidence"`
	SampleSize      int        `json:"sample_size"`
	IsSignificant   bool       `json:"is_significant"`
}

// Run wraps a Result with the identity and timestamp a stored or rendered
// report carries. Kept separate so Analyze itself stays a pure function.
type Run struct {
	GeneratedAt time.Time `json:"generated_at"`
	ID          string    `json:"id"`
	Result      Result    `json:"result"`
}

// NewRun stamps a result with a fresh report ID and generation time.
func NewRun(result Result) Run {
	return Run{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Result:      result,
	}
}
