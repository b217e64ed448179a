package analysis

// MetricType tags the business metric a series represents and selects the
// preset thresholds and narrative templates for it.
type MetricType string

const (
	// MetricSales covers revenue series.
	MetricSales MetricType = "sales"
	// MetricOrders covers order-count series.
	MetricOrders MetricType = "orders"
	// MetricEfficiency covers productivity ratios such as shipments per
	// labour hour.
	MetricEfficiency MetricType = "efficiency"
	// MetricOther covers any series without a dedicated preset.
	MetricOther MetricType = "other"
)

// DefaultMinimumSampleSize is the fewest complete periods the analyzer will
// test. Running inference below this produced false positives in the past,
// so the gate is a hard precondition, not a warning.
const DefaultMinimumSampleSize = 12

// Config tunes a single analysis call. Zero fields take the defaults for
// the configured metric type.
type Config struct {
	Metric              MetricType `mapstructure:"metric"`
	PercentageThreshold float64    `mapstructure:"percentage_threshold"`
	AbsoluteThreshold   float64    `mapstructure:"absolute_threshold"`
	ConfidenceLevel     float64    `mapstructure:"confidence_level"`
	VolatilityThreshold float64    `mapstructure:"volatility_threshold"`
	MinimumSampleSize   int        `mapstructure:"minimum_sample_size"`
	TrendWindowSize     int        `mapstructure:"trend_window_size"`
}

// DefaultConfig returns the preset configuration for a metric type. Sales
// flag at 10% movement, orders at 15%, efficiency at 8%.
func DefaultConfig(metric MetricType) Config {
	cfg := Config{
		Metric:              metric,
		PercentageThreshold: 10,
		ConfidenceLevel:     0.95,
		VolatilityThreshold: 2,
		MinimumSampleSize:   DefaultMinimumSampleSize,
		TrendWindowSize:     3,
	}
	switch metric {
	case MetricOrders:
		cfg.PercentageThreshold = 15
	case MetricEfficiency:
		cfg.PercentageThreshold = 8
	}
	return cfg
}

// withDefaults fills any zero field from the metric's preset.
func (c Config) withDefaults() Config {
	if c.Metric == "" {
		c.Metric = MetricOther
	}
	preset := DefaultConfig(c.Metric)
	if c.PercentageThreshold <= 0 {
		c.PercentageThreshold = preset.PercentageThreshold
	}
	if c.ConfidenceLevel <= 0 || c.ConfidenceLevel >= 1 {
		c.ConfidenceLevel = preset.ConfidenceLevel
	}
	if c.VolatilityThreshold <= 0 {
		c.VolatilityThreshold = preset.VolatilityThreshold
	}
	if c.MinimumSampleSize <= 0 {
		c.MinimumSampleSize = preset.MinimumSampleSize
	}
	if c.TrendWindowSize <= 0 {
		c.TrendWindowSize = preset.TrendWindowSize
	}
	return c
}

// ParseMetricType maps a user-facing string to a MetricType, defaulting to
// MetricOther for anything unrecognised.
func ParseMetricType(s string) MetricType {
	switch MetricType(s) {
	case MetricSales, MetricOrders, MetricEfficiency:
		return MetricType(s)
	default:
		return MetricOther
	}
}
