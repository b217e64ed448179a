package analysis

import (
	"fmt"
	"math"
)

// metricNoun is how each metric type reads inside a sentence.
var metricNoun = map[MetricType]string{
	MetricSales:      "sales",
	MetricOrders:     "order volume",
	MetricEfficiency: "efficiency",
	MetricOther:      "the metric",
}

// narrative renders the reasons for the verdict and the metric-specific
// recommendations. Reasons explain which rules fired (or why nothing did);
// recommendations tell the reader what to do about it.
func narrative(cfg Config, r Result, practical, statistical, trend, volatile bool) ([]string, []string) {
	noun := metricNoun[cfg.Metric]
	if noun == "" {
		noun = metricNoun[MetricOther]
	}

	var reasons []string
	if practical {
		reasons = append(reasons, fmt.Sprintf(
			"%s moved %.1f%% against a %.0f%% business threshold",
			noun, r.Statistics.PercentChange, cfg.PercentageThreshold))
	}
	if statistical {
		reasons = append(reasons, fmt.Sprintf(
			"the %s test rejects \"no change\" (p=%.3f at %.0f%% confidence)",
			r.Statistics.Method, r.Statistics.PValue, cfg.ConfidenceLevel*100))
	}
	if trend {
		reasons = append(reasons, fmt.Sprintf(
			"the last %d periods moved the same way %.0f%% of the time",
			cfg.TrendWindowSize, r.Statistics.Consistency*100))
	}
	if volatile {
		reasons = append(reasons, fmt.Sprintf(
			"the latest change sits %.1f standard deviations outside historical movement",
			math.Abs(r.Statistics.LatestChangeSigma)))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, fmt.Sprintf(
			"no rule fired: %s moved %.1f%%, inside normal variation",
			noun, r.Statistics.PercentChange))
	}

	return reasons, recommendations(cfg, r, noun)
}

func recommendations(cfg Config, r Result, noun string) []string {
	if !r.IsSignificant {
		return []string{fmt.Sprintf("no action needed; keep monitoring %s weekly", noun)}
	}

	var recs []string
	dirWord := "shift"
	switch r.Statistics.TrendDirection {
	case TrendUp:
		dirWord = "increase"
	case TrendDown:
		dirWord = "decrease"
	}

	switch cfg.Metric {
	case MetricSales:
		recs = append(recs,
			fmt.Sprintf("investigate campaign and market drivers behind the sales %s", dirWord))
		if r.Statistics.TrendDirection == TrendDown {
			recs = append(recs, "check buy box share and competitor pricing on the top SKUs")
		}
	case MetricOrders:
		recs = append(recs,
			fmt.Sprintf("review fulfilment capacity and stock cover for the order volume %s", dirWord))
	case MetricEfficiency:
		recs = append(recs,
			fmt.Sprintf("review process or workload changes behind the efficiency %s", dirWord))
	default:
		recs = append(recs,
			fmt.Sprintf("review recent operational changes that could explain the %s %s", noun, dirWord))
	}

	if r.Type == TypeVolatility || r.Type == TypeCombined && math.Abs(r.Statistics.LatestChangeSigma) > cfg.VolatilityThreshold {
		recs = append(recs, "verify the latest period's data before acting; outlier changes are sometimes import errors")
	}
	return recs
}
