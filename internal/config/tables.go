package config

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/lunaroak/tally-ho/internal/analysis"
	"github.com/lunaroak/tally-ho/internal/costs"
)

// The shipping tier and fee band breakpoints are business data, not
// algorithm: they live in the config file and the compiled-in defaults only
// keep a fresh install working. Loaders never fail; a broken section logs a
// warning and falls back to the defaults.

// FeeSchedule loads the marketplace fee bands from the costs.fees section.
func FeeSchedule(v *viper.Viper) costs.FeeSchedule {
	if !v.IsSet("costs.fees") {
		return costs.DefaultFeeSchedule()
	}

	var schedule costs.FeeSchedule
	if err := v.UnmarshalKey("costs.fees", &schedule); err != nil {
		slog.Warn("Invalid fee schedule in config, using defaults", "error", err)
		return costs.DefaultFeeSchedule()
	}
	if len(schedule.Bands) == 0 {
		return costs.DefaultFeeSchedule()
	}
	return schedule
}

// ShippingTiers loads the per-group shipping tier tables from the
// costs.shipping section.
func ShippingTiers(v *viper.Viper) costs.ShippingTierTable {
	if !v.IsSet("costs.shipping") {
		return costs.DefaultShippingTiers()
	}

	var tiers costs.ShippingTierTable
	if err := v.UnmarshalKey("costs.shipping", &tiers); err != nil {
		slog.Warn("Invalid shipping tiers in config, using defaults", "error", err)
		return costs.DefaultShippingTiers()
	}
	if len(tiers) == 0 {
		return costs.DefaultShippingTiers()
	}
	return tiers
}

// VATRate loads the sales VAT rate, defaulting to the standard rate.
func VATRate(v *viper.Viper) float64 {
	if !v.IsSet("costs.vat_rate") {
		return costs.StandardVATRate
	}
	return v.GetFloat64("costs.vat_rate")
}

// AnalysisConfig loads the significance thresholds for a metric, starting
// from the metric's preset and overlaying any analysis.<metric> section.
func AnalysisConfig(v *viper.Viper, metric analysis.MetricType) analysis.Config {
	cfg := analysis.DefaultConfig(metric)

	key := fmt.Sprintf("analysis.%s", metric)
	if !v.IsSet(key) {
		return cfg
	}
	if err := v.UnmarshalKey(key, &cfg); err != nil {
		slog.Warn("Invalid analysis config, using preset",
			"metric", metric, "error", err)
		return analysis.DefaultConfig(metric)
	}
	cfg.Metric = metric
	return cfg
}
