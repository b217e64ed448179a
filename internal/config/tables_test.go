package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunaroak/tally-ho/internal/analysis"
	"github.com/lunaroak/tally-ho/internal/costs"
)

func viperFromYAML(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	return v
}

func TestFeeSchedule_Defaults(t *testing.T) {
	v := viper.New()
	assert.Equal(t, costs.DefaultFeeSchedule(), FeeSchedule(v))
}

func TestFeeSchedule_FromConfig(t *testing.T) {
	v := viperFromYAML(t, `
costs:
  fees:
    bands:
      - max_price: 20
        rate: 0.10
        prime_rate: 0.12
      - max_price: 0
        rate: 0.08
        prime_rate: 0.10
`)

	schedule := FeeSchedule(v)
	require.Len(t, schedule.Bands, 2)
	assert.InDelta(t, 0.10, schedule.Rate(15, false), 1e-9)
	assert.InDelta(t, 0.10, schedule.Rate(50, true), 1e-9)
}

func TestShippingTiers_FromConfig(t *testing.T) {
	v := viperFromYAML(t, `
costs:
  shipping:
    standard:
      - name: small
        max_weight: 1
        max_longest_side: 30
        cost: 1.99
      - name: anything
        cost: 4.99
`)

	tiers := ShippingTiers(v)
	require.Contains(t, tiers, "standard")
	assert.Len(t, tiers["standard"], 2)
}

func TestVATRate(t *testing.T) {
	assert.InDelta(t, costs.StandardVATRate, VATRate(viper.New()), 1e-9)

	v := viperFromYAML(t, "costs:\n  vat_rate: 0.05\n")
	assert.InDelta(t, 0.05, VATRate(v), 1e-9)
}

func TestAnalysisConfig_PresetAndOverlay(t *testing.T) {
	v := viper.New()
	cfg := AnalysisConfig(v, analysis.MetricOrders)
	assert.InDelta(t, 15, cfg.PercentageThreshold, 1e-9)

	v = viperFromYAML(t, `
analysis:
  orders:
    percentage_threshold: 25
    trend_window_size: 4
`)
	cfg = AnalysisConfig(v, analysis.MetricOrders)
	assert.InDelta(t, 25, cfg.PercentageThreshold, 1e-9)
	assert.Equal(t, 4, cfg.TrendWindowSize)
	assert.Equal(t, analysis.MetricOrders, cfg.Metric)
	// Untouched fields keep their preset values.
	assert.Equal(t, 12, cfg.MinimumSampleSize)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("TALLY_TEST_DIR", "/tmp/tally")
	assert.Equal(t, "/tmp/tally/data", ExpandPath("$TALLY_TEST_DIR/data"))
	assert.Equal(t, "", ExpandPath(""))
	assert.NotContains(t, ExpandPath("~/x"), "~")
}
