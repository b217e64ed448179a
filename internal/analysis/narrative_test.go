package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunaroak/tally-ho/internal/series"
)

func TestNarrative_InsufficientData(t *testing.T) {
	res := Analyze(series.FromValues([]float64{5, 9, 4}), DefaultConfig(MetricSales))

	require.Len(t, res.Reasons, 1)
	assert.Contains(t, res.Reasons[0], "3 complete periods")
	assert.Contains(t, res.Reasons[0], "12 required")
}

func TestNarrative_MetricSpecificRecommendations(t *testing.T) {
	// A clear jump fires practical significance for every metric type.
	values := []float64{100, 100, 101, 100, 101, 100, 110, 120, 130, 140, 150, 160}

	tests := []struct {
		metric MetricType
		want   string
	}{
		{metric: MetricSales, want: "campaign"},
		{metric: MetricOrders, want: "fulfilment"},
		{metric: MetricEfficiency, want: "process"},
		{metric: MetricOther, want: "operational"},
	}

	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			res := analyzeValues(values, tt.metric)
			require.True(t, res.IsSignificant)

			joined := strings.Join(res.Recommendations, " ")
			assert.Contains(t, joined, tt.want)
		})
	}
}

func TestNarrative_QuietSeriesRecommendsMonitoring(t *testing.T) {
	noisy := []float64{100, 104, 97, 102, 99, 103, 98, 101, 104, 96, 103, 100}
	res := analyzeValues(noisy, MetricSales)

	require.False(t, res.IsSignificant)
	require.NotEmpty(t, res.Recommendations)
	assert.Contains(t, res.Recommendations[0], "monitoring")
	require.NotEmpty(t, res.Reasons)
	assert.Contains(t, res.Reasons[0], "no rule fired")
}

func TestNarrative_DownTrendMentionsBuyBox(t *testing.T) {
	falling := []float64{160, 150, 140, 130, 120, 110, 100, 90, 80, 70, 60, 50}
	res := analyzeValues(falling, MetricSales)

	require.True(t, res.IsSignificant)
	joined := strings.Join(res.Recommendations, " ")
	assert.Contains(t, joined, "buy box")
}

func TestFormatter_Summary(t *testing.T) {
	values := []float64{100, 102, 99, 101, 103, 98, 104, 106, 103, 108, 110, 107}
	run := NewRun(analyzeValues(values, MetricSales))

	out := NewCLIFormatter().FormatSummary(run)
	assert.Contains(t, out, "sales analysis")
	assert.Contains(t, out, "week over week")
	assert.Contains(t, out, "Why")
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.GeneratedAt.IsZero())
}
