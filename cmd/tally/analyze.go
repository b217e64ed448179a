package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lunaroak/tally-ho/internal/analysis"
	"github.com/lunaroak/tally-ho/internal/common"
	"github.com/lunaroak/tally-ho/internal/config"
	"github.com/lunaroak/tally-ho/internal/series"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run significance analysis over a recorded metric",
		Long: `Analyze a recorded metric series for statistically and practically
significant movement.

The analyzer only considers complete periods: the current week (or day) is
excluded, and at least 12 complete periods must exist before any verdict is
attempted. The verdict combines a hypothesis test, trend consistency, and a
volatility check, and is explained in business language.

Examples:
  tally analyze --metric sales
  tally analyze --metric orders --period day
  tally analyze --metric efficiency --output json`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("metric", "m", "sales", "Metric to analyze (sales, orders, efficiency, or a custom name)")
	cmd.Flags().StringP("period", "p", "week", "Series granularity (week, day)")
	cmd.Flags().StringP("output", "o", "summary", "Output format (summary, json)")

	_ = viper.BindPFlag("analyze.metric", cmd.Flags().Lookup("metric"))
	_ = viper.BindPFlag("analyze.period", cmd.Flags().Lookup("period"))
	_ = viper.BindPFlag("analyze.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	metricName := strings.ToLower(viper.GetString("analyze.metric"))
	period, err := parsePeriod(viper.GetString("analyze.period"))
	if err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close storage", "error", closeErr)
		}
	}()

	points, err := store.GetObservations(ctx, metricName)
	if err != nil {
		return fmt.Errorf("failed to load observations for %s: %w", metricName, err)
	}
	if len(points) == 0 {
		return common.NewUserError(
			fmt.Sprintf("no observations recorded for metric %q; record some with 'tally catalog record'", metricName),
			common.ErrNoObservations,
		)
	}

	s := series.Build(points, time.Now(), period)
	slog.Debug("Built metric series", "metric", metricName, "recorded", len(points), "complete", s.Len())

	cfg := config.AnalysisConfig(viper.GetViper(), analysis.ParseMetricType(metricName))
	run := analysis.NewRun(analysis.Analyze(s, cfg))

	switch strings.ToLower(viper.GetString("analyze.output")) {
	case "json":
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode analysis report: %w", err)
		}
		cmd.Println(string(data))
	default:
		cmd.Println(analysis.NewCLIFormatter().FormatSummary(run))
	}
	return nil
}

func parsePeriod(raw string) (series.Period, error) {
	switch strings.ToLower(raw) {
	case "week", "":
		return series.PeriodWeek, nil
	case "day":
		return series.PeriodDay, nil
	default:
		return "", common.NewUserError(fmt.Sprintf("unknown period %q (expected week or day)", raw), common.ErrInvalidConfig)
	}
}
