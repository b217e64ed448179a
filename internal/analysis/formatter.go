package analysis

import (
	"fmt"
	"strings"
)

// CLIFormatter renders analysis runs for terminal display.
type CLIFormatter struct {
	styles *Styles
}

// NewCLIFormatter creates a formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{styles: NewStyles()}
}

// FormatSummary renders the verdict, supporting statistics, reasons, and
// recommendations as a single styled block.
func (f *CLIFormatter) FormatSummary(run Run) string {
	r := run.Result

	var sections []string
	sections = append(sections, f.formatHeader(run))
	sections = append(sections, f.formatVerdict(r))
	sections = append(sections, f.formatStatistics(r))
	sections = append(sections, f.formatList("Why", r.Reasons))
	if len(r.Recommendations) > 0 {
		sections = append(sections, f.formatList("Recommended", r.Recommendations))
	}

	return strings.Join(sections, "\n\n")
}

func (f *CLIFormatter) formatHeader(run Run) string {
	title := f.styles.Title.Render(fmt.Sprintf("📈 %s analysis", run.Result.Metric))
	meta := f.styles.Subtle.Render(fmt.Sprintf(
		"report %s · generated %s · %d complete periods",
		shortID(run.ID),
		run.GeneratedAt.Format("2006-01-02 15:04"),
		run.Result.SampleSize))
	return title + "\n" + meta
}

func (f *CLIFormatter) formatVerdict(r Result) string {
	var verdict string
	if r.IsSignificant {
		verdict = f.styles.Significant.Render(
			fmt.Sprintf("SIGNIFICANT (%s)", r.Type))
	} else {
		verdict = f.styles.Quiet.Render("not significant")
	}
	confidence := f.styles.Subtle.Render(
		fmt.Sprintf("confidence %.0f%%", r.Confidence*100))
	return f.styles.Box.Render(verdict + "  " + confidence)
}

func (f *CLIFormatter) formatStatistics(r Result) string {
	rows := []struct {
		label string
		value string
	}{
		{"trend", fmt.Sprintf("%s (slope %.3f, R² %.2f)", r.Statistics.TrendDirection, r.Statistics.TrendSlope, r.Statistics.TrendR2)},
		{"fitted change", fmt.Sprintf("%+.1f%%", r.Statistics.PercentChange)},
		{"week over week", fmt.Sprintf("%+.1f%%", r.Growth.WeekOverWeek)},
		{"vs 4 periods back", fmt.Sprintf("%+.1f%%", r.Growth.Monthly)},
		{"average growth", fmt.Sprintf("%+.1f%%", r.Growth.Average)},
		{"consistency", fmt.Sprintf("%.0f%% over last window", r.Statistics.Consistency*100)},
		{"volatility (CV)", fmt.Sprintf("%.3f", r.Statistics.Volatility)},
	}
	if r.Statistics.Method != "" {
		rows = append(rows, struct {
			label string
			value string
		}{"test", fmt.Sprintf("%s, p=%.3f", r.Statistics.Method, r.Statistics.PValue)})
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines,
			f.styles.StatLabel.Render(row.label)+f.styles.StatValue.Render(row.value))
	}
	return strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatList(heading string, items []string) string {
	lines := []string{f.styles.Subtitle.Render(heading)}
	for _, item := range items {
		lines = append(lines, "  • "+f.styles.Normal.Render(item))
	}
	return strings.Join(lines, "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
