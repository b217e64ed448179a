package analysis

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lunaroak/tally-ho/internal/cli"
)

// Styles contains the styling definitions for verdict rendering.
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Subtle      lipgloss.Style
	Normal      lipgloss.Style
	Box         lipgloss.Style
	Significant lipgloss.Style
	Quiet       lipgloss.Style
	StatLabel   lipgloss.Style
	StatValue   lipgloss.Style
}

// NewStyles creates a Styles instance with the application defaults.
func NewStyles() *Styles {
	s := &Styles{
		Title:    cli.TitleStyle,
		Subtitle: cli.SubtitleStyle,
		Success:  cli.SuccessStyle,
		Warning:  cli.WarningStyle,
		Error:    cli.ErrorStyle,
		Subtle:   cli.SubtleStyle,
		Normal:   lipgloss.NewStyle(),
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.SubtleColor).
		Padding(0, 1)

	s.Significant = lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.WarningColor)

	s.Quiet = lipgloss.NewStyle().
		Foreground(cli.SuccessColor)

	s.StatLabel = lipgloss.NewStyle().
		Foreground(cli.SubtleColor).
		Width(22)

	s.StatValue = lipgloss.NewStyle().
		Bold(true)

	return s
}
