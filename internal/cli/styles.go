// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#5FB49C")
	// SuccessColor indicates healthy figures and successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates flagged changes and caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or losses.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// ProfitStyle formats positive profit figures.
	ProfitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SuccessColor)

	// LossStyle formats negative profit figures.
	LossStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ErrorColor)
)

// Money renders a sterling amount with profit/loss colouring.
func Money(amount float64) string {
	if amount < 0 {
		return LossStyle.Render(FormatMoney(amount))
	}
	return ProfitStyle.Render(FormatMoney(amount))
}
