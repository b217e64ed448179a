package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
)

// FormatMoney renders an amount as £x.xx, keeping the sign ahead of the
// currency symbol.
func FormatMoney(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-£%.2f", -amount)
	}
	return fmt.Sprintf("£%.2f", amount)
}

// NewProgressBar builds the progress bar used for batch cost runs.
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(30),
	)
}
