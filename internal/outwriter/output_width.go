package outwriter

import (
	"os"

	"github.com/huangsam/picklist/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for team names in table output
// based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Team + Score + Tier + OPR/DPR/CCWM + Matches + Picked, with borders
	baseWidth := 75
	if cfg.Explain {
		baseWidth += 60 // Strengths and Weaknesses columns
	}

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
