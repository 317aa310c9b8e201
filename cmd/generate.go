package cmd

import (
	"github.com/huangsam/picklist/core"
	"github.com/huangsam/picklist/internal/contract"
	"github.com/spf13/cobra"
)

// generateCmd ranks the teams of an event with one weight vector.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Rank the teams of an event for alliance selection.",
	Long: `Load per-team statistics for an event and rank every team by composite score.

Each metric is min-max normalized across the event's teams (DPR is inverted,
since lower is better), then combined with the selected weights. Ties are
broken by team number so the same input always yields the same list.

Weights come from, in order of precedence:
- --custom-weights
- --config-name (the first column of a saved configuration)
- --strategy (balanced, offensive, defensive, reliable)

Examples:
  # Balanced pick list for an event
  picklist generate --event 2024casj

  # Defensive partners that played at least 8 matches
  picklist generate --event 2024casj --strategy defensive --min-matches 8

  # Custom weights with the per-metric breakdown
  picklist generate --event 2024casj --custom-weights "opr=0.5,reliability=0.5" --explain

  # Export the top 24 teams to CSV
  picklist generate --event 2024casj --limit 24 --output csv --output-file picks.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGenerate(rootCtx, cfg, storeManager, statsSource()); err != nil {
			contract.LogFatal("Cannot generate pick list", err)
		}
	},
}
