package cmd

import (
	"github.com/huangsam/picklist/core"
	"github.com/huangsam/picklist/internal/contract"
	"github.com/spf13/cobra"
)

// statsCmd prints aggregate statistics of a pick list.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the pool of ranked teams.",
	Long: `Show the team count, averages and composite-score distribution of a pick list.

The statistics are computed from the same ranking as 'generate', so the
ranking flags apply. Runs are not recorded in the history store.

Examples:
  picklist stats --event 2024casj
  picklist stats --event 2024casj --strategy reliable --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(rootCtx, cfg, storeManager, statsSource()); err != nil {
			contract.LogFatal("Cannot compute statistics", err)
		}
	},
}
