package cmd

import (
	"github.com/huangsam/picklist/core"
	"github.com/huangsam/picklist/internal/contract"
	"github.com/spf13/cobra"
)

// columnsCmd ranks an event once per column of a multi-column configuration.
var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Rank an event side by side under several strategies or metrics.",
	Long: `Evaluate every column of a pick-list configuration independently.

A column either ranks by composite score under a strategy, or sorts by one
raw metric in ascending or descending order. Teams without the metric sort
last regardless of direction.

Columns come from --columns, else --config-name, else the default saved
configuration of --user for the event.

Examples:
  # Compare three views of the same event
  picklist columns --event 2024casj --columns "balanced,defensive,opr:desc"

  # Use a saved configuration
  picklist columns --event 2024casj --config-name elims`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteColumns(rootCtx, cfg, storeManager, statsSource()); err != nil {
			contract.LogFatal("Cannot evaluate columns", err)
		}
	},
}
