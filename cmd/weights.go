package cmd

import (
	"github.com/huangsam/picklist/core"
	"github.com/huangsam/picklist/internal/contract"
	"github.com/spf13/cobra"
)

// weightsCmd groups the weight inspection commands.
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Inspect strategy presets and validate weight vectors.",
}

// weightsValidateCmd checks a weight vector without loading team data.
var weightsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a weight vector for common mistakes.",
	Long: `Validate the weights selected by --strategy, --custom-weights or --config-name.

Errors make the weights unusable (all zero, negative values). Warnings are
advisory only: a sum far from 1.0 or a single dominating metric.

Examples:
  picklist weights validate --custom-weights "opr=2,dpr=0.5"
  picklist weights validate --strategy defensive --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteValidateWeights(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot validate weights", err)
		}
	},
}

// weightsPresetsCmd lists the preset strategies.
var weightsPresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Show the active weights of every preset strategy.",
	Long: `Display the weight vector of each preset strategy, including overrides
from the weights section of the config file.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePresets(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display presets", err)
		}
	},
}
