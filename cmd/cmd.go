// Package cmd defines the command-line interface for picklist.
package cmd

import (
	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	weightsCmd.AddCommand(weightsValidateCmd)
	weightsCmd.AddCommand(weightsPresetsCmd)

	configCmd.AddCommand(configSaveCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configDeleteCmd)
	configCmd.AddCommand(configDefaultCmd)
	configCmd.AddCommand(configClearCmd)
	configCmd.AddCommand(configMigrateCmd)

	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("event", "e", "", "Event key such as 2024casj")
	rootCmd.PersistentFlags().StringP("data", "d", "data", "Team statistics file, or a directory of <event>.json / <event>.csv files")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of teams to display (0 = all)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("user", contract.DefaultUserID, "User that owns saved configurations")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Configuration store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for the configuration store (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", "", "Ranking history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for ranking history (must differ from store-db-connect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")

	// Ranking flags are shared by every command that scores teams
	rootCmd.PersistentFlags().StringP("strategy", "s", string(schema.BalancedStrategy), "Preset strategy: balanced or offensive or defensive or reliable")
	rootCmd.PersistentFlags().String("custom-weights", "", "Custom weights such as 'opr=0.4,ccwm=0.3,reliability=0.3' (overrides --strategy)")
	rootCmd.PersistentFlags().Int("min-matches", 0, "Exclude teams that played fewer matches")
	rootCmd.PersistentFlags().Bool("include-notes", false, "Include scouting notes in the output")
	rootCmd.PersistentFlags().Float64("strength-threshold", schema.DefaultStrengthThreshold, "Normalized value at or above which a metric is a strength")
	rootCmd.PersistentFlags().Float64("weakness-threshold", schema.DefaultWeaknessThreshold, "Normalized value at or below which a metric is a weakness")
	rootCmd.PersistentFlags().String("config-name", "", "Name of a saved pick-list configuration")
	rootCmd.PersistentFlags().String("columns", "", "Columns such as 'balanced,defensive,opr:desc' (overrides saved configurations)")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of generateCmd to Viper
	generateCmd.Flags().Bool("explain", false, "Print the per-metric contribution to each composite score")
	if err := viper.BindPFlags(generateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding generate flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Address the HTTP server listens on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of configSaveCmd to Viper
	configSaveCmd.Flags().Bool("default", false, "Make the saved configuration the default for the event")
	if err := viper.BindPFlags(configSaveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding config save flags", err)
	}

	// Both migrate commands bind target-version in their own PreRunE
	configMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
}
