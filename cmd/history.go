package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/internal/store"
	"github.com/huangsam/picklist/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := backendSetup("history")
	if err != nil {
		return err
	}

	// No configuration store for history commands
	if err := store.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historyBackendSetup loads the history backend without opening the store.
// It does NOT initialize stores or create tables, so migrations can run on a
// fresh database.
func historyBackendSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := backendSetup("history")
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyMigrateSetup is historyBackendSetup plus the target-version flag of the command.
func historyMigrateSetup(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlag("target-version", cmd.Flags().Lookup("target-version")); err != nil {
		return err
	}
	return historyBackendSetup(cmd, args)
}

// historyCmd manages recorded pick-list runs.
//
// History subcommands use minimal initialization (historySetup) instead of
// sharedSetup, so they need no event or ranking flags.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded pick-list runs and exports",
	Long: `Manage the history of generated pick lists.

When --history-backend is set, every 'generate' and 'columns' run stores:
- Run metadata (event, strategy, weights, warnings, timestamp)
- Every ranked team with its score, metrics, strengths and weaknesses

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show history statistics
  export  - Export runs to Parquet for analytics
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Record runs in a local SQLite file
  picklist generate --event 2024casj --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  picklist history export --history-backend sqlite --output-file picks`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history statistics and connection details",
	Args:    cobra.NoArgs,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		store.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded runs to Parquet for BI tools and analytics",
	Long: `Export all recorded runs to Parquet format.

Writes two files next to --output-file:
- <output-file>.runs.parquet      - one row per generated pick list
- <output-file>.run_teams.parquet - one row per ranked team

Examples:
  picklist history export --output-file picks
  duckdb -c "SELECT * FROM read_parquet('picks.run_teams.parquet') LIMIT 10"`,
	Args:    cobra.NoArgs,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ExecuteHistoryExport(os.Stdout, storeManager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded pick-list runs",
	Long: `Delete all recorded runs and ranked teams.

WARNING: This action cannot be undone. Consider exporting data first.`,
	Args:    cobra.NoArgs,
	PreRunE: historyBackendSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ClearHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run history schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  picklist history migrate --history-backend sqlite

  # Rollback to initial state
  picklist history migrate --history-backend sqlite --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
