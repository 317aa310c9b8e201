package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/picklist/core"
	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads the minimal configuration of the configuration store,
// for commands that manage the store itself.
func storeSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := backendSetup("store")
	if err != nil {
		return err
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	return nil
}

// storeMigrateSetup is storeSetup plus the target-version flag of the command.
func storeMigrateSetup(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlag("target-version", cmd.Flags().Lookup("target-version")); err != nil {
		return err
	}
	return storeSetup(cmd, args)
}

// configCmd manages saved pick-list configurations.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage saved pick-list configurations",
	Long: `Save, list and select named pick-list configurations.

A configuration belongs to a user and an event, and holds one or more
columns. Names are unique per user and event, and at most one configuration
per user and event is the default.

Subcommands:
  save    - Save the current --columns or weights under --config-name
  list    - List the configurations of --user for --event
  show    - Show one configuration
  delete  - Delete one configuration
  default - Make one configuration the default
  clear   - Remove all saved configurations
  migrate - Run database schema migrations

Examples:
  # Save a three-column board and make it the default
  picklist config save --event 2024casj --config-name elims --columns "balanced,defensive,opr:desc" --default

  # Rank with the default configuration
  picklist columns --event 2024casj`,
}

// configSaveCmd saves a configuration.
var configSaveCmd = &cobra.Command{
	Use:     "save",
	Short:   "Save the current columns or weights as a named configuration",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteConfigSave(rootCtx, cfg, storeManager, os.Stdout, viper.GetBool("default")); err != nil {
			contract.LogFatal("Cannot save configuration", err)
		}
	},
}

// configListCmd lists configurations.
var configListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List saved configurations for an event",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteConfigList(rootCtx, cfg, storeManager, os.Stdout); err != nil {
			contract.LogFatal("Cannot list configurations", err)
		}
	},
}

// configShowCmd shows one configuration.
var configShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Show the columns of a saved configuration",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteConfigShow(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot show configuration", err)
		}
	},
}

// configDeleteCmd deletes one configuration.
var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Delete a saved configuration",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteConfigDelete(rootCtx, cfg, storeManager, os.Stdout); err != nil {
			contract.LogFatal("Cannot delete configuration", err)
		}
	},
}

// configDefaultCmd selects the default configuration.
var configDefaultCmd = &cobra.Command{
	Use:     "default",
	Short:   "Make a saved configuration the default for its event",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteConfigDefault(rootCtx, cfg, storeManager, os.Stdout); err != nil {
			contract.LogFatal("Cannot set default configuration", err)
		}
	},
}

// configClearCmd removes every saved configuration.
var configClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all saved configurations",
	Long: `Delete every saved configuration of every user and event.

For SQLite this removes the database file. For MySQL and PostgreSQL it
drops the configuration table.

WARNING: This action cannot be undone.`,
	Args:    cobra.NoArgs,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ClearConfigurations(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear configurations", err)
		}
		fmt.Println("Configurations cleared successfully.")
	},
}

// configMigrateCmd runs database migrations for the configuration store.
var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run configuration store schema migrations",
	Long: `Manage database schema versions for the configuration store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  picklist config migrate
  picklist config migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: storeMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.MigrateConfigurations(os.Stdout, cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
