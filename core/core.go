// Package core has the pick-list ranking engine and the logic behind each command.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/internal/outwriter"
	"github.com/huangsam/picklist/schema"
)

// ExecutorFunc defines the function signature for executing commands that rank an event.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.StatsSource) error

// errEventRequired is returned when a command that ranks teams has no event key.
var errEventRequired = errors.New("--event is required")

// GetPickListResults generates the pick list described by cfg and records it
// in the history store when one is configured.
func GetPickListResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.StatsSource) (*schema.PickList, error) {
	if cfg.EventKey == "" {
		return nil, errEventRequired
	}
	sel, err := resolveSelection(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}
	list, err := Generate(ctx, src, cfg.EventKey, sel, cfg.GenerateOptions())
	if err != nil {
		return nil, err
	}
	if !shouldSuppressHistory(ctx) {
		recordRun(ctx, mgr, list, cfg.MinMatches)
	}
	return list, nil
}

// ExecuteGenerate generates a pick list and prints it.
// It serves as the main entry point for the 'generate' command.
func ExecuteGenerate(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.StatsSource) error {
	start := time.Now()
	list, err := GetPickListResults(ctx, cfg, mgr, src)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WritePickList(list, cfg, duration)
}

// ExecuteStats generates a pick list and prints only its aggregate statistics.
func ExecuteStats(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.StatsSource) error {
	list, err := GetPickListResults(WithSuppressHistory(ctx), cfg, mgr, src)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteStatistics(list, cfg)
}

// GetColumnResults ranks the event once per column. Columns come from
// --columns, else from the named configuration, else from the default
// configuration of the user and event.
func GetColumnResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.StatsSource) ([]schema.ColumnResult, error) {
	if cfg.EventKey == "" {
		return nil, errEventRequired
	}
	columns, err := resolveColumns(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}

	stats, err := src.LoadEvent(ctx, cfg.EventKey)
	if err != nil {
		return nil, fmt.Errorf("load event %s: %w", cfg.EventKey, err)
	}
	if len(stats.Teams) == 0 {
		return nil, fmt.Errorf("event %s: %w", cfg.EventKey, contract.ErrNoTeamStatistics)
	}
	return EvaluateColumns(ctx, stats.Teams, columns, cfg.GenerateOptions(), cfg.Workers)
}

// ExecuteColumns ranks and prints every column of a configuration.
// It serves as the main entry point for the 'columns' command.
func ExecuteColumns(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, src contract.StatsSource) error {
	start := time.Now()
	results, err := GetColumnResults(ctx, cfg, mgr, src)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteColumns(results, cfg, duration)
}

// ExecuteValidateWeights checks the selected weight vector and prints the advisory result.
// This is a static check that does not load team data.
func ExecuteValidateWeights(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	sel, err := resolveSelection(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	_, weights, err := ResolveWeights(sel)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteWeightValidation(weights, ValidateWeights(weights), cfg)
}

// ExecutePresets displays every preset strategy with the active weights and formula.
func ExecutePresets(_ context.Context, cfg *contract.Config) error {
	return outwriter.NewOutWriter().WritePresets(cfg)
}

// resolveSelection returns the weights a single pick list is ranked with.
// A named configuration ranks with its first column.
func resolveSelection(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.WeightSelection, error) {
	if cfg.ConfigName == "" {
		return cfg.Selection(), nil
	}
	saved, err := loadConfiguration(ctx, cfg, mgr)
	if err != nil {
		return schema.WeightSelection{}, err
	}
	return saved.Payload.Columns[0].Selection(), nil
}

// resolveColumns returns the columns of the 'columns' command.
func resolveColumns(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.Column, error) {
	if len(cfg.Columns) > 0 {
		return cfg.Columns, nil
	}
	saved, err := loadConfiguration(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}
	return saved.Payload.Columns, nil
}

// loadConfiguration looks up the named configuration, or the default one
// when no name is set. A configuration without columns is an error.
func loadConfiguration(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.PickListConfiguration, error) {
	store := configStore(mgr)
	if store == nil {
		return schema.PickListConfiguration{}, contract.ErrConfigStoreUnavailable
	}

	var saved schema.PickListConfiguration
	var err error
	if cfg.ConfigName != "" {
		saved, err = store.GetByName(ctx, cfg.UserID, cfg.EventKey, cfg.ConfigName)
	} else {
		saved, err = store.GetDefault(ctx, cfg.UserID, cfg.EventKey)
	}
	if err != nil {
		if cfg.ConfigName == "" && errors.Is(err, contract.ErrConfigNotFound) {
			return saved, fmt.Errorf("no --columns given and no default configuration for event %s: %w", cfg.EventKey, err)
		}
		return saved, err
	}
	if len(saved.Payload.Columns) == 0 {
		return saved, fmt.Errorf("configuration '%s' has no columns", saved.Name)
	}
	return saved, nil
}
