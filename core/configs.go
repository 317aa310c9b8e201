package core

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/internal/outwriter"
	"github.com/huangsam/picklist/internal/store"
	"github.com/huangsam/picklist/schema"
)

// requireConfigScope returns the configuration store after checking the
// flags every configuration command needs.
func requireConfigScope(cfg *contract.Config, mgr contract.StoreManager, needName bool) (contract.ConfigStore, error) {
	if cfg.EventKey == "" {
		return nil, errEventRequired
	}
	if needName && cfg.ConfigName == "" {
		return nil, errors.New("--config-name is required")
	}
	cs := configStore(mgr)
	if cs == nil {
		return nil, contract.ErrConfigStoreUnavailable
	}
	return cs, nil
}

// selectionColumn turns the active weight selection into a single column.
func selectionColumn(cfg *contract.Config) schema.Column {
	sel := cfg.Selection()
	col := schema.Column{
		ID:            "col-1",
		Title:         string(sel.Strategy),
		SortMetric:    schema.CompositeSortKey,
		SortDirection: schema.SortDesc,
		Strategy:      sel.Strategy,
	}
	if sel.Weights != nil {
		w := *sel.Weights
		col.Weights = &w
	}
	return col
}

// ExecuteConfigSave creates the named configuration, or replaces the columns
// of an existing one with the same name. Columns come from --columns, else
// from the active strategy or custom weights.
func ExecuteConfigSave(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, w io.Writer, makeDefault bool) error {
	cs, err := requireConfigScope(cfg, mgr, true)
	if err != nil {
		return err
	}
	columns := cfg.Columns
	if len(columns) == 0 {
		columns = []schema.Column{selectionColumn(cfg)}
	}
	for _, col := range columns {
		if _, _, err := ResolveWeights(col.Selection()); err != nil {
			return err
		}
	}

	payload := schema.ConfigurationPayload{Columns: columns}
	existing, err := cs.GetByName(ctx, cfg.UserID, cfg.EventKey, cfg.ConfigName)
	var saved schema.PickListConfiguration
	switch {
	case err == nil:
		existing.Payload = payload
		existing.IsDefault = existing.IsDefault || makeDefault
		saved, err = cs.Update(ctx, existing)
	case errors.Is(err, contract.ErrConfigNotFound):
		saved, err = cs.Create(ctx, schema.PickListConfiguration{
			UserID:    cfg.UserID,
			EventKey:  cfg.EventKey,
			Name:      cfg.ConfigName,
			Payload:   payload,
			IsDefault: makeDefault,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	_, _ = fmt.Fprintf(w, "✅ Saved configuration '%s' with %d column(s) (%s)\n", saved.Name, len(saved.Payload.Columns), saved.ID)
	return nil
}

// ExecuteConfigList prints the saved configurations of the user and event.
func ExecuteConfigList(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, w io.Writer) error {
	cs, err := requireConfigScope(cfg, mgr, false)
	if err != nil {
		return err
	}
	configs, err := cs.List(ctx, cfg.UserID, cfg.EventKey)
	if err != nil {
		return err
	}
	store.PrintConfigurations(w, configs)
	return nil
}

// ExecuteConfigShow prints one saved configuration.
func ExecuteConfigShow(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	cs, err := requireConfigScope(cfg, mgr, true)
	if err != nil {
		return err
	}
	saved, err := cs.GetByName(ctx, cfg.UserID, cfg.EventKey, cfg.ConfigName)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteConfiguration(saved, cfg)
}

// ExecuteConfigDelete removes the named configuration.
func ExecuteConfigDelete(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, w io.Writer) error {
	cs, err := requireConfigScope(cfg, mgr, true)
	if err != nil {
		return err
	}
	saved, err := cs.GetByName(ctx, cfg.UserID, cfg.EventKey, cfg.ConfigName)
	if err != nil {
		return err
	}
	if err := cs.Delete(ctx, saved.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "🗑️  Deleted configuration '%s'\n", saved.Name)
	return nil
}

// ExecuteConfigDefault makes the named configuration the default of its scope.
func ExecuteConfigDefault(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, w io.Writer) error {
	cs, err := requireConfigScope(cfg, mgr, true)
	if err != nil {
		return err
	}
	saved, err := cs.GetByName(ctx, cfg.UserID, cfg.EventKey, cfg.ConfigName)
	if err != nil {
		return err
	}
	if err := cs.SetDefault(ctx, saved.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "⭐ '%s' is now the default configuration for %s\n", saved.Name, cfg.EventKey)
	return nil
}
