package core

import (
	"bytes"
	"context"
	"testing"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/internal/store"
	"github.com/huangsam/picklist/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConfigManager returns a manager backed by an in-memory configuration store.
func newConfigManager(t *testing.T) (*store.StoreManager, contract.ConfigStore) {
	t.Helper()
	cs, err := store.NewConfigStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return store.NewStoreManager(cs, nil), cs
}

func TestConfigLifecycle(t *testing.T) {
	ctx := context.Background()
	mgr, cs := newConfigManager(t)
	var out bytes.Buffer

	cfg := testConfig()
	cfg.ConfigName = "Quals"
	cfg.Strategy = schema.OffensiveStrategy
	require.NoError(t, ExecuteConfigSave(ctx, cfg, mgr, &out, false))
	assert.Contains(t, out.String(), "Saved configuration 'Quals' with 1 column(s)")

	saved, err := cs.GetByName(ctx, "scout-lead", "2024casj", "Quals")
	require.NoError(t, err)
	require.Len(t, saved.Payload.Columns, 1)
	assert.Equal(t, schema.OffensiveStrategy, saved.Payload.Columns[0].Strategy)
	assert.False(t, saved.IsDefault)

	// Saving again under the same name replaces the columns
	cfg.Columns = []schema.Column{{ID: "a", Strategy: schema.BalancedStrategy}, {ID: "b", Strategy: schema.ReliableStrategy}}
	require.NoError(t, ExecuteConfigSave(ctx, cfg, mgr, &out, true))
	updated, err := cs.GetByName(ctx, "scout-lead", "2024casj", "Quals")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Len(t, updated.Payload.Columns, 2)
	assert.True(t, updated.IsDefault)

	cfg.Columns = nil
	cfg.ConfigName = "Elims"
	cfg.CustomWeights = &schema.PickListWeights{OPR: 0.7, Reliability: 0.3}
	require.NoError(t, ExecuteConfigSave(ctx, cfg, mgr, &out, false))

	out.Reset()
	require.NoError(t, ExecuteConfigList(ctx, cfg, mgr, &out))
	assert.Contains(t, out.String(), "* Quals")
	assert.Contains(t, out.String(), "  Elims")

	out.Reset()
	require.NoError(t, ExecuteConfigDefault(ctx, cfg, mgr, &out))
	assert.Contains(t, out.String(), "'Elims' is now the default configuration for 2024casj")
	def, err := cs.GetDefault(ctx, "scout-lead", "2024casj")
	require.NoError(t, err)
	assert.Equal(t, "Elims", def.Name)

	// The default configuration drives the columns command
	colCfg := testConfig()
	results, err := GetColumnResults(ctx, colCfg, mgr, sampleSource())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, schema.PickListWeights{OPR: 0.7, Reliability: 0.3}, *results[0].Column.Weights)

	out.Reset()
	require.NoError(t, ExecuteConfigDelete(ctx, cfg, mgr, &out))
	assert.Contains(t, out.String(), "Deleted configuration 'Elims'")
	_, err = cs.GetByName(ctx, "scout-lead", "2024casj", "Elims")
	assert.ErrorIs(t, err, contract.ErrConfigNotFound)
}

func TestConfigCommandErrors(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newConfigManager(t)
	var out bytes.Buffer

	t.Run("missing event", func(t *testing.T) {
		cfg := testConfig()
		cfg.EventKey = ""
		assert.ErrorIs(t, ExecuteConfigList(ctx, cfg, mgr, &out), errEventRequired)
	})

	t.Run("missing name", func(t *testing.T) {
		err := ExecuteConfigSave(ctx, testConfig(), mgr, &out, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--config-name is required")
	})

	t.Run("no store", func(t *testing.T) {
		cfg := testConfig()
		cfg.ConfigName = "Quals"
		assert.ErrorIs(t, ExecuteConfigSave(ctx, cfg, store.NewStoreManager(nil, nil), &out, false), contract.ErrConfigStoreUnavailable)
	})

	t.Run("unknown strategy in a column", func(t *testing.T) {
		cfg := testConfig()
		cfg.ConfigName = "Quals"
		cfg.Columns = []schema.Column{{ID: "x", Strategy: "turbo"}}
		assert.ErrorIs(t, ExecuteConfigSave(ctx, cfg, mgr, &out, false), contract.ErrUnknownStrategy)
	})

	t.Run("delete unknown", func(t *testing.T) {
		cfg := testConfig()
		cfg.ConfigName = "Nope"
		assert.ErrorIs(t, ExecuteConfigDelete(ctx, cfg, mgr, &out), contract.ErrConfigNotFound)
	})

	t.Run("empty list", func(t *testing.T) {
		out.Reset()
		cfg := testConfig()
		cfg.EventKey = "2024empty"
		require.NoError(t, ExecuteConfigList(ctx, cfg, mgr, &out))
		assert.Equal(t, "No saved configurations.\n", out.String())
	})
}
