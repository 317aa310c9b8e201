package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/picklist/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreManager(t *testing.T) {
	config := &MockConfigStore{}
	history := &MockHistoryStore{}
	mgr := NewStoreManager(config, history)

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			assert.Same(t, config, mgr.GetConfigStore())
			assert.Same(t, history, mgr.GetHistoryStore())
		})
	}
	wg.Wait()
}

func TestMockStoreManager(t *testing.T) {
	history := &MockHistoryStore{}
	mgr := &MockStoreManager{}
	mgr.On("GetHistoryStore").Return(history)
	mgr.On("GetConfigStore").Return(nil)

	assert.Same(t, history, mgr.GetHistoryStore())
	assert.Nil(t, mgr.GetConfigStore())
	mgr.AssertExpectations(t)
}

func TestClearHistory(t *testing.T) {
	t.Run("sqlite file is removed", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "history.db")
		hs, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		_, err = hs.RecordRun(context.Background(), sampleRun("2024casj", time.Now(), 3), sampleRunTeams())
		require.NoError(t, err)
		require.NoError(t, hs.Close())

		require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))

		// Clearing twice is fine
		assert.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath))
	})

	t.Run("memory and none are no-ops", func(t *testing.T) {
		assert.NoError(t, ClearHistory(schema.SQLiteBackend, ":memory:"))
		assert.NoError(t, ClearHistory(schema.NoneBackend, ""))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		assert.Error(t, ClearConfigurations(schema.DatabaseBackend("oracle"), ""))
	})
}

func TestDropTables(t *testing.T) {
	db, err := openDB(schema.SQLiteBackend, ":memory:", "")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	require.NoError(t, ensureSchema(db, historySchema, schema.SQLiteBackend))

	require.NoError(t, dropTables(db, schema.SQLiteBackend, runTeamsTable, runsTable))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name LIKE 'picklist_%'").Scan(&count))
	assert.Equal(t, 0, count)

	assert.Error(t, dropTables(db, schema.SQLiteBackend, "bad-name"))
}

func TestInitStoresNoneBackend(t *testing.T) {
	require.NoError(t, InitStores(schema.NoneBackend, "", schema.NoneBackend, ""))
	defer CloseStores()

	require.NotNil(t, Manager.GetConfigStore())
	require.NotNil(t, Manager.GetHistoryStore())
	status, err := Manager.GetHistoryStore().GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}
