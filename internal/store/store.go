// Package store persists saved pick-list configurations and ranking history.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/schema"
)

// StoreManager manages the configuration and history stores.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	config       contract.ConfigStore
	history      contract.HistoryStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetConfigStore returns the configuration store.
func (mgr *StoreManager) GetConfigStore() contract.ConfigStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.config
}

// GetHistoryStore returns the history store.
func (mgr *StoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}

// NewStoreManager builds a manager around existing stores.
func NewStoreManager(config contract.ConfigStore, history contract.HistoryStore) *StoreManager {
	return &StoreManager{config: config, history: history}
}

// InitStores initializes the global manager. An empty backend leaves the
// corresponding store unset.
func InitStores(configBackend schema.DatabaseBackend, configConnStr string, historyBackend schema.DatabaseBackend, historyConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		var err error

		var configStore contract.ConfigStore
		if configBackend != "" {
			configStore, err = NewConfigStore(configBackend, configConnStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize configuration store: %w", err)
				return
			}
		}

		var historyStore contract.HistoryStore
		if historyBackend != "" {
			historyStore, err = NewHistoryStore(historyBackend, historyConnStr)
			if err != nil {
				if configStore != nil {
					_ = configStore.Close()
				}
				initErr = fmt.Errorf("failed to initialize history store: %w", err)
				return
			}
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.config = configStore
		Manager.history = historyStore
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() {
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.config != nil {
			_ = Manager.config.Close()
		}
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}

// ClearHistory removes all ranking history for the backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the history tables.
// For NoneBackend, it does nothing.
func ClearHistory(backend schema.DatabaseBackend, connStr string) error {
	return clearStore(backend, connStr, contract.GetHistoryDBFilePath(), runTeamsTable, runsTable, migrationsTable(historySchema))
}

// ClearConfigurations removes all saved configurations for the backend.
func ClearConfigurations(backend schema.DatabaseBackend, connStr string) error {
	return clearStore(backend, connStr, contract.GetStoreDBFilePath(), configurationsTable, migrationsTable(configSchema))
}

// clearStore deletes a SQLite file or drops tables on a server backend.
func clearStore(backend schema.DatabaseBackend, connStr, defaultPath string, tables ...string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbFilePath := connStr
		if dbFilePath == "" {
			dbFilePath = defaultPath
		}
		if dbFilePath == ":memory:" {
			return nil
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		db, err := openDB(backend, connStr, "")
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return dropTables(db, backend, tables...)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported backend for clearing: %s", backend)
	}
}

// dropTables drops each table if it exists.
func dropTables(db *sql.DB, backend schema.DatabaseBackend, tables ...string) error {
	for _, table := range tables {
		if err := validateTableName(table); err != nil {
			return err
		}
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
