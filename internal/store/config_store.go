package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/schema"
)

// configurationsTable stores saved pick-list configurations.
const configurationsTable = "picklist_configurations"

// errStoreDisabled is returned by writes against the none backend.
var errStoreDisabled = errors.New("configuration store is disabled (backend none)")

// ConfigStoreImpl implements the ConfigStore interface.
type ConfigStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	now     func() time.Time
}

var _ contract.ConfigStore = &ConfigStoreImpl{} // Compile-time check

// NewConfigStore creates a new ConfigStore with the specified backend.
func NewConfigStore(backend schema.DatabaseBackend, connStr string) (contract.ConfigStore, error) {
	if backend == schema.NoneBackend {
		return &ConfigStoreImpl{backend: backend, now: time.Now}, nil
	}

	db, err := openDB(backend, connStr, contract.GetStoreDBFilePath())
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db, configSchema, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create configuration table: %w", err)
	}
	return &ConfigStoreImpl{db: db, backend: backend, now: time.Now}, nil
}

// ValidateConfigName checks the naming rules of a saved configuration.
func ValidateConfigName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", contract.ErrInvalidConfigName)
	}
	if utf8.RuneCountInString(name) > schema.MaxConfigurationNameLength {
		return fmt.Errorf("%w: name cannot exceed %d characters", contract.ErrInvalidConfigName, schema.MaxConfigurationNameLength)
	}
	return nil
}

// validateScope checks the user and event of a configuration.
func validateScope(userID, eventKey string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New("user id cannot be empty")
	}
	if strings.TrimSpace(eventKey) == "" {
		return errors.New("event key cannot be empty")
	}
	return nil
}

// enabled reports whether the store is backed by a database.
func (cs *ConfigStoreImpl) enabled() bool {
	return cs.backend != schema.NoneBackend && cs.db != nil
}

// table returns the quoted configurations table.
func (cs *ConfigStoreImpl) table() string {
	return quoteTableName(configurationsTable, cs.backend)
}

// q quotes the table into a query and rebinds its placeholders.
func (cs *ConfigStoreImpl) q(format string) string {
	return rebind(fmt.Sprintf(format, cs.table()), cs.backend)
}

// Create stores a new configuration. Setting IsDefault clears the previous
// default of the scope in the same transaction.
func (cs *ConfigStoreImpl) Create(ctx context.Context, cfg schema.PickListConfiguration) (schema.PickListConfiguration, error) {
	if !cs.enabled() {
		return cfg, errStoreDisabled
	}
	if err := ValidateConfigName(cfg.Name); err != nil {
		return cfg, err
	}
	if err := validateScope(cfg.UserID, cfg.EventKey); err != nil {
		return cfg, err
	}
	payload, err := json.Marshal(cfg.Payload)
	if err != nil {
		return cfg, fmt.Errorf("failed to marshal payload: %w", err)
	}

	now := cs.now().UTC()
	cfg.ID = uuid.NewString()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now

	tx, err := cs.db.BeginTx(ctx, nil)
	if err != nil {
		return cfg, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := cs.checkNameFree(ctx, tx, cfg.UserID, cfg.EventKey, cfg.Name, ""); err != nil {
		return cfg, err
	}
	if cfg.IsDefault {
		if err := cs.clearDefaults(ctx, tx, cfg.UserID, cfg.EventKey); err != nil {
			return cfg, err
		}
	}

	_, err = tx.ExecContext(ctx, cs.q(`INSERT INTO %s (id, user_id, event_key, name, payload, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		cfg.ID, cfg.UserID, cfg.EventKey, cfg.Name, string(payload), cfg.IsDefault,
		formatTime(now, cs.backend), formatTime(now, cs.backend))
	if err != nil {
		return cfg, fmt.Errorf("failed to insert configuration: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return cfg, fmt.Errorf("failed to commit configuration: %w", err)
	}
	return cfg, nil
}

// Update replaces the name, payload and default flag of a configuration.
func (cs *ConfigStoreImpl) Update(ctx context.Context, cfg schema.PickListConfiguration) (schema.PickListConfiguration, error) {
	if !cs.enabled() {
		return cfg, errStoreDisabled
	}
	if err := ValidateConfigName(cfg.Name); err != nil {
		return cfg, err
	}
	payload, err := json.Marshal(cfg.Payload)
	if err != nil {
		return cfg, fmt.Errorf("failed to marshal payload: %w", err)
	}

	tx, err := cs.db.BeginTx(ctx, nil)
	if err != nil {
		return cfg, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := cs.getOne(ctx, tx, `SELECT %s FROM %s WHERE id = ?`, cfg.ID)
	if err != nil {
		return cfg, err
	}
	if err := cs.checkNameFree(ctx, tx, existing.UserID, existing.EventKey, cfg.Name, existing.ID); err != nil {
		return cfg, err
	}
	if cfg.IsDefault {
		if err := cs.clearDefaults(ctx, tx, existing.UserID, existing.EventKey); err != nil {
			return cfg, err
		}
	}

	now := cs.now().UTC()
	_, err = tx.ExecContext(ctx, cs.q(`UPDATE %s SET name = ?, payload = ?, is_default = ?, updated_at = ? WHERE id = ?`),
		cfg.Name, string(payload), cfg.IsDefault, formatTime(now, cs.backend), existing.ID)
	if err != nil {
		return cfg, fmt.Errorf("failed to update configuration: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return cfg, fmt.Errorf("failed to commit configuration: %w", err)
	}

	existing.Name = cfg.Name
	existing.Payload = cfg.Payload
	existing.IsDefault = cfg.IsDefault
	existing.UpdatedAt = now
	return existing, nil
}

// Get returns a configuration by ID.
func (cs *ConfigStoreImpl) Get(ctx context.Context, id string) (schema.PickListConfiguration, error) {
	if !cs.enabled() {
		return schema.PickListConfiguration{}, contract.ErrConfigNotFound
	}
	return cs.getOne(ctx, cs.db, `SELECT %s FROM %s WHERE id = ?`, id)
}

// GetByName returns the configuration with the given name in a scope.
func (cs *ConfigStoreImpl) GetByName(ctx context.Context, userID, eventKey, name string) (schema.PickListConfiguration, error) {
	if !cs.enabled() {
		return schema.PickListConfiguration{}, contract.ErrConfigNotFound
	}
	return cs.getOne(ctx, cs.db, `SELECT %s FROM %s WHERE user_id = ? AND event_key = ? AND name = ?`, userID, eventKey, name)
}

// GetDefault returns the default configuration of a scope.
func (cs *ConfigStoreImpl) GetDefault(ctx context.Context, userID, eventKey string) (schema.PickListConfiguration, error) {
	if !cs.enabled() {
		return schema.PickListConfiguration{}, contract.ErrConfigNotFound
	}
	return cs.getOne(ctx, cs.db, `SELECT %s FROM %s WHERE user_id = ? AND event_key = ? AND is_default = ?`, userID, eventKey, true)
}

// List returns all configurations of a scope ordered by name.
func (cs *ConfigStoreImpl) List(ctx context.Context, userID, eventKey string) ([]schema.PickListConfiguration, error) {
	out := []schema.PickListConfiguration{}
	if !cs.enabled() {
		return out, nil
	}

	query := rebind(fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = ? AND event_key = ? ORDER BY name`, configColumns, cs.table()), cs.backend)
	rows, err := cs.db.QueryContext(ctx, query, userID, eventKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list configurations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		cfg, err := cs.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating configurations: %w", err)
	}
	return out, nil
}

// Delete removes a configuration by ID.
func (cs *ConfigStoreImpl) Delete(ctx context.Context, id string) error {
	if !cs.enabled() {
		return errStoreDisabled
	}
	result, err := cs.db.ExecContext(ctx, cs.q(`DELETE FROM %s WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete configuration: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete configuration: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", contract.ErrConfigNotFound, id)
	}
	return nil
}

// SetDefault marks a configuration as the default of its scope. The other
// defaults of the scope are cleared in the same transaction, so a scope
// never ends up with two defaults.
func (cs *ConfigStoreImpl) SetDefault(ctx context.Context, id string) error {
	if !cs.enabled() {
		return errStoreDisabled
	}

	tx, err := cs.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := cs.getOne(ctx, tx, `SELECT %s FROM %s WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := cs.clearDefaults(ctx, tx, existing.UserID, existing.EventKey); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, cs.q(`UPDATE %s SET is_default = ?, updated_at = ? WHERE id = ?`),
		true, formatTime(cs.now().UTC(), cs.backend), id)
	if err != nil {
		return fmt.Errorf("failed to set default configuration: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit default configuration: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (cs *ConfigStoreImpl) Close() error {
	if cs.db != nil {
		return cs.db.Close()
	}
	return nil
}

// configColumns is the column list read by every lookup.
const configColumns = "id, user_id, event_key, name, payload, is_default, created_at, updated_at"

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// getOne runs a single-row lookup. The format takes the column list and the table.
func (cs *ConfigStoreImpl) getOne(ctx context.Context, q queryer, format string, args ...any) (schema.PickListConfiguration, error) {
	query := rebind(fmt.Sprintf(format, configColumns, cs.table()), cs.backend)
	cfg, err := cs.scan(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return cfg, contract.ErrConfigNotFound
	}
	return cfg, err
}

// scan reads one configuration row.
func (cs *ConfigStoreImpl) scan(row rowScanner) (schema.PickListConfiguration, error) {
	var cfg schema.PickListConfiguration
	var payload string
	created := timeScanner{backend: cs.backend}
	updated := timeScanner{backend: cs.backend}

	err := row.Scan(&cfg.ID, &cfg.UserID, &cfg.EventKey, &cfg.Name, &payload, &cfg.IsDefault, created.dest(), updated.dest())
	if errors.Is(err, sql.ErrNoRows) {
		return cfg, err
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to scan configuration: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &cfg.Payload); err != nil {
		return cfg, fmt.Errorf("failed to decode payload of configuration %s: %w", cfg.ID, err)
	}
	if cfg.CreatedAt, err = created.value(); err != nil {
		return cfg, err
	}
	if cfg.UpdatedAt, err = updated.value(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// checkNameFree fails with ErrDuplicateConfigName when another configuration
// of the scope already uses the name.
func (cs *ConfigStoreImpl) checkNameFree(ctx context.Context, tx *sql.Tx, userID, eventKey, name, exceptID string) error {
	var count int
	err := tx.QueryRowContext(ctx, cs.q(`SELECT COUNT(*) FROM %s WHERE user_id = ? AND event_key = ? AND name = ? AND id <> ?`),
		userID, eventKey, name, exceptID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check configuration name: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %q", contract.ErrDuplicateConfigName, name)
	}
	return nil
}

// clearDefaults unsets the default flag on every configuration of a scope.
func (cs *ConfigStoreImpl) clearDefaults(ctx context.Context, tx *sql.Tx, userID, eventKey string) error {
	_, err := tx.ExecContext(ctx, cs.q(`UPDATE %s SET is_default = ? WHERE user_id = ? AND event_key = ? AND is_default = ?`),
		false, userID, eventKey, true)
	if err != nil {
		return fmt.Errorf("failed to clear default configurations: %w", err)
	}
	return nil
}
