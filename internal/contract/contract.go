// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/picklist/schema"
)

// StatsSource provides per-team statistics for an event.
// This allows the ranking flow to be tested without real data files.
type StatsSource interface {
	// LoadEvent returns the event name and team summaries for an event key.
	// It returns ErrNoTeamStatistics when the event has no teams.
	LoadEvent(ctx context.Context, eventKey string) (schema.EventStats, error)
}

// StoreManager defines the interface for managing persistence stores.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetConfigStore() ConfigStore
	GetHistoryStore() HistoryStore
}

// ConfigStore persists named pick-list configurations.
// Names are unique per (userID, eventKey) and at most one configuration
// per (userID, eventKey) is the default.
type ConfigStore interface {
	// Create stores a new configuration and returns it with ID and timestamps set.
	Create(ctx context.Context, cfg schema.PickListConfiguration) (schema.PickListConfiguration, error)

	// Update replaces the name, payload and default flag of an existing configuration.
	Update(ctx context.Context, cfg schema.PickListConfiguration) (schema.PickListConfiguration, error)

	// Get returns a configuration by ID.
	Get(ctx context.Context, id string) (schema.PickListConfiguration, error)

	// GetByName returns the configuration with the given name in a scope.
	GetByName(ctx context.Context, userID, eventKey, name string) (schema.PickListConfiguration, error)

	// GetDefault returns the default configuration of a scope.
	GetDefault(ctx context.Context, userID, eventKey string) (schema.PickListConfiguration, error)

	// List returns all configurations of a scope ordered by name.
	List(ctx context.Context, userID, eventKey string) ([]schema.PickListConfiguration, error)

	// Delete removes a configuration by ID.
	Delete(ctx context.Context, id string) error

	// SetDefault marks a configuration as the default of its scope and clears the others.
	SetDefault(ctx context.Context, id string) error

	// Close closes the underlying connection
	Close() error
}

// HistoryStore records generated pick lists.
type HistoryStore interface {
	// RecordRun stores a run and its ranked teams and returns the run ID
	RecordRun(ctx context.Context, run schema.RunRecord, teams []schema.RunTeamRecord) (int64, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run ordered by run ID
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllRunTeams returns every recorded ranked team ordered by run ID and rank
	GetAllRunTeams() ([]schema.RunTeamRecord, error)

	// Close closes the underlying connection
	Close() error
}
