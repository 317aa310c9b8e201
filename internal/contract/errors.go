package contract

import "errors"

// Sentinel errors shared across packages. Match them with errors.Is.
var (
	// ErrNoTeamStatistics means the statistics source has no teams for an event.
	ErrNoTeamStatistics = errors.New("no team statistics available")

	// ErrUnknownStrategy means a preset strategy name is not recognized.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrConfigNotFound means no saved configuration matched the lookup.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrDuplicateConfigName means the name is already used in the same scope.
	ErrDuplicateConfigName = errors.New("configuration name already exists")

	// ErrInvalidConfigName means the name is empty or too long.
	ErrInvalidConfigName = errors.New("invalid configuration name")

	// ErrConfigStoreUnavailable means saved configurations were needed but no store is configured.
	ErrConfigStoreUnavailable = errors.New("configuration store is not available")
)
