package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// Strategy represents a named weight preset.
	Strategy string

	// SortDirection represents the ordering of a metric column.
	SortDirection string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All strategies supported.
const (
	BalancedStrategy  Strategy = "balanced" // default
	OffensiveStrategy Strategy = "offensive"
	DefensiveStrategy Strategy = "defensive"
	ReliableStrategy  Strategy = "reliable"
	CustomStrategy    Strategy = "custom" // explicit weight vector
)

// All sort directions supported.
const (
	SortDesc SortDirection = "desc" // default
	SortAsc  SortDirection = "asc"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Thresholds used when tagging strengths and weaknesses.
const (
	DefaultStrengthThreshold = 0.85
	DefaultWeaknessThreshold = 0.15

	// Reliability is judged against fixed thresholds that callers cannot tune.
	ReliabilityStrengthAbove = 0.9
	ReliabilityWeaknessBelow = 0.7
)

// Column sort keys that are not tracked metrics.
const (
	CompositeSortKey     = "composite"
	MatchesPlayedSortKey = "matchesPlayed"
)

// AllStrategies returns a list of all preset strategies.
var AllStrategies = []Strategy{BalancedStrategy, OffensiveStrategy, DefensiveStrategy, ReliableStrategy}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStrategies lists all valid preset strategies.
var ValidStrategies = map[Strategy]struct{}{
	BalancedStrategy:  {},
	OffensiveStrategy: {},
	DefensiveStrategy: {},
	ReliableStrategy:  {},
}

// ValidSortDirections lists all valid sort directions.
var ValidSortDirections = map[SortDirection]struct{}{
	SortDesc: {},
	SortAsc:  {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
