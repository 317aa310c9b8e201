package contract

import (
	"fmt"
	"maps"
	"runtime"
	"strings"

	"github.com/huangsam/picklist/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 0 // all teams
	MaxResultLimit     = 1000
	DefaultUserID      = "local"
	DefaultAddr        = "127.0.0.1:8080"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// StrategyWeightsRaw holds the custom weights for a single strategy.
// Pointers tell a missing key apart from an explicit zero.
type StrategyWeightsRaw struct {
	OPR           *float64 `mapstructure:"opr"`
	DPR           *float64 `mapstructure:"dpr"`
	CCWM          *float64 `mapstructure:"ccwm"`
	AutoScore     *float64 `mapstructure:"autoScore"`
	TeleopScore   *float64 `mapstructure:"teleopScore"`
	EndgameScore  *float64 `mapstructure:"endgameScore"`
	Reliability   *float64 `mapstructure:"reliability"`
	DriverSkill   *float64 `mapstructure:"driverSkill"`
	DefenseRating *float64 `mapstructure:"defenseRating"`
	SpeedRating   *float64 `mapstructure:"speedRating"`
}

// values returns the provided weights keyed by metric.
func (r *StrategyWeightsRaw) values() map[schema.Metric]float64 {
	out := make(map[schema.Metric]float64)
	fields := map[schema.Metric]*float64{
		schema.MetricOPR:           r.OPR,
		schema.MetricDPR:           r.DPR,
		schema.MetricCCWM:          r.CCWM,
		schema.MetricAutoScore:     r.AutoScore,
		schema.MetricTeleopScore:   r.TeleopScore,
		schema.MetricEndgameScore:  r.EndgameScore,
		schema.MetricReliability:   r.Reliability,
		schema.MetricDriverSkill:   r.DriverSkill,
		schema.MetricDefenseRating: r.DefenseRating,
		schema.MetricSpeedRating:   r.SpeedRating,
	}
	for m, p := range fields {
		if p != nil {
			out[m] = *p
		}
	}
	return out
}

// WeightsRawInput holds per-strategy weight overrides from the YAML config file.
type WeightsRawInput struct {
	Balanced  *StrategyWeightsRaw `mapstructure:"balanced"`
	Offensive *StrategyWeightsRaw `mapstructure:"offensive"`
	Defensive *StrategyWeightsRaw `mapstructure:"defensive"`
	Reliable  *StrategyWeightsRaw `mapstructure:"reliable"`
}

// Config holds the runtime configuration for pick-list generation.
// This struct is the "final, validated" config.
type Config struct {
	EventKey string
	DataPath string

	Strategy      schema.Strategy
	CustomWeights *schema.PickListWeights // set by --custom-weights, bypasses presets

	// ComputedWeights is the final weight vector of each preset, from
	// the built-in presets plus overrides in the config file.
	ComputedWeights map[schema.Strategy]schema.PickListWeights

	MinMatches        int
	IncludeNotes      bool
	StrengthThreshold float64
	WeaknessThreshold float64

	ResultLimit int // 0 = all teams
	Workers     int
	Explain     bool
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	UserID     string
	ConfigName string
	Columns    []schema.Column

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	Addr string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Event            string `mapstructure:"event"`
	Data             string `mapstructure:"data"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Workers          int    `mapstructure:"workers"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	User             string `mapstructure:"user"`
	StoreBackend     string `mapstructure:"store-backend"`
	StoreDBConnect   string `mapstructure:"store-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from ranking commands ---
	Strategy          string  `mapstructure:"strategy"`
	CustomWeights     string  `mapstructure:"custom-weights"`
	MinMatches        int     `mapstructure:"min-matches"`
	IncludeNotes      bool    `mapstructure:"include-notes"`
	StrengthThreshold float64 `mapstructure:"strength-threshold"`
	WeaknessThreshold float64 `mapstructure:"weakness-threshold"`
	Limit             int     `mapstructure:"limit"`
	Explain           bool    `mapstructure:"explain"`

	// --- Fields from config and columns commands ---
	ConfigName string `mapstructure:"config-name"`
	Columns    string `mapstructure:"columns"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.CustomWeights != nil {
		w := *c.CustomWeights
		clone.CustomWeights = &w
	}
	if c.ComputedWeights != nil {
		clone.ComputedWeights = maps.Clone(c.ComputedWeights)
	}
	if c.Columns != nil {
		clone.Columns = make([]schema.Column, len(c.Columns))
		copy(clone.Columns, c.Columns)
	}
	return &clone
}

// Selection returns the weight selection implied by the configuration.
// Custom weights win over the strategy; configured preset overrides are
// passed as explicit weights that keep the preset name.
func (c *Config) Selection() schema.WeightSelection {
	if c.CustomWeights != nil {
		return schema.CustomSelection(*c.CustomWeights)
	}
	if w, ok := c.ComputedWeights[c.Strategy]; ok {
		if preset, _ := schema.GetPresetWeights(c.Strategy); preset != w {
			return schema.WeightSelection{Strategy: c.Strategy, Weights: &w}
		}
	}
	return schema.PresetSelection(c.Strategy)
}

// GenerateOptions returns the engine options of the configuration.
func (c *Config) GenerateOptions() schema.GenerateOptions {
	return schema.GenerateOptions{
		MinMatches:        c.MinMatches,
		IncludeNotes:      c.IncludeNotes,
		StrengthThreshold: c.StrengthThreshold,
		WeaknessThreshold: c.WeaknessThreshold,
	}.WithDefaults()
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processRankingInputs(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	if err := processColumns(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates store and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("history: %w", err)
	}

	// Both stores create their own tables, so two SQLite stores need two files
	if cfg.StoreBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		storePath := cfg.StoreDBConnect
		if storePath == "" {
			storePath = GetStoreDBFilePath()
		}
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if storePath == historyPath && storePath != ":memory:" {
			return fmt.Errorf("store and history must use different SQLite database files. Both resolve to %q", storePath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.EventKey = strings.TrimSpace(input.Event)
	cfg.DataPath = strings.TrimSpace(input.Data)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Explain = input.Explain
	cfg.ConfigName = strings.TrimSpace(input.ConfigName)
	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	cfg.UserID = strings.TrimSpace(input.User)
	if cfg.UserID == "" {
		cfg.UserID = DefaultUserID
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// processRankingInputs validates the strategy, custom weights and thresholds.
func processRankingInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Strategy = schema.Strategy(strings.ToLower(strings.TrimSpace(input.Strategy)))
	if cfg.Strategy == "" {
		cfg.Strategy = schema.BalancedStrategy
	}
	if _, ok := schema.ValidStrategies[cfg.Strategy]; !ok && cfg.Strategy != schema.CustomStrategy {
		return fmt.Errorf("invalid strategy '%s'. must be balanced, offensive, defensive, reliable: %w", input.Strategy, ErrUnknownStrategy)
	}

	cfg.CustomWeights = nil
	if input.CustomWeights != "" {
		w, err := schema.ParseWeights(input.CustomWeights)
		if err != nil {
			return fmt.Errorf("invalid --custom-weights: %w", err)
		}
		cfg.CustomWeights = &w
		cfg.Strategy = schema.CustomStrategy
	} else if cfg.Strategy == schema.CustomStrategy {
		return fmt.Errorf("strategy 'custom' requires --custom-weights")
	}

	if input.MinMatches < 0 {
		return fmt.Errorf("min-matches cannot be negative (received %d)", input.MinMatches)
	}
	cfg.MinMatches = input.MinMatches
	cfg.IncludeNotes = input.IncludeNotes

	cfg.StrengthThreshold = input.StrengthThreshold
	if cfg.StrengthThreshold == 0 {
		cfg.StrengthThreshold = schema.DefaultStrengthThreshold
	}
	cfg.WeaknessThreshold = input.WeaknessThreshold
	if cfg.WeaknessThreshold == 0 {
		cfg.WeaknessThreshold = schema.DefaultWeaknessThreshold
	}
	if cfg.StrengthThreshold <= 0 || cfg.StrengthThreshold > 1 {
		return fmt.Errorf("strength-threshold must be in (0, 1] (received %.2f)", cfg.StrengthThreshold)
	}
	if cfg.WeaknessThreshold < 0 || cfg.WeaknessThreshold >= 1 {
		return fmt.Errorf("weakness-threshold must be in [0, 1) (received %.2f)", cfg.WeaknessThreshold)
	}
	if cfg.WeaknessThreshold >= cfg.StrengthThreshold {
		return fmt.Errorf("weakness-threshold (%.2f) must be below strength-threshold (%.2f)", cfg.WeaknessThreshold, cfg.StrengthThreshold)
	}
	return nil
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	profilePrefix = strings.TrimSpace(profilePrefix)
	if profilePrefix == "" {
		return nil
	}
	if strings.HasSuffix(profilePrefix, "/") {
		return fmt.Errorf("profile prefix must name a file, got directory %q", profilePrefix)
	}
	profile.Enabled = true
	profile.Prefix = profilePrefix
	return nil
}

// ProcessWeightsRawInput converts WeightsRawInput into per-strategy overrides.
// If validateSum is true, it validates that each strategy's weights sum to 1.0.
func ProcessWeightsRawInput(weights WeightsRawInput, validateSum bool) (map[schema.Strategy]map[schema.Metric]float64, error) {
	result := make(map[schema.Strategy]map[schema.Metric]float64)

	strategyWeights := map[schema.Strategy]*StrategyWeightsRaw{
		schema.BalancedStrategy:  weights.Balanced,
		schema.OffensiveStrategy: weights.Offensive,
		schema.DefensiveStrategy: weights.Defensive,
		schema.ReliableStrategy:  weights.Reliable,
	}

	for _, s := range schema.AllStrategies {
		raw := strategyWeights[s]
		if raw == nil {
			continue
		}
		values := raw.values()
		if len(values) == 0 {
			continue
		}

		sum := 0.0
		for m, v := range values {
			if v < 0 {
				return nil, fmt.Errorf("custom weight for %s.%s cannot be negative", s, m)
			}
			sum += v
		}
		if validateSum && (sum < 0.999 || sum > 1.001) {
			return nil, fmt.Errorf("custom weights for strategy %s must sum to 1.0, got %.3f", s, sum)
		}
		result[s] = values
	}
	return result, nil
}

// processCustomWeights merges config file overrides into the preset weights.
// Overrides replace the whole preset vector, so unspecified metrics become zero.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	overrides, err := ProcessWeightsRawInput(input.Weights, true)
	if err != nil {
		return err
	}

	cfg.ComputedWeights = make(map[schema.Strategy]schema.PickListWeights)
	for _, s := range schema.AllStrategies {
		w, _ := schema.GetPresetWeights(s)
		if custom, ok := overrides[s]; ok {
			w = schema.PickListWeights{}
			for m, v := range custom {
				w.Set(m, v)
			}
		}
		cfg.ComputedWeights[s] = w
	}
	return nil
}

// processColumns parses the --columns flag, if present.
func processColumns(cfg *Config, input *ConfigRawInput) error {
	cfg.Columns = nil
	if strings.TrimSpace(input.Columns) == "" {
		return nil
	}
	columns, err := ParseColumns(input.Columns)
	if err != nil {
		return fmt.Errorf("invalid --columns: %w", err)
	}
	cfg.Columns = columns
	return nil
}

// ParseColumns parses a compact column list such as
// "balanced,defensive,opr:desc,matchesPlayed:asc". A strategy name ranks by
// composite score; "metric:direction" sorts by the raw metric value.
func ParseColumns(s string) ([]schema.Column, error) {
	var columns []schema.Column
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id := fmt.Sprintf("col-%d", len(columns)+1)

		key, dir, hasDir := strings.Cut(part, ":")
		key = strings.TrimSpace(key)
		if strategy := schema.Strategy(strings.ToLower(key)); !hasDir {
			if _, ok := schema.ValidStrategies[strategy]; !ok {
				return nil, fmt.Errorf("unknown column strategy '%s': %w", key, ErrUnknownStrategy)
			}
			columns = append(columns, schema.Column{
				ID:            id,
				Title:         string(strategy),
				SortMetric:    schema.CompositeSortKey,
				SortDirection: schema.SortDesc,
				Strategy:      strategy,
			})
			continue
		}

		direction := schema.SortDirection(strings.ToLower(strings.TrimSpace(dir)))
		if _, ok := schema.ValidSortDirections[direction]; !ok {
			return nil, fmt.Errorf("invalid sort direction '%s' for column %s, expected asc or desc", dir, key)
		}
		sortKey := schema.MatchesPlayedSortKey
		if !strings.EqualFold(key, schema.MatchesPlayedSortKey) {
			m, err := schema.ParseMetric(key)
			if err != nil {
				return nil, err
			}
			sortKey = m.String()
		}
		columns = append(columns, schema.Column{
			ID:            id,
			Title:         fmt.Sprintf("%s %s", sortKey, direction),
			SortMetric:    sortKey,
			SortDirection: direction,
		})
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns given")
	}
	return columns, nil
}
