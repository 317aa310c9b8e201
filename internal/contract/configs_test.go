package contract

import (
	"testing"

	"github.com/huangsam/picklist/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns raw input that passes validation.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Event:          "2024casj",
		Data:           "testdata",
		Output:         "text",
		Workers:        4,
		Color:          "yes",
		StoreBackend:   "sqlite",
		StoreDBConnect: ":memory:",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "invalid strategy", mutate: func(in *ConfigRawInput) { in.Strategy = "chaotic" }, expectError: true},
		{name: "custom strategy without weights", mutate: func(in *ConfigRawInput) { in.Strategy = "custom" }, expectError: true},
		{name: "custom weights", mutate: func(in *ConfigRawInput) { in.CustomWeights = "opr=0.5,reliability=0.5" }},
		{name: "bad custom weights", mutate: func(in *ConfigRawInput) { in.CustomWeights = "opr" }, expectError: true},
		{name: "negative min matches", mutate: func(in *ConfigRawInput) { in.MinMatches = -1 }, expectError: true},
		{name: "zero workers", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "limit too large", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, expectError: true},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet needs a file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "sometimes" }, expectError: true},
		{
			name:        "thresholds crossed",
			mutate:      func(in *ConfigRawInput) { in.StrengthThreshold = 0.3; in.WeaknessThreshold = 0.4 },
			expectError: true,
		},
		{name: "strength threshold above one", mutate: func(in *ConfigRawInput) { in.StrengthThreshold = 1.5 }, expectError: true},
		{name: "columns", mutate: func(in *ConfigRawInput) { in.Columns = "balanced,opr:desc" }},
		{name: "bad columns", mutate: func(in *ConfigRawInput) { in.Columns = "opr:sideways" }, expectError: true},
		{name: "invalid store backend", mutate: func(in *ConfigRawInput) { in.StoreBackend = "oracle" }, expectError: true},
		{
			name:        "mysql without connection",
			mutate:      func(in *ConfigRawInput) { in.HistoryBackend = "mysql" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, "2024casj", cfg.EventKey)
	assert.Equal(t, schema.BalancedStrategy, cfg.Strategy)
	assert.Nil(t, cfg.CustomWeights)
	assert.Equal(t, schema.DefaultStrengthThreshold, cfg.StrengthThreshold)
	assert.Equal(t, schema.DefaultWeaknessThreshold, cfg.WeaknessThreshold)
	assert.Equal(t, DefaultUserID, cfg.UserID)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
	assert.True(t, cfg.UseColors)
	assert.Len(t, cfg.ComputedWeights, len(schema.AllStrategies))

	sel := cfg.Selection()
	assert.Equal(t, schema.BalancedStrategy, sel.Strategy)
	assert.Nil(t, sel.Weights)
}

func TestProcessAndValidateUnknownStrategyIsSentinel(t *testing.T) {
	input := validInput()
	input.Strategy = "chaotic"
	err := ProcessAndValidate(&Config{}, input)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestConfigSelectionCustomWeights(t *testing.T) {
	input := validInput()
	input.Strategy = "offensive"
	input.CustomWeights = "opr=1"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	sel := cfg.Selection()
	assert.Equal(t, schema.CustomStrategy, sel.Strategy)
	require.NotNil(t, sel.Weights)
	assert.Equal(t, 1.0, sel.Weights.OPR)
}

func TestConfigSelectionPresetOverride(t *testing.T) {
	input := validInput()
	input.Strategy = "reliable"
	input.Weights = WeightsRawInput{
		Reliable: &StrategyWeightsRaw{
			Reliability: schema.Float64Ptr(0.6),
			OPR:         schema.Float64Ptr(0.4),
		},
	}
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	sel := cfg.Selection()
	assert.Equal(t, schema.ReliableStrategy, sel.Strategy)
	require.NotNil(t, sel.Weights)
	assert.Equal(t, 0.6, sel.Weights.Reliability)
	assert.Equal(t, 0.4, sel.Weights.OPR)
	assert.Zero(t, sel.Weights.CCWM)

	// Other presets are untouched
	balanced, _ := schema.GetPresetWeights(schema.BalancedStrategy)
	assert.Equal(t, balanced, cfg.ComputedWeights[schema.BalancedStrategy])
}

func TestProcessWeightsRawInput(t *testing.T) {
	t.Run("sum must be one", func(t *testing.T) {
		_, err := ProcessWeightsRawInput(WeightsRawInput{
			Balanced: &StrategyWeightsRaw{OPR: schema.Float64Ptr(0.5)},
		}, true)
		assert.Error(t, err)
	})

	t.Run("sum not checked", func(t *testing.T) {
		out, err := ProcessWeightsRawInput(WeightsRawInput{
			Balanced: &StrategyWeightsRaw{OPR: schema.Float64Ptr(0.5)},
		}, false)
		require.NoError(t, err)
		assert.Equal(t, 0.5, out[schema.BalancedStrategy][schema.MetricOPR])
	})

	t.Run("negative weight", func(t *testing.T) {
		_, err := ProcessWeightsRawInput(WeightsRawInput{
			Defensive: &StrategyWeightsRaw{DPR: schema.Float64Ptr(-1)},
		}, false)
		assert.Error(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		out, err := ProcessWeightsRawInput(WeightsRawInput{}, true)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/picklist", false},
		{"mysql no tcp", schema.MySQLBackend, "user:pass@localhost/picklist", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=picklist", false},
		{"postgres no dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres no host", schema.PostgreSQLBackend, "dbname=picklist", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSameSQLiteFileRejected(t *testing.T) {
	input := validInput()
	input.StoreDBConnect = "/tmp/picklist.db"
	input.HistoryBackend = "sqlite"
	input.HistoryDBConnect = "/tmp/picklist.db"
	err := ProcessAndValidate(&Config{}, input)
	assert.Error(t, err)
}

func TestParseColumns(t *testing.T) {
	columns, err := ParseColumns("balanced, Defensive ,opr:desc,matchesPlayed:asc,DPR:ASC")
	require.NoError(t, err)
	require.Len(t, columns, 5)

	assert.Equal(t, "col-1", columns[0].ID)
	assert.Equal(t, schema.CompositeSortKey, columns[0].SortMetric)
	assert.Equal(t, schema.BalancedStrategy, columns[0].Strategy)
	assert.Equal(t, schema.DefensiveStrategy, columns[1].Strategy)

	assert.Equal(t, "opr", columns[2].SortMetric)
	assert.Equal(t, schema.SortDesc, columns[2].SortDirection)
	assert.Equal(t, schema.MatchesPlayedSortKey, columns[3].SortMetric)
	assert.Equal(t, schema.SortAsc, columns[3].SortDirection)
	assert.Equal(t, "dpr", columns[4].SortMetric)
	assert.Equal(t, schema.SortAsc, columns[4].SortDirection)

	for _, bad := range []string{"", "turbo", "opr:up", "warp:desc"} {
		_, err := ParseColumns(bad)
		assert.Error(t, err, bad)
	}
}

func TestConfigClone(t *testing.T) {
	w := schema.PickListWeights{OPR: 1}
	cfg := &Config{
		CustomWeights:   &w,
		ComputedWeights: map[schema.Strategy]schema.PickListWeights{schema.BalancedStrategy: {OPR: 1}},
		Columns:         []schema.Column{{ID: "a"}},
	}
	clone := cfg.Clone()
	clone.CustomWeights.OPR = 2
	clone.ComputedWeights[schema.BalancedStrategy] = schema.PickListWeights{}
	clone.Columns[0].ID = "b"

	assert.Equal(t, 1.0, cfg.CustomWeights.OPR)
	assert.Equal(t, 1.0, cfg.ComputedWeights[schema.BalancedStrategy].OPR)
	assert.Equal(t, "a", cfg.Columns[0].ID)
}

func TestProcessProfilingConfig(t *testing.T) {
	t.Run("empty prefix stays disabled", func(t *testing.T) {
		profile := &ProfileConfig{}
		require.NoError(t, ProcessProfilingConfig(profile, "  "))
		assert.False(t, profile.Enabled)
	})

	t.Run("prefix enables profiling", func(t *testing.T) {
		profile := &ProfileConfig{}
		require.NoError(t, ProcessProfilingConfig(profile, "out/picklist"))
		assert.True(t, profile.Enabled)
		assert.Equal(t, "out/picklist", profile.Prefix)
	})

	t.Run("directory prefix", func(t *testing.T) {
		profile := &ProfileConfig{}
		assert.Error(t, ProcessProfilingConfig(profile, "out/"))
		assert.False(t, profile.Enabled)
	})
}
