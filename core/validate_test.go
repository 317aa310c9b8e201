package core

import (
	"math"
	"strings"
	"testing"

	"github.com/huangsam/picklist/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateWeights tests the advisory weight checks.
func TestValidateWeights(t *testing.T) {
	tests := []struct {
		name     string
		weights  schema.PickListWeights
		valid    bool
		contains []string
	}{
		{
			name:     "all zero",
			weights:  schema.PickListWeights{},
			valid:    false,
			contains: []string{"All weights are zero - pick list will be meaningless"},
		},
		{
			name:     "one negative",
			weights:  schema.PickListWeights{OPR: 0.6, DPR: -0.1, CCWM: 0.5},
			valid:    false,
			contains: []string{"Negative weight for metric dpr"},
		},
		{
			name:     "sum far above one",
			weights:  schema.PickListWeights{OPR: 1, CCWM: 1},
			valid:    true,
			contains: []string{"Weights sum to 2.00"},
		},
		{
			name:     "sum far below one",
			weights:  schema.PickListWeights{OPR: 0.1, CCWM: 0.1},
			valid:    true,
			contains: []string{"Weights sum to 0.20"},
		},
		{
			name:     "not a number",
			weights:  schema.PickListWeights{OPR: math.NaN(), CCWM: 1},
			valid:    false,
			contains: []string{"Non-finite weight for metric opr"},
		},
		{
			name:    "conventional custom vector",
			weights: schema.PickListWeights{OPR: 0.5, DPR: 0.2, Reliability: 0.3},
			valid:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateWeights(tt.weights)
			assert.Equal(t, tt.valid, result.Valid)
			require.NotNil(t, result.Warnings)
			joined := strings.Join(result.Warnings, "\n")
			for _, want := range tt.contains {
				assert.Contains(t, joined, want)
			}
			if len(tt.contains) == 0 {
				assert.Empty(t, result.Warnings)
			}
		})
	}
}

// TestValidatePresets tests that every preset is valid without warnings.
func TestValidatePresets(t *testing.T) {
	for _, s := range schema.AllStrategies {
		w, ok := schema.GetPresetWeights(s)
		require.True(t, ok)
		result := ValidateWeights(w)
		assert.True(t, result.Valid, "preset %s", s)
		assert.Empty(t, result.Warnings, "preset %s", s)
	}
}
