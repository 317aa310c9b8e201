package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/huangsam/picklist/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFormula(t *testing.T) {
	balanced, ok := schema.GetPresetWeights(schema.BalancedStrategy)
	require.True(t, ok)
	formula := formatFormula(balanced)
	assert.True(t, strings.HasPrefix(formula, "0.2*opr + 0.1*(1-dpr) + 0.2*ccwm"))
	assert.Contains(t, formula, "0.025*defenseRating")

	assert.Equal(t, "0", formatFormula(schema.PickListWeights{}))
}

func TestBuildStrategiesRenderModel(t *testing.T) {
	model := BuildStrategiesRenderModel(map[schema.Strategy]schema.PickListWeights{
		schema.BalancedStrategy: {OPR: 1},
	})
	require.Len(t, model.Strategies, 4)
	assert.Equal(t, schema.BalancedStrategy, model.Strategies[0].Name)
	assert.Equal(t, "1*opr", model.Strategies[0].Formula)
	assert.Equal(t, map[string]float64{"opr": 1}, model.Strategies[0].Weights)
	assert.Equal(t, schema.ReliableStrategy, model.Strategies[3].Name)
	assert.InDelta(t, 0.35, model.Strategies[3].Weights["reliability"], 1e-9)
}

func TestWritePresets(t *testing.T) {
	model := BuildStrategiesRenderModel(nil)

	var text bytes.Buffer
	require.NoError(t, WritePresets(&text, model, schema.TextOut))
	assert.Contains(t, text.String(), "Pick List Strategies")
	assert.Contains(t, text.String(), "DEFENSIVE: Prioritize defenders")

	var js bytes.Buffer
	require.NoError(t, WritePresets(&js, model, schema.JSONOut))
	var result map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &result))
	assert.Equal(t, "Pick List Strategies", result["title"])

	var csvOut bytes.Buffer
	require.NoError(t, WritePresets(&csvOut, model, schema.CSVOut))
	assert.Equal(t, 5, strings.Count(csvOut.String(), "\n"))

	assert.Error(t, WritePresets(&csvOut, model, schema.ParquetOut))
}

func TestWriteWeightValidation(t *testing.T) {
	weights := schema.PickListWeights{OPR: 1, DPR: 0.6}
	result := schema.WeightValidation{Valid: true, Warnings: []string{"Weights sum to 1.60 instead of 1.00"}}

	var text bytes.Buffer
	require.NoError(t, WriteWeightValidation(&text, weights, result, schema.TextOut))
	assert.Contains(t, text.String(), "Weights: opr=1,dpr=0.6")
	assert.Contains(t, text.String(), "Sum: 1.6000")
	assert.Contains(t, text.String(), "Status: ✅ valid")
	assert.Contains(t, text.String(), "⚠️  Weights sum to 1.60")

	var js bytes.Buffer
	require.NoError(t, WriteWeightValidation(&js, weights, schema.WeightValidation{Warnings: []string{"All weights are zero"}}, schema.JSONOut))
	var decoded struct {
		Valid    bool     `json:"valid"`
		Sum      float64  `json:"sum"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.False(t, decoded.Valid)
	assert.InDelta(t, 1.6, decoded.Sum, 1e-9)
	assert.Equal(t, []string{"All weights are zero"}, decoded.Warnings)

	var csvOut bytes.Buffer
	require.NoError(t, WriteWeightValidation(&csvOut, weights, result, schema.CSVOut))
	assert.Contains(t, csvOut.String(), "true,1.6000,\"opr=1,dpr=0.6\"")
}

func TestWriteStatistics(t *testing.T) {
	list := samplePickList()

	var text bytes.Buffer
	require.NoError(t, WriteStatistics(&text, list, schema.TextOut))
	assert.Contains(t, text.String(), "Pick List Statistics: 2024casj (balanced)")
	assert.Contains(t, text.String(), "Average Score: 0.7062")
	assert.Contains(t, text.String(), "Average OPR:   78.90")

	var js bytes.Buffer
	require.NoError(t, WriteStatistics(&js, list, schema.JSONOut))
	var decoded struct {
		TeamCount int `json:"teamCount"`
		Picked    int `json:"picked"`
	}
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.TeamCount)
	assert.Equal(t, 1, decoded.Picked)

	var csvOut bytes.Buffer
	require.NoError(t, WriteStatistics(&csvOut, list, schema.CSVOut))
	assert.Contains(t, csvOut.String(), "Median Score,0.0000")
}
