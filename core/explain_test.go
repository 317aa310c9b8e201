package core

import (
	"testing"

	"github.com/huangsam/picklist/schema"
	"github.com/stretchr/testify/assert"
)

// TestStrengths tests strength tagging with generic and fixed thresholds.
func TestStrengths(t *testing.T) {
	b := bundleWith(map[schema.Metric]float64{
		schema.MetricOPR:         0.95,
		schema.MetricDPR:         0.92,
		schema.MetricCCWM:        0.93,
		schema.MetricReliability: 0.95,
	})

	strengths := Strengths(b, schema.DefaultStrengthThreshold)
	assert.Equal(t, []string{
		"High offensive output (OPR)",
		"Strong defense (low DPR)",
		"Excellent net contribution (CCWM)",
		"Extremely reliable robot",
	}, strengths)

	strict := Strengths(b, 0.95)
	assert.Subset(t, strengths, strict)
	assert.Equal(t, []string{"High offensive output (OPR)", "Extremely reliable robot"}, strict)
}

// TestWeaknesses tests weakness tagging with generic and fixed thresholds.
func TestWeaknesses(t *testing.T) {
	t.Run("reliability concerns", func(t *testing.T) {
		b := bundleWith(map[schema.Metric]float64{schema.MetricReliability: 0.45})
		assert.Equal(t, []string{"Reliability concerns"}, Weaknesses(b, schema.DefaultWeaknessThreshold))
	})

	t.Run("poor defense and offense", func(t *testing.T) {
		b := bundleWith(map[schema.Metric]float64{
			schema.MetricOPR:         0.05,
			schema.MetricDPR:         0.10,
			schema.MetricCCWM:        0.12,
			schema.MetricReliability: 0.80,
		})
		assert.Equal(t, []string{
			"Lower offensive output",
			"Defense needs improvement (high DPR)",
			"Low net contribution",
		}, Weaknesses(b, schema.DefaultWeaknessThreshold))
	})

	t.Run("reliability threshold is fixed", func(t *testing.T) {
		b := bundleWith(map[schema.Metric]float64{schema.MetricReliability: 0.75})
		assert.NotContains(t, Weaknesses(b, 0.8), "Reliability concerns", "reliability ignores the generic threshold")
		assert.Empty(t, Strengths(b, 0.7))
	})
}

// TestStrengthsNeutralTeam tests that a team at the neutral midpoint gets no tags.
func TestStrengthsNeutralTeam(t *testing.T) {
	var b schema.TeamNormalization
	for _, m := range schema.AllMetrics {
		b.Set(m, Normalize(42, 42, 42, m.Definition().Invert))
	}

	strengths := Strengths(b, schema.DefaultStrengthThreshold)
	weaknesses := Weaknesses(b, schema.DefaultWeaknessThreshold)
	assert.NotNil(t, strengths)
	assert.NotNil(t, weaknesses)
	assert.Empty(t, strengths)
	assert.Empty(t, weaknesses)
}

// TestThresholdMonotonic tests that stricter thresholds never add tags.
func TestThresholdMonotonic(t *testing.T) {
	b := bundleWith(map[schema.Metric]float64{
		schema.MetricOPR:          0.99,
		schema.MetricCCWM:         0.86,
		schema.MetricAutoScore:    0.91,
		schema.MetricTeleopScore:  0.10,
		schema.MetricEndgameScore: 0.02,
	})

	prev := Strengths(b, 0.5)
	for _, high := range []float64{0.6, 0.85, 0.9, 0.95, 1.0} {
		next := Strengths(b, high)
		assert.Subset(t, prev, next, "high threshold %v", high)
		prev = next
	}

	prev = Weaknesses(b, 0.5)
	for _, low := range []float64{0.4, 0.15, 0.05, 0.0} {
		next := Weaknesses(b, low)
		assert.Subset(t, prev, next, "low threshold %v", low)
		prev = next
	}
}
