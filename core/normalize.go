package core

import (
	"math"

	"github.com/huangsam/picklist/schema"
)

// neutralScore is what every team gets when the pool cannot tell them apart.
const neutralScore = 0.5

// clamp01 bounds v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Normalize rescales value to [0,1] against the pool bounds min and max.
// A zero-range pool yields 0.5. When invert is set, lower raw values score higher.
// Values slightly outside [min,max] are clamped.
func Normalize(value, min, max float64, invert bool) schema.NormalizedMetric {
	nm := schema.NormalizedMetric{
		Original: value,
		Min:      min,
		Max:      max,
		Range:    max - min,
	}

	if max == min || math.IsNaN(nm.Range) {
		nm.Range = 0
		nm.Normalized = neutralScore
		return nm
	}

	n := (value - min) / (max - min)
	if invert {
		n = 1 - n
	}
	if math.IsNaN(n) {
		n = neutralScore
	}
	nm.Normalized = clamp01(n)
	return nm
}

// poolBounds holds the min and max of every metric across a pool.
type poolBounds struct {
	min [schema.MetricCount]float64
	max [schema.MetricCount]float64
}

// computePoolBounds scans the pool once, after default substitution.
func computePoolBounds(teams []schema.RawTeamData) poolBounds {
	var b poolBounds
	for _, m := range schema.AllMetrics {
		b.min[m] = math.Inf(1)
		b.max[m] = math.Inf(-1)
	}
	for _, t := range teams {
		for _, m := range schema.AllMetrics {
			v := m.Definition().Value(t)
			b.min[m] = math.Min(b.min[m], v)
			b.max[m] = math.Max(b.max[m], v)
		}
	}
	return b
}

// normalizeTeam builds the bundle of one team against the pool bounds.
func normalizeTeam(t schema.RawTeamData, b poolBounds) schema.TeamNormalization {
	bundle := schema.TeamNormalization{TeamNumber: t.TeamNumber}
	for _, m := range schema.AllMetrics {
		def := m.Definition()
		bundle.Set(m, Normalize(def.Value(t), b.min[m], b.max[m], def.Invert))
	}
	return bundle
}

// NormalizeAll normalizes every tracked metric of every team against the
// pool-wide min and max. Missing optional metrics are replaced by their
// default before the bounds are computed, so each team gets a full bundle.
func NormalizeAll(teams []schema.RawTeamData) map[int]schema.TeamNormalization {
	result := make(map[int]schema.TeamNormalization, len(teams))
	if len(teams) == 0 {
		return result
	}

	bounds := computePoolBounds(teams)
	for _, t := range teams {
		result[t.TeamNumber] = normalizeTeam(t, bounds)
	}
	return result
}
