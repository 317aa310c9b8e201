package core

import (
	"math"

	"github.com/huangsam/picklist/schema"
)

// CompositeScore combines a normalized bundle into one score using
// score = sum(normalized_i * weight_i) / sum(weight_i).
// A zero weight sum, or any non-finite result, scores 0.
func CompositeScore(b schema.TeamNormalization, w schema.PickListWeights) float64 {
	var weighted, total float64
	for _, m := range schema.AllMetrics {
		weight := w.Get(m)
		weighted += b.Get(m).Normalized * weight
		total += weight
	}

	if total == 0 {
		return 0
	}
	score := weighted / total
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}

// scoreBreakdown returns each metric's share of the composite score.
func scoreBreakdown(b schema.TeamNormalization, w schema.PickListWeights) map[string]float64 {
	breakdown := make(map[string]float64, schema.MetricCount)
	total := w.Sum()
	if total == 0 {
		return breakdown
	}
	for _, m := range schema.AllMetrics {
		if weight := w.Get(m); weight != 0 {
			breakdown[m.String()] = b.Get(m).Normalized * weight / total
		}
	}
	return breakdown
}
