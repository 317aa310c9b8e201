package core

import "github.com/huangsam/picklist/schema"

// Strengths lists the strength labels of a bundle in metric order. Generic
// metrics qualify at normalized >= high; reliability uses its fixed bar.
// Metrics from a zero-range pool carry no signal and are skipped.
func Strengths(b schema.TeamNormalization, high float64) []string {
	out := []string{}
	for _, m := range schema.AllMetrics {
		nm := b.Get(m)
		if nm.Neutral() {
			continue
		}
		def := m.Definition()
		if def.Fixed {
			if nm.Normalized > schema.ReliabilityStrengthAbove {
				out = append(out, def.Strength)
			}
			continue
		}
		if nm.Normalized >= high {
			out = append(out, def.Strength)
		}
	}
	return out
}

// Weaknesses lists the weakness labels of a bundle in metric order. Generic
// metrics qualify at normalized <= low; reliability uses its fixed bar.
func Weaknesses(b schema.TeamNormalization, low float64) []string {
	out := []string{}
	for _, m := range schema.AllMetrics {
		nm := b.Get(m)
		if nm.Neutral() {
			continue
		}
		def := m.Definition()
		if def.Fixed {
			if nm.Normalized < schema.ReliabilityWeaknessBelow {
				out = append(out, def.Weakness)
			}
			continue
		}
		if nm.Normalized <= low {
			out = append(out, def.Weakness)
		}
	}
	return out
}
