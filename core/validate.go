package core

import (
	"fmt"
	"math"

	"github.com/huangsam/picklist/schema"
)

// Weight sums outside this band are probably a typo, e.g. percentages
// entered as whole numbers.
const (
	minConventionalSum = 0.5
	maxConventionalSum = 1.5
)

// ValidateWeights checks a weight vector without rejecting it. Negative,
// non-finite and all-zero vectors are invalid; an unusual total only warns
// since scoring divides by the weight sum anyway.
func ValidateWeights(w schema.PickListWeights) schema.WeightValidation {
	result := schema.WeightValidation{Valid: true, Warnings: []string{}}

	allZero := true
	finite := true
	for _, m := range schema.AllMetrics {
		v := w.Get(m)
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			result.Valid = false
			finite = false
			result.Warnings = append(result.Warnings, fmt.Sprintf("Non-finite weight for metric %s", m))
		case v < 0:
			result.Valid = false
			result.Warnings = append(result.Warnings, fmt.Sprintf("Negative weight for metric %s", m))
		}
		if v != 0 {
			allZero = false
		}
	}

	if allZero {
		result.Valid = false
		result.Warnings = append(result.Warnings, "All weights are zero - pick list will be meaningless")
		return result
	}

	if sum := w.Sum(); finite && (sum < minConventionalSum || sum > maxConventionalSum) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Weights sum to %.2f instead of 1.00 - scores are normalized by the total", sum))
	}
	return result
}
