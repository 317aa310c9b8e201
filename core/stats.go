package core

import (
	"math"
	"sort"

	"github.com/huangsam/picklist/schema"
)

// CalculateStatistics summarizes a ranked list. The standard deviation is
// the population one. Every field is 0 for an empty list.
func CalculateStatistics(ranked []schema.RankedTeam) schema.PickListStatistics {
	var stats schema.PickListStatistics
	n := len(ranked)
	if n == 0 {
		return stats
	}

	scores := make([]float64, n)
	var sumScore, sumOPR, sumDPR, sumCCWM float64
	for i, t := range ranked {
		scores[i] = t.CompositeScore
		sumScore += t.CompositeScore
		sumOPR += t.OPR
		sumDPR += t.DPR
		sumCCWM += t.CCWM
	}

	count := float64(n)
	stats.AvgCompositeScore = sumScore / count
	stats.AvgOPR = sumOPR / count
	stats.AvgDPR = sumDPR / count
	stats.AvgCCWM = sumCCWM / count

	var sq float64
	for _, s := range scores {
		d := s - stats.AvgCompositeScore
		sq += d * d
	}
	stats.StdDevCompositeScore = math.Sqrt(sq / count)
	stats.MedianCompositeScore = median(scores)
	return stats
}

// median sorts values in place and returns the middle value, or the mean
// of the two middle values for an even count.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sort.Float64s(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}
