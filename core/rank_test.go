package core

import (
	"testing"

	"github.com/huangsam/picklist/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeTeamPool returns a small event with one clear favorite.
func threeTeamPool() []schema.RawTeamData {
	return []schema.RawTeamData{
		{TeamNumber: 1678, Nickname: "Citrus Circuits", MatchesPlayed: 10, OPR: 75.5, DPR: 20.3, CCWM: 55.2, ReliabilityScore: schema.Float64Ptr(0.9)},
		{TeamNumber: 254, Nickname: "The Cheesy Poofs", MatchesPlayed: 10, OPR: 82.3, DPR: 18.5, CCWM: 63.8, ReliabilityScore: schema.Float64Ptr(1.0), Notes: []string{"fast cycles"}},
		{TeamNumber: 971, Nickname: "Spartan Robotics", MatchesPlayed: 3, OPR: 70.0, DPR: 25.1, CCWM: 44.9, ReliabilityScore: schema.Float64Ptr(0.6)},
	}
}

// bundleWith builds a bundle where the given metrics have the given
// normalized values and every other metric sits at a non-neutral 0.5.
func bundleWith(values map[schema.Metric]float64) schema.TeamNormalization {
	var b schema.TeamNormalization
	for _, m := range schema.AllMetrics {
		v, ok := values[m]
		if !ok {
			v = 0.5
		}
		b.Set(m, schema.NormalizedMetric{Original: v, Normalized: v, Min: 0, Max: 1, Range: 1})
	}
	return b
}

// TestRankTeams tests filtering, ordering and dense ranks.
func TestRankTeams(t *testing.T) {
	weights, _ := schema.GetPresetWeights(schema.BalancedStrategy)

	t.Run("min matches filter", func(t *testing.T) {
		ranked := RankTeams(threeTeamPool(), weights, 5)
		require.Len(t, ranked, 2)
		for _, team := range ranked {
			assert.NotEqual(t, 971, team.TeamNumber)
		}
	})

	t.Run("nobody qualifies", func(t *testing.T) {
		ranked := RankTeams(threeTeamPool(), weights, 11)
		assert.NotNil(t, ranked)
		assert.Empty(t, ranked)
	})

	t.Run("empty pool", func(t *testing.T) {
		assert.Empty(t, RankTeams(nil, weights, 0))
	})

	t.Run("dense ranks and descending scores", func(t *testing.T) {
		ranked := RankTeams(threeTeamPool(), weights, 0)
		require.Len(t, ranked, 3)
		assert.Equal(t, 254, ranked[0].TeamNumber)
		assert.Equal(t, 971, ranked[2].TeamNumber)
		for i, team := range ranked {
			assert.Equal(t, i+1, team.Rank)
			assert.False(t, team.Picked)
			assert.GreaterOrEqual(t, team.CompositeScore, 0.0)
			assert.LessOrEqual(t, team.CompositeScore, 1.0)
			if i > 0 {
				assert.LessOrEqual(t, team.CompositeScore, ranked[i-1].CompositeScore)
			}
		}
	})

	t.Run("pool is renormalized after filtering", func(t *testing.T) {
		ranked := RankTeams(threeTeamPool(), schema.PickListWeights{OPR: 1}, 5)
		require.Len(t, ranked, 2)
		assert.InDelta(t, 1.0, ranked[0].CompositeScore, 1e-9)
		assert.InDelta(t, 0.0, ranked[1].CompositeScore, 1e-9, "1678 is the weakest qualified team")
	})

	t.Run("strengths and weaknesses are attached", func(t *testing.T) {
		ranked := RankTeams(threeTeamPool(), weights, 0)
		assert.Contains(t, ranked[0].Strengths, "High offensive output (OPR)")
		assert.Contains(t, ranked[0].Strengths, "Strong defense (low DPR)")
		assert.Contains(t, ranked[2].Weaknesses, "Reliability concerns")
		assert.NotNil(t, ranked[1].Strengths)
		assert.NotNil(t, ranked[1].Weaknesses)
	})
}

// TestRankTeamsTieBreak tests that equal scores are ordered by team number.
func TestRankTeamsTieBreak(t *testing.T) {
	teams := []schema.RawTeamData{
		{TeamNumber: 3476, MatchesPlayed: 9, OPR: 40},
		{TeamNumber: 118, MatchesPlayed: 9, OPR: 40},
		{TeamNumber: 2056, MatchesPlayed: 9, OPR: 40},
	}

	for range 5 {
		ranked := RankTeams(teams, schema.PickListWeights{OPR: 1}, 0)
		require.Len(t, ranked, 3)
		assert.Equal(t, []int{118, 2056, 3476}, []int{ranked[0].TeamNumber, ranked[1].TeamNumber, ranked[2].TeamNumber})
		assert.Equal(t, ranked[0].CompositeScore, ranked[2].CompositeScore)
	}
}

// TestRankTeamsDegenerateWeights tests that bad weights degrade instead of failing.
func TestRankTeamsDegenerateWeights(t *testing.T) {
	ranked := RankTeams(threeTeamPool(), schema.PickListWeights{}, 0)
	require.Len(t, ranked, 3)
	for _, team := range ranked {
		assert.Equal(t, 0.0, team.CompositeScore)
	}
	assert.Equal(t, 254, ranked[0].TeamNumber, "all-zero scores fall back to team number order")

	negative := RankTeams(threeTeamPool(), schema.PickListWeights{OPR: 1, DPR: -0.5}, 0)
	assert.Len(t, negative, 3)
}

// TestRankTeamsDoesNotMutateInput tests that the input pool is left untouched.
func TestRankTeamsDoesNotMutateInput(t *testing.T) {
	teams := threeTeamPool()
	before := threeTeamPool()
	weights, _ := schema.GetPresetWeights(schema.ReliableStrategy)

	ranked := RankTeams(teams, weights, 0)
	ranked[0].Notes[0] = "changed"
	*ranked[0].ReliabilityScore = 0

	assert.Equal(t, before, teams)
}

// BenchmarkRankTeams benchmarks ranking a full event.
func BenchmarkRankTeams(b *testing.B) {
	teams := make([]schema.RawTeamData, 0, 60)
	for i := range 60 {
		teams = append(teams, schema.RawTeamData{
			TeamNumber:    100 + i,
			MatchesPlayed: 8 + i%5,
			OPR:           float64(20 + i%37),
			DPR:           float64(10 + i%23),
			CCWM:          float64(i%41) - 10,
			AvgAutoScore:  schema.Float64Ptr(float64(i % 17)),
		})
	}
	weights, _ := schema.GetPresetWeights(schema.BalancedStrategy)

	for b.Loop() {
		RankTeams(teams, weights, 5)
	}
}
