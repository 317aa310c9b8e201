package core

import (
	"sort"

	"github.com/huangsam/picklist/schema"
)

// RankTeams ranks teams with the default strength/weakness thresholds.
func RankTeams(teams []schema.RawTeamData, weights schema.PickListWeights, minMatches int) []schema.RankedTeam {
	return RankTeamsWithThresholds(teams, weights, minMatches, schema.DefaultStrengthThreshold, schema.DefaultWeaknessThreshold)
}

// RankTeamsWithThresholds filters out teams with fewer than minMatches matches,
// normalizes the remaining pool, scores and sorts it, and tags each team.
// Equal scores are ordered by ascending team number. Ranks are 1-based and
// dense. The input slice and its teams are never modified.
func RankTeamsWithThresholds(teams []schema.RawTeamData, weights schema.PickListWeights, minMatches int, high, low float64) []schema.RankedTeam {
	eligible := filterByMatches(teams, minMatches)
	if len(eligible) == 0 {
		return []schema.RankedTeam{}
	}

	bundles := NormalizeAll(eligible)
	ranked := make([]schema.RankedTeam, 0, len(eligible))
	for _, t := range eligible {
		b := bundles[t.TeamNumber]
		ranked = append(ranked, schema.RankedTeam{
			RawTeamData:    t.Clone(),
			CompositeScore: CompositeScore(b, weights),
			Strengths:      Strengths(b, high),
			Weaknesses:     Weaknesses(b, low),
			Breakdown:      scoreBreakdown(b, weights),
		})
	}

	sortRanked(ranked)
	assignRanks(ranked)
	return ranked
}

// filterByMatches keeps teams that played at least minMatches matches.
func filterByMatches(teams []schema.RawTeamData, minMatches int) []schema.RawTeamData {
	eligible := make([]schema.RawTeamData, 0, len(teams))
	for _, t := range teams {
		if t.MatchesPlayed >= minMatches {
			eligible = append(eligible, t)
		}
	}
	return eligible
}

// sortRanked orders by score descending, then team number ascending.
func sortRanked(ranked []schema.RankedTeam) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].CompositeScore != ranked[j].CompositeScore {
			return ranked[i].CompositeScore > ranked[j].CompositeScore
		}
		return ranked[i].TeamNumber < ranked[j].TeamNumber
	})
}

// assignRanks numbers the sorted list 1..n.
func assignRanks(ranked []schema.RankedTeam) {
	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Picked = false
	}
}
