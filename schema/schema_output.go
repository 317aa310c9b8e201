package schema

// Score tiers of a composite score.
const (
	EliteTier  = "Elite"
	StrongTier = "Strong"
	SolidTier  = "Solid"
	DepthTier  = "Depth"
)

// EnrichedRankedTeam adds presentation data to a RankedTeam.
type EnrichedRankedTeam struct {
	Tier string `json:"tier"`
	RankedTeam
}

// GetPlainTier returns the tier of a composite score in [0,1].
func GetPlainTier(score float64) string {
	switch {
	case score >= 0.75:
		return EliteTier
	case score >= 0.6:
		return StrongTier
	case score >= 0.4:
		return SolidTier
	default:
		return DepthTier
	}
}

// EnrichTeams adds a tier to each ranked team.
func EnrichTeams(teams []RankedTeam) []EnrichedRankedTeam {
	output := make([]EnrichedRankedTeam, len(teams))
	for i, t := range teams {
		output[i] = EnrichedRankedTeam{
			Tier:       GetPlainTier(t.CompositeScore),
			RankedTeam: t,
		}
	}
	return output
}
