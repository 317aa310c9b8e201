package schema

import (
	"slices"
	"strings"
)

// labelSeparator joins strength and weakness labels in flat storage.
const labelSeparator = "|"

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}

// cloneFloat copies an optional value so the clone shares no memory.
func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone returns a deep copy of the team data.
func (t RawTeamData) Clone() RawTeamData {
	c := t
	c.Notes = slices.Clone(t.Notes)
	c.AvgAutoScore = cloneFloat(t.AvgAutoScore)
	c.AvgTeleopScore = cloneFloat(t.AvgTeleopScore)
	c.AvgEndgameScore = cloneFloat(t.AvgEndgameScore)
	c.ReliabilityScore = cloneFloat(t.ReliabilityScore)
	c.AvgDriverSkill = cloneFloat(t.AvgDriverSkill)
	c.AvgDefenseRating = cloneFloat(t.AvgDefenseRating)
	c.AvgSpeedRating = cloneFloat(t.AvgSpeedRating)
	return c
}

// DisplayName returns the best human name for a team.
func (t RawTeamData) DisplayName() string {
	switch {
	case strings.TrimSpace(t.Nickname) != "":
		return t.Nickname
	case strings.TrimSpace(t.TeamName) != "":
		return t.TeamName
	default:
		return ""
	}
}

// JoinLabels flattens labels for single-column storage.
func JoinLabels(labels []string) string {
	return strings.Join(labels, labelSeparator)
}

// SplitLabels reverses JoinLabels.
func SplitLabels(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, labelSeparator)
}
