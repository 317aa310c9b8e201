package schema

import (
	"fmt"
	"strings"
)

// Metric identifies one of the tracked team metrics.
type Metric int

// Tracked metrics, in the order used for tables, weights and tags.
const (
	MetricOPR Metric = iota
	MetricDPR
	MetricCCWM
	MetricAutoScore
	MetricTeleopScore
	MetricEndgameScore
	MetricReliability
	MetricDriverSkill
	MetricDefenseRating
	MetricSpeedRating

	MetricCount = 10
)

// neutralRating is the mid-scale value of a 1-5 scouting rating.
const neutralRating = 3.0

// MetricDefinition is the static description of a tracked metric.
type MetricDefinition struct {
	Key      string // weight and column key, e.g. "opr"
	Label    string // short display label
	Invert   bool   // lower raw values are better
	Default  float64
	Strength string
	Weakness string
	Fixed    bool // thresholds are fixed rather than caller-tuned

	value func(t RawTeamData) *float64
}

// Value returns the raw value of the metric for a team, substituting the
// metric default when the optional field is absent.
func (d MetricDefinition) Value(t RawTeamData) float64 {
	if v := d.value(t); v != nil {
		return *v
	}
	return d.Default
}

// Present reports whether the team carries a value for the metric.
func (d MetricDefinition) Present(t RawTeamData) bool {
	return d.value(t) != nil
}

var metricDefinitions = [MetricCount]MetricDefinition{
	MetricOPR: {
		Key:      "opr",
		Label:    "OPR",
		Strength: "High offensive output (OPR)",
		Weakness: "Lower offensive output",
		value:    func(t RawTeamData) *float64 { return &t.OPR },
	},
	MetricDPR: {
		Key:      "dpr",
		Label:    "DPR",
		Invert:   true,
		Strength: "Strong defense (low DPR)",
		Weakness: "Defense needs improvement (high DPR)",
		value:    func(t RawTeamData) *float64 { return &t.DPR },
	},
	MetricCCWM: {
		Key:      "ccwm",
		Label:    "CCWM",
		Strength: "Excellent net contribution (CCWM)",
		Weakness: "Low net contribution",
		value:    func(t RawTeamData) *float64 { return &t.CCWM },
	},
	MetricAutoScore: {
		Key:      "autoScore",
		Label:    "Auto",
		Strength: "Strong autonomous scoring",
		Weakness: "Weak autonomous scoring",
		value:    func(t RawTeamData) *float64 { return t.AvgAutoScore },
	},
	MetricTeleopScore: {
		Key:      "teleopScore",
		Label:    "Teleop",
		Strength: "Strong teleop scoring",
		Weakness: "Weak teleop scoring",
		value:    func(t RawTeamData) *float64 { return t.AvgTeleopScore },
	},
	MetricEndgameScore: {
		Key:      "endgameScore",
		Label:    "Endgame",
		Strength: "Consistent endgame points",
		Weakness: "Weak endgame",
		value:    func(t RawTeamData) *float64 { return t.AvgEndgameScore },
	},
	MetricReliability: {
		Key:      "reliability",
		Label:    "Reliability",
		Strength: "Extremely reliable robot",
		Weakness: "Reliability concerns",
		Fixed:    true,
		value:    func(t RawTeamData) *float64 { return t.ReliabilityScore },
	},
	MetricDriverSkill: {
		Key:      "driverSkill",
		Label:    "Driver",
		Default:  neutralRating,
		Strength: "Skilled drive team",
		Weakness: "Driver skill concerns",
		value:    func(t RawTeamData) *float64 { return t.AvgDriverSkill },
	},
	MetricDefenseRating: {
		Key:      "defenseRating",
		Label:    "Defense",
		Default:  neutralRating,
		Strength: "Effective defender",
		Weakness: "Ineffective on defense",
		value:    func(t RawTeamData) *float64 { return t.AvgDefenseRating },
	},
	MetricSpeedRating: {
		Key:      "speedRating",
		Label:    "Speed",
		Default:  neutralRating,
		Strength: "Fast drivetrain",
		Weakness: "Slow drivetrain",
		value:    func(t RawTeamData) *float64 { return t.AvgSpeedRating },
	},
}

// AllMetrics lists every tracked metric in table order.
var AllMetrics = []Metric{
	MetricOPR, MetricDPR, MetricCCWM,
	MetricAutoScore, MetricTeleopScore, MetricEndgameScore,
	MetricReliability, MetricDriverSkill, MetricDefenseRating, MetricSpeedRating,
}

// Valid reports whether m names a tracked metric.
func (m Metric) Valid() bool {
	return m >= 0 && m < MetricCount
}

// Definition returns the static definition of the metric.
func (m Metric) Definition() MetricDefinition {
	return metricDefinitions[m]
}

// String returns the metric key.
func (m Metric) String() string {
	if !m.Valid() {
		return fmt.Sprintf("metric(%d)", int(m))
	}
	return metricDefinitions[m].Key
}

// ParseMetric resolves a metric key case-insensitively.
func ParseMetric(key string) (Metric, error) {
	k := strings.TrimSpace(key)
	for _, m := range AllMetrics {
		if strings.EqualFold(metricDefinitions[m].Key, k) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown metric '%s'", key)
}
