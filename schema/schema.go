// Package schema has the models, constants and presets shared by all parts of picklist.
package schema

import "time"

// RawTeamData is the per-team performance summary produced upstream by the
// statistics pipeline. It is treated as immutable input to the ranking engine.
type RawTeamData struct {
	TeamNumber    int      `json:"teamNumber"`
	TeamName      string   `json:"teamName,omitempty"`
	Nickname      string   `json:"nickname,omitempty"`
	MatchesPlayed int      `json:"matchesPlayed"`
	OPR           float64  `json:"opr"`
	DPR           float64  `json:"dpr"`
	CCWM          float64  `json:"ccwm"`
	Notes         []string `json:"notes,omitempty"`

	AvgAutoScore     *float64 `json:"avgAutoScore,omitempty"`
	AvgTeleopScore   *float64 `json:"avgTeleopScore,omitempty"`
	AvgEndgameScore  *float64 `json:"avgEndgameScore,omitempty"`
	ReliabilityScore *float64 `json:"reliabilityScore,omitempty"` // fraction of matches without a breakdown (0-1)
	AvgDriverSkill   *float64 `json:"avgDriverSkill,omitempty"`   // 1-5 scale
	AvgDefenseRating *float64 `json:"avgDefenseRating,omitempty"` // 1-5 scale
	AvgSpeedRating   *float64 `json:"avgSpeedRating,omitempty"`   // 1-5 scale
}

// EventStats is everything the statistics collaborator knows about one event.
type EventStats struct {
	EventKey  string        `json:"eventKey"`
	EventName string        `json:"eventName"`
	Teams     []RawTeamData `json:"teams"`
}

// NormalizedMetric is one metric rescaled to [0,1] across the candidate pool.
type NormalizedMetric struct {
	Original   float64 `json:"original"`
	Normalized float64 `json:"normalized"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Range      float64 `json:"range"`
}

// Neutral reports whether the metric came from a zero-range pool and therefore
// sits at the midpoint without telling teams apart.
func (m NormalizedMetric) Neutral() bool {
	return m.Range == 0 && m.Normalized == 0.5
}

// TeamNormalization holds one NormalizedMetric per tracked metric for a team.
type TeamNormalization struct {
	TeamNumber int
	Metrics    [MetricCount]NormalizedMetric
}

// Get returns the normalized bundle entry for a metric.
func (b TeamNormalization) Get(m Metric) NormalizedMetric {
	if !m.Valid() {
		return NormalizedMetric{}
	}
	return b.Metrics[m]
}

// Set stores the normalized bundle entry for a metric.
func (b *TeamNormalization) Set(m Metric, nm NormalizedMetric) {
	if m.Valid() {
		b.Metrics[m] = nm
	}
}

// RankedTeam is a team's position in a generated pick list.
type RankedTeam struct {
	Rank int `json:"rank"`
	RawTeamData
	CompositeScore float64  `json:"compositeScore"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Picked         bool     `json:"picked"`

	// Breakdown is each metric's share of the composite score.
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
}

// WeightValidation is the advisory result of checking a weight vector.
type WeightValidation struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
}

// PickListStatistics summarizes the composite scores and raw ratings of a list.
type PickListStatistics struct {
	AvgCompositeScore    float64 `json:"avgCompositeScore"`
	MedianCompositeScore float64 `json:"medianCompositeScore"`
	StdDevCompositeScore float64 `json:"stdDevCompositeScore"`
	AvgOPR               float64 `json:"avgOPR"`
	AvgDPR               float64 `json:"avgDPR"`
	AvgCCWM              float64 `json:"avgCCWM"`
}

// PickList is the result of generating a ranking for an event.
type PickList struct {
	EventKey    string             `json:"eventKey"`
	EventName   string             `json:"eventName"`
	Strategy    Strategy           `json:"strategy"`
	Weights     PickListWeights    `json:"weights"`
	Teams       []RankedTeam       `json:"teams"`
	Statistics  PickListStatistics `json:"statistics"`
	Warnings    []string           `json:"warnings,omitempty"`
	GeneratedAt time.Time          `json:"generatedAt"`
}

// PickedCount returns how many teams in the list are flagged as picked.
func (p *PickList) PickedCount() int {
	n := 0
	for _, t := range p.Teams {
		if t.Picked {
			n++
		}
	}
	return n
}

// Limit returns a shallow copy of the list holding at most n teams.
// A non-positive n keeps every team.
func (p *PickList) Limit(n int) *PickList {
	out := *p
	if n > 0 && len(out.Teams) > n {
		out.Teams = out.Teams[:n]
	}
	return &out
}

// GenerateOptions tunes a single pick-list generation.
type GenerateOptions struct {
	MinMatches        int     `json:"minMatches"`
	IncludeNotes      bool    `json:"includeNotes"`
	StrengthThreshold float64 `json:"strengthThreshold"`
	WeaknessThreshold float64 `json:"weaknessThreshold"`
}

// WithDefaults fills unset thresholds with the documented defaults.
func (o GenerateOptions) WithDefaults() GenerateOptions {
	if o.StrengthThreshold == 0 {
		o.StrengthThreshold = DefaultStrengthThreshold
	}
	if o.WeaknessThreshold == 0 {
		o.WeaknessThreshold = DefaultWeaknessThreshold
	}
	return o
}

// WeightSelection picks either a named preset or an explicit weight vector.
// A non-nil Weights bypasses the preset lookup entirely.
type WeightSelection struct {
	Strategy Strategy         `json:"strategy,omitempty"`
	Weights  *PickListWeights `json:"weights,omitempty"`
}

// PresetSelection selects the weights of a named strategy.
func PresetSelection(s Strategy) WeightSelection {
	return WeightSelection{Strategy: s}
}

// CustomSelection selects an explicit weight vector.
func CustomSelection(w PickListWeights) WeightSelection {
	return WeightSelection{Strategy: CustomStrategy, Weights: &w}
}
