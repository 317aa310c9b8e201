package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// PickListWeights assigns a weight to each tracked metric.
type PickListWeights struct {
	OPR           float64 `json:"opr" mapstructure:"opr"`
	DPR           float64 `json:"dpr" mapstructure:"dpr"`
	CCWM          float64 `json:"ccwm" mapstructure:"ccwm"`
	AutoScore     float64 `json:"autoScore" mapstructure:"autoScore"`
	TeleopScore   float64 `json:"teleopScore" mapstructure:"teleopScore"`
	EndgameScore  float64 `json:"endgameScore" mapstructure:"endgameScore"`
	Reliability   float64 `json:"reliability" mapstructure:"reliability"`
	DriverSkill   float64 `json:"driverSkill" mapstructure:"driverSkill"`
	DefenseRating float64 `json:"defenseRating" mapstructure:"defenseRating"`
	SpeedRating   float64 `json:"speedRating" mapstructure:"speedRating"`
}

// field returns a pointer to the weight of a metric.
func (w *PickListWeights) field(m Metric) *float64 {
	switch m {
	case MetricOPR:
		return &w.OPR
	case MetricDPR:
		return &w.DPR
	case MetricCCWM:
		return &w.CCWM
	case MetricAutoScore:
		return &w.AutoScore
	case MetricTeleopScore:
		return &w.TeleopScore
	case MetricEndgameScore:
		return &w.EndgameScore
	case MetricReliability:
		return &w.Reliability
	case MetricDriverSkill:
		return &w.DriverSkill
	case MetricDefenseRating:
		return &w.DefenseRating
	case MetricSpeedRating:
		return &w.SpeedRating
	}
	return nil
}

// Get returns the weight of a metric.
func (w PickListWeights) Get(m Metric) float64 {
	if p := w.field(m); p != nil {
		return *p
	}
	return 0
}

// Set changes the weight of a metric.
func (w *PickListWeights) Set(m Metric, v float64) {
	if p := w.field(m); p != nil {
		*p = v
	}
}

// Sum returns the total of all weights.
func (w PickListWeights) Sum() float64 {
	var sum float64
	for _, m := range AllMetrics {
		sum += w.Get(m)
	}
	return sum
}

// String renders the non-zero weights as "key=value" pairs.
func (w PickListWeights) String() string {
	var parts []string
	for _, m := range AllMetrics {
		if v := w.Get(m); v != 0 {
			parts = append(parts, fmt.Sprintf("%s=%s", m, strconv.FormatFloat(v, 'f', -1, 64)))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// ParseWeights parses a string like "opr=0.4,dpr=0.2,reliability=0.4".
// Metrics that are not mentioned get a weight of zero.
func ParseWeights(s string) (PickListWeights, error) {
	var w PickListWeights
	if strings.TrimSpace(s) == "" {
		return w, fmt.Errorf("weights string is empty")
	}

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, value, ok := strings.Cut(part, "=")
		if !ok {
			key, value, ok = strings.Cut(part, ":")
		}
		if !ok {
			return w, fmt.Errorf("invalid weight format '%s', expected 'metric=value'", part)
		}

		m, err := ParseMetric(key)
		if err != nil {
			return w, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return w, fmt.Errorf("invalid weight value '%s' for metric %s: %w", value, m, err)
		}
		w.Set(m, v)
	}
	return w, nil
}

// GetPresetWeights returns the weight vector for a preset strategy.
// The boolean is false when the strategy is not a known preset.
func GetPresetWeights(s Strategy) (PickListWeights, bool) {
	switch s {
	case BalancedStrategy:
		return PickListWeights{
			OPR:           0.20,
			DPR:           0.10,
			CCWM:          0.20,
			AutoScore:     0.10,
			TeleopScore:   0.10,
			EndgameScore:  0.10,
			Reliability:   0.10,
			DriverSkill:   0.05,
			DefenseRating: 0.025,
			SpeedRating:   0.025,
		}, true
	case OffensiveStrategy:
		return PickListWeights{
			OPR:          0.30,
			CCWM:         0.15,
			AutoScore:    0.15,
			TeleopScore:  0.20,
			EndgameScore: 0.10,
			Reliability:  0.05,
			DriverSkill:  0.05,
		}, true
	case DefensiveStrategy:
		return PickListWeights{
			OPR:           0.05,
			DPR:           0.30,
			CCWM:          0.15,
			TeleopScore:   0.05,
			EndgameScore:  0.05,
			Reliability:   0.10,
			DriverSkill:   0.10,
			DefenseRating: 0.15,
			SpeedRating:   0.05,
		}, true
	case ReliableStrategy:
		return PickListWeights{
			OPR:          0.10,
			DPR:          0.05,
			CCWM:         0.15,
			AutoScore:    0.05,
			TeleopScore:  0.05,
			EndgameScore: 0.10,
			Reliability:  0.35,
			DriverSkill:  0.10,
			SpeedRating:  0.05,
		}, true
	default:
		return PickListWeights{}, false
	}
}

// GetStrategyPurpose returns a one-line description of a preset.
func GetStrategyPurpose(s Strategy) string {
	switch s {
	case BalancedStrategy:
		return "All-round partner weighing offense, defense and consistency"
	case OffensiveStrategy:
		return "Maximize alliance scoring output"
	case DefensiveStrategy:
		return "Prioritize defenders that suppress opponent scoring"
	case ReliableStrategy:
		return "Favor robots that finish every match"
	case CustomStrategy:
		return "User supplied weight vector"
	default:
		return ""
	}
}
