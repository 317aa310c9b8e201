package schema

// StrategyInfo represents a weight preset for display purposes.
type StrategyInfo struct {
	Name    Strategy           `json:"name"`
	Purpose string             `json:"purpose"`
	Weights map[string]float64 `json:"weights"`
	Formula string             `json:"formula"`
}

// StrategiesRenderModel contains all processed data needed for displaying presets.
type StrategiesRenderModel struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Strategies  []StrategyInfo `json:"strategies"`
}
