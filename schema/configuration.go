package schema

import "time"

// MaxConfigurationNameLength is the longest name a saved configuration may have.
const MaxConfigurationNameLength = 255

// Column is one pick-list column: a weight selection plus a sort order.
type Column struct {
	ID            string           `json:"id"`
	Title         string           `json:"title,omitempty"`
	SortMetric    string           `json:"sortMetric,omitempty"` // "composite", a metric key or "matchesPlayed"
	SortDirection SortDirection    `json:"sortDirection,omitempty"`
	Strategy      Strategy         `json:"strategy,omitempty"`
	Weights       *PickListWeights `json:"weights,omitempty"`
}

// Selection returns the weight selection the column ranks with.
func (c Column) Selection() WeightSelection {
	if c.Weights != nil {
		return WeightSelection{Strategy: CustomStrategy, Weights: c.Weights}
	}
	if c.Strategy == "" {
		return PresetSelection(BalancedStrategy)
	}
	return PresetSelection(c.Strategy)
}

// ConfigurationPayload is the part of a saved configuration the engine consumes.
type ConfigurationPayload struct {
	Columns []Column `json:"columns"`
}

// PickListConfiguration is a named, persisted set of pick-list columns
// scoped to a user and an event.
type PickListConfiguration struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	EventKey  string               `json:"eventKey"`
	Name      string               `json:"name"`
	Payload   ConfigurationPayload `json:"payload"`
	IsDefault bool                 `json:"isDefault"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// ColumnResult is the ranked output of one column.
type ColumnResult struct {
	Column   Column       `json:"column"`
	Teams    []RankedTeam `json:"teams"`
	Warnings []string     `json:"warnings,omitempty"`
}
