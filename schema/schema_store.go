package schema

import "time"

// HistoryStatus represents the status of the ranking history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalTeams    int              `json:"total_teams"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the picklist_runs table.
type RunRecord struct {
	RunID       int64
	EventKey    string
	EventName   string
	Strategy    string
	Weights     string // JSON-encoded PickListWeights
	MinMatches  int32
	TeamCount   int32
	Warnings    *string
	GeneratedAt time.Time
}

// RunTeamRecord represents a row from the picklist_run_teams table.
type RunTeamRecord struct {
	RunID          int64
	TeamNumber     int32
	Rank           int32
	CompositeScore float64
	OPR            float64
	DPR            float64
	CCWM           float64
	MatchesPlayed  int32
	Strengths      string // "|" separated labels
	Weaknesses     string // "|" separated labels
}
