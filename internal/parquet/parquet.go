// Package parquet provides data structures and functions for exporting pick
// lists and ranking history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/picklist/schema"
	"github.com/parquet-go/parquet-go"
)

// PickListRun represents a single recorded pick-list generation.
// This struct maps to the picklist_runs database table.
type PickListRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	EventKey  string `parquet:"event_key,snappy"`
	EventName string `parquet:"event_name,snappy"`
	Strategy  string `parquet:"strategy,snappy"`

	// Weights contains the JSON-encoded weight vector
	Weights string `parquet:"weights,snappy"`

	MinMatches int32 `parquet:"min_matches,snappy"`
	TeamCount  int32 `parquet:"team_count,snappy"`

	// Warnings contains the weight validation warnings (nullable)
	Warnings *string `parquet:"warnings,optional,snappy"`

	// GeneratedAt is stored as TIMESTAMP with nanosecond precision
	GeneratedAt time.Time `parquet:"generated_at,snappy"`
}

// PickListRunTeam represents one ranked team of a recorded run.
// This struct maps to the picklist_run_teams database table.
type PickListRunTeam struct {
	RunID          int64   `parquet:"run_id,snappy"`
	TeamNumber     int32   `parquet:"team_number,snappy"`
	Rank           int32   `parquet:"rank,snappy"`
	CompositeScore float64 `parquet:"composite_score,snappy"`
	OPR            float64 `parquet:"opr,snappy"`
	DPR            float64 `parquet:"dpr,snappy"`
	CCWM           float64 `parquet:"ccwm,snappy"`
	MatchesPlayed  int32   `parquet:"matches_played,snappy"`
	Strengths      string  `parquet:"strengths,snappy"`
	Weaknesses     string  `parquet:"weaknesses,snappy"`
}

// RankedTeamRow is one row of a pick list exported directly to Parquet.
// Optional scouting averages stay nullable.
type RankedTeamRow struct {
	EventKey         string   `parquet:"event_key,snappy"`
	Strategy         string   `parquet:"strategy,snappy"`
	Rank             int32    `parquet:"rank,snappy"`
	TeamNumber       int32    `parquet:"team_number,snappy"`
	TeamName         string   `parquet:"team_name,snappy"`
	Nickname         string   `parquet:"nickname,snappy"`
	CompositeScore   float64  `parquet:"composite_score,snappy"`
	OPR              float64  `parquet:"opr,snappy"`
	DPR              float64  `parquet:"dpr,snappy"`
	CCWM             float64  `parquet:"ccwm,snappy"`
	MatchesPlayed    int32    `parquet:"matches_played,snappy"`
	AvgAutoScore     *float64 `parquet:"avg_auto_score,optional,snappy"`
	AvgTeleopScore   *float64 `parquet:"avg_teleop_score,optional,snappy"`
	AvgEndgameScore  *float64 `parquet:"avg_endgame_score,optional,snappy"`
	ReliabilityScore *float64 `parquet:"reliability_score,optional,snappy"`
	Strengths        string   `parquet:"strengths,snappy"`
	Weaknesses       string   `parquet:"weaknesses,snappy"`
	Picked           bool     `parquet:"picked,snappy"`
}

// writeParquet writes rows to a new Parquet file. The schema is derived
// from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteRunsParquet writes recorded runs to a Parquet file.
func WriteRunsParquet(data []PickListRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRunTeamsParquet writes recorded ranked teams to a Parquet file.
func WriteRunTeamsParquet(data []PickListRunTeam, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRankedTeamsParquet writes a pick list to a Parquet file.
func WriteRankedTeamsParquet(data []RankedTeamRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to PickListRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []PickListRun {
	result := make([]PickListRun, len(records))
	for i, r := range records {
		result[i] = PickListRun{
			RunID:       r.RunID,
			EventKey:    r.EventKey,
			EventName:   r.EventName,
			Strategy:    r.Strategy,
			Weights:     r.Weights,
			MinMatches:  r.MinMatches,
			TeamCount:   r.TeamCount,
			Warnings:    r.Warnings,
			GeneratedAt: r.GeneratedAt,
		}
	}
	return result
}

// ConvertRunTeamRecords converts schema.RunTeamRecord to PickListRunTeam for Parquet export.
func ConvertRunTeamRecords(records []schema.RunTeamRecord) []PickListRunTeam {
	result := make([]PickListRunTeam, len(records))
	for i, r := range records {
		result[i] = PickListRunTeam{
			RunID:          r.RunID,
			TeamNumber:     r.TeamNumber,
			Rank:           r.Rank,
			CompositeScore: r.CompositeScore,
			OPR:            r.OPR,
			DPR:            r.DPR,
			CCWM:           r.CCWM,
			MatchesPlayed:  r.MatchesPlayed,
			Strengths:      r.Strengths,
			Weaknesses:     r.Weaknesses,
		}
	}
	return result
}

// ConvertPickList flattens a pick list into Parquet rows.
func ConvertPickList(list *schema.PickList) []RankedTeamRow {
	result := make([]RankedTeamRow, len(list.Teams))
	for i, t := range list.Teams {
		result[i] = RankedTeamRow{
			EventKey:         list.EventKey,
			Strategy:         string(list.Strategy),
			Rank:             int32(t.Rank),
			TeamNumber:       int32(t.TeamNumber),
			TeamName:         t.TeamName,
			Nickname:         t.Nickname,
			CompositeScore:   t.CompositeScore,
			OPR:              t.OPR,
			DPR:              t.DPR,
			CCWM:             t.CCWM,
			MatchesPlayed:    int32(t.MatchesPlayed),
			AvgAutoScore:     t.AvgAutoScore,
			AvgTeleopScore:   t.AvgTeleopScore,
			AvgEndgameScore:  t.AvgEndgameScore,
			ReliabilityScore: t.ReliabilityScore,
			Strengths:        schema.JoinLabels(t.Strengths),
			Weaknesses:       schema.JoinLabels(t.Weaknesses),
			Picked:           t.Picked,
		}
	}
	return result
}
