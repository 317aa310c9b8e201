package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/internal/parquet"
	"github.com/huangsam/picklist/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// pickListCSVHeader is the column layout of the pick-list export.
var pickListCSVHeader = []string{
	"Rank", "Team", "Team Name", "Nickname", "Score", "OPR", "DPR", "CCWM", "Matches",
	"Avg Auto", "Avg Teleop", "Avg Endgame", "Reliability %", "Picked",
}

// PrintPickListResults outputs a pick list, dispatching based on the output format configured.
func PrintPickListResults(list *schema.PickList, cfg *contract.Config, duration time.Duration) error {
	limited := list.Limit(cfg.ResultLimit)

	switch cfg.Output {
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet output")
		}
		if err := parquet.WriteRankedTeamsParquet(parquet.ConvertPickList(limited), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePickListJSON(w, limited)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WritePickListCSV(w, limited, cfg.ConfigName)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePickListTable(w, limited, len(list.Teams), cfg, duration)
		}, "Wrote table")
	}
}

// jsonPickList is the JSON document of a pick list, with tiers added to each team.
type jsonPickList struct {
	EventKey    string                      `json:"eventKey"`
	EventName   string                      `json:"eventName"`
	Strategy    schema.Strategy             `json:"strategy"`
	Weights     schema.PickListWeights      `json:"weights"`
	Warnings    []string                    `json:"warnings,omitempty"`
	Statistics  schema.PickListStatistics   `json:"statistics"`
	GeneratedAt time.Time                   `json:"generatedAt"`
	Teams       []schema.EnrichedRankedTeam `json:"teams"`
}

// writePickListJSON writes the pick list in JSON format.
func writePickListJSON(w io.Writer, list *schema.PickList) error {
	return writeJSON(w, jsonPickList{
		EventKey:    list.EventKey,
		EventName:   list.EventName,
		Strategy:    list.Strategy,
		Weights:     list.Weights,
		Warnings:    list.Warnings,
		Statistics:  list.Statistics,
		GeneratedAt: list.GeneratedAt,
		Teams:       schema.EnrichTeams(list.Teams),
	})
}

// WritePickListCSV writes the export CSV: '#' comment lines describing the
// list, then one row per team. configName labels the weights when non-empty.
func WritePickListCSV(w io.Writer, list *schema.PickList, configName string) error {
	eventLabel := list.EventKey
	if list.EventName != "" {
		eventLabel = fmt.Sprintf("%s (%s)", list.EventName, list.EventKey)
	}
	weightsLabel := fmt.Sprintf("%s (%s)", list.Strategy, list.Weights)
	if configName != "" {
		weightsLabel = fmt.Sprintf("%s: %s", configName, weightsLabel)
	}
	comments := []string{
		"# Event: " + sanitizeComment(eventLabel),
		"# Weights: " + sanitizeComment(weightsLabel),
		"# Generated: " + list.GeneratedAt.UTC().Format(time.RFC3339),
		fmt.Sprintf("# Teams: %d, Picked: %d", len(list.Teams), list.PickedCount()),
	}
	for _, line := range comments {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return writeCSVWithHeader(w, pickListCSVHeader, func(cw *csv.Writer) error {
		for _, t := range list.Teams {
			if err := cw.Write(pickListCSVRecord(t)); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// sanitizeComment keeps a comment on a single line.
func sanitizeComment(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// pickListCSVRecord renders one team with the export precision rules.
func pickListCSVRecord(t schema.RankedTeam) []string {
	return []string{
		strconv.Itoa(t.Rank),
		strconv.Itoa(t.TeamNumber),
		orNA(t.TeamName),
		orNA(t.Nickname),
		fixed(t.CompositeScore, 4),
		fixed(t.OPR, 2),
		fixed(t.DPR, 2),
		fixed(t.CCWM, 2),
		strconv.Itoa(t.MatchesPlayed),
		optional(t.AvgAutoScore, 1, 1),
		optional(t.AvgTeleopScore, 1, 1),
		optional(t.AvgEndgameScore, 1, 1),
		optional(t.ReliabilityScore, 1, 100),
		strconv.FormatBool(t.Picked),
	}
}

// writePickListTable generates and writes the human-readable table.
func writePickListTable(w io.Writer, list *schema.PickList, total int, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Team", "Name", "Score", "Tier", "OPR", "DPR", "CCWM", "Matches", "Picked"}
	if cfg.Explain {
		headers = append(headers, "Strengths", "Weaknesses")
	}
	table.Header(headers)
	table.Configure(func(config *tablewriter.Config) {
		config.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, t := range list.Teams {
		picked := ""
		if t.Picked {
			picked = "✓"
		}
		row := []string{
			strconv.Itoa(t.Rank),
			strconv.Itoa(t.TeamNumber),
			contract.TruncateName(t.DisplayName(), nameWidth),
			fixed(t.CompositeScore, 3),
			contract.GetColorTier(t.CompositeScore),
			fixed(t.OPR, 1),
			fixed(t.DPR, 1),
			fixed(t.CCWM, 1),
			strconv.Itoa(t.MatchesPlayed),
			picked,
		}
		if cfg.Explain {
			row = append(row, strings.Join(t.Strengths, "; "), strings.Join(t.Weaknesses, "; "))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	title := list.EventKey
	if list.EventName != "" {
		title = fmt.Sprintf("%s (%s)", list.EventName, list.EventKey)
	}
	if _, err := fmt.Fprintf(w, "Showing %d of %d teams for %s\n", len(list.Teams), total, title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Strategy: %s (%s)\n", list.Strategy, list.Weights); err != nil {
		return err
	}
	for _, warning := range list.Warnings {
		if _, err := fmt.Fprintf(w, "⚠️  %s\n", warning); err != nil {
			return err
		}
	}
	if duration > 0 {
		if _, err := fmt.Fprintf(w, "Generated in %v\n", duration); err != nil {
			return err
		}
	}
	return nil
}
