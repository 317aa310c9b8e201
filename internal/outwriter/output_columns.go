package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintColumnResults outputs the ranked columns of a configuration.
func PrintColumnResults(results []schema.ColumnResult, cfg *contract.Config, duration time.Duration) error {
	limited := limitColumns(results, cfg.ResultLimit)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, limited)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteColumnsCSV(w, limited)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for columns")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeColumnsText(w, limited, cfg, duration)
		}, "Wrote text")
	}
}

// limitColumns trims every column to at most limit teams (0 = all).
func limitColumns(results []schema.ColumnResult, limit int) []schema.ColumnResult {
	out := make([]schema.ColumnResult, len(results))
	for i, r := range results {
		out[i] = r
		if limit > 0 && len(r.Teams) > limit {
			out[i].Teams = r.Teams[:limit]
		}
	}
	return out
}

// columnTitle returns the display title of a column.
func columnTitle(col schema.Column, index int) string {
	switch {
	case col.Title != "":
		return col.Title
	case col.ID != "":
		return col.ID
	default:
		return "#" + strconv.Itoa(index+1)
	}
}

// sortLabel describes what a column is ordered by.
func sortLabel(col schema.Column) string {
	key := col.SortMetric
	if key == "" {
		key = schema.CompositeSortKey
	}
	dir := col.SortDirection
	if dir == "" {
		dir = schema.SortDesc
	}
	return fmt.Sprintf("%s %s", key, dir)
}

// sortValue renders the value a column is sorted by for one team.
func sortValue(col schema.Column, t schema.RankedTeam) string {
	switch col.SortMetric {
	case "", schema.CompositeSortKey:
		return fixed(t.CompositeScore, 4)
	case schema.MatchesPlayedSortKey:
		return strconv.Itoa(t.MatchesPlayed)
	}
	m, err := schema.ParseMetric(col.SortMetric)
	if err != nil {
		return notAvailable
	}
	def := m.Definition()
	if !def.Present(t.RawTeamData) {
		return notAvailable
	}
	return fixed(def.Value(t.RawTeamData), 2)
}

// WriteColumnsCSV writes all columns in long format, one row per column and team.
func WriteColumnsCSV(w io.Writer, results []schema.ColumnResult) error {
	header := []string{"Column", "Sort", "Rank", "Team", "Nickname", "Score", "Sort Value"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range results {
			title := columnTitle(r.Column, i)
			sort := sortLabel(r.Column)
			for _, t := range r.Teams {
				rec := []string{
					title,
					sort,
					strconv.Itoa(t.Rank),
					strconv.Itoa(t.TeamNumber),
					orNA(t.DisplayName()),
					fixed(t.CompositeScore, 4),
					sortValue(r.Column, t),
				}
				if err := cw.Write(rec); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
		return nil
	})
}

// writeColumnsText renders one table per column.
func writeColumnsText(w io.Writer, results []schema.ColumnResult, cfg *contract.Config, duration time.Duration) error {
	nameWidth := GetMaxTableNameWidth(cfg)
	for i, r := range results {
		if _, err := fmt.Fprintf(w, "== %s (%s, %s) ==\n", columnTitle(r.Column, i), r.Column.Selection().Strategy, sortLabel(r.Column)); err != nil {
			return err
		}

		table := tablewriter.NewWriter(w)
		table.Header([]string{"Rank", "Team", "Name", "Score", "Tier", "Value"})
		table.Configure(func(config *tablewriter.Config) {
			config.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, t := range r.Teams {
			data = append(data, []string{
				strconv.Itoa(t.Rank),
				strconv.Itoa(t.TeamNumber),
				contract.TruncateName(t.DisplayName(), nameWidth),
				fixed(t.CompositeScore, 3),
				contract.GetColorTier(t.CompositeScore),
				sortValue(r.Column, t),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		for _, warning := range r.Warnings {
			if _, err := fmt.Fprintf(w, "⚠️  %s\n", warning); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Evaluated %d column(s) in %v with %d workers\n", len(results), duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}
