package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/schema"
)

// statisticsReport is the rendered summary of a pick list.
type statisticsReport struct {
	EventKey   string                    `json:"eventKey"`
	EventName  string                    `json:"eventName"`
	Strategy   schema.Strategy           `json:"strategy"`
	TeamCount  int                       `json:"teamCount"`
	Picked     int                       `json:"picked"`
	Statistics schema.PickListStatistics `json:"statistics"`
}

// PrintStatistics outputs the aggregate statistics of a pick list.
func PrintStatistics(list *schema.PickList, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteStatistics(w, list, cfg.Output)
	}, "Wrote statistics")
}

// WriteStatistics writes the statistics of a pick list in the given format.
func WriteStatistics(w io.Writer, list *schema.PickList, mode schema.OutputMode) error {
	report := statisticsReport{
		EventKey:   list.EventKey,
		EventName:  list.EventName,
		Strategy:   list.Strategy,
		TeamCount:  len(list.Teams),
		Picked:     list.PickedCount(),
		Statistics: list.Statistics,
	}
	rows := [][2]string{
		{"Teams", strconv.Itoa(report.TeamCount)},
		{"Picked", strconv.Itoa(report.Picked)},
		{"Average Score", fixed(report.Statistics.AvgCompositeScore, 4)},
		{"Median Score", fixed(report.Statistics.MedianCompositeScore, 4)},
		{"Score Std Dev", fixed(report.Statistics.StdDevCompositeScore, 4)},
		{"Average OPR", fixed(report.Statistics.AvgOPR, 2)},
		{"Average DPR", fixed(report.Statistics.AvgDPR, 2)},
		{"Average CCWM", fixed(report.Statistics.AvgCCWM, 2)},
	}

	switch mode {
	case schema.JSONOut:
		return writeJSON(w, report)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"Statistic", "Value"}, func(cw *csv.Writer) error {
			for _, row := range rows {
				if err := cw.Write(row[:]); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
			return nil
		})
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for statistics")
	default:
		if _, err := fmt.Fprintf(w, "📊 Pick List Statistics: %s (%s)\n", list.EventKey, list.Strategy); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(w, "   %-14s %s\n", row[0]+":", row[1]); err != nil {
				return err
			}
		}
		return nil
	}
}
