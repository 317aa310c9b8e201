package store

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/huangsam/picklist/schema"
)

// PrintHistoryStatus prints history store status information.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run ID: %d\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Total Teams Ranked: %d\n", status.TotalTeams)
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}

// PrintConfigurations prints the saved configurations of a scope.
func PrintConfigurations(w io.Writer, configs []schema.PickListConfiguration) {
	if len(configs) == 0 {
		_, _ = fmt.Fprintln(w, "No saved configurations.")
		return
	}
	for _, cfg := range configs {
		marker := " "
		if cfg.IsDefault {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %s  %d column(s)  updated %s  (%s)\n",
			marker, cfg.Name, len(cfg.Payload.Columns), cfg.UpdatedAt.Format("2006-01-02 15:04:05"), cfg.ID)
	}
}
