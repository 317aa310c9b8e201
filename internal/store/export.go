package store

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/internal/parquet"
)

// ExecuteHistoryExport writes the recorded runs and their ranked teams to
// two Parquet files named after outputFile.
func ExecuteHistoryExport(w io.Writer, hs contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if hs == nil {
		return errors.New("history store is not initialized")
	}

	status, err := hs.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no ranking history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total ranked team records: %d\n", status.TableSizes[runTeamsTable])

	runs, err := hs.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	teams, err := hs.GetAllRunTeams()
	if err != nil {
		return fmt.Errorf("failed to retrieve run teams: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	runRows := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteRunsParquet(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runRows), runsFile)

	teamsFile := outputFile + ".run_teams.parquet"
	teamRows := parquet.ConvertRunTeamRecords(teams)
	if err := parquet.WriteRunTeamsParquet(teamRows, teamsFile); err != nil {
		return fmt.Errorf("failed to write run teams: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d ranked team records to: %s\n", len(teamRows), teamsFile)
	return nil
}
