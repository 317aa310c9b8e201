package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/schema"
)

// Table names for ranking history.
const (
	runsTable     = "picklist_runs"
	runTeamsTable = "picklist_run_teams"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// No-op store for disabled history
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db, historySchema, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// enabled reports whether the store is backed by a database.
func (hs *HistoryStoreImpl) enabled() bool {
	return hs.backend != schema.NoneBackend && hs.db != nil
}

// RecordRun stores a run and its ranked teams in a single transaction.
func (hs *HistoryStoreImpl) RecordRun(ctx context.Context, run schema.RunRecord, teams []schema.RunTeamRecord) (int64, error) {
	if !hs.enabled() {
		return 0, nil
	}

	tx, err := hs.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	runID, err := hs.insertRun(ctx, tx, run)
	if err != nil {
		return 0, err
	}

	teamQuery := rebind(fmt.Sprintf(`
		INSERT INTO %s (run_id, team_number, team_rank, composite_score, opr, dpr, ccwm,
		                matches_played, strengths, weaknesses)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, quoteTableName(runTeamsTable, hs.backend)), hs.backend)

	stmt, err := tx.PrepareContext(ctx, teamQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare team insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range teams {
		if _, err := stmt.ExecContext(ctx, runID, t.TeamNumber, t.Rank, t.CompositeScore,
			t.OPR, t.DPR, t.CCWM, t.MatchesPlayed, t.Strengths, t.Weaknesses); err != nil {
			return 0, fmt.Errorf("failed to insert team %d: %w", t.TeamNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// insertRun inserts the run row and returns its generated ID.
func (hs *HistoryStoreImpl) insertRun(ctx context.Context, tx *sql.Tx, run schema.RunRecord) (int64, error) {
	quotedTableName := quoteTableName(runsTable, hs.backend)
	args := []any{
		run.EventKey, run.EventName, run.Strategy, run.Weights, run.MinMatches,
		run.TeamCount, run.Warnings, formatTime(run.GeneratedAt, hs.backend),
	}
	insert := fmt.Sprintf(`INSERT INTO %s (event_key, event_name, strategy, weights, min_matches,
		team_count, warnings, generated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, quotedTableName)

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		err := tx.QueryRowContext(ctx, rebind(insert+" RETURNING run_id", hs.backend), args...).Scan(&runID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
	default: // SQLite and MySQL
		result, err := tx.ExecContext(ctx, insert, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
		if runID, err = result.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to read run id: %w", err)
		}
	}
	return runID, nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if !hs.enabled() {
		return status, nil
	}

	runs := quoteTableName(runsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		last := timeScanner{backend: hs.backend}
		row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id, generated_at FROM %s ORDER BY run_id DESC LIMIT 1", runs))
		if err := row.Scan(&status.LastRunID, last.dest()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastTime, err := last.value()
		if err != nil {
			return status, err
		}
		status.LastRunTime = lastTime

		oldest := timeScanner{backend: hs.backend}
		row = hs.db.QueryRow(fmt.Sprintf("SELECT generated_at FROM %s ORDER BY run_id ASC LIMIT 1", runs))
		if err := row.Scan(oldest.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		oldestTime, err := oldest.value()
		if err != nil {
			return status, err
		}
		status.OldestRunTime = oldestTime

		row = hs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(team_count), 0) FROM %s", runs))
		if err := row.Scan(&status.TotalTeams); err != nil {
			return status, fmt.Errorf("failed to get total teams: %w", err)
		}
	}

	for _, table := range []string{runsTable, runTeamsTable} {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllRuns retrieves all recorded runs.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if !hs.enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, event_key, event_name, strategy, weights, min_matches,
		team_count, warnings, generated_at FROM %s ORDER BY run_id`, quoteTableName(runsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		generated := timeScanner{backend: hs.backend}
		if err := rows.Scan(&record.RunID, &record.EventKey, &record.EventName, &record.Strategy,
			&record.Weights, &record.MinMatches, &record.TeamCount, &record.Warnings, generated.dest()); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if record.GeneratedAt, err = generated.value(); err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllRunTeams retrieves all recorded ranked teams.
func (hs *HistoryStoreImpl) GetAllRunTeams() ([]schema.RunTeamRecord, error) {
	if !hs.enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, team_number, team_rank, composite_score, opr, dpr, ccwm,
		matches_played, strengths, weaknesses FROM %s ORDER BY run_id, team_rank`, quoteTableName(runTeamsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query run teams: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunTeamRecord
	for rows.Next() {
		var r schema.RunTeamRecord
		if err := rows.Scan(&r.RunID, &r.TeamNumber, &r.Rank, &r.CompositeScore, &r.OPR, &r.DPR,
			&r.CCWM, &r.MatchesPlayed, &r.Strengths, &r.Weaknesses); err != nil {
			return nil, fmt.Errorf("failed to scan run team: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run teams: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}
