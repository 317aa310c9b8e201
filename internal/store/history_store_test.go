package store

import (
	"context"
	"testing"
	"time"

	"github.com/huangsam/picklist/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun(eventKey string, generated time.Time, teamCount int32) schema.RunRecord {
	return schema.RunRecord{
		EventKey:    eventKey,
		EventName:   "Silicon Valley Regional",
		Strategy:    "balanced",
		Weights:     `{"opr":0.25,"ccwm":0.2}`,
		MinMatches:  3,
		TeamCount:   teamCount,
		GeneratedAt: generated,
	}
}

func sampleRunTeams() []schema.RunTeamRecord {
	return []schema.RunTeamRecord{
		{TeamNumber: 254, Rank: 1, CompositeScore: 0.91, OPR: 82.3, DPR: 18.5, CCWM: 63.8, MatchesPlayed: 12, Strengths: "High offensive output (OPR)"},
		{TeamNumber: 1678, Rank: 2, CompositeScore: 0.55, OPR: 75.5, DPR: 20.3, CCWM: 55.2, MatchesPlayed: 12},
		{TeamNumber: 971, Rank: 3, CompositeScore: 0.12, OPR: 70.0, DPR: 25.1, CCWM: 44.9, MatchesPlayed: 11, Weaknesses: "Weak defense (high DPR)"},
	}
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	hs, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := hs.RecordRun(context.Background(), sampleRun("2024casj", time.Now(), 3), sampleRunTeams())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	status, err := hs.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Backend)

	runs, err := hs.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	assert.NoError(t, hs.Close())
}

func TestHistoryStore_SQLite(t *testing.T) {
	hs, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = hs.Close() }()

	ctx := context.Background()
	first := time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC)
	second := first.Add(2 * time.Hour)
	warning := "Weights sum to 1.60 instead of 1.00 - scores are normalized by the total"

	runID1, err := hs.RecordRun(ctx, sampleRun("2024casj", first, 3), sampleRunTeams())
	require.NoError(t, err)
	assert.Greater(t, runID1, int64(0))

	run2 := sampleRun("2024casj", second, 2)
	run2.Strategy = "custom"
	run2.Warnings = &warning
	runID2, err := hs.RecordRun(ctx, run2, sampleRunTeams()[:2])
	require.NoError(t, err)
	assert.Greater(t, runID2, runID1)

	status, err := hs.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, runID2, status.LastRunID)
	assert.True(t, status.LastRunTime.Equal(second))
	assert.True(t, status.OldestRunTime.Equal(first))
	assert.Equal(t, 5, status.TotalTeams)
	assert.Equal(t, int64(2), status.TableSizes[runsTable])
	assert.Equal(t, int64(5), status.TableSizes[runTeamsTable])

	runs, err := hs.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, runID1, runs[0].RunID)
	assert.Nil(t, runs[0].Warnings)
	require.NotNil(t, runs[1].Warnings)
	assert.Equal(t, warning, *runs[1].Warnings)
	assert.Equal(t, "custom", runs[1].Strategy)
	assert.Equal(t, int32(3), runs[1].MinMatches)

	teams, err := hs.GetAllRunTeams()
	require.NoError(t, err)
	require.Len(t, teams, 5)
	assert.Equal(t, runID1, teams[0].RunID)
	assert.Equal(t, int32(254), teams[0].TeamNumber)
	assert.Equal(t, int32(3), teams[2].Rank)
	assert.Equal(t, "Weak defense (high DPR)", teams[2].Weaknesses)
	assert.Equal(t, runID2, teams[4].RunID)
}

func TestHistoryStore_DuplicateTeamRollsBack(t *testing.T) {
	hs, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = hs.Close() }()

	teams := sampleRunTeams()
	teams = append(teams, teams[0])
	_, err = hs.RecordRun(context.Background(), sampleRun("2024casj", time.Now(), 4), teams)
	require.Error(t, err)

	status, err := hs.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[runTeamsTable])
}

func TestHistoryStore_EmptyStatus(t *testing.T) {
	hs, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = hs.Close() }()

	status, err := hs.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalRuns)
	assert.True(t, status.LastRunTime.IsZero())
	assert.Len(t, status.TableSizes, 2)
}
