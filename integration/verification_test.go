//go:build basic

// Package integration contains end-to-end tests of the picklist binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// The database tests need Docker: go test -tags database ./integration
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rankedTeam is the subset of a ranked team the tests check.
type rankedTeam struct {
	Rank           int     `json:"rank"`
	TeamNumber     int     `json:"teamNumber"`
	CompositeScore float64 `json:"compositeScore"`
	Tier           string  `json:"tier"`
}

// pickListDoc is the subset of the JSON pick list the tests check.
type pickListDoc struct {
	EventKey  string       `json:"eventKey"`
	EventName string       `json:"eventName"`
	Strategy  string       `json:"strategy"`
	Warnings  []string     `json:"warnings"`
	Teams     []rankedTeam `json:"teams"`
}

func TestGenerateVerification(t *testing.T) {
	out, err := runPicklist(t, nil, "generate", "--event", "2024casj", "--output", "json")
	require.NoError(t, err)

	var doc pickListDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "2024casj", doc.EventKey)
	assert.Equal(t, "Silicon Valley Regional", doc.EventName)
	assert.Equal(t, "balanced", doc.Strategy)
	require.Len(t, doc.Teams, 5)

	for i, team := range doc.Teams {
		assert.Equal(t, i+1, team.Rank, "ranks are dense and start at 1")
		assert.NotEmpty(t, team.Tier)
		if i > 0 {
			assert.LessOrEqual(t, team.CompositeScore, doc.Teams[i-1].CompositeScore, "teams are sorted by score")
		}
	}
	assert.Equal(t, 254, doc.Teams[0].TeamNumber)
}

func TestGenerateMinMatchesAndLimit(t *testing.T) {
	out, err := runPicklist(t, nil, "generate", "--event", "2024casj", "--output", "json", "--min-matches", "5", "--limit", "2")
	require.NoError(t, err)

	var doc pickListDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Teams, 2)
	for _, team := range doc.Teams {
		assert.NotEqual(t, 8033, team.TeamNumber)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	args := []string{"generate", "--event", "2024casj", "--output", "csv", "--strategy", "defensive"}
	first, err := runPicklist(t, nil, args...)
	require.NoError(t, err)
	second, err := runPicklist(t, nil, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateCustomWeightsWarn(t *testing.T) {
	out, err := runPicklist(t, nil, "generate", "--event", "2024casj", "--output", "json", "--custom-weights", "opr=2,ccwm=1")
	require.NoError(t, err)

	var doc pickListDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "custom", doc.Strategy)
	assert.NotEmpty(t, doc.Warnings)
}

func TestGenerateUnknownEventFails(t *testing.T) {
	_, err := runPicklist(t, nil, "generate", "--event", "2024nope")
	assert.Error(t, err)
}

func TestSavedConfigurationColumns(t *testing.T) {
	env := map[string]string{"HOME": t.TempDir()}

	_, err := runPicklist(t, env, "config", "save", "--event", "2024casj", "--config-name", "elims", "--columns", "balanced,dpr:asc", "--default")
	require.NoError(t, err)

	out, err := runPicklist(t, env, "config", "list", "--event", "2024casj")
	require.NoError(t, err)
	assert.Contains(t, out, "elims")

	out, err = runPicklist(t, env, "columns", "--event", "2024casj", "--output", "json")
	require.NoError(t, err)

	var results []struct {
		Teams []rankedTeam `json:"teams"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, 254, results[0].Teams[0].TeamNumber)
	assert.Equal(t, 971, results[1].Teams[0].TeamNumber, "lowest DPR sorts first")
}

func TestHistoryRecordAndExport(t *testing.T) {
	home := t.TempDir()
	env := map[string]string{"HOME": home, "PICKLIST_HISTORY_BACKEND": "sqlite"}

	_, err := runPicklist(t, env, "generate", "--event", "2024casj", "--output", "csv")
	require.NoError(t, err)

	out, err := runPicklist(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 1")

	prefix := filepath.Join(home, "export")
	_, err = runPicklist(t, env, "history", "export", "--output-file", prefix)
	require.NoError(t, err)
	assert.FileExists(t, prefix+".runs.parquet")
	assert.FileExists(t, prefix+".run_teams.parquet")

	_, err = runPicklist(t, env, "history", "clear")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(home, ".picklist_history.db"))
	assert.True(t, os.IsNotExist(err))
}
