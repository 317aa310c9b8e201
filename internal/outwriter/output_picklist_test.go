package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePickList() *schema.PickList {
	return &schema.PickList{
		EventKey:  "2024casj",
		EventName: "Silicon Valley Regional",
		Strategy:  schema.BalancedStrategy,
		Weights:   schema.PickListWeights{OPR: 0.5, CCWM: 0.5},
		Teams: []schema.RankedTeam{
			{
				Rank: 1,
				RawTeamData: schema.RawTeamData{
					TeamNumber: 254, TeamName: "Cheesy Poofs Inc", Nickname: "The Cheesy Poofs",
					MatchesPlayed: 12, OPR: 82.3, DPR: 18.5, CCWM: 63.8,
					AvgAutoScore: schema.Float64Ptr(15.5), ReliabilityScore: schema.Float64Ptr(0.95),
				},
				CompositeScore: 0.91234,
				Strengths:      []string{"High offensive output (OPR)"},
				Weaknesses:     []string{},
				Picked:         true,
			},
			{
				Rank: 2,
				RawTeamData: schema.RawTeamData{
					TeamNumber: 1678, Nickname: `Citrus "CC" Circuits, Davis`,
					MatchesPlayed: 11, OPR: 75.5, DPR: 20.3, CCWM: 55.2,
				},
				CompositeScore: 0.5,
				Strengths:      []string{},
				Weaknesses:     []string{"Defense needs improvement (high DPR)"},
			},
		},
		Statistics:  schema.PickListStatistics{AvgCompositeScore: 0.70617, AvgOPR: 78.9},
		Warnings:    []string{"Weights sum to 1.60 instead of 1.00"},
		GeneratedAt: time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC),
	}
}

func TestWritePickListCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePickListCSV(&buf, samplePickList(), "Elims"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "# Event: Silicon Valley Regional (2024casj)", lines[0])
	assert.Equal(t, "# Weights: Elims: balanced (opr=0.5,ccwm=0.5)", lines[1])
	assert.Equal(t, "# Generated: 2024-03-09T18:30:00Z", lines[2])
	assert.Equal(t, "# Teams: 2, Picked: 1", lines[3])
	assert.Equal(t, "Rank,Team,Team Name,Nickname,Score,OPR,DPR,CCWM,Matches,Avg Auto,Avg Teleop,Avg Endgame,Reliability %,Picked", lines[4])
	assert.Equal(t, "1,254,Cheesy Poofs Inc,The Cheesy Poofs,0.9123,82.30,18.50,63.80,12,15.5,N/A,N/A,95.0,true", lines[5])
	assert.Equal(t, `2,1678,N/A,"Citrus ""CC"" Circuits, Davis",0.5000,75.50,20.30,55.20,11,N/A,N/A,N/A,N/A,false`, lines[6])

	reader := csv.NewReader(strings.NewReader(buf.String()))
	reader.Comment = '#'
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, `Citrus "CC" Circuits, Davis`, records[2][3])
}

func TestWritePickListCSV_NoConfigName(t *testing.T) {
	list := samplePickList()
	list.EventName = ""
	var buf bytes.Buffer
	require.NoError(t, WritePickListCSV(&buf, list, ""))
	assert.True(t, strings.HasPrefix(buf.String(), "# Event: 2024casj\n# Weights: balanced (opr=0.5,ccwm=0.5)\n"))
}

func TestWritePickListJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePickListJSON(&buf, samplePickList()))

	var result struct {
		EventKey string `json:"eventKey"`
		Teams    []struct {
			Rank       int    `json:"rank"`
			TeamNumber int    `json:"teamNumber"`
			Tier       string `json:"tier"`
			Picked     bool   `json:"picked"`
		} `json:"teams"`
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "2024casj", result.EventKey)
	require.Len(t, result.Teams, 2)
	assert.Equal(t, schema.EliteTier, result.Teams[0].Tier)
	assert.Equal(t, schema.SolidTier, result.Teams[1].Tier)
	assert.True(t, result.Teams[0].Picked)
	assert.Len(t, result.Warnings, 1)
}

func TestWritePickListTable(t *testing.T) {
	cfg := &contract.Config{Output: schema.TextOut, Width: 200, Explain: true}
	var buf bytes.Buffer
	require.NoError(t, writePickListTable(&buf, samplePickList(), 5, cfg, 42*time.Millisecond))

	output := buf.String()
	assert.Contains(t, output, "STRENGTHS")
	assert.Contains(t, output, "The Cheesy Poofs")
	assert.Contains(t, output, "offensive")
	assert.Contains(t, output, "Elite")
	assert.Contains(t, output, "Showing 2 of 5 teams for Silicon Valley Regional (2024casj)")
	assert.Contains(t, output, "Strategy: balanced (opr=0.5,ccwm=0.5)")
	assert.Contains(t, output, "⚠️  Weights sum to 1.60")
	assert.Contains(t, output, "Generated in 42ms")
}

func TestPickListLimit(t *testing.T) {
	list := samplePickList()
	assert.Len(t, list.Limit(0).Teams, 2)
	assert.Len(t, list.Limit(5).Teams, 2)
	limited := list.Limit(1)
	assert.Len(t, limited.Teams, 1)
	assert.Len(t, list.Teams, 2, "the original list is untouched")
}

func TestPrintPickListResults_Files(t *testing.T) {
	dir := t.TempDir()

	csvFile := filepath.Join(dir, "picklist.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: csvFile, ResultLimit: 1}
	require.NoError(t, PrintPickListResults(samplePickList(), cfg, time.Second))
	data, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Teams: 1, Picked: 1")

	parquetFile := filepath.Join(dir, "picklist.parquet")
	cfg = &contract.Config{Output: schema.ParquetOut, OutputFile: parquetFile}
	require.NoError(t, PrintPickListResults(samplePickList(), cfg, time.Second))
	info, err := os.Stat(parquetFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	cfg = &contract.Config{Output: schema.ParquetOut}
	assert.Error(t, PrintPickListResults(samplePickList(), cfg, time.Second))
}

func TestGetMaxTableNameWidth(t *testing.T) {
	assert.Equal(t, 12, GetMaxTableNameWidth(&contract.Config{Width: 60}))
	assert.Equal(t, 25, GetMaxTableNameWidth(&contract.Config{Width: 100}))
	assert.Equal(t, 40, GetMaxTableNameWidth(&contract.Config{Width: 300}))
	assert.Equal(t, 12, GetMaxTableNameWidth(&contract.Config{Width: 150, Explain: true}))
}
