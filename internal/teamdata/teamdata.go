// Package teamdata loads per-team event statistics from JSON and CSV files.
package teamdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/schema"
)

// Supported data file extensions, in lookup order for directory sources.
var dataExtensions = []string{".json", ".csv"}

// FileSource reads event statistics from a single file or from a directory
// holding one <eventKey>.json or <eventKey>.csv file per event.
type FileSource struct {
	path string
}

var _ contract.StatsSource = &FileSource{} // Compile-time check

// NewFileSource returns a source rooted at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// LoadEvent implements the StatsSource interface.
func (s *FileSource) LoadEvent(ctx context.Context, eventKey string) (schema.EventStats, error) {
	if err := ctx.Err(); err != nil {
		return schema.EventStats{}, err
	}

	file, err := s.resolve(eventKey)
	if err != nil {
		return schema.EventStats{}, err
	}

	var stats schema.EventStats
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		stats, err = readJSON(file)
	case ".csv":
		stats, err = readCSV(file)
	default:
		return schema.EventStats{}, fmt.Errorf("unsupported data file %s (expected .json or .csv)", file)
	}
	if err != nil {
		return schema.EventStats{}, err
	}

	if stats.EventKey != "" && eventKey != "" && stats.EventKey != eventKey {
		return schema.EventStats{}, fmt.Errorf("data file %s is for event %s, not %s", file, stats.EventKey, eventKey)
	}
	if stats.EventKey == "" {
		stats.EventKey = eventKey
	}
	if err := validateTeams(stats.Teams); err != nil {
		return schema.EventStats{}, fmt.Errorf("%s: %w", file, err)
	}
	if len(stats.Teams) == 0 {
		return schema.EventStats{}, fmt.Errorf("event %s: %w", stats.EventKey, contract.ErrNoTeamStatistics)
	}
	return stats, nil
}

// resolve finds the data file for an event.
func (s *FileSource) resolve(eventKey string) (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s does not exist", contract.ErrNoTeamStatistics, s.path)
		}
		return "", fmt.Errorf("failed to access %s: %w", s.path, err)
	}
	if !info.IsDir() {
		return s.path, nil
	}
	if eventKey == "" {
		return "", errors.New("an event key is required when the data path is a directory")
	}
	if strings.ContainsAny(eventKey, `/\`) || strings.Contains(eventKey, "..") {
		return "", fmt.Errorf("invalid event key %q", eventKey)
	}
	for _, ext := range dataExtensions {
		candidate := filepath.Join(s.path, eventKey+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no %s.json or %s.csv in %s", contract.ErrNoTeamStatistics, eventKey, eventKey, s.path)
}

// readJSON decodes an EventStats document.
func readJSON(file string) (schema.EventStats, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return schema.EventStats{}, fmt.Errorf("failed to read %s: %w", file, err)
	}
	var stats schema.EventStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return schema.EventStats{}, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	return stats, nil
}

// validateTeams rejects rows the ranking engine cannot use.
func validateTeams(teams []schema.RawTeamData) error {
	seen := make(map[int]struct{}, len(teams))
	for _, t := range teams {
		if t.TeamNumber <= 0 {
			return fmt.Errorf("invalid team number %d", t.TeamNumber)
		}
		if _, dup := seen[t.TeamNumber]; dup {
			return fmt.Errorf("team %d appears more than once", t.TeamNumber)
		}
		seen[t.TeamNumber] = struct{}{}
		if t.MatchesPlayed < 0 {
			return fmt.Errorf("team %d has negative matches played", t.TeamNumber)
		}
		for _, v := range []float64{t.OPR, t.DPR, t.CCWM} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("team %d has a non-finite rating", t.TeamNumber)
			}
		}
	}
	return nil
}

// StaticSource serves events held in memory.
type StaticSource struct {
	events map[string]schema.EventStats
}

var _ contract.StatsSource = &StaticSource{} // Compile-time check

// NewStaticSource indexes the given events by key.
func NewStaticSource(events ...schema.EventStats) *StaticSource {
	s := &StaticSource{events: make(map[string]schema.EventStats, len(events))}
	for _, e := range events {
		s.events[e.EventKey] = e
	}
	return s
}

// LoadEvent implements the StatsSource interface.
func (s *StaticSource) LoadEvent(ctx context.Context, eventKey string) (schema.EventStats, error) {
	if err := ctx.Err(); err != nil {
		return schema.EventStats{}, err
	}
	stats, ok := s.events[eventKey]
	if !ok || len(stats.Teams) == 0 {
		return schema.EventStats{}, fmt.Errorf("event %s: %w", eventKey, contract.ErrNoTeamStatistics)
	}
	teams := make([]schema.RawTeamData, len(stats.Teams))
	for i, t := range stats.Teams {
		teams[i] = t.Clone()
	}
	stats.Teams = teams
	return stats, nil
}
