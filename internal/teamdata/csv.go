package teamdata

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/picklist/schema"
)

// eventNamePrefix marks the optional comment line carrying the event name.
const eventNamePrefix = "# Event:"

// csvField assigns one cell to a team.
type csvField func(t *schema.RawTeamData, cell string) error

// csvFields maps normalized header names to setters.
var csvFields = map[string]csvField{
	"team":             setInt(func(t *schema.RawTeamData) *int { return &t.TeamNumber }),
	"teamnumber":       setInt(func(t *schema.RawTeamData) *int { return &t.TeamNumber }),
	"teamname":         func(t *schema.RawTeamData, cell string) error { t.TeamName = cell; return nil },
	"nickname":         func(t *schema.RawTeamData, cell string) error { t.Nickname = cell; return nil },
	"matches":          setInt(func(t *schema.RawTeamData) *int { return &t.MatchesPlayed }),
	"matchesplayed":    setInt(func(t *schema.RawTeamData) *int { return &t.MatchesPlayed }),
	"opr":              setFloat(func(t *schema.RawTeamData) *float64 { return &t.OPR }),
	"dpr":              setFloat(func(t *schema.RawTeamData) *float64 { return &t.DPR }),
	"ccwm":             setFloat(func(t *schema.RawTeamData) *float64 { return &t.CCWM }),
	"avgautoscore":     setOptional(func(t *schema.RawTeamData) **float64 { return &t.AvgAutoScore }),
	"avgteleopscore":   setOptional(func(t *schema.RawTeamData) **float64 { return &t.AvgTeleopScore }),
	"avgendgamescore":  setOptional(func(t *schema.RawTeamData) **float64 { return &t.AvgEndgameScore }),
	"reliabilityscore": setOptional(func(t *schema.RawTeamData) **float64 { return &t.ReliabilityScore }),
	"avgdriverskill":   setOptional(func(t *schema.RawTeamData) **float64 { return &t.AvgDriverSkill }),
	"avgdefenserating": setOptional(func(t *schema.RawTeamData) **float64 { return &t.AvgDefenseRating }),
	"avgspeedrating":   setOptional(func(t *schema.RawTeamData) **float64 { return &t.AvgSpeedRating }),
	"notes": func(t *schema.RawTeamData, cell string) error {
		if cell != "" {
			t.Notes = schema.SplitLabels(cell)
		}
		return nil
	},
}

// normalizeHeader lowercases a header and drops separators, so "Team Number",
// "team_number" and "teamNumber" are the same column.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

// isMissing reports whether a cell holds no value.
func isMissing(cell string) bool {
	return cell == "" || strings.EqualFold(cell, "N/A")
}

func setInt(field func(*schema.RawTeamData) *int) csvField {
	return func(t *schema.RawTeamData, cell string) error {
		if isMissing(cell) {
			return nil
		}
		v, err := strconv.Atoi(cell)
		if err != nil {
			return fmt.Errorf("invalid integer %q", cell)
		}
		*field(t) = v
		return nil
	}
}

func setFloat(field func(*schema.RawTeamData) *float64) csvField {
	return func(t *schema.RawTeamData, cell string) error {
		if isMissing(cell) {
			return nil
		}
		v, err := parseFinite(cell)
		if err != nil {
			return err
		}
		*field(t) = v
		return nil
	}
}

func setOptional(field func(*schema.RawTeamData) **float64) csvField {
	return func(t *schema.RawTeamData, cell string) error {
		if isMissing(cell) {
			*field(t) = nil
			return nil
		}
		v, err := parseFinite(cell)
		if err != nil {
			return err
		}
		*field(t) = &v
		return nil
	}
}

func parseFinite(cell string) (float64, error) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", cell)
	}
	return v, nil
}

// readCSV parses a team statistics CSV file.
func readCSV(file string) (schema.EventStats, error) {
	f, err := os.Open(file)
	if err != nil {
		return schema.EventStats{}, fmt.Errorf("failed to read %s: %w", file, err)
	}
	defer func() { _ = f.Close() }()

	stats, err := parseCSV(f)
	if err != nil {
		return schema.EventStats{}, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	return stats, nil
}

// parseCSV reads a header row followed by one row per team. Lines starting
// with '#' are comments; a leading "# Event: <name>" sets the event name.
func parseCSV(r io.Reader) (schema.EventStats, error) {
	var stats schema.EventStats
	data, err := io.ReadAll(r)
	if err != nil {
		return stats, err
	}
	stats.EventName = leadingEventName(string(data))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return stats, nil
	}
	if err != nil {
		return stats, err
	}

	setters := make([]csvField, len(header))
	hasTeam := false
	for i, h := range header {
		key := normalizeHeader(h)
		setters[i] = csvFields[key]
		if key == "team" || key == "teamnumber" {
			hasTeam = true
		}
	}
	if !hasTeam {
		return stats, errors.New("header has no team number column")
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}
		var team schema.RawTeamData
		for i, cell := range record {
			if setters[i] == nil {
				continue
			}
			if err := setters[i](&team, strings.TrimSpace(cell)); err != nil {
				line, _ := reader.FieldPos(i)
				return stats, fmt.Errorf("line %d column %q: %w", line, header[i], err)
			}
		}
		stats.Teams = append(stats.Teams, team)
	}
	return stats, nil
}

// leadingEventName returns the name from the comment block before the header.
func leadingEventName(data string) string {
	for line := range strings.Lines(data) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			return ""
		}
		if name, ok := strings.CutPrefix(line, eventNamePrefix); ok {
			return strings.TrimSpace(name)
		}
	}
	return ""
}
