package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/huangsam/picklist/schema"
)

// EvaluateColumns ranks one team pool once per column using a bounded pool
// of workers. Results come back in column order. Cancelling ctx stops
// dispatching columns and returns ctx.Err().
func EvaluateColumns(ctx context.Context, teams []schema.RawTeamData, columns []schema.Column, opts schema.GenerateOptions, workers int) ([]schema.ColumnResult, error) {
	if len(columns) == 0 {
		return []schema.ColumnResult{}, nil
	}
	workers = max(1, min(workers, len(columns)))
	opts = opts.WithDefaults()

	results := make([]schema.ColumnResult, len(columns))
	errs := make([]error, len(columns))
	indexCh := make(chan int, len(columns))

	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for i := range indexCh {
				if ctx.Err() != nil {
					continue
				}
				results[i], errs[i] = evaluateColumn(teams, columns[i], opts)
			}
		})
	}

dispatch:
	for i := range columns {
		select {
		case <-ctx.Done():
			break dispatch
		case indexCh <- i:
		}
	}
	close(indexCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", columnName(columns[i], i), err)
		}
	}
	return results, nil
}

// evaluateColumn ranks the pool for a single column.
func evaluateColumn(teams []schema.RawTeamData, col schema.Column, opts schema.GenerateOptions) (schema.ColumnResult, error) {
	_, weights, err := ResolveWeights(col.Selection())
	if err != nil {
		return schema.ColumnResult{}, err
	}

	direction := col.SortDirection
	if direction == "" {
		direction = schema.SortDesc
	}
	if _, ok := schema.ValidSortDirections[direction]; !ok {
		return schema.ColumnResult{}, fmt.Errorf("invalid sort direction '%s'", col.SortDirection)
	}

	ranked := RankTeamsWithThresholds(teams, weights, opts.MinMatches, opts.StrengthThreshold, opts.WeaknessThreshold)
	if !opts.IncludeNotes {
		stripNotes(ranked)
	}

	key := col.SortMetric
	switch {
	case key == "" || strings.EqualFold(key, schema.CompositeSortKey):
		if direction == schema.SortAsc {
			sortByValue(ranked, func(t schema.RankedTeam) (float64, bool) { return t.CompositeScore, true }, direction)
		}
	case strings.EqualFold(key, schema.MatchesPlayedSortKey):
		sortByValue(ranked, func(t schema.RankedTeam) (float64, bool) { return float64(t.MatchesPlayed), true }, direction)
	default:
		m, err := schema.ParseMetric(key)
		if err != nil {
			return schema.ColumnResult{}, err
		}
		def := m.Definition()
		sortByValue(ranked, func(t schema.RankedTeam) (float64, bool) {
			return def.Value(t.RawTeamData), def.Present(t.RawTeamData)
		}, direction)
	}
	assignRanks(ranked)

	return schema.ColumnResult{
		Column:   col,
		Teams:    ranked,
		Warnings: ValidateWeights(weights).Warnings,
	}, nil
}

// sortByValue orders teams by a value in the given direction. Teams without
// a value go last; ties are broken by ascending team number.
func sortByValue(ranked []schema.RankedTeam, value func(schema.RankedTeam) (float64, bool), direction schema.SortDirection) {
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, okI := value(ranked[i])
		vj, okJ := value(ranked[j])
		if okI != okJ {
			return okI
		}
		if okI && vi != vj {
			if direction == schema.SortAsc {
				return vi < vj
			}
			return vi > vj
		}
		return ranked[i].TeamNumber < ranked[j].TeamNumber
	})
}

// columnName identifies a column in error messages.
func columnName(col schema.Column, index int) string {
	switch {
	case col.Title != "":
		return col.Title
	case col.ID != "":
		return col.ID
	default:
		return fmt.Sprintf("#%d", index+1)
	}
}
