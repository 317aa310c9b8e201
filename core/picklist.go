package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/schema"
)

// ResolveWeights turns a selection into a strategy name and weight vector.
// Explicit weights bypass the preset lookup; they keep the selection's
// strategy name when one is given and are labeled custom otherwise.
func ResolveWeights(sel schema.WeightSelection) (schema.Strategy, schema.PickListWeights, error) {
	if sel.Weights != nil {
		strategy := sel.Strategy
		if strategy == "" {
			strategy = schema.CustomStrategy
		}
		return strategy, *sel.Weights, nil
	}

	strategy := sel.Strategy
	if strategy == "" {
		strategy = schema.BalancedStrategy
	}
	w, ok := schema.GetPresetWeights(strategy)
	if !ok {
		return "", schema.PickListWeights{}, fmt.Errorf("%w: '%s'", contract.ErrUnknownStrategy, sel.Strategy)
	}
	return strategy, w, nil
}

// Generate loads the statistics of an event and builds its pick list.
// Weight problems are attached as warnings rather than failing the call.
func Generate(ctx context.Context, src contract.StatsSource, eventKey string, sel schema.WeightSelection, opts schema.GenerateOptions) (*schema.PickList, error) {
	strategy, weights, err := ResolveWeights(sel)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats, err := src.LoadEvent(ctx, eventKey)
	if err != nil {
		return nil, fmt.Errorf("load event %s: %w", eventKey, err)
	}
	if len(stats.Teams) == 0 {
		return nil, fmt.Errorf("event %s: %w", eventKey, contract.ErrNoTeamStatistics)
	}
	if stats.EventKey == "" {
		stats.EventKey = eventKey
	}
	return BuildPickList(stats, strategy, weights, opts), nil
}

// BuildPickList ranks an already loaded event.
func BuildPickList(stats schema.EventStats, strategy schema.Strategy, weights schema.PickListWeights, opts schema.GenerateOptions) *schema.PickList {
	opts = opts.WithDefaults()
	validation := ValidateWeights(weights)
	ranked := RankTeamsWithThresholds(stats.Teams, weights, opts.MinMatches, opts.StrengthThreshold, opts.WeaknessThreshold)
	if !opts.IncludeNotes {
		stripNotes(ranked)
	}

	var warnings []string
	if len(validation.Warnings) > 0 {
		warnings = append(warnings, validation.Warnings...)
	}

	return &schema.PickList{
		EventKey:    stats.EventKey,
		EventName:   stats.EventName,
		Strategy:    strategy,
		Weights:     weights,
		Teams:       ranked,
		Statistics:  CalculateStatistics(ranked),
		Warnings:    warnings,
		GeneratedAt: time.Now().UTC(),
	}
}

// stripNotes drops scouting notes from the ranked teams.
func stripNotes(ranked []schema.RankedTeam) {
	for i := range ranked {
		ranked[i].Notes = nil
	}
}
