package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/schema"
)

// configStore returns the configuration store of mgr, or nil.
func configStore(mgr contract.StoreManager) contract.ConfigStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetConfigStore()
}

// historyStore returns the history store of mgr, or nil.
func historyStore(mgr contract.StoreManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}

// recordRun stores a generated pick list in the history store. Failures are
// logged and never abort the command.
func recordRun(ctx context.Context, mgr contract.StoreManager, list *schema.PickList, minMatches int) int64 {
	hs := historyStore(mgr)
	if hs == nil {
		return 0
	}

	run, teams, err := buildRunRecords(list, minMatches)
	if err != nil {
		logTrackingError("buildRunRecords", list.EventKey, err)
		return 0
	}
	runID, err := hs.RecordRun(ctx, run, teams)
	if err != nil {
		logTrackingError("RecordRun", list.EventKey, err)
		return 0
	}
	return runID
}

// buildRunRecords flattens a pick list into history rows.
func buildRunRecords(list *schema.PickList, minMatches int) (schema.RunRecord, []schema.RunTeamRecord, error) {
	weights, err := json.Marshal(list.Weights)
	if err != nil {
		return schema.RunRecord{}, nil, fmt.Errorf("failed to marshal weights: %w", err)
	}

	run := schema.RunRecord{
		EventKey:    list.EventKey,
		EventName:   list.EventName,
		Strategy:    string(list.Strategy),
		Weights:     string(weights),
		MinMatches:  int32(minMatches),
		TeamCount:   int32(len(list.Teams)),
		GeneratedAt: list.GeneratedAt,
	}
	if len(list.Warnings) > 0 {
		warnings := schema.JoinLabels(list.Warnings)
		run.Warnings = &warnings
	}

	teams := make([]schema.RunTeamRecord, len(list.Teams))
	for i, t := range list.Teams {
		teams[i] = schema.RunTeamRecord{
			TeamNumber:     int32(t.TeamNumber),
			Rank:           int32(t.Rank),
			CompositeScore: t.CompositeScore,
			OPR:            t.OPR,
			DPR:            t.DPR,
			CCWM:           t.CCWM,
			MatchesPlayed:  int32(t.MatchesPlayed),
			Strengths:      schema.JoinLabels(t.Strengths),
			Weaknesses:     schema.JoinLabels(t.Weaknesses),
		}
	}
	return run, teams, nil
}

// logTrackingError logs history tracking errors to stderr without disrupting generation.
func logTrackingError(operation, eventKey string, err error) {
	contract.LogWarn(fmt.Sprintf("History tracking failed for %s on %s", operation, eventKey), err)
}
