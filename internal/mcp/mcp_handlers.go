package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/picklist/core"
	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/internal/outwriter"
	"github.com/huangsam/picklist/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
	src     contract.StatsSource
}

// requestConfig overlays the tool arguments on a copy of the base config.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if e := request.GetString("event_key", ""); e != "" {
		cfg.EventKey = e
	}
	if s := request.GetString("strategy", ""); s != "" {
		cfg.Strategy = schema.Strategy(s)
		cfg.CustomWeights = nil
	}
	if w := request.GetString("weights", ""); w != "" {
		weights, err := schema.ParseWeights(w)
		if err != nil {
			return nil, err
		}
		cfg.CustomWeights = &weights
	}
	if m := request.GetInt("min_matches", -1); m >= 0 {
		cfg.MinMatches = m
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	cfg.IncludeNotes = request.GetBool("include_notes", cfg.IncludeNotes)
	return cfg, nil
}

func (h *toolHandler) handleGeneratePickList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	list, err := core.GetPickListResults(core.WithSuppressHistory(ctx), cfg, h.mgr, h.src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("pick list generation failed: %v", err)), nil
	}

	limited := list.Limit(cfg.ResultLimit)
	output := struct {
		EventKey  string                      `json:"eventKey"`
		EventName string                      `json:"eventName"`
		Strategy  schema.Strategy             `json:"strategy"`
		Weights   schema.PickListWeights      `json:"weights"`
		Warnings  []string                    `json:"warnings,omitempty"`
		Teams     []schema.EnrichedRankedTeam `json:"teams"`
		Stats     schema.PickListStatistics   `json:"statistics"`
	}{
		EventKey:  limited.EventKey,
		EventName: limited.EventName,
		Strategy:  limited.Strategy,
		Weights:   limited.Weights,
		Warnings:  limited.Warnings,
		Teams:     schema.EnrichTeams(limited.Teams),
		Stats:     limited.Statistics,
	}
	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleValidateWeights(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	strategy, weights, err := core.ResolveWeights(cfg.Selection())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("weight resolution failed: %v", err)), nil
	}

	output := struct {
		Strategy schema.Strategy        `json:"strategy"`
		Weights  schema.PickListWeights `json:"weights"`
		Sum      float64                `json:"sum"`
		schema.WeightValidation
	}{strategy, weights, weights.Sum(), core.ValidateWeights(weights)}
	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handlePickListStatistics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	list, err := core.GetPickListResults(core.WithSuppressHistory(ctx), cfg, h.mgr, h.src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("statistics failed: %v", err)), nil
	}

	output := struct {
		EventKey   string                    `json:"eventKey"`
		Strategy   schema.Strategy           `json:"strategy"`
		TeamCount  int                       `json:"teamCount"`
		Statistics schema.PickListStatistics `json:"statistics"`
	}{list.EventKey, list.Strategy, len(list.Teams), list.Statistics}
	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListStrategies(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model := outwriter.BuildStrategiesRenderModel(h.baseCfg.ComputedWeights)
	jsonData, _ := json.MarshalIndent(model, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
