// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// strategyNames are the values accepted by the strategy argument.
var strategyNames = []string{"balanced", "offensive", "defensive", "reliable"}

// NewMCPServer initializes and configures the pick-list MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager, src contract.StatsSource) *server.MCPServer {
	s := server.NewMCPServer(
		"Pick List Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		src:     src,
	}

	s.AddTool(mcp.NewTool("generate_pick_list",
		mcp.WithDescription("Rank the teams of an event for alliance selection."),
		mcp.WithString("event_key", mcp.Description("Event key, such as 2024casj."), mcp.Required()),
		mcp.WithString("strategy", mcp.Description("Preset strategy. Defaults to 'balanced'."), mcp.Enum(strategyNames...)),
		mcp.WithString("weights", mcp.Description("Custom weights such as 'opr=0.5,reliability=0.5'. Overrides the strategy.")),
		mcp.WithNumber("min_matches", mcp.Description("Exclude teams with fewer matches played.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of teams returned.")),
		mcp.WithBoolean("include_notes", mcp.Description("Include scouting notes in the result.")),
	), h.handleGeneratePickList)

	s.AddTool(mcp.NewTool("validate_weights",
		mcp.WithDescription("Check a weight vector and report advisory warnings."),
		mcp.WithString("strategy", mcp.Description("Preset strategy to check."), mcp.Enum(strategyNames...)),
		mcp.WithString("weights", mcp.Description("Custom weights such as 'opr=0.5,reliability=0.5'.")),
	), h.handleValidateWeights)

	s.AddTool(mcp.NewTool("pick_list_statistics",
		mcp.WithDescription("Summarize the composite scores and averages of an event's pick list."),
		mcp.WithString("event_key", mcp.Description("Event key, such as 2024casj."), mcp.Required()),
		mcp.WithString("strategy", mcp.Description("Preset strategy."), mcp.Enum(strategyNames...)),
		mcp.WithNumber("min_matches", mcp.Description("Exclude teams with fewer matches played.")),
	), h.handlePickListStatistics)

	s.AddTool(mcp.NewTool("list_strategies",
		mcp.WithDescription("List the preset strategies with their weights and scoring formula."),
	), h.handleListStrategies)

	return s
}

// StartMCPServer starts the pick-list MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager, src contract.StatsSource) error {
	s := NewMCPServer(baseCfg, mgr, src)
	return server.ServeStdio(s)
}
