// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/NishizukaKoichi/score-function/internal/contract"
)

// Tool names exposed by the server.
const (
	ToolComputeScore     = "compute_score"
	ToolCompareScores    = "compare_scores"
	ToolGetDefaultConfig = "get_default_config"
	ToolDescribeFaces    = "describe_faces"
)

// NewMCPServer initializes and configures the scorefn MCP server without starting it.
// This is exposed for unit testing and for mounting over streamable HTTP.
func NewMCPServer(evaluator contract.ScoreEvaluator, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"scorefn",
		version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	h := &toolHandler{evaluator: evaluator}

	// --- 1. Tool: compute_score ---
	s.AddTool(mcp.NewTool(ToolComputeScore,
		mcp.WithDescription("Score a set of quality metrics across the spec, code, test, sec, pr and dep faces."),
		mcp.WithObject("metrics", mcp.Description("Metrics object with one group per face, plus optional uncertainty_sigma."), mcp.Required()),
		mcp.WithObject("config", mcp.Description("Partial score config merged over the defaults (e.g. {\"profile\": \"speed\"}).")),
	), h.handleComputeScore)

	// --- 2. Tool: compare_scores ---
	s.AddTool(mcp.NewTool(ToolCompareScores,
		mcp.WithDescription("Score two sets of metrics and report per-face deltas (target minus base)."),
		mcp.WithObject("base_metrics", mcp.Description("Metrics object for the base side."), mcp.Required()),
		mcp.WithObject("target_metrics", mcp.Description("Metrics object for the target side."), mcp.Required()),
		mcp.WithObject("config", mcp.Description("Partial score config applied to both sides.")),
	), h.handleCompareScores)

	// --- 3. Tool: get_default_config ---
	s.AddTool(mcp.NewTool(ToolGetDefaultConfig,
		mcp.WithDescription("Return the default score config that overrides are merged over."),
	), h.handleGetDefaultConfig)

	// --- 4. Tool: describe_faces ---
	s.AddTool(mcp.NewTool(ToolDescribeFaces,
		mcp.WithDescription("Describe the formula, weights and penalties of every face under the default config."),
		mcp.WithString("face", mcp.Description("Limit the description to one face: spec, code, test, sec, pr or dep.")),
	), h.handleDescribeFaces)

	return s
}

// StartMCPServer serves the scorefn MCP server over stdio until stdin closes.
func StartMCPServer(_ context.Context, evaluator contract.ScoreEvaluator, version string) error {
	return server.ServeStdio(NewMCPServer(evaluator, version))
}
