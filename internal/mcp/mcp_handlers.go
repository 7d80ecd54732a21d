package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NishizukaKoichi/score-function/core"
	"github.com/NishizukaKoichi/score-function/internal/contract"
	"github.com/NishizukaKoichi/score-function/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	evaluator contract.ScoreEvaluator
}

func (h *toolHandler) handleComputeScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, err := scoreRequest(request, "metrics")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.evaluator.Evaluate(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleCompareScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	baseReq, err := scoreRequest(request, "base_metrics")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	targetReq, err := scoreRequest(request, "target_metrics")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	base, err := h.evaluator.Evaluate(ctx, baseReq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring base failed: %v", err)), nil
	}
	target, err := h.evaluator.Evaluate(ctx, targetReq)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring target failed: %v", err)), nil
	}
	return jsonResult(core.Compare(base, target))
}

func (h *toolHandler) handleGetDefaultConfig(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.evaluator.Defaults())
}

func (h *toolHandler) handleDescribeFaces(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	defs := core.FaceDefinitions(h.evaluator.Defaults())
	name := request.GetString("face", "")
	if name == "" {
		return jsonResult(defs)
	}

	face := schema.Face(strings.ToLower(name))
	if _, ok := schema.ValidFaces[face]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid face '%s'. must be one of: spec, code, test, sec, pr, dep", name)), nil
	}
	for _, def := range defs {
		if def.Face == face {
			return jsonResult([]schema.FaceDefinition{def})
		}
	}
	return mcp.NewToolResultError(fmt.Sprintf("no definition for face '%s'", face)), nil
}

// scoreRequest builds a ScoreRequest from the named metrics argument and the optional config.
// A missing metrics argument is left nil so the evaluator reports it.
func scoreRequest(request mcp.CallToolRequest, metricsKey string) (schema.ScoreRequest, error) {
	args := request.GetArguments()
	metrics, err := objectArg(args, metricsKey)
	if err != nil {
		return schema.ScoreRequest{}, err
	}
	config, err := objectArg(args, "config")
	if err != nil {
		return schema.ScoreRequest{}, err
	}
	return schema.ScoreRequest{Config: config, Metrics: metrics}, nil
}

// objectArg reads an object argument. Clients that cannot send objects may pass a JSON string.
func objectArg(args map[string]any, key string) (map[string]any, error) {
	switch v := args[key].(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(v), &obj); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("invalid %s: expected an object, got %T", key, v)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
