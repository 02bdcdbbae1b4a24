package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/healthtrack/internal/plan"
	"github.com/claude/healthtrack/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

const catalogURIPrefix = "healthtrack://catalog/"

func (h *handlers) profile(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rec, err := h.ds.LatestHealthRecord(ctx, UserIDFromContext(ctx))
	if errors.Is(err, storage.ErrNotFound) {
		return jsonContents(req.Params.URI, map[string]any{})
	}
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, rec)
}

func (h *handlers) goals(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rows, err := h.ds.ListGoals(ctx, UserIDFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, rows)
}

// catalog serves both catalog resources; the environment is the last URI
// segment.
func (h *handlers) catalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	env, err := plan.ParseEnvironment(strings.TrimPrefix(req.Params.URI, catalogURIPrefix))
	if err != nil {
		return nil, fmt.Errorf("catalog resource %s: %w", req.Params.URI, err)
	}
	rows, err := h.ds.ListCatalogExercises(ctx, env)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, rows)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
