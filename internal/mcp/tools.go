package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/seeker-labs/radarhub/internal/search"
	"github.com/seeker-labs/radarhub/internal/store"
)

// getString extracts an optional string argument, returning "" when absent.
func getString(req mcp.CallToolRequest, key string) string {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return ""
	}
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// getBool extracts an optional boolean argument, returning false when absent.
func getBool(req mcp.CallToolRequest, key string) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return false
	}
	if v, ok := args[key].(bool); ok {
		return v
	}
	return false
}

// getInt extracts an optional numeric argument. JSON numbers arrive as
// float64; absent or non-numeric values return the fallback.
func getInt(req mcp.CallToolRequest, key string, fallback int) int {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return fallback
	}
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return fallback
}

// getFloat extracts an optional numeric argument as a pointer, nil when
// absent so the filter imposes no bound.
func getFloat(req mcp.CallToolRequest, key string) *float64 {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	if v, ok := args[key].(float64); ok {
		return &v
	}
	return nil
}

// parseWhen accepts RFC3339 or plain YYYY-MM-DD and returns a unix timestamp.
func parseWhen(s string) (int64, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Unix(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, fmt.Errorf("unrecognised date %q (want RFC3339 or YYYY-MM-DD)", s)
	}
	return t.Unix(), nil
}

// jsonResult marshals v for display and wraps it in a text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (h *handlers) searchItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := search.Request{
		Search: getString(req, "query"),
		Filter: store.Filter{
			ScoreMin:      getFloat(req, "score_min"),
			ScoreMax:      getFloat(req, "score_max"),
			BookmarksOnly: getBool(req, "bookmarks_only"),
			SortBy:        getString(req, "sort_by"),
			SortOrder:     getString(req, "sort_order"),
			Limit:         getInt(req, "limit", 0),
			Offset:        getInt(req, "offset", 0),
		},
	}

	if s := getString(req, "sources"); s != "" {
		for _, src := range strings.Split(s, ",") {
			if src = strings.TrimSpace(src); src != "" {
				r.Sources = append(r.Sources, src)
			}
		}
	}
	if s := getString(req, "date_from"); s != "" {
		ts, err := parseWhen(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		r.DateFrom = &ts
	}
	if s := getString(req, "date_to"); s != "" {
		ts, err := parseWhen(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		r.DateTo = &ts
	}

	items, err := h.engine.Search(ctx, r)
	if err != nil {
		h.log.Error("search failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	out := make([]store.ItemJSON, 0, len(items))
	for i := range items {
		out = append(out, items[i].ToJSON())
	}
	return jsonResult(map[string]any{"count": len(out), "items": out})
}

func (h *handlers) suggest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prefix, err := req.RequireString("prefix")
	if err != nil {
		return mcp.NewToolResultError("prefix is required"), nil
	}

	entries, err := h.st.Suggest(ctx, prefix)
	if err != nil {
		h.log.Error("suggest failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("suggest failed: %v", err)), nil
	}
	return jsonResult(entries)
}

func (h *handlers) recent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := h.st.Recent(ctx)
	if err != nil {
		h.log.Error("listing recent searches failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("recent failed: %v", err)), nil
	}
	return jsonResult(entries)
}

func (h *handlers) stats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.st.Stats(ctx)
	if err != nil {
		h.log.Error("stats failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}
	return jsonResult(stats)
}

func (h *handlers) bookmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id is required"), nil
	}

	if getBool(req, "remove") {
		if err := h.st.RemoveBookmark(ctx, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("remove bookmark: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("bookmark removed from %s", id)), nil
	}

	if err := h.st.AddBookmark(ctx, id, getString(req, "note"), nil); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("add bookmark: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("bookmarked %s", id)), nil
}
