// Package mcp implements the Model Context Protocol server, exposing the
// radarhub corpus to LLM clients. Search, suggestions, stats, and bookmark
// management go through the same engine and store the CLI uses.
package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/seeker-labs/radarhub/internal/search"
	"github.com/seeker-labs/radarhub/internal/store"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// handlers provides MCP request handlers with access to the store and the
// hybrid search engine.
type handlers struct {
	st     store.Store
	engine *search.Engine
	log    *zap.Logger
}

// Serve starts the MCP server over stdio. The logger must write to stderr;
// stdout is reserved for MCP JSON-RPC messages.
func Serve(st store.Store, engine *search.Engine, log *zap.Logger) error {
	h := &handlers{st: st, engine: engine, log: log}

	s := server.NewMCPServer(
		"radarhub",
		Version,
		server.WithToolCapabilities(true),
	)

	registerTools(s, h)

	log.Info("radarhub MCP server ready", zap.String("version", Version), zap.String("transport", "stdio"))

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		log.Info("server stopped")
		return nil
	}
	return err
}

func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("radar_search",
			mcp.WithDescription("Search aggregated items with ranked full-text search and structured filters"),
			mcp.WithString("query", mcp.Description("Free-text query (FTS5 syntax: AND, OR, NOT, \"phrase\", prefix*)")),
			mcp.WithString("sources", mcp.Description("Comma-separated source ids to restrict to")),
			mcp.WithString("date_from", mcp.Description("Inclusive minimum publish date (RFC3339 or YYYY-MM-DD)")),
			mcp.WithString("date_to", mcp.Description("Inclusive maximum publish date (RFC3339 or YYYY-MM-DD)")),
			mcp.WithNumber("score_min", mcp.Description("Inclusive minimum score")),
			mcp.WithNumber("score_max", mcp.Description("Inclusive maximum score")),
			mcp.WithBoolean("bookmarks_only", mcp.Description("Only bookmarked items")),
			mcp.WithString("sort_by", mcp.Description("Sort key: score, date, stars, recent, title (default score)")),
			mcp.WithString("sort_order", mcp.Description("ASC or DESC (default DESC)")),
			mcp.WithNumber("limit", mcp.Description("Page size (default 100)")),
			mcp.WithNumber("offset", mcp.Description("Row offset (default 0)")),
		),
		h.searchItems,
	)

	s.AddTool(
		mcp.NewTool("radar_suggest",
			mcp.WithDescription("Autocomplete suggestions from search history, highest-value first"),
			mcp.WithString("prefix", mcp.Required(), mcp.Description("Query prefix to complete")),
		),
		h.suggest,
	)

	s.AddTool(
		mcp.NewTool("radar_recent",
			mcp.WithDescription("Most recent searches, newest first"),
		),
		h.recent,
	)

	s.AddTool(
		mcp.NewTool("radar_stats",
			mcp.WithDescription("Corpus statistics: item counts per source and bookmark count"),
		),
		h.stats,
	)

	s.AddTool(
		mcp.NewTool("radar_bookmark",
			mcp.WithDescription("Add or remove a bookmark on an item"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Item id")),
			mcp.WithBoolean("remove", mcp.Description("Remove the bookmark instead of adding")),
			mcp.WithString("note", mcp.Description("Bookmark note")),
		),
		h.bookmark,
	)
}
