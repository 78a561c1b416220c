// Package search implements the hybrid query engine: it decides between
// ranked full-text retrieval and a dynamic structured query, and degrades
// from the former to the latter when the full-text syntax is invalid.
//
// Design: the text path trades filter completeness for ranking simplicity.
// Only sources, bookmarksOnly, and scoreMin are applied to ranked hits, as
// an order-preserving post-filter; date bounds, scoreMax, sort, and offset
// apply on the structured path only. Callers get the same item shape from
// both paths and never see a full-text syntax error.
package search

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/seeker-labs/radarhub/internal/store"
)

// Backend is the slice of the store the engine needs: the two query
// strategies plus history recording.
type Backend interface {
	store.Searcher
	store.Historian
}

// Request is a full search request: an optional free-text query plus
// structured filters.
type Request struct {
	Search string
	store.Filter
}

// Engine compiles requests into queries against a Backend.
type Engine struct {
	backend Backend
	log     *zap.Logger
}

// New returns an Engine. A nil logger is replaced with a no-op logger.
func New(backend Backend, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{backend: backend, log: log}
}

// Search executes a request. With a non-empty free-text term it records the
// normalised query into history, runs ranked full-text retrieval, and
// post-filters the hits; without one (or when the full-text syntax is
// rejected) it runs a single dynamic structured query.
func (e *Engine) Search(ctx context.Context, req Request) ([]store.Item, error) {
	q := strings.TrimSpace(req.Search)
	if q != "" {
		// History is recorded before executing, so a query is logged even
		// when zero results come back. Failures must never abort the
		// search; they are logged and dropped.
		if err := e.backend.RecordQuery(ctx, strings.ToLower(q)); err != nil {
			e.log.Warn("recording search history failed", zap.String("query", q), zap.Error(err))
		}

		hits, err := e.backend.SearchText(ctx, RewritePrefix(q), req.Limit)
		if err == nil {
			return postFilter(hits, req.Filter), nil
		}
		if !store.IsQuerySyntaxErr(err) {
			return nil, err
		}
		e.log.Warn("full-text query rejected, falling back to structured filters",
			zap.String("query", q), zap.Error(err))
	}

	return e.backend.ListFiltered(ctx, req.Filter)
}

// RewritePrefix turns a bare term into a prefix query (term -> term*) so
// single-word search feels like substring matching. Queries containing
// whitespace, phrase quoting, or an explicit trailing wildcard carry
// operators or phrases and pass through unmodified.
func RewritePrefix(q string) string {
	if strings.ContainsRune(q, '"') || strings.HasSuffix(q, "*") {
		return q
	}
	if strings.IndexFunc(q, unicode.IsSpace) >= 0 {
		return q
	}
	return q + "*"
}

// postFilter removes ranked hits that fail the structured constraints the
// text path honours. Relevance order is preserved; filtering only removes
// rows, it never re-ranks.
func postFilter(hits []store.Item, f store.Filter) []store.Item {
	var allowed map[string]bool
	if len(f.Sources) > 0 {
		allowed = make(map[string]bool, len(f.Sources))
		for _, src := range f.Sources {
			allowed[src] = true
		}
	}

	out := hits[:0]
	for _, it := range hits {
		if allowed != nil && !allowed[it.Source] {
			continue
		}
		if f.BookmarksOnly && it.Bookmark == nil {
			continue
		}
		if f.ScoreMin != nil && it.Score < *f.ScoreMin {
			continue
		}
		out = append(out, it)
	}
	return out
}
