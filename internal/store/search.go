// search.go implements full-text search using SQLite's FTS5 extension.
//
// Separated from query.go because FTS5 has fundamentally different query
// semantics. Structured filters use exact column predicates; FTS5 uses
// tokenised search with its own query syntax (AND, OR, NOT, prefix*,
// phrase "matching").
//
// Design: ranking uses bm25 with the title column weighted at 2.0 against
// 1.0 for description, so a title hit outranks an equivalent description
// hit. bm25 returns smaller-is-better values, hence the ascending ORDER BY.

package store

import (
	"context"
	"fmt"
	"strings"
)

// SearchText performs ranked full-text search over the items_fts shadow,
// returning up to limit items in descending relevance order with bookmark
// annotations joined. The match string is passed to FTS5 unmodified and
// supports its full syntax.
//
// A malformed match string surfaces as an error classified by
// IsQuerySyntaxErr, enabling callers to fall back to structured filtering.
func (s *SQLiteStore) SearchText(ctx context.Context, match string, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemCols+`
		FROM items_fts
		JOIN items i ON items_fts.rowid = i.rowid
		LEFT JOIN bookmarks b ON b.item_id = i.id
		WHERE items_fts MATCH ?
		ORDER BY bm25(items_fts, 2.0, 1.0)
		LIMIT ?`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("full-text search %q: %w", match, err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// IsQuerySyntaxErr reports whether err is an FTS5 query-syntax rejection,
// as opposed to a store failure. The driver surfaces parse failures as
// generic errors, so classification is by message; this is the single
// place that decision lives.
func IsQuerySyntaxErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range []string{
		"fts5: syntax error",
		"unterminated string",
		"malformed MATCH",
		"no such column",
		"unknown special query",
		"fts5: phrase",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
