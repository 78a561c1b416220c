// query.go implements the structured-filter query path: an explicit
// predicate builder that appends a conjunctive clause (with a bound
// parameter) only for filters that are actually present. Absent filters
// impose no constraint.
//
// Design: the sort column comes from a fixed allow-list keyed by the
// requested sort name - never from a runtime-provided identifier - so a
// hostile SortBy degrades to the default score ordering instead of being
// interpolated into the statement.

package store

import (
	"context"
	"fmt"
	"strings"
)

// DefaultLimit is the page size applied when a request specifies none.
const DefaultLimit = 100

// Filter is the structured, non-text part of a search request. Pointer
// fields distinguish "absent" from a legitimate zero bound. All bounds are
// inclusive.
type Filter struct {
	Sources       []string // Restrict to these sources; empty means all
	DateFrom      *int64   // Minimum published_at (unix)
	DateTo        *int64   // Maximum published_at (unix)
	ScoreMin      *float64 // Minimum score
	ScoreMax      *float64 // Maximum score
	BookmarksOnly bool     // Only items with a bookmark annotation
	SortBy        string   // One of score, date, stars, recent, title; default score
	SortOrder     string   // "ASC" or "DESC" (default)
	Limit         int      // Page size, default DefaultLimit
	Offset        int      // Row offset, default 0
}

// sortColumns is the fixed allow-list mapping sort names to stored columns.
// Unrecognised names fall back to score.
var sortColumns = map[string]string{
	"score":  "i.score",
	"date":   "i.published_at",
	"stars":  "i.stars",
	"recent": "i.fetched_at",
	"title":  "i.title",
}

// SortColumn resolves a requested sort name against the allow-list.
func SortColumn(sortBy string) string {
	if col, ok := sortColumns[sortBy]; ok {
		return col
	}
	return sortColumns["score"]
}

// buildFilterQuery assembles the parameterised SELECT for a Filter.
// Split out from ListFiltered for testability.
func buildFilterQuery(f Filter) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT ` + itemCols + itemJoin + ` WHERE 1=1`)
	var args []any

	if len(f.Sources) > 0 {
		b.WriteString(` AND i.source IN (?` + strings.Repeat(`,?`, len(f.Sources)-1) + `)`)
		for _, src := range f.Sources {
			args = append(args, src)
		}
	}
	if f.DateFrom != nil {
		b.WriteString(` AND i.published_at >= ?`)
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		b.WriteString(` AND i.published_at <= ?`)
		args = append(args, *f.DateTo)
	}
	if f.ScoreMin != nil {
		b.WriteString(` AND i.score >= ?`)
		args = append(args, *f.ScoreMin)
	}
	if f.ScoreMax != nil {
		b.WriteString(` AND i.score <= ?`)
		args = append(args, *f.ScoreMax)
	}
	if f.BookmarksOnly {
		b.WriteString(` AND b.id IS NOT NULL`)
	}

	order := "DESC"
	if strings.EqualFold(f.SortOrder, "ASC") {
		order = "ASC"
	}
	b.WriteString(` ORDER BY ` + SortColumn(f.SortBy) + ` ` + order)

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	b.WriteString(` LIMIT ? OFFSET ?`)
	args = append(args, limit, offset)

	return b.String(), args
}

// ListFiltered executes the structured-query strategy: one dynamic,
// parameterised query over the corpus with bookmark annotations joined.
func (s *SQLiteStore) ListFiltered(ctx context.Context, f Filter) ([]Item, error) {
	q, args := buildFilterQuery(f)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("filtered query: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}
