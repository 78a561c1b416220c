// history.go implements the frequency-ranked search history used for
// autocomplete suggestions.
//
// Entries are keyed by the normalised query string; recording the same
// string again increments its count by exactly one and refreshes recency.
// The count never decreases.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// suggestLimit caps suggestion and recent-search result sets.
const suggestLimit = 10

// RecordQuery upserts a search history entry for the normalised query:
// created with count 1, or incremented with recency refreshed.
func (s *SQLiteStore) RecordQuery(ctx context.Context, query string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO search_history (query, count, last_used_at)
		VALUES (?, 1, ?)
		ON CONFLICT(query) DO UPDATE SET
			count = count + 1,
			last_used_at = excluded.last_used_at`,
		query, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("record query %q: %w", query, err)
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]SearchEntry, error) {
	var entries []SearchEntry
	for rows.Next() {
		var e SearchEntry
		if err := rows.Scan(&e.Query, &e.Count, &e.LastUsedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Suggest returns up to 10 history entries whose query starts with prefix,
// highest count first, ties broken by recency - highest-value
// autocomplete first.
func (s *SQLiteStore) Suggest(ctx context.Context, prefix string) ([]SearchEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT query, count, last_used_at FROM search_history
		WHERE query LIKE ? || '%'
		ORDER BY count DESC, last_used_at DESC
		LIMIT ?`, prefix, suggestLimit)
	if err != nil {
		return nil, fmt.Errorf("suggest %q: %w", prefix, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Recent returns up to 10 history entries ordered purely by recency,
// independent of frequency.
func (s *SQLiteStore) Recent(ctx context.Context) ([]SearchEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT query, count, last_used_at FROM search_history
		ORDER BY last_used_at DESC
		LIMIT ?`, suggestLimit)
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}
