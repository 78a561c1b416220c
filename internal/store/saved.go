// saved.go implements saved search templates: pure CRUD with no derived
// state. Filters are stored opaquely and never validated against the
// current filter schema - replaying an old saved search against an evolved
// schema is the caller's responsibility.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SaveSearch persists a named query template and returns its id.
// An empty sortBy defaults to "score".
func (s *SQLiteStore) SaveSearch(ctx context.Context, name, query string, filters map[string]any, sortBy string) (int64, error) {
	blob, err := marshalMap(filters)
	if err != nil {
		return 0, err
	}
	if sortBy == "" {
		sortBy = "score"
	}
	result, err := s.db.ExecContext(ctx, `INSERT INTO saved_searches
		(name, query, filters, sort_by, created_at) VALUES (?, ?, ?, ?, ?)`,
		name, query, blob, sortBy, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("save search %q: %w", name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save search %q: %w", name, err)
	}
	return id, nil
}

// ListSavedSearches returns all saved searches, newest first.
func (s *SQLiteStore) ListSavedSearches(ctx context.Context) ([]SavedSearch, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, query, filters, sort_by, created_at
		FROM saved_searches ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saved []SavedSearch
	for rows.Next() {
		var ss SavedSearch
		var blob string
		if err := rows.Scan(&ss.ID, &ss.Name, &ss.Query, &blob, &ss.SortBy, &ss.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan saved search: %w", err)
		}
		if blob != "" && blob != "{}" {
			if err := json.Unmarshal([]byte(blob), &ss.Filters); err != nil {
				return nil, fmt.Errorf("decode filters for saved search %d: %w", ss.ID, err)
			}
		}
		saved = append(saved, ss)
	}
	return saved, rows.Err()
}

// DeleteSavedSearch removes a saved search by id. Returns ErrNotFound if
// no saved search exists with that id.
func (s *SQLiteStore) DeleteSavedSearch(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM saved_searches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete saved search %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved search %d: %w", id, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
