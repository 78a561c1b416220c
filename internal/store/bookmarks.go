// bookmarks.go implements bookmark annotation CRUD.
//
// Bookmarks have an independent lifecycle from the items they annotate:
// the API layer creates and removes them explicitly, and updates never
// touch the item row. Presence of a bookmark exempts the item from
// retention sweeps (see sweep.go).

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

// AddBookmark annotates an item. Adding to an already-bookmarked item
// refreshes the note and tags but keeps the original created_at, so at
// most one bookmark ever exists per item. Returns ErrNotFound if the item
// does not exist.
func (s *SQLiteStore) AddBookmark(ctx context.Context, itemID, note string, tags []string) error {
	tagsJSON, err := marshalTags(tags)
	if err != nil {
		return err
	}
	return s.Tx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE id = ?`, itemID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check item %s: %w", itemID, err)
		}
		if exists == 0 {
			return fmt.Errorf("bookmark %s: %w", itemID, ErrNotFound)
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO bookmarks (item_id, note, tags, created_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(item_id) DO UPDATE SET note = excluded.note, tags = excluded.tags`,
			itemID, note, tagsJSON, time.Now().Unix())
		if err != nil {
			return fmt.Errorf("add bookmark %s: %w", itemID, err)
		}
		return nil
	})
}

// UpdateBookmark replaces the note, tags, and reviewed flag of an existing
// bookmark. Returns ErrNotFound if the item has no bookmark.
func (s *SQLiteStore) UpdateBookmark(ctx context.Context, itemID, note string, tags []string, reviewed bool) error {
	tagsJSON, err := marshalTags(tags)
	if err != nil {
		return err
	}
	rev := 0
	if reviewed {
		rev = 1
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE bookmarks SET note = ?, tags = ?, reviewed = ? WHERE item_id = ?`,
		note, tagsJSON, rev, itemID)
	if err != nil {
		return fmt.Errorf("update bookmark %s: %w", itemID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update bookmark %s: %w", itemID, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveBookmark deletes the bookmark for an item. Returns ErrNotFound if
// the item has no bookmark; the item itself is untouched either way.
func (s *SQLiteStore) RemoveBookmark(ctx context.Context, itemID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE item_id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("remove bookmark %s: %w", itemID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove bookmark %s: %w", itemID, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBookmarks returns all bookmarked items, newest bookmark first.
// Every returned item carries a non-nil Bookmark.
func (s *SQLiteStore) ListBookmarks(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemCols+`
		FROM items i
		JOIN bookmarks b ON b.item_id = i.id
		ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}
