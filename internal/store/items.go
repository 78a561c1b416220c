// items.go implements the corpus write path and plain item reads.
//
// Separated to isolate upsert discipline from search. All ingestion goes
// through the same upsert statement: insert by id, update in place on
// conflict. fetched_at is stamped with the current time on every write so
// "most recently refreshed" is always derivable, and metadata is
// re-serialised even if unchanged.
//
// Design: UpsertMany runs the whole batch in one transaction. A malformed
// item (missing id) aborts the batch entirely - partial ingestion runs must
// never produce an inconsistent read.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const upsertItemSQL = `INSERT INTO items
	(id, source, title, url, description, author, stars, score, published_at, fetched_at, metadata)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		description = excluded.description,
		stars = excluded.stars,
		score = excluded.score,
		published_at = excluded.published_at,
		fetched_at = excluded.fetched_at,
		metadata = excluded.metadata`

// executor abstracts *sql.DB and *sql.Tx for statements that run either
// standalone or inside a batch transaction.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertItem(ctx context.Context, ex executor, item Item, now int64) error {
	if item.ID == "" {
		return fmt.Errorf("%w (source %q, title %q)", ErrMissingID, item.Source, item.Title)
	}
	meta, err := marshalMap(item.Metadata)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, upsertItemSQL,
		item.ID, item.Source, item.Title, item.URL, item.Description, item.Author,
		item.Stars, item.Score, item.PublishedAt, now, meta)
	if err != nil {
		return fmt.Errorf("upsert item %s: %w", item.ID, err)
	}
	return nil
}

// UpsertOne inserts or updates a single item by id. The item's FetchedAt is
// ignored; the store stamps the current time.
func (s *SQLiteStore) UpsertOne(ctx context.Context, item Item) error {
	return upsertItem(ctx, s.db, item, time.Now().Unix())
}

// UpsertMany inserts or updates a batch of items atomically. Either every
// item in the batch becomes visible or none does: a validation failure on
// any item rolls the whole transaction back. Returns the number of items
// written. Within the batch, writes are applied in the given sequence.
func (s *SQLiteStore) UpsertMany(ctx context.Context, items []Item) (int, error) {
	now := time.Now().Unix()
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		for _, item := range items {
			if err := upsertItem(ctx, tx, item, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Get retrieves one item by id with its bookmark annotation joined.
// Returns ErrNotFound if no item exists with that id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemCols+itemJoin+` WHERE i.id = ?`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	return &it, nil
}

// ListBySource returns all items from one source, newest published first,
// with bookmark annotations joined.
func (s *SQLiteStore) ListBySource(ctx context.Context, source string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemCols+itemJoin+` WHERE i.source = ? ORDER BY i.published_at DESC`, source)
	if err != nil {
		return nil, fmt.Errorf("list by source %s: %w", source, err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// CountBySource returns the item count per source.
func (s *SQLiteStore) CountBySource(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source, COUNT(*) FROM items GROUP BY source`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var source string
		var n int64
		if err := rows.Scan(&source, &n); err != nil {
			return nil, err
		}
		counts[source] = n
	}
	return counts, rows.Err()
}

// CountTotal returns the total number of stored items.
func (s *SQLiteStore) CountTotal(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}
