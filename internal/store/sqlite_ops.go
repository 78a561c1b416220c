// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, connection pooling,
// driver registration) from business logic. This is the only file that imports
// the SQLite driver, making it easier to swap implementations if needed.
//
// Design: WAL mode with busy timeout balances concurrency and durability.
// WAL allows concurrent readers during writes, so searches stay responsive
// while an ingestion batch commits. Reads never observe a partially-applied
// batch; they see the last fully-committed transaction.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite with WAL mode for concurrent
// access. It owns the corpus table, the FTS5 shadow index, bookmark
// annotations, catalogs, search history, and saved searches.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface compliance check. If a method is missing or has the
// wrong signature, the build fails immediately with a clear error rather than
// failing at runtime when the method is called.
var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at `path` and returns a configured
// SQLiteStore. The caller should call Close on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL mode: allows concurrent readers while an ingestion batch writes.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Busy timeout: how long to wait when another connection holds a lock.
	// Generous relative to typical batch sizes; prevents "database is locked"
	// errors when an ingest run and a search interleave.
	if _, err := db.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Synchronous NORMAL: with WAL, NORMAL is safe against corruption. The
	// only risk is losing the last transaction on OS crash - acceptable for
	// an aggregation corpus that the next ingest run re-supplies.
	if _, err := db.Exec(`PRAGMA synchronous=NORMAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting synchronous mode: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables, triggers, and indexes if they don't exist. Safe to
// call multiple times; uses IF NOT EXISTS throughout.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection. Call before process exit to ensure
// all pending writes are flushed.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for collaborators that need custom
// tables. Collaborators should not modify core tables directly.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// itemCols is the column list shared by every item read path. The bookmark
// columns come from a LEFT JOIN so plain reads and search results carry the
// annotation without a second round trip.
const itemCols = `i.id, i.source, i.title, i.url, i.description, i.author,
	i.stars, i.score, i.published_at, i.fetched_at, i.metadata,
	b.id, b.note, b.tags, b.reviewed, b.created_at`

// itemJoin is the FROM clause matching itemCols.
const itemJoin = ` FROM items i LEFT JOIN bookmarks b ON b.item_id = i.id`

// scanItem extracts an Item (with optional joined bookmark) from a row.
func scanItem(sc scanner) (Item, error) {
	var it Item
	var meta string
	var bID sql.NullInt64
	var bNote, bTags sql.NullString
	var bReviewed, bCreated sql.NullInt64

	err := sc.Scan(&it.ID, &it.Source, &it.Title, &it.URL, &it.Description, &it.Author,
		&it.Stars, &it.Score, &it.PublishedAt, &it.FetchedAt, &meta,
		&bID, &bNote, &bTags, &bReviewed, &bCreated)
	if err != nil {
		return it, err
	}

	if meta != "" && meta != "{}" {
		if err := json.Unmarshal([]byte(meta), &it.Metadata); err != nil {
			return it, fmt.Errorf("decode metadata for %s: %w", it.ID, err)
		}
	}

	if bID.Valid {
		bm := &Bookmark{
			ID:        bID.Int64,
			ItemID:    it.ID,
			Note:      bNote.String,
			Reviewed:  bReviewed.Int64 != 0,
			CreatedAt: bCreated.Int64,
		}
		if bTags.String != "" {
			if err := json.Unmarshal([]byte(bTags.String), &bm.Tags); err != nil {
				return it, fmt.Errorf("decode bookmark tags for %s: %w", it.ID, err)
			}
		}
		it.Bookmark = bm
	}
	return it, nil
}

// scanItems iterates over query results, collecting items into a slice.
func scanItems(rows *sql.Rows) ([]Item, error) {
	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Tx executes fn within a database transaction, handling Begin/Commit/Rollback
// automatically. If fn returns an error the transaction is rolled back,
// otherwise it is committed. Rollback is deferred to handle panics and early
// returns; it is a no-op after commit.
//
// Context cancellation will abort the transaction at the next database call.
//
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    if _, err := tx.ExecContext(ctx, `UPDATE ...`); err != nil {
//	        return err // triggers rollback
//	    }
//	    return nil // triggers commit
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// marshalMap serialises an open-ended attribute map, treating nil as the
// empty object so stored blobs are always valid JSON.
func marshalMap(m map[string]any) (string, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	return string(b), nil
}
