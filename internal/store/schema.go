// schema.go defines the SQLite database schema and provides schema execution helpers.
//
// Schema files are embedded from the sql/ directory and executed in alphabetical
// order (hence the numeric prefixes like 001_, 002_). This approach:
//
//   - Makes each table's schema self-contained and reviewable
//   - Produces cleaner git diffs when schema changes
//   - Ensures deterministic execution order via numbered prefixes
//
// The items_fts shadow index lives in 002_fts.sql together with the triggers
// that keep it consistent with the items table inside the same transaction
// as any item write. The corpus table is always the source of truth; the
// index can be rebuilt from it.

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var schemas embed.FS

var (
	// ErrNotFound indicates the requested item, bookmark, or saved search
	// does not exist. Callers should check for this to distinguish missing
	// data from other errors.
	ErrNotFound = errors.New("not found")
	// ErrMissingID indicates an ingested item without a stable identifier.
	// An upsert batch containing such an item is rolled back as a whole.
	ErrMissingID = errors.New("item missing id")
)

// ExecEmbedded executes all .sql files from an embedded filesystem in
// alphabetical order. Each .sql file uses IF NOT EXISTS clauses so the
// schema is idempotent across restarts.
func ExecEmbedded(db *sql.DB, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	// Sort entries to ensure deterministic order (should already be sorted, but be explicit)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// execSchema executes the embedded core schema files.
func execSchema(db *sql.DB) error {
	return ExecEmbedded(db, schemas, "sql")
}
