// interfaces.go defines the storage abstraction for the corpus.
//
// Separated from the SQLite implementation to enable testing and potential
// alternative backends. The interfaces are intentionally granular (Ingestor,
// Reader, Searcher, etc.) to support interface segregation - consumers only
// depend on the capabilities they need. The hybrid search engine, for
// example, depends only on Searcher and Historian.

package store

import (
	"context"
	"database/sql"
)

// Ingestor defines the corpus write path used by ingestion runs.
type Ingestor interface {
	// UpsertOne inserts or updates a single item by id, stamping fetched_at.
	UpsertOne(ctx context.Context, item Item) error

	// UpsertMany inserts or updates a batch atomically - all items become
	// visible together or the whole batch rolls back.
	UpsertMany(ctx context.Context, items []Item) (int, error)
}

// Reader defines plain read operations. All reads join bookmark state.
type Reader interface {
	// Get retrieves one item by id. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Item, error)

	// ListBySource returns a source's items, newest published first.
	ListBySource(ctx context.Context, source string) ([]Item, error)

	// CountBySource returns per-source item counts.
	CountBySource(ctx context.Context) (map[string]int64, error)

	// CountTotal returns the total item count.
	CountTotal(ctx context.Context) (int64, error)

	// Stats returns aggregate corpus statistics.
	Stats(ctx context.Context) (*Stats, error)
}

// Searcher defines the two query strategies the hybrid engine composes.
type Searcher interface {
	// SearchText performs ranked FTS5 search, best matches first.
	SearchText(ctx context.Context, match string, limit int) ([]Item, error)

	// ListFiltered executes a dynamic structured query built from a Filter.
	ListFiltered(ctx context.Context, f Filter) ([]Item, error)
}

// Annotator defines bookmark operations.
type Annotator interface {
	// AddBookmark annotates an item. Returns ErrNotFound for missing items.
	AddBookmark(ctx context.Context, itemID, note string, tags []string) error

	// UpdateBookmark replaces note, tags, and the reviewed flag.
	UpdateBookmark(ctx context.Context, itemID, note string, tags []string, reviewed bool) error

	// RemoveBookmark deletes an item's bookmark.
	RemoveBookmark(ctx context.Context, itemID string) error

	// ListBookmarks returns bookmarked items, newest bookmark first.
	ListBookmarks(ctx context.Context) ([]Item, error)
}

// Historian defines search history recording and retrieval.
type Historian interface {
	// RecordQuery increments-or-creates the entry for a normalised query.
	RecordQuery(ctx context.Context, query string) error

	// Suggest returns prefix matches, count then recency descending.
	Suggest(ctx context.Context, prefix string) ([]SearchEntry, error)

	// Recent returns entries by recency alone.
	Recent(ctx context.Context) ([]SearchEntry, error)
}

// Keeper defines saved search templates.
type Keeper interface {
	// SaveSearch persists a named query template and returns its id.
	SaveSearch(ctx context.Context, name, query string, filters map[string]any, sortBy string) (int64, error)

	// ListSavedSearches returns all templates, newest first.
	ListSavedSearches(ctx context.Context) ([]SavedSearch, error)

	// DeleteSavedSearch removes a template by id.
	DeleteSavedSearch(ctx context.Context, id int64) error
}

// Cataloger defines the source and keyword catalogs served to adapters.
type Cataloger interface {
	UpsertSources(ctx context.Context, sources []Source) error
	ListSources(ctx context.Context) ([]Source, error)
	EnabledSources(ctx context.Context) ([]Source, error)
	ToggleSource(ctx context.Context, id string, enabled bool) error
	MarkSourceFetched(ctx context.Context, id string) error
	UpsertKeywords(ctx context.Context, keywords []Keyword) error
	ListKeywords(ctx context.Context) ([]Keyword, error)
}

// Maintainer defines lifecycle and maintenance operations.
type Maintainer interface {
	// RetentionSweep deletes unbookmarked items older than maxAgeDays.
	RetentionSweep(ctx context.Context, maxAgeDays int) (int64, error)

	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for collaborator tables.
	DB() *sql.DB

	// Tx runs fn inside one transaction, committing on nil.
	Tx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// Store defines the full persistence interface for the corpus and its
// satellite tables.
type Store interface {
	Ingestor
	Reader
	Searcher
	Annotator
	Historian
	Keeper
	Cataloger
	Maintainer
}
