// Package store defines corpus persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"time"
)

// Item is one aggregated unit of ingested content. The ID is a stable,
// source-qualified identifier (e.g. "github:golang/go@v1.25.0") and is the
// only field ingestion adapters must supply. Re-ingesting the same ID is an
// update, never a duplicate row.
type Item struct {
	ID          string         // Source-qualified unique identifier (primary key)
	Source      string         // Origin identifier (e.g. "github", "hn", "docs")
	Title       string         // Display title, indexed for full-text search
	URL         string         // Canonical link to the content
	Description string         // Summary text, indexed for full-text search
	Author      string         // Source-reported author, may be empty
	Stars       int64          // Repository stars or equivalent signal, >= 0
	Score       float64        // Source-computed relevance/importance score
	PublishedAt int64          // Unix timestamp reported by the source
	FetchedAt   int64          // Unix timestamp stamped by the store on every write
	Metadata    map[string]any // Open-ended attributes, serialised opaquely as JSON

	// Bookmark is the joined annotation, nil when the item is not bookmarked.
	// Populated by all read paths so consumers never need a second round trip.
	Bookmark *Bookmark
}

// Bookmark is a one-to-one annotation on an Item. At most one bookmark
// exists per item, and a bookmarked item is exempt from retention sweeps.
type Bookmark struct {
	ID        int64    // Database primary key
	ItemID    string   // Annotated item (unique)
	Note      string   // Free-text note
	Tags      []string // Ordered tag list, stored as JSON
	Reviewed  bool     // Whether the user has reviewed this item
	CreatedAt int64    // Unix timestamp of creation
}

// Source describes one configured ingestion origin. The core persists and
// serves the catalog; fetching and parsing belong to the adapters.
type Source struct {
	ID               string         // Unique source identifier
	Name             string         // Display name
	Type             string         // Adapter type (e.g. "github", "rss")
	URL              string         // Endpoint the adapter fetches from
	Enabled          bool           // Disabled sources are skipped by ingest runs
	RateLimitMinutes int            // Minimum minutes between fetches
	Config           map[string]any // Adapter-specific settings, opaque JSON
	LastFetchedAt    int64          // Unix timestamp of last successful fetch, 0 if never
}

// Keyword is one scoring keyword served to ingestion adapters. The core
// stores the catalog without interpreting it.
type Keyword struct {
	Category string  // Keyword group identifier
	Keyword  string  // The keyword itself (unique within category)
	Weight   float64 // Scoring weight applied by adapters
}

// SearchEntry is one frequency-ranked search history record, keyed by the
// normalised query string. Count only ever increases.
type SearchEntry struct {
	Query      string // Normalised query string (trimmed, lower-cased)
	Count      int64  // Times this exact query was recorded
	LastUsedAt int64  // Unix timestamp of the most recent recording
}

// SavedSearch is a named, persisted query template. Never mutated after
// creation; filters are stored opaquely and not validated against the
// current filter schema.
type SavedSearch struct {
	ID        int64          // Database primary key
	Name      string         // User-chosen name
	Query     string         // Free-text query, may be empty
	Filters   map[string]any // Structured filters, opaque to the store
	SortBy    string         // Requested sort key
	CreatedAt int64          // Unix timestamp of creation
}

// Stats provides aggregate corpus statistics for dashboards and
// operational visibility.
type Stats struct {
	TotalItems    int64            // All stored items
	BySource      map[string]int64 // Item count per source
	BookmarkCount int64            // Total bookmark annotations
}

// ItemJSON is the API-friendly representation of an Item with RFC3339
// timestamps and the bookmark annotation nested when present.
type ItemJSON struct {
	ID          string         `json:"id"`
	Source      string         `json:"source"`
	Title       string         `json:"title"`
	URL         string         `json:"url,omitempty"`
	Description string         `json:"description,omitempty"`
	Author      string         `json:"author,omitempty"`
	Stars       int64          `json:"stars,omitempty"`
	Score       float64        `json:"score"`
	PublishedAt string         `json:"published_at,omitempty"`
	FetchedAt   string         `json:"fetched_at"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Bookmark    *BookmarkJSON  `json:"bookmark,omitempty"`
}

// BookmarkJSON is the API-friendly representation of a Bookmark.
type BookmarkJSON struct {
	Note      string   `json:"note,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Reviewed  bool     `json:"reviewed,omitempty"`
	CreatedAt string   `json:"created_at"`
}

// ToJSON converts an Item to its API representation.
func (i *Item) ToJSON() ItemJSON {
	j := ItemJSON{
		ID:          i.ID,
		Source:      i.Source,
		Title:       i.Title,
		URL:         i.URL,
		Description: i.Description,
		Author:      i.Author,
		Stars:       i.Stars,
		Score:       i.Score,
		FetchedAt:   formatUnix(i.FetchedAt),
		Metadata:    i.Metadata,
	}
	if i.PublishedAt != 0 {
		j.PublishedAt = formatUnix(i.PublishedAt)
	}
	if i.Bookmark != nil {
		j.Bookmark = &BookmarkJSON{
			Note:      i.Bookmark.Note,
			Tags:      i.Bookmark.Tags,
			Reviewed:  i.Bookmark.Reviewed,
			CreatedAt: formatUnix(i.Bookmark.CreatedAt),
		}
	}
	return j
}

func formatUnix(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
