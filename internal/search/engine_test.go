package search_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seeker-labs/radarhub/internal/search"
	"github.com/seeker-labs/radarhub/internal/store"
)

// fakeBackend records calls and returns canned responses, letting tests
// observe which strategy the engine chose.
type fakeBackend struct {
	textQuery    string
	textHits     []store.Item
	textErr      error
	filtered     []store.Item
	filteredWith *store.Filter
	recorded     []string
	recordErr    error
}

func (f *fakeBackend) SearchText(_ context.Context, match string, _ int) ([]store.Item, error) {
	f.textQuery = match
	return f.textHits, f.textErr
}

func (f *fakeBackend) ListFiltered(_ context.Context, filter store.Filter) ([]store.Item, error) {
	f.filteredWith = &filter
	return f.filtered, nil
}

func (f *fakeBackend) RecordQuery(_ context.Context, query string) error {
	f.recorded = append(f.recorded, query)
	return f.recordErr
}

func (f *fakeBackend) Suggest(context.Context, string) ([]store.SearchEntry, error) {
	return nil, nil
}

func (f *fakeBackend) Recent(context.Context) ([]store.SearchEntry, error) {
	return nil, nil
}

func item(id, source string, score float64) store.Item {
	return store.Item{ID: id, Source: source, Score: score}
}

func TestRewritePrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"rust", "rust*"},
		{"rust*", "rust*"},
		{"rust OR go", "rust OR go"},
		{`"exact phrase"`, `"exact phrase"`},
		{"web framework", "web framework"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, search.RewritePrefix(tt.in), "input %q", tt.in)
	}
}

func TestEngine_TextPath(t *testing.T) {
	backend := &fakeBackend{textHits: []store.Item{item("a", "github", 5)}}
	engine := search.New(backend, nil)

	items, err := engine.Search(context.Background(), search.Request{Search: "  Rust  "})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// Bare terms become prefix queries with case preserved; only the
	// history entry is lower-cased.
	assert.Equal(t, "Rust*", backend.textQuery)
	assert.Equal(t, []string{"rust"}, backend.recorded)
	assert.Nil(t, backend.filteredWith)
}

func TestEngine_StructuredPath(t *testing.T) {
	backend := &fakeBackend{filtered: []store.Item{item("a", "github", 5)}}
	engine := search.New(backend, nil)

	min := 3.0
	items, err := engine.Search(context.Background(), search.Request{
		Filter: store.Filter{ScoreMin: &min, SortBy: "stars"},
	})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// No text, so no full-text call and no history entry.
	assert.Empty(t, backend.textQuery)
	assert.Empty(t, backend.recorded)
	require.NotNil(t, backend.filteredWith)
	assert.Equal(t, "stars", backend.filteredWith.SortBy)
}

func TestEngine_SyntaxErrorFallsBack(t *testing.T) {
	backend := &fakeBackend{
		textErr:  errors.New(`fts5: syntax error near "\""`),
		filtered: []store.Item{item("a", "github", 5)},
	}
	engine := search.New(backend, nil)

	items, err := engine.Search(context.Background(), search.Request{Search: `"unbalanced`})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.NotNil(t, backend.filteredWith)
}

func TestEngine_OtherErrorsPropagate(t *testing.T) {
	backend := &fakeBackend{textErr: errors.New("database is locked")}
	engine := search.New(backend, nil)

	_, err := engine.Search(context.Background(), search.Request{Search: "rust"})
	require.Error(t, err)
	assert.Nil(t, backend.filteredWith)
}

func TestEngine_HistoryFailureDoesNotAbort(t *testing.T) {
	backend := &fakeBackend{
		recordErr: errors.New("disk full"),
		textHits:  []store.Item{item("a", "github", 5)},
	}
	engine := search.New(backend, nil)

	items, err := engine.Search(context.Background(), search.Request{Search: "rust"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestEngine_PostFilter(t *testing.T) {
	bm := &store.Bookmark{ID: 1}
	backend := &fakeBackend{textHits: []store.Item{
		{ID: "a", Source: "github", Score: 9},
		{ID: "b", Source: "hackernews", Score: 8, Bookmark: bm},
		{ID: "c", Source: "hackernews", Score: 2},
		{ID: "d", Source: "hackernews", Score: 6},
	}}
	engine := search.New(backend, nil)

	min := 5.0
	items, err := engine.Search(context.Background(), search.Request{
		Search: "anything",
		Filter: store.Filter{Sources: []string{"hackernews"}, ScoreMin: &min},
	})
	require.NoError(t, err)

	// Relevance order survives filtering.
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "d", items[1].ID)
}

func TestEngine_PostFilterBookmarksOnly(t *testing.T) {
	backend := &fakeBackend{textHits: []store.Item{
		{ID: "a", Source: "github", Score: 9},
		{ID: "b", Source: "github", Score: 8, Bookmark: &store.Bookmark{ID: 1}},
	}}
	engine := search.New(backend, nil)

	items, err := engine.Search(context.Background(), search.Request{
		Search: "anything",
		Filter: store.Filter{BookmarksOnly: true},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
}

// TestEngine_FallbackAgainstStore exercises the degradation path end to end:
// a malformed full-text query against a real store must produce exactly the
// structured result, with no error surfaced.
func TestEngine_FallbackAgainstStore(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "radarhub-engine-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	st, err := store.Open(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.Init())

	ctx := context.Background()
	_, err = st.UpsertMany(ctx, []store.Item{
		{ID: "gh:1", Source: "github", Title: "alpha", Score: 3},
		{ID: "gh:2", Source: "github", Title: "beta", Score: 7},
	})
	require.NoError(t, err)

	engine := search.New(st, nil)

	req := search.Request{Search: `"unbalanced quote`}
	got, err := engine.Search(ctx, req)
	require.NoError(t, err)

	want, err := st.ListFiltered(ctx, req.Filter)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// The malformed query still lands in history.
	entries, err := st.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
