package ingest_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seeker-labs/radarhub/internal/ingest"
	"github.com/seeker-labs/radarhub/internal/store"
)

// stubAdapter returns fixed items or a fixed error.
type stubAdapter struct {
	source string
	items  []store.Item
	err    error
}

func (a *stubAdapter) Source() string { return a.source }

func (a *stubAdapter) Fetch(context.Context) ([]store.Item, error) { return a.items, a.err }

func setupBackend(t *testing.T) *store.SQLiteStore {
	t.Helper()

	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.Init())
	t.Cleanup(func() { st.Close() })

	require.NoError(t, st.UpsertSources(context.Background(), []store.Source{
		{ID: "github", Name: "GitHub", Type: "github", Enabled: true},
		{ID: "hackernews", Name: "HN", Type: "rss", Enabled: true},
	}))
	return st
}

func items(source string, ids ...string) []store.Item {
	out := make([]store.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, store.Item{ID: id, Source: source, Title: "title " + id})
	}
	return out
}

func resultFor(t *testing.T, results []ingest.Result, source string) ingest.Result {
	t.Helper()
	for _, r := range results {
		if r.Source == source {
			return r
		}
	}
	t.Fatalf("no result for source %s", source)
	return ingest.Result{}
}

func TestRunner_IngestsAllSources(t *testing.T) {
	st := setupBackend(t)
	ctx := context.Background()

	runner := ingest.New(st, nil, 2)
	results, err := runner.Run(ctx, []ingest.Adapter{
		&stubAdapter{source: "github", items: items("github", "gh:1", "gh:2")},
		&stubAdapter{source: "hackernews", items: items("hackernews", "hn:1")},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	gh := resultFor(t, results, "github")
	require.NoError(t, gh.Err)
	assert.Equal(t, 2, gh.Count)

	total, err := st.CountTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// Successful runs stamp the source's fetch time.
	sources, err := st.ListSources(ctx)
	require.NoError(t, err)
	for _, src := range sources {
		assert.Greater(t, src.LastFetchedAt, int64(0), src.ID)
	}
}

func TestRunner_FailureIsolation(t *testing.T) {
	st := setupBackend(t)
	ctx := context.Background()

	runner := ingest.New(st, nil, 2)
	results, err := runner.Run(ctx, []ingest.Adapter{
		&stubAdapter{source: "github", err: errors.New("rate limited")},
		&stubAdapter{source: "hackernews", items: items("hackernews", "hn:1", "hn:2")},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Error(t, resultFor(t, results, "github").Err)
	assert.NoError(t, resultFor(t, results, "hackernews").Err)

	// The healthy source's batch landed despite the failure.
	total, err := st.CountTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestRunner_BadBatchRollsBack(t *testing.T) {
	st := setupBackend(t)
	ctx := context.Background()

	bad := items("github", "gh:1")
	bad = append(bad, store.Item{Source: "github", Title: "missing id"})

	runner := ingest.New(st, nil, 1)
	results, err := runner.Run(ctx, []ingest.Adapter{
		&stubAdapter{source: "github", items: bad},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, store.ErrMissingID)

	total, err := st.CountTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestRunner_NoAdapters(t *testing.T) {
	st := setupBackend(t)

	runner := ingest.New(st, nil, 0)
	results, err := runner.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
