package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seeker-labs/radarhub/internal/config"
	"github.com/seeker-labs/radarhub/internal/store"
)

const sourcesYAML = `sources:
  - id: github
    name: GitHub Trending
    type: github
    url: https://github.com/trending
    enabled: true
    rate_limit_minutes: 120
    config:
      language: go
  - id: hackernews
    name: Hacker News
    type: rss
    url: https://news.ycombinator.com/rss
    enabled: false
`

const keywordsYAML = `categories:
  - id: ai
    weight: 2.0
    keywords: [llm, rag, agents]
  - id: infra
    weight: 1.0
    keywords: [kubernetes]
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sources.yaml", sourcesYAML)

	sources, err := config.LoadSources(filepath.Join(dir, "sources.yaml"))
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "github", sources[0].ID)
	assert.True(t, sources[0].Enabled)
	assert.Equal(t, 120, sources[0].RateLimitMinutes)
	assert.Equal(t, "go", sources[0].Config["language"])
	assert.False(t, sources[1].Enabled)
}

func TestLoadSources_MissingID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sources.yaml", "sources:\n  - name: nameless\n")

	_, err := config.LoadSources(filepath.Join(dir, "sources.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no id")
}

func TestLoadKeywords(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keywords.yaml", keywordsYAML)

	keywords, err := config.LoadKeywords(filepath.Join(dir, "keywords.yaml"))
	require.NoError(t, err)
	require.Len(t, keywords, 4)

	assert.Equal(t, "ai", keywords[0].Category)
	assert.Equal(t, "llm", keywords[0].Keyword)
	assert.Equal(t, 2.0, keywords[0].Weight)
	assert.Equal(t, "kubernetes", keywords[3].Keyword)
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sources.yaml", sourcesYAML)
	writeFile(t, dir, "keywords.yaml", keywordsYAML)

	st, err := store.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.Init())

	ctx := context.Background()
	require.NoError(t, config.Apply(ctx, st, dir))

	sources, err := st.ListSources(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, 2)

	keywords, err := st.ListKeywords(ctx)
	require.NoError(t, err)
	assert.Len(t, keywords, 4)
}

func TestApply_MissingFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()

	st, err := store.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.Init())

	assert.NoError(t, config.Apply(context.Background(), st, dir))
}
