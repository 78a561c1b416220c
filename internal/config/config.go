// Package config loads the source and keyword catalogs from YAML files
// and seeds them into the store at startup. The core only persists and
// serves the catalogs; adapters interpret them.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/seeker-labs/radarhub/internal/store"
)

// SourceFile mirrors sources.yaml.
type SourceFile struct {
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig is one configured ingestion origin.
type SourceConfig struct {
	ID               string         `yaml:"id"`
	Name             string         `yaml:"name"`
	Type             string         `yaml:"type"`
	URL              string         `yaml:"url"`
	Enabled          bool           `yaml:"enabled"`
	RateLimitMinutes int            `yaml:"rate_limit_minutes"`
	Config           map[string]any `yaml:"config"`
}

// KeywordFile mirrors keywords.yaml: keywords grouped into weighted
// categories.
type KeywordFile struct {
	Categories []KeywordCategory `yaml:"categories"`
}

// KeywordCategory is one weighted keyword group.
type KeywordCategory struct {
	ID       string   `yaml:"id"`
	Weight   float64  `yaml:"weight"`
	Keywords []string `yaml:"keywords"`
}

// LoadSources parses a sources.yaml file into catalog entries.
func LoadSources(path string) ([]store.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var f SourceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	sources := make([]store.Source, 0, len(f.Sources))
	for _, sc := range f.Sources {
		if sc.ID == "" {
			return nil, fmt.Errorf("%s: source %q has no id", path, sc.Name)
		}
		sources = append(sources, store.Source{
			ID:               sc.ID,
			Name:             sc.Name,
			Type:             sc.Type,
			URL:              sc.URL,
			Enabled:          sc.Enabled,
			RateLimitMinutes: sc.RateLimitMinutes,
			Config:           sc.Config,
		})
	}
	return sources, nil
}

// LoadKeywords parses a keywords.yaml file, flattening categories into
// individual weighted keywords.
func LoadKeywords(path string) ([]store.Keyword, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var f KeywordFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var keywords []store.Keyword
	for _, cat := range f.Categories {
		for _, kw := range cat.Keywords {
			keywords = append(keywords, store.Keyword{
				Category: cat.ID,
				Keyword:  kw,
				Weight:   cat.Weight,
			})
		}
	}
	return keywords, nil
}

// Apply loads sources.yaml and keywords.yaml from dir and upserts both
// catalogs. Missing files are skipped silently - catalogs are optional and
// a store seeded on a previous run keeps serving its persisted catalog.
func Apply(ctx context.Context, st store.Cataloger, dir string) error {
	sources, err := LoadSources(filepath.Join(dir, "sources.yaml"))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		if err := st.UpsertSources(ctx, sources); err != nil {
			return fmt.Errorf("seed sources: %w", err)
		}
	}

	keywords, err := LoadKeywords(filepath.Join(dir, "keywords.yaml"))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	default:
		if err := st.UpsertKeywords(ctx, keywords); err != nil {
			return fmt.Errorf("seed keywords: %w", err)
		}
	}

	return nil
}
