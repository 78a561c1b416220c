// catalog.go implements the source and keyword catalogs.
//
// Catalogs are supplied by the configuration loader at startup and served
// to ingestion adapters. The store persists them without interpretation:
// no validation beyond uniqueness of the source id, and adapter config
// blobs stay opaque JSON.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// UpsertSources inserts or updates a batch of sources atomically by id.
func (s *SQLiteStore) UpsertSources(ctx context.Context, sources []Source) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		for _, src := range sources {
			if src.ID == "" {
				return fmt.Errorf("source %q: %w", src.Name, ErrMissingID)
			}
			cfg, err := marshalMap(src.Config)
			if err != nil {
				return err
			}
			enabled := 0
			if src.Enabled {
				enabled = 1
			}
			rate := src.RateLimitMinutes
			if rate <= 0 {
				rate = 60
			}
			_, err = tx.ExecContext(ctx, `INSERT INTO sources
				(id, name, type, url, enabled, rate_limit_minutes, config)
				VALUES (?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					name = excluded.name,
					type = excluded.type,
					url = excluded.url,
					enabled = excluded.enabled,
					rate_limit_minutes = excluded.rate_limit_minutes,
					config = excluded.config`,
				src.ID, src.Name, src.Type, src.URL, enabled, rate, cfg)
			if err != nil {
				return fmt.Errorf("upsert source %s: %w", src.ID, err)
			}
		}
		return nil
	})
}

func scanSources(rows *sql.Rows) ([]Source, error) {
	var sources []Source
	for rows.Next() {
		var src Source
		var enabled int
		var cfg string
		if err := rows.Scan(&src.ID, &src.Name, &src.Type, &src.URL,
			&enabled, &src.RateLimitMinutes, &cfg, &src.LastFetchedAt); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		src.Enabled = enabled != 0
		if cfg != "" && cfg != "{}" {
			if err := json.Unmarshal([]byte(cfg), &src.Config); err != nil {
				return nil, fmt.Errorf("decode config for source %s: %w", src.ID, err)
			}
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

const sourceCols = `id, name, type, url, enabled, rate_limit_minutes, config, last_fetched_at`

// ListSources returns the full source catalog.
func (s *SQLiteStore) ListSources(ctx context.Context) ([]Source, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sourceCols+` FROM sources ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSources(rows)
}

// EnabledSources returns only sources eligible for ingestion runs.
func (s *SQLiteStore) EnabledSources(ctx context.Context) ([]Source, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sourceCols+` FROM sources WHERE enabled = 1 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSources(rows)
}

// ToggleSource enables or disables a source. Returns ErrNotFound if the
// source does not exist.
func (s *SQLiteStore) ToggleSource(ctx context.Context, id string, enabled bool) error {
	e := 0
	if enabled {
		e = 1
	}
	result, err := s.db.ExecContext(ctx, `UPDATE sources SET enabled = ? WHERE id = ?`, e, id)
	if err != nil {
		return fmt.Errorf("toggle source %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("toggle source %s: %w", id, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkSourceFetched stamps a source's last_fetched_at with the current
// time after a successful ingest run.
func (s *SQLiteStore) MarkSourceFetched(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sources SET last_fetched_at = ? WHERE id = ?`, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("mark source %s fetched: %w", id, err)
	}
	return nil
}

// UpsertKeywords inserts or updates a batch of scoring keywords atomically.
func (s *SQLiteStore) UpsertKeywords(ctx context.Context, keywords []Keyword) error {
	return s.Tx(ctx, func(tx *sql.Tx) error {
		for _, kw := range keywords {
			_, err := tx.ExecContext(ctx, `INSERT INTO keywords (category, keyword, weight)
				VALUES (?, ?, ?)
				ON CONFLICT(category, keyword) DO UPDATE SET weight = excluded.weight`,
				kw.Category, kw.Keyword, kw.Weight)
			if err != nil {
				return fmt.Errorf("upsert keyword %s/%s: %w", kw.Category, kw.Keyword, err)
			}
		}
		return nil
	})
}

// ListKeywords returns the full keyword catalog.
func (s *SQLiteStore) ListKeywords(ctx context.Context) ([]Keyword, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, keyword, weight FROM keywords ORDER BY category, keyword`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keywords []Keyword
	for rows.Next() {
		var kw Keyword
		if err := rows.Scan(&kw.Category, &kw.Keyword, &kw.Weight); err != nil {
			return nil, err
		}
		keywords = append(keywords, kw)
	}
	return keywords, rows.Err()
}
