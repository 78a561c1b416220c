/*
Copyright © 2026 Seeker Labs <dev@seeker-labs.io>
*/

// ingest.go implements the ingest command. Batches arrive as JSON files
// (or stdin), one array of items per source, and run through the worker
// pool so every file commits atomically and independently.

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seeker-labs/radarhub/internal/ingest"
	"github.com/seeker-labs/radarhub/internal/store"
)

var ingestWorkers int

// itemInput is the wire shape of one item in a batch file. Timestamps are
// unix seconds, matching what source adapters emit.
type itemInput struct {
	ID          string         `json:"id"`
	Source      string         `json:"source"`
	Title       string         `json:"title"`
	URL         string         `json:"url"`
	Description string         `json:"description"`
	Author      string         `json:"author"`
	Stars       int64          `json:"stars"`
	Score       float64        `json:"score"`
	PublishedAt int64          `json:"published_at"`
	Metadata    map[string]any `json:"metadata"`
}

func (in itemInput) item() store.Item {
	return store.Item{
		ID:          in.ID,
		Source:      in.Source,
		Title:       in.Title,
		URL:         in.URL,
		Description: in.Description,
		Author:      in.Author,
		Stars:       in.Stars,
		Score:       in.Score,
		PublishedAt: in.PublishedAt,
		Metadata:    in.Metadata,
	}
}

// fileAdapter feeds one pre-fetched JSON batch through the ingestion path.
type fileAdapter struct {
	source string
	items  []store.Item
}

func (a *fileAdapter) Source() string { return a.source }

func (a *fileAdapter) Fetch(context.Context) ([]store.Item, error) { return a.items, nil }

// loadBatch decodes a JSON array of items. The source is taken from the
// first item; mixed-source files are fine for upserting but stamp only
// that source's fetch time.
func loadBatch(name string, r io.Reader) (*fileAdapter, error) {
	var inputs []itemInput
	if err := json.NewDecoder(r).Decode(&inputs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%s: empty batch", name)
	}
	items := make([]store.Item, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, in.item())
	}
	return &fileAdapter{source: items[0].Source, items: items}, nil
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest JSON item batches",
	Long: `Ingest item batches from JSON files, or from stdin when no files are
given. Each batch commits atomically: one malformed item rejects its whole
batch without touching the others.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var adapters []ingest.Adapter

		if len(args) == 0 {
			a, err := loadBatch("stdin", os.Stdin)
			if err != nil {
				return err
			}
			adapters = append(adapters, a)
		}
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			a, err := loadBatch(path, f)
			f.Close()
			if err != nil {
				return err
			}
			adapters = append(adapters, a)
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		runner := ingest.New(st, log, ingestWorkers)
		results, err := runner.Run(cmd.Context(), adapters)
		if err != nil {
			return err
		}

		failed := 0
		summary := make([]map[string]any, 0, len(results))
		for _, res := range results {
			row := map[string]any{"source": res.Source, "count": res.Count}
			if res.Err != nil {
				failed++
				row["error"] = res.Err.Error()
				log.Error("batch failed", zap.String("source", res.Source), zap.Error(res.Err))
				if !JSON() {
					fmt.Fprintf(out, "%-20s FAILED: %v\n", res.Source, res.Err)
				}
			} else if !JSON() {
				fmt.Fprintf(out, "%-20s %d items\n", res.Source, res.Count)
			}
			summary = append(summary, row)
		}
		if err := PrintJSON(summary); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d batches failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	ingestCmd.Flags().IntVar(&ingestWorkers, "workers", 0, "Concurrent batches (default 4)")
	rootCmd.AddCommand(ingestCmd)
}
