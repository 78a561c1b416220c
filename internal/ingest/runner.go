// Package ingest orchestrates ingestion runs. Adapters fetch and score
// items for one source each; the runner fans enabled adapters out to a
// bounded worker pool and writes every result batch through the store's
// atomic upsert path. Fetching, parsing, and scoring live entirely in the
// adapters - the runner never touches raw source content.
package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/seeker-labs/radarhub/internal/store"
)

// Adapter supplies items for one source. Implementations live with the
// collaborator; the runner only needs the source id and a fetch.
type Adapter interface {
	// Source returns the catalog id this adapter ingests for.
	Source() string

	// Fetch retrieves and scores the source's current items. Every item
	// must carry a stable, source-qualified ID.
	Fetch(ctx context.Context) ([]store.Item, error)
}

// Backend is the slice of the store an ingestion run needs.
type Backend interface {
	store.Ingestor
	// MarkSourceFetched stamps last_fetched_at after a successful batch.
	MarkSourceFetched(ctx context.Context, id string) error
}

// Result describes the outcome of one source's run.
type Result struct {
	Source string
	Count  int
	Err    error
}

// Runner executes ingestion runs with bounded concurrency.
type Runner struct {
	backend Backend
	log     *zap.Logger
	workers int
}

// New returns a Runner. workers <= 0 defaults to 4. A nil logger is
// replaced with a no-op logger.
func New(backend Backend, log *zap.Logger, workers int) *Runner {
	if workers <= 0 {
		workers = 4
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{backend: backend, log: log, workers: workers}
}

// Run executes all adapters on a worker pool and blocks until every source
// has finished. Each source's batch goes through UpsertMany, so a failure
// in one batch never leaves that source partially ingested, and failures
// in one source never abort the others. Results come back in no particular
// order, one per adapter.
func (r *Runner) Run(ctx context.Context, adapters []Adapter) ([]Result, error) {
	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return nil, fmt.Errorf("create ingest pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []Result
	)

	for _, a := range adapters {
		adapter := a
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			res := r.runOne(ctx, adapter)

			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			results = append(results, Result{Source: adapter.Source(), Err: submitErr})
			mu.Unlock()
		}
	}

	wg.Wait()
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, adapter Adapter) Result {
	src := adapter.Source()

	items, err := adapter.Fetch(ctx)
	if err != nil {
		r.log.Warn("source fetch failed", zap.String("source", src), zap.Error(err))
		return Result{Source: src, Err: fmt.Errorf("fetch %s: %w", src, err)}
	}

	count, err := r.backend.UpsertMany(ctx, items)
	if err != nil {
		r.log.Warn("source batch rejected", zap.String("source", src), zap.Error(err))
		return Result{Source: src, Err: fmt.Errorf("ingest %s: %w", src, err)}
	}

	if err := r.backend.MarkSourceFetched(ctx, src); err != nil {
		// The batch is committed; a failed stamp only skews rate limiting.
		r.log.Warn("stamping source fetch time failed", zap.String("source", src), zap.Error(err))
	}

	r.log.Info("source ingested", zap.String("source", src), zap.Int("items", count))
	return Result{Source: src, Count: count}
}
