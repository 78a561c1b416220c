// sweep.go implements age-based retention cleanup.
//
// Separated because the sweep is a destructive, irreversible operation with
// different semantics than normal writes. It is triggered deliberately by
// the collaborator's scheduler, not as part of ingestion.
//
// Design: the cutoff is computed on fetched_at, not published_at, so an
// item that keeps being re-supplied by its source is never swept while
// still current. Bookmarked items are exempt regardless of age - the
// bookmark is the user's signal that the item must outlive the corpus
// churn. The FTS triggers remove shadow rows in the same transaction.

package store

import (
	"context"
	"fmt"
	"time"
)

// RetentionSweep deletes items whose fetched_at is older than maxAgeDays
// and that have no bookmark. Returns the number of items removed.
func (s *SQLiteStore) RetentionSweep(ctx context.Context, maxAgeDays int) (int64, error) {
	if maxAgeDays <= 0 {
		return 0, fmt.Errorf("retention sweep: maxAgeDays must be > 0, got %d", maxAgeDays)
	}
	cutoff := time.Now().AddDate(0, 0, -maxAgeDays).Unix()

	result, err := s.db.ExecContext(ctx, `DELETE FROM items
		WHERE fetched_at < ?
		AND id NOT IN (SELECT item_id FROM bookmarks)`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("retention sweep: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("retention sweep: %w", err)
	}
	return n, nil
}
