// stats.go implements aggregate corpus statistics for dashboards and
// operational visibility. These queries never load item content; they use
// COUNT() and GROUP BY directly.

package store

import "context"

// Stats returns aggregate corpus statistics: total item count, per-source
// counts, and the bookmark count.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats

	total, err := s.CountTotal(ctx)
	if err != nil {
		return nil, err
	}
	st.TotalItems = total

	st.BySource, err = s.CountBySource(ctx)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookmarks`).Scan(&st.BookmarkCount)
	if err != nil {
		return nil, err
	}

	return &st, nil
}
