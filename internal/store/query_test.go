package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFilterQuery_Empty(t *testing.T) {
	q, args := buildFilterQuery(Filter{})

	assert.Contains(t, q, "WHERE 1=1")
	assert.Contains(t, q, "ORDER BY i.score DESC")
	assert.Contains(t, q, "LIMIT ? OFFSET ?")
	assert.Equal(t, []any{DefaultLimit, 0}, args)
}

func TestBuildFilterQuery_AllClauses(t *testing.T) {
	from, to := int64(100), int64(200)
	min, max := 1.5, 9.5
	q, args := buildFilterQuery(Filter{
		Sources:       []string{"github", "hackernews"},
		DateFrom:      &from,
		DateTo:        &to,
		ScoreMin:      &min,
		ScoreMax:      &max,
		BookmarksOnly: true,
		SortBy:        "date",
		SortOrder:     "asc",
		Limit:         20,
		Offset:        40,
	})

	assert.Contains(t, q, "i.source IN (?,?)")
	assert.Contains(t, q, "i.published_at >= ?")
	assert.Contains(t, q, "i.published_at <= ?")
	assert.Contains(t, q, "i.score >= ?")
	assert.Contains(t, q, "i.score <= ?")
	assert.Contains(t, q, "b.id IS NOT NULL")
	assert.Contains(t, q, "ORDER BY i.published_at ASC")
	assert.Equal(t, []any{"github", "hackernews", from, to, min, max, 20, 40}, args)
}

func TestBuildFilterQuery_UnknownSortFallsBack(t *testing.T) {
	q, _ := buildFilterQuery(Filter{SortBy: "evil); DROP TABLE items;--"})
	assert.Contains(t, q, "ORDER BY i.score DESC")
}

func TestBuildFilterQuery_NegativeOffsetClamped(t *testing.T) {
	_, args := buildFilterQuery(Filter{Offset: -3})
	assert.Equal(t, []any{DefaultLimit, 0}, args)
}
