/*
Copyright © 2026 Seeker Labs <dev@seeker-labs.io>
*/

// search.go implements the search command: free-text query, structured
// filters, or both at once.

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seeker-labs/radarhub/internal/format"
	"github.com/seeker-labs/radarhub/internal/search"
	"github.com/seeker-labs/radarhub/internal/store"
)

var (
	searchSources   []string
	searchFrom      string
	searchTo        string
	searchScoreMin  float64
	searchScoreMax  float64
	searchBookmarks bool
	searchSort      string
	searchOrder     string
	searchLimit     int
	searchOffset    int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the corpus",
	Long: `Search with ranked full-text retrieval, structured filters, or both.

A bare word matches as a prefix (rust finds rustls). FTS5 syntax is
available: AND, OR, NOT, "exact phrase", prefix*. Without a query the
filters alone select and sort items.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := search.Request{
			Filter: store.Filter{
				Sources:       searchSources,
				BookmarksOnly: searchBookmarks,
				SortBy:        searchSort,
				SortOrder:     searchOrder,
				Limit:         searchLimit,
				Offset:        searchOffset,
			},
		}
		if len(args) == 1 {
			req.Search = args[0]
		}

		if cmd.Flags().Changed("score-min") {
			req.ScoreMin = &searchScoreMin
		}
		if cmd.Flags().Changed("score-max") {
			req.ScoreMax = &searchScoreMax
		}
		if searchFrom != "" {
			ts, err := parseDate(searchFrom)
			if err != nil {
				return err
			}
			req.DateFrom = &ts
		}
		if searchTo != "" {
			ts, err := parseDate(searchTo)
			if err != nil {
				return err
			}
			req.DateTo = &ts
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		engine := search.New(st, log)
		items, err := engine.Search(cmd.Context(), req)
		if err != nil {
			return err
		}

		if JSON() {
			jsonItems := make([]store.ItemJSON, 0, len(items))
			for i := range items {
				jsonItems = append(jsonItems, items[i].ToJSON())
			}
			return PrintJSON(map[string]any{"count": len(jsonItems), "items": jsonItems})
		}
		format.Items(out, items)
		return nil
	},
}

// parseDate accepts RFC3339 or plain YYYY-MM-DD.
func parseDate(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Unix(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, fmt.Errorf("unrecognised date %q (want RFC3339 or YYYY-MM-DD)", s)
	}
	return t.Unix(), nil
}

func init() {
	searchCmd.Flags().StringSliceVarP(&searchSources, "source", "s", nil, "Restrict to source ids (repeatable)")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "Inclusive minimum publish date")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "Inclusive maximum publish date")
	searchCmd.Flags().Float64Var(&searchScoreMin, "score-min", 0, "Inclusive minimum score")
	searchCmd.Flags().Float64Var(&searchScoreMax, "score-max", 0, "Inclusive maximum score")
	searchCmd.Flags().BoolVarP(&searchBookmarks, "bookmarks", "b", false, "Only bookmarked items")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "Sort key: score, date, stars, recent, title")
	searchCmd.Flags().StringVar(&searchOrder, "order", "", "Sort order: ASC or DESC")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Page size (default 100)")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "Row offset")
	rootCmd.AddCommand(searchCmd)
}
