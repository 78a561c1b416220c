// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment, terminal width, and markdown rendering.
package format

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/seeker-labs/radarhub/internal/store"
)

// termWidth returns the terminal width, or 80 when stdout is not a terminal.
func termWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// relTime formats a unix timestamp as a coarse relative age ("3h", "12d").
func relTime(ts int64) string {
	if ts == 0 {
		return "-"
	}
	d := time.Since(time.Unix(ts, 0))
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// truncateTitle shortens a title to at most width runes, marking the cut
// with an ellipsis. Counting runes keeps multi-byte characters intact.
func truncateTitle(title string, width int) string {
	r := []rune(title)
	if len(r) <= width {
		return title
	}
	return string(r[:width-1]) + "…"
}

// Items prints a result set as an aligned table, truncating titles to the
// terminal width. Bookmarked items are marked with '*'.
func Items(w io.Writer, items []store.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no items")
		return
	}

	maxSource := 6 // minimum "SOURCE"
	for _, it := range items {
		if len(it.Source) > maxSource {
			maxSource = len(it.Source)
		}
	}

	// id + source + score + age columns plus separators
	titleWidth := termWidth() - maxSource - 30
	if titleWidth < 20 {
		titleWidth = 20
	}

	fmt.Fprintf(w, "  %-*s  %6s  %4s  %s\n", maxSource, "SOURCE", "SCORE", "AGE", "TITLE")
	for _, it := range items {
		mark := " "
		if it.Bookmark != nil {
			mark = "*"
		}
		title := truncateTitle(it.Title, titleWidth)
		fmt.Fprintf(w, "%s %-*s  %6.1f  %4s  %s\n", mark, maxSource, it.Source, it.Score, relTime(it.PublishedAt), title)
	}
}

// Stats prints corpus statistics with per-source counts sorted by name.
func Stats(w io.Writer, st *store.Stats) {
	fmt.Fprintf(w, "items:     %d\n", st.TotalItems)
	fmt.Fprintf(w, "bookmarks: %d\n", st.BookmarkCount)

	sources := make([]string, 0, len(st.BySource))
	for src := range st.BySource {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	for _, src := range sources {
		fmt.Fprintf(w, "  %-20s %d\n", src, st.BySource[src])
	}
}

// Suggestions prints search history entries with their counts.
func Suggestions(w io.Writer, entries []store.SearchEntry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%5d  %s\n", e.Count, e.Query)
	}
}

// Item renders one item as markdown through glamour for terminal display.
func Item(w io.Writer, it *store.Item) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", it.Title)
	fmt.Fprintf(&b, "**%s**", it.Source)
	if it.Author != "" {
		fmt.Fprintf(&b, " · %s", it.Author)
	}
	if it.Stars > 0 {
		fmt.Fprintf(&b, " · %d stars", it.Stars)
	}
	fmt.Fprintf(&b, " · score %.1f\n\n", it.Score)
	if it.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", it.Description)
	}
	if it.URL != "" {
		fmt.Fprintf(&b, "<%s>\n\n", it.URL)
	}
	if it.Bookmark != nil {
		fmt.Fprintf(&b, "> bookmarked %s", relTime(it.Bookmark.CreatedAt))
		if it.Bookmark.Note != "" {
			fmt.Fprintf(&b, ": %s", it.Bookmark.Note)
		}
		if len(it.Bookmark.Tags) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(it.Bookmark.Tags, ", "))
		}
		fmt.Fprintf(&b, "\n")
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(termWidth()),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(b.String())
	if err != nil {
		return fmt.Errorf("render item %s: %w", it.ID, err)
	}
	_, err = io.WriteString(w, out)
	return err
}
