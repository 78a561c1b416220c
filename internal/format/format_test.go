package format

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateTitle(t *testing.T) {
	assert.Equal(t, "short", truncateTitle("short", 20))
	assert.Equal(t, "exactly ten", truncateTitle("exactly ten", 11))
	assert.Equal(t, "abcdefghi…", truncateTitle("abcdefghij and more", 10))
}

func TestTruncateTitle_MultiByteRunes(t *testing.T) {
	title := strings.Repeat("é", 20)

	got := truncateTitle(title, 10)

	// The cut lands on a rune boundary, never mid-sequence.
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 9)+"…", got)
	assert.Equal(t, 10, utf8.RuneCountInString(got))
}
