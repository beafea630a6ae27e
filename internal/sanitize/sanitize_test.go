package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameTrimAndTruncate(t *testing.T) {
	assert.Equal(t, "alice", Name("  alice  "))
	long := strings.Repeat("x", 50)
	assert.Len(t, Name(long), MaxNameLen)
}

func TestNameEscapesHTML(t *testing.T) {
	got := Name("<b>bob")
	assert.NotContains(t, got, "<")
	assert.Contains(t, got, "bob")
}

func TestNameEmptyAfterClean(t *testing.T) {
	assert.Empty(t, Name("   \t\n  "))
	assert.Empty(t, Name(string([]rune{0x07, 0x08})))
}

func TestTextStripsControlCharacters(t *testing.T) {
	assert.Equal(t, "hello", Text("hel\x00lo"))
}
