package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Token Counter:
// - Count() returns 0 for empty content
// - Count() is deterministic for identical content
// - Letter/digit runs cost one token per four characters, rounded up
// - Symbols cost one token each
// - Whitespace separates runs but costs nothing
// - CountString matches Count on the same bytes
// - Cached results match uncached results

func TestCount_EmptyContent(t *testing.T) {
	// Test: empty content counts as zero tokens
	c := NewCounter()
	assert.Equal(t, 0, c.Count(nil))
	assert.Equal(t, 0, c.Count([]byte{}))
	assert.Equal(t, 0, c.CountString(""))
}

func TestCount_LetterRuns(t *testing.T) {
	// Test: a run of N letters costs ceil(N/4) tokens
	c := NewCounter()

	assert.Equal(t, 1, c.CountString("abcd"))
	assert.Equal(t, 2, c.CountString("abcde"))
	assert.Equal(t, 2, c.CountString("hello"))
	assert.Equal(t, 3, c.CountString("identifier12"))
}

func TestCount_SymbolsAndWhitespace(t *testing.T) {
	// Test: each symbol is one token, whitespace is free
	c := NewCounter()

	// "a" + "+" + "b" = 1 + 1 + 1
	assert.Equal(t, 3, c.CountString("a+b"))
	// two one-token words separated by a space
	assert.Equal(t, 2, c.CountString("foo bar"))
	// whitespace-only content has no tokens
	assert.Equal(t, 0, c.CountString("   \n\t "))
}

func TestCount_Deterministic(t *testing.T) {
	// Test: identical content always counts the same
	content := []byte("func NewHandler(config *Config) *Handler {\n\treturn &Handler{config: config}\n}")

	first := NewCounter().Count(content)
	second := NewCounter().Count(content)
	assert.Equal(t, first, second)
	assert.Positive(t, first)
}

func TestCount_CacheHitMatchesMiss(t *testing.T) {
	// Test: a cached count equals the freshly computed one
	c := NewCounter()
	content := []byte(strings.Repeat("token ", 100))

	miss := c.Count(content)
	hit := c.Count(content)
	assert.Equal(t, miss, hit)
}

func TestCountString_MatchesCount(t *testing.T) {
	// Test: CountString is byte-equivalent to Count
	c := NewCounter()
	s := "def greet(name):\n    return f\"hi {name}\""
	assert.Equal(t, c.Count([]byte(s)), c.CountString(s))
}
