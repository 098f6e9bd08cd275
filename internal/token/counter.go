// Package token estimates LLM token counts for sizing and compression
// accounting. Counts are heuristic (no model tokenizer is shipped) but
// deterministic, which is what the compression ratio needs.
package token

import (
	"hash/fnv"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the per-counter memo of content hashes to counts.
const cacheSize = 4096

// Counter estimates token counts. Each execution context owns its own
// Counter: the internal cache is not synchronized by design, so counters
// must never be shared across concurrent workers.
type Counter struct {
	cache *lru.Cache[uint64, int]
}

// NewCounter creates a counter with a fresh cache.
func NewCounter() *Counter {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[uint64, int](cacheSize)
	return &Counter{cache: cache}
}

// Count estimates the token count of content. Empty content counts as 0.
func (c *Counter) Count(content []byte) int {
	if len(content) == 0 {
		return 0
	}

	key := hashContent(content)
	if n, ok := c.cache.Get(key); ok {
		return n
	}

	n := estimate(content)
	c.cache.Add(key, n)
	return n
}

// CountString estimates the token count of a string.
func (c *Counter) CountString(content string) int {
	return c.Count([]byte(content))
}

// estimate approximates BPE-style tokenization: every run of letters or
// digits costs one token per four characters (rounded up), and every
// symbol or punctuation rune costs one token. Whitespace is free, riding
// along with adjacent tokens.
func estimate(content []byte) int {
	tokens := 0
	run := 0

	flush := func() {
		if run > 0 {
			tokens += (run + 3) / 4
			run = 0
		}
	}

	for i := 0; i < len(content); {
		r, size := utf8.DecodeRune(content[i:])
		i += size

		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			run++
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			tokens++
		}
	}
	flush()

	return tokens
}

func hashContent(content []byte) uint64 {
	h := fnv.New64a()
	h.Write(content)
	return h.Sum64()
}
