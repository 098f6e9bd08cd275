package language

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Language Registry:
// - Detection and processing refuse to run before InitializeAll
// - InitializeAll is idempotent across repeated and concurrent calls
// - A backend whose Init fails is disabled; the others keep working
// - DetectLanguage maps known extensions and returns "" otherwise
// - ProcessFile returns ErrUnsupportedLanguage for unclaimed paths
// - A backend returning neither result nor error is an extraction failure
// - Dispatch is first-match in registration order
// - The default registry covers the full language set

// fakeExtractor is a minimal scriptable backend.
type fakeExtractor struct {
	lang     string
	patterns []string
	initErr  error
	initN    int
	result   *RawExtraction
	err      error
}

func (f *fakeExtractor) Language() string   { return f.lang }
func (f *fakeExtractor) Patterns() []string { return f.patterns }
func (f *fakeExtractor) Init() error {
	f.initN++
	return f.initErr
}
func (f *fakeExtractor) Extract(ctx context.Context, path string, content []byte, opts ProcessingOptions) (*RawExtraction, error) {
	return f.result, f.err
}

func TestRegistry_RefusesBeforeInit(t *testing.T) {
	// Test: nothing dispatches until InitializeAll has run
	r := NewEmptyRegistry()
	r.Register(&fakeExtractor{lang: "x", patterns: []string{"*.x"}, result: &RawExtraction{}})

	assert.Empty(t, r.DetectLanguage("main.x"))
	assert.False(t, r.IsFileSupported("main.x"))
	assert.Nil(t, r.SupportedLanguages())

	_, err := r.ProcessFile(context.Background(), "main.x", nil, ProcessingOptions{})
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestRegistry_InitializeAllIdempotent(t *testing.T) {
	// Test: repeated and concurrent calls initialize each backend once
	fake := &fakeExtractor{lang: "x", patterns: []string{"*.x"}, result: &RawExtraction{}}
	r := NewEmptyRegistry()
	r.Register(fake)

	first := r.InitializeAll()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := r.InitializeAll()
			assert.Equal(t, first, res)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, fake.initN)
	assert.True(t, first.OK())
	assert.Equal(t, []string{"x"}, first.Initialized)
}

func TestRegistry_FailedBackendIsDisabled(t *testing.T) {
	// Test: one broken grammar never takes the registry down
	good := &fakeExtractor{lang: "good", patterns: []string{"*.good"}, result: &RawExtraction{}}
	bad := &fakeExtractor{lang: "bad", patterns: []string{"*.bad"}, initErr: errors.New("grammar missing")}

	r := NewEmptyRegistry()
	r.Register(good)
	r.Register(bad)

	res := r.InitializeAll()
	assert.True(t, res.OK())
	assert.Equal(t, []string{"good"}, res.Initialized)
	require.Contains(t, res.Failed, "bad")

	assert.Equal(t, "good", r.DetectLanguage("a.good"))
	assert.Empty(t, r.DetectLanguage("a.bad"))
	assert.False(t, r.IsFileSupported("a.bad"))
}

func TestRegistry_UnsupportedPath(t *testing.T) {
	// Test: unclaimed paths are classified, not failed
	r := NewEmptyRegistry()
	r.Register(&fakeExtractor{lang: "x", patterns: []string{"*.x"}, result: &RawExtraction{}})
	r.InitializeAll()

	assert.Empty(t, r.DetectLanguage("README.md"))

	_, err := r.ProcessFile(context.Background(), "README.md", nil, ProcessingOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestRegistry_NilResultIsFailure(t *testing.T) {
	// Test: a backend returning (nil, nil) is a shape mismatch
	r := NewEmptyRegistry()
	r.Register(&fakeExtractor{lang: "x", patterns: []string{"*.x"}})
	r.InitializeAll()

	raw, err := r.ProcessFile(context.Background(), "a.x", nil, ProcessingOptions{})
	assert.Nil(t, raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no result")
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	// Test: when two backends claim a pattern, registration order decides
	r := NewEmptyRegistry()
	r.Register(&fakeExtractor{lang: "first", patterns: []string{"*.x"}, result: &RawExtraction{}})
	r.Register(&fakeExtractor{lang: "second", patterns: []string{"*.x"}, result: &RawExtraction{}})
	r.InitializeAll()

	assert.Equal(t, "first", r.DetectLanguage("a.x"))
}

func TestRegistry_DefaultLanguageSet(t *testing.T) {
	// Test: the stock registry claims all shipped languages by extension
	r := NewRegistry()
	res := r.InitializeAll()
	require.True(t, res.OK())

	cases := map[string]string{
		"main.go":      "go",
		"app.ts":       "typescript",
		"app.tsx":      "typescript",
		"index.js":     "javascript",
		"script.py":    "python",
		"lib.rs":       "rust",
		"util.c":       "c",
		"Main.java":    "java",
		"index.php":    "php",
		"model.rb":     "ruby",
		"README.md":    "",
		"Makefile":     "",
		"styles.css":   "",
	}
	for path, want := range cases {
		assert.Equal(t, want, r.DetectLanguage(path), "path %s", path)
	}
}
