package language

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/distill/internal/logger"
)

// InitResult reports which languages initialized and which failed.
// One backend failing to initialize never blocks the others.
type InitResult struct {
	Initialized []string
	Failed      map[string]error
}

// OK reports whether at least one language initialized successfully.
func (r *InitResult) OK() bool {
	return len(r.Initialized) > 0
}

// registered pairs an extractor with its compiled file patterns.
type registered struct {
	extractor Extractor
	globs     []glob.Glob
	enabled   bool
}

// Registry dispatches files to the single extractor matching their path.
// Each execution context constructs its own Registry; InitializeAll is
// idempotent and safe to call repeatedly or concurrently.
type Registry struct {
	mu         sync.Mutex
	extractors []*registered
	initOnce   sync.Once
	initResult *InitResult
}

// NewRegistry creates a registry with the default language set: Go via
// go/ast, everything else via tree-sitter grammars.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(NewGoExtractor())
	r.Register(NewTypeScriptExtractor())
	r.Register(NewJavaScriptExtractor())
	r.Register(NewPythonExtractor())
	r.Register(NewRustExtractor())
	r.Register(NewCExtractor())
	r.Register(NewJavaExtractor())
	r.Register(NewPhpExtractor())
	r.Register(NewRubyExtractor())
	return r
}

// NewEmptyRegistry creates a registry with no extractors registered.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds an extractor. Patterns that fail to compile are skipped;
// dispatch is first-match in registration order.
func (r *Registry) Register(e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg := &registered{extractor: e}
	for _, p := range e.Patterns() {
		g, err := glob.Compile(p)
		if err != nil {
			logger.Warn("skipping invalid file pattern", "language", e.Language(), "pattern", p, "error", err)
			continue
		}
		reg.globs = append(reg.globs, g)
	}
	r.extractors = append(r.extractors, reg)
}

// InitializeAll initializes every registered backend. It is idempotent:
// repeated or concurrent calls return the first result. A language whose
// Init fails is disabled and reported in Failed; the rest keep working.
func (r *Registry) InitializeAll() *InitResult {
	r.initOnce.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		result := &InitResult{Failed: make(map[string]error)}
		for _, reg := range r.extractors {
			if err := reg.extractor.Init(); err != nil {
				result.Failed[reg.extractor.Language()] = err
				logger.Warn("language backend failed to initialize",
					"language", reg.extractor.Language(), "error", err)
				continue
			}
			reg.enabled = true
			result.Initialized = append(result.Initialized, reg.extractor.Language())
		}
		r.initResult = result
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initResult
}

// ready returns the init result, or nil before InitializeAll completed.
func (r *Registry) ready() *InitResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initResult
}

// match returns the first enabled extractor claiming the path, or nil.
func (r *Registry) match(path string) *registered {
	base := filepath.Base(path)
	for _, reg := range r.extractors {
		if !reg.enabled {
			continue
		}
		for _, g := range reg.globs {
			if g.Match(base) {
				return reg
			}
		}
	}
	return nil
}

// IsFileSupported reports whether a registered extractor claims the path.
func (r *Registry) IsFileSupported(path string) bool {
	if r.ready() == nil {
		return false
	}
	return r.match(path) != nil
}

// DetectLanguage returns the language name of the extractor claiming the
// path, or "" when no extractor matches.
func (r *Registry) DetectLanguage(path string) string {
	if r.ready() == nil {
		return ""
	}
	if reg := r.match(path); reg != nil {
		return reg.extractor.Language()
	}
	return ""
}

// SupportedLanguages returns the languages that initialized successfully.
func (r *Registry) SupportedLanguages() []string {
	res := r.ready()
	if res == nil {
		return nil
	}
	return res.Initialized
}

// ProcessFile dispatches content to the extractor matching the path.
// It returns ErrUnsupportedLanguage when no extractor claims the path and
// ErrNotInitialized when InitializeAll has not completed.
func (r *Registry) ProcessFile(ctx context.Context, path string, content []byte, opts ProcessingOptions) (*RawExtraction, error) {
	if r.ready() == nil {
		return nil, ErrNotInitialized
	}

	reg := r.match(path)
	if reg == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, path)
	}

	raw, err := reg.extractor.Extract(ctx, path, content, opts)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	if raw == nil {
		// A backend returning neither a result nor an error is a shape
		// mismatch, treated as an extraction failure.
		return nil, fmt.Errorf("extract %s: %s backend returned no result", path, reg.extractor.Language())
	}
	return raw, nil
}
