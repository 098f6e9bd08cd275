// Package format decouples what was extracted from how it is rendered.
// Formatters register under unique names in an explicit Registry built at
// startup; nothing auto-registers at import time.
package format

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mvp-joe/distill/internal/compress"
	"github.com/mvp-joe/distill/internal/distill"
)

var (
	// ErrFormatterNotFound indicates the requested output format is not
	// registered. Surfaced to callers as a configuration error.
	ErrFormatterNotFound = errors.New("formatter not found")

	// ErrNoDefaultFormatter indicates the registry was built without a
	// designated default.
	ErrNoDefaultFormatter = errors.New("no default formatter designated")
)

// Options is the rendering configuration bag. Absent options fall back to
// formatter-specific defaults.
type Options struct {
	IncludeImports    bool
	IncludePrivate    bool
	IncludeDocstrings bool
	IncludeComments   bool
	IncludeMetadata   bool

	// Output organization.
	PreserveStructure bool
	GroupByType       bool

	// Rendering hints.
	Language        string
	SyntaxHighlight bool
}

// Formatter renders distillation and compression results as text. The
// result arguments are read-only views; formatters must not mutate them.
type Formatter interface {
	FormatDistillation(result *distill.Result, opts Options) (string, error)
	FormatCompression(result *compress.Result, opts Options) (string, error)
	FormatCombined(compression *compress.Result, distillation *distill.Result, opts Options) (string, error)
}

// Registry holds named formatters and an optional default.
type Registry struct {
	mu          sync.RWMutex
	formatters  map[string]Formatter
	defaultName string
}

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[string]Formatter)}
}

// NewDefaultRegistry creates a registry with the built-in formatters
// (structured, markdown, json) and markdown designated as default.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("structured", NewStructuredFormatter())
	r.Register("markdown", NewMarkdownFormatter())
	r.Register("json", NewJSONFormatter())
	r.SetDefault("markdown")
	return r
}

// Register adds a formatter under a unique name. Registering the same
// name again replaces the earlier formatter (last write wins).
func (r *Registry) Register(name string, f Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatters[name] = f
}

// SetDefault designates the named formatter as the default.
func (r *Registry) SetDefault(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultName = name
}

// Get returns the named formatter, or nil when it is not registered.
func (r *Registry) Get(name string) Formatter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.formatters[name]
}

// Resolve returns the named formatter or the default when name is empty.
func (r *Registry) Resolve(name string) (Formatter, error) {
	if name == "" {
		return r.Default()
	}
	f := r.Get(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrFormatterNotFound, name)
	}
	return f, nil
}

// Default returns the designated default formatter.
func (r *Registry) Default() (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defaultName == "" {
		return nil, ErrNoDefaultFormatter
	}
	f, ok := r.formatters[r.defaultName]
	if !ok {
		return nil, fmt.Errorf("%w: default %q is not registered", ErrNoDefaultFormatter, r.defaultName)
	}
	return f, nil
}

// List returns the registered names, sorted and unique.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
