package language

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Go Extractor:
// - Imports come back without quotes
// - Structs map to class exports with exported fields as properties
// - Interfaces map to interface exports with methods as members
// - Methods attach to their receiver type, pointer receivers included
// - Consts and vars report their declaration kind
// - Unexported symbols are skipped unless IncludePrivate is set
// - Doc comments ride along on signatures when IncludeDocstrings is set
// - Malformed source returns an error

func extractGo(t *testing.T, content []byte, opts ProcessingOptions) *RawExtraction {
	t.Helper()
	e := NewGoExtractor()
	require.NoError(t, e.Init())
	raw, err := e.Extract(context.Background(), "test.go", content, opts)
	require.NoError(t, err)
	require.NotNil(t, raw)
	return raw
}

func findExport(t *testing.T, raw *RawExtraction, name string) RawExport {
	t.Helper()
	for _, exp := range raw.Exports {
		if exp.Name == name {
			return exp
		}
	}
	t.Fatalf("export %q not found", name)
	return RawExport{}
}

func TestGoExtractor_ServerFixture(t *testing.T) {
	// Test: the full shape of a realistic file, public symbols only
	content, err := os.ReadFile(filepath.Join("..", "..", "testdata", "code", "go", "simple.go"))
	require.NoError(t, err)

	raw := extractGo(t, content, ProcessingOptions{})

	// Imports are unquoted source paths.
	var imports []string
	for _, imp := range raw.Imports {
		imports = append(imports, imp.Source)
	}
	assert.Equal(t, []string{"fmt", "net/http"}, imports)

	// DefaultPort, DefaultTimeout, Config, Handler, NewHandler. The
	// unexported globalConfig is skipped.
	require.Len(t, raw.Exports, 5)

	port := findExport(t, raw, "DefaultPort")
	assert.Equal(t, "const", port.Kind)
	assert.Equal(t, "public", port.Visibility)

	config := findExport(t, raw, "Config")
	assert.Equal(t, "class", config.Kind)
	require.Len(t, config.Members, 2)
	assert.Equal(t, "Port", config.Members[0].Name)
	assert.Equal(t, "property", config.Members[0].Kind)
	assert.Equal(t, "Port int", config.Members[0].Signature)

	// Handler's unexported config field is skipped; ServeHTTP attaches as
	// a method member.
	handler := findExport(t, raw, "Handler")
	assert.Equal(t, "class", handler.Kind)
	require.Len(t, handler.Members, 1)
	assert.Equal(t, "ServeHTTP", handler.Members[0].Name)
	assert.Equal(t, "method", handler.Members[0].Kind)
	assert.Contains(t, handler.Members[0].Signature, "func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request)")

	ctor := findExport(t, raw, "NewHandler")
	assert.Equal(t, "function", ctor.Kind)
	assert.Equal(t, "func NewHandler(config *Config) *Handler", ctor.Signature)
	assert.Positive(t, ctor.StartLine)
	assert.GreaterOrEqual(t, ctor.EndLine, ctor.StartLine)
}

func TestGoExtractor_Interface(t *testing.T) {
	// Test: interfaces report their methods as members
	src := []byte(`package store

type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}
`)
	raw := extractGo(t, src, ProcessingOptions{})

	store := findExport(t, raw, "Store")
	assert.Equal(t, "interface", store.Kind)
	require.Len(t, store.Members, 2)
	assert.Equal(t, "Get", store.Members[0].Name)
	assert.Equal(t, "Get(key string) ([]byte, error)", store.Members[0].Signature)
	assert.Equal(t, "method", store.Members[0].Kind)
}

func TestGoExtractor_VarKind(t *testing.T) {
	// Test: vars report the variable kind, consts the const kind
	src := []byte(`package cfg

const MaxRetries = 3

var DefaultTimeout = 30
`)
	raw := extractGo(t, src, ProcessingOptions{})

	assert.Equal(t, "const", findExport(t, raw, "MaxRetries").Kind)
	assert.Equal(t, "variable", findExport(t, raw, "DefaultTimeout").Kind)
}

func TestGoExtractor_IncludePrivate(t *testing.T) {
	// Test: unexported symbols appear only on request, flagged private
	src := []byte(`package demo

func Public() {}

func internalHelper() {}
`)

	raw := extractGo(t, src, ProcessingOptions{})
	assert.Len(t, raw.Exports, 1)

	raw = extractGo(t, src, ProcessingOptions{IncludePrivate: true})
	require.Len(t, raw.Exports, 2)
	helper := findExport(t, raw, "internalHelper")
	assert.Equal(t, "private", helper.Visibility)
}

func TestGoExtractor_Docstrings(t *testing.T) {
	// Test: the first doc line rides along when requested
	src := []byte(`package demo

// Run starts the daemon.
// It blocks until shutdown.
func Run() error { return nil }
`)

	raw := extractGo(t, src, ProcessingOptions{IncludeDocstrings: true})
	assert.Equal(t, "func Run() error // Run starts the daemon.", findExport(t, raw, "Run").Signature)

	raw = extractGo(t, src, ProcessingOptions{})
	assert.Equal(t, "func Run() error", findExport(t, raw, "Run").Signature)
}

func TestGoExtractor_MalformedSource(t *testing.T) {
	// Test: parse errors surface as errors, not partial output
	e := NewGoExtractor()
	require.NoError(t, e.Init())

	_, err := e.Extract(context.Background(), "bad.go", []byte("package demo\n\nfunc Broken( {\n"), ProcessingOptions{})
	assert.Error(t, err)
}
