package language

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Python Extractor:
// - import and from-import statements contribute module sources
// - Top-level classes collect methods, __init__ flagged as constructor
// - Nested functions never leak into the export list
// - Single-underscore names are private; dunder methods stay public
// - ALL_CAPS assignments are constants, others variables
// - Docstring first lines ride along when requested

func extractPy(t *testing.T, src string, opts ProcessingOptions) *RawExtraction {
	t.Helper()
	e := NewPythonExtractor()
	require.NoError(t, e.Init())
	raw, err := e.Extract(context.Background(), "test.py", []byte(src), opts)
	require.NoError(t, err)
	require.NotNil(t, raw)
	return raw
}

func TestPython_Imports(t *testing.T) {
	// Test: plain, aliased and from-imports all surface their module
	src := `import os
import numpy as np
from pathlib import Path
`
	raw := extractPy(t, src, ProcessingOptions{})

	var sources []string
	for _, imp := range raw.Imports {
		sources = append(sources, imp.Source)
	}
	assert.Equal(t, []string{"os", "numpy", "pathlib"}, sources)
}

func TestPython_ClassWithMethods(t *testing.T) {
	// Test: methods are members, __init__ is the constructor, _helper hides
	src := `class UserStore:
    def __init__(self, db):
        self.db = db

    def find(self, user_id):
        return self.db.get(user_id)

    def _reindex(self):
        pass
`
	raw := extractPy(t, src, ProcessingOptions{})
	require.Len(t, raw.Exports, 1)

	store := raw.Exports[0]
	assert.Equal(t, "UserStore", store.Name)
	assert.Equal(t, "class", store.Kind)
	assert.Equal(t, "public", store.Visibility)
	assert.Equal(t, 1, store.StartLine)

	require.Len(t, store.Members, 2)
	assert.Equal(t, "__init__", store.Members[0].Name)
	assert.Equal(t, "constructor", store.Members[0].Kind)
	assert.Equal(t, "find", store.Members[1].Name)
	assert.Equal(t, "method", store.Members[1].Kind)
	assert.Equal(t, "def find(self, user_id)", store.Members[1].Signature)

	raw = extractPy(t, src, ProcessingOptions{IncludePrivate: true})
	assert.Len(t, raw.Exports[0].Members, 3)
}

func TestPython_TopLevelOnly(t *testing.T) {
	// Test: a function nested in a function stays out of the surface
	src := `def outer():
    def inner():
        pass
    return inner
`
	raw := extractPy(t, src, ProcessingOptions{})
	require.Len(t, raw.Exports, 1)
	assert.Equal(t, "outer", raw.Exports[0].Name)
}

func TestPython_PrivateConvention(t *testing.T) {
	// Test: single underscore hides, request exposes
	src := `def public_api():
    pass

def _internal():
    pass
`
	raw := extractPy(t, src, ProcessingOptions{})
	require.Len(t, raw.Exports, 1)
	assert.Equal(t, "public_api", raw.Exports[0].Name)

	raw = extractPy(t, src, ProcessingOptions{IncludePrivate: true})
	require.Len(t, raw.Exports, 2)
	assert.Equal(t, "private", raw.Exports[1].Visibility)
}

func TestPython_AssignmentKinds(t *testing.T) {
	// Test: ALL_CAPS is const, lowercase is variable
	src := `MAX_RETRIES = 3
timeout = 30
`
	raw := extractPy(t, src, ProcessingOptions{})
	require.Len(t, raw.Exports, 2)
	assert.Equal(t, "MAX_RETRIES", raw.Exports[0].Name)
	assert.Equal(t, "const", raw.Exports[0].Kind)
	assert.Equal(t, "timeout", raw.Exports[1].Name)
	assert.Equal(t, "variable", raw.Exports[1].Kind)
}

func TestPython_Docstring(t *testing.T) {
	// Test: the first docstring line is appended on request
	src := `def greet(name):
    """Return a greeting.

    Longer explanation nobody reads.
    """
    return f"hi {name}"
`
	raw := extractPy(t, src, ProcessingOptions{IncludeDocstrings: true})
	require.Len(t, raw.Exports, 1)
	assert.Equal(t, "def greet(name) # Return a greeting.", raw.Exports[0].Signature)

	raw = extractPy(t, src, ProcessingOptions{})
	assert.Equal(t, "def greet(name)", raw.Exports[0].Signature)
}
