// Package language maps source files to capability-bearing extractors.
//
// A Registry owns a set of per-language Extractor implementations and is
// the single source of truth for "can this file be processed, and by what".
// New languages are added by registering a new Extractor, never by touching
// the dispatch logic.
package language

import (
	"context"
	"errors"
)

var (
	// ErrUnsupportedLanguage indicates no registered extractor claims the
	// file. This is a classification, not a failure: callers are expected
	// to check IsFileSupported first in normal operation.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrNotInitialized indicates ProcessFile was called before InitializeAll.
	ErrNotInitialized = errors.New("language registry not initialized")
)

// ProcessingOptions are the per-language extraction toggles. They are
// read-only once a run starts and safe to share across workers.
type ProcessingOptions struct {
	IncludePrivate    bool // emit non-public symbols
	IncludeDocstrings bool // attach doc comments to signatures
}

// RawImport is a single import source as reported by an extractor.
type RawImport struct {
	Source string
}

// RawMember is a class/interface member as reported by an extractor.
// Kind is free text here; the distillation worker normalizes it
// (constructor, getter and setter all become "method").
type RawMember struct {
	Name      string
	Signature string
	Kind      string
}

// RawExport is one exported symbol as reported by an extractor. Kind and
// Visibility are free text here; normalization into the canonical sets
// happens downstream so that a sloppy backend can never corrupt a record.
type RawExport struct {
	Name       string
	Kind       string
	Signature  string
	StartLine  int
	EndLine    int
	Visibility string
	Members    []RawMember
}

// RawExtraction is the shape every extractor returns. The core treats any
// mismatch (nil result without error, for example) as an extraction
// failure rather than a fatal error.
type RawExtraction struct {
	Imports []RawImport
	Exports []RawExport
}

// Extractor is the capability interface each language backend implements:
// claim files by pattern, parse imports, parse exports and members.
type Extractor interface {
	// Language returns the canonical language name (e.g. "typescript").
	Language() string

	// Patterns returns the glob patterns of files this extractor claims,
	// matched against the path's base name (e.g. "*.ts", "*.tsx").
	Patterns() []string

	// Init prepares the backend (grammar loading and similar). Called once
	// per registry; a failing Init disables this language only.
	Init() error

	// Extract parses content and returns the raw extraction shape.
	Extract(ctx context.Context, filePath string, content []byte, opts ProcessingOptions) (*RawExtraction, error)
}
