// Package compress packages raw file contents for transport: no API
// extraction, just sized, hashed, language-tagged content. It is the
// sibling artifact to distillation for consumers that want full sources.
package compress

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/mvp-joe/distill/internal/distill"
	"github.com/mvp-joe/distill/internal/language"
	"github.com/mvp-joe/distill/internal/token"
)

// File is one packaged file.
type File struct {
	Path     string `json:"path"`
	Size     int    `json:"size"`
	Hash     string `json:"hash"`
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

// Result is the aggregate packaging outcome.
type Result struct {
	Files       []File `json:"files"`
	FileCount   int    `json:"fileCount"`
	TotalBytes  int    `json:"totalBytes"`
	TotalTokens int    `json:"totalTokens"`
}

// Compressor packages raw contents. Language tags come from the same
// registry dispatch the distiller uses, so the two artifacts agree on
// classification.
type Compressor struct {
	registry *language.Registry
	counter  *token.Counter
}

// NewCompressor creates a compressor with its own registry and counter.
func NewCompressor() *Compressor {
	registry := language.NewRegistry()
	registry.InitializeAll()
	return &Compressor{
		registry: registry,
		counter:  token.NewCounter(),
	}
}

// Compress packages the input files in order. It never fails: unreadable
// content cannot occur here because contents arrive already loaded.
func (c *Compressor) Compress(files []distill.FileInput) *Result {
	result := &Result{Files: make([]File, 0, len(files))}

	for _, f := range files {
		sum := sha256.Sum256(f.Content)
		result.Files = append(result.Files, File{
			Path:     f.Path,
			Size:     len(f.Content),
			Hash:     hex.EncodeToString(sum[:]),
			Content:  string(f.Content),
			Language: c.registry.DetectLanguage(f.Path),
		})
		result.TotalBytes += len(f.Content)
		result.TotalTokens += c.counter.Count(f.Content)
	}

	result.FileCount = len(result.Files)
	return result
}
