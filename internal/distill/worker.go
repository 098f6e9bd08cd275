package distill

import (
	"context"
	"fmt"

	"github.com/mvp-joe/distill/internal/language"
	"github.com/mvp-joe/distill/internal/token"
)

// Worker processes exactly one file end-to-end and never fails: every
// outcome, including extractor panics, comes back as a Record. Tokens are
// measured before extraction so that one malformed file can never abort
// or skew the batch's sizing data.
type Worker struct {
	registry *language.Registry
	counter  *token.Counter
	opts     language.ProcessingOptions
}

// NewWorker creates a worker bound to one execution context's registry and
// token counter. Neither is safe to share across concurrent workers.
func NewWorker(registry *language.Registry, counter *token.Counter, opts language.ProcessingOptions) *Worker {
	return &Worker{
		registry: registry,
		counter:  counter,
		opts:     opts,
	}
}

// Process runs detection, token accounting, extraction and normalization
// for a single file.
func (w *Worker) Process(ctx context.Context, file FileInput) Record {
	rec := Record{
		FilePath: file.Path,
		Exports:  []Export{},
		Imports:  []string{},
	}

	// No extractor claims the file: classified, not failed. No token
	// accounting either: unsupported files carry no sizing data.
	lang := w.registry.DetectLanguage(file.Path)
	if lang == "" {
		return rec
	}
	rec.Language = lang

	// Token accounting happens before extraction so a parser failure
	// cannot lose it.
	rec.OriginalTokenCount = w.counter.Count(file.Content)

	raw, err := w.extract(ctx, file)
	if err != nil {
		rec.Error = err.Error()
		return rec
	}

	for _, imp := range raw.Imports {
		rec.Imports = append(rec.Imports, imp.Source)
	}
	for _, exp := range raw.Exports {
		rec.Exports = append(rec.Exports, normalizeExport(exp))
	}

	return rec
}

// extract invokes the registry and converts panicking extractors into
// plain errors. File-level failure must never cross the worker boundary.
func (w *Worker) extract(ctx context.Context, file FileInput) (raw *language.RawExtraction, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw = nil
			err = fmt.Errorf("extractor panic on %s: %v", file.Path, r)
		}
	}()

	return w.registry.ProcessFile(ctx, file.Path, file.Content, w.opts)
}
