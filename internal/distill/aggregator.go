package distill

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/mvp-joe/distill/internal/token"
)

// Aggregator folds independent per-file records into one consistent
// Result. It exclusively owns the Result it returns.
type Aggregator struct {
	counter *token.Counter
}

// NewAggregator creates an aggregator with its own token counter.
func NewAggregator() *Aggregator {
	return &Aggregator{counter: token.NewCounter()}
}

// Aggregate merges records into a Result. Records are visited in path
// order, so the output is deterministic regardless of completion order or
// pool size.
//
// Inclusion rules: every record counts toward FileCount and the directory
// set; records with a detected language count toward the language map and
// the dependency map even when extraction failed; only clean records with
// a detected language make it into APIs.
func (a *Aggregator) Aggregate(records map[string]Record) *Result {
	paths := make([]string, 0, len(records))
	for path := range records {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	result := &Result{
		APIs:         []Record{},
		Dependencies: make(map[string]Dependency),
		Structure: Structure{
			Directories: []string{},
			FileCount:   len(records),
			Languages:   make(map[string]int),
		},
	}

	dirs := make(map[string]struct{})
	for _, path := range paths {
		rec := records[path]

		// Unsupported and errored files still exist in the tree.
		dirs[filepath.ToSlash(filepath.Dir(path))] = struct{}{}
		result.Metadata.OriginalTokens += rec.OriginalTokenCount

		if !rec.Supported() {
			continue
		}
		result.Structure.Languages[rec.Language]++

		exportNames := make([]string, 0, len(rec.Exports))
		for _, exp := range rec.Exports {
			exportNames = append(exportNames, exp.Name)
		}
		imports := rec.Imports
		if imports == nil {
			imports = []string{}
		}
		result.Dependencies[path] = Dependency{
			Imports: imports,
			Exports: exportNames,
		}

		if rec.Failed() {
			result.Errors = append(result.Errors, FileError{Path: path, Message: rec.Error})
			continue
		}
		result.APIs = append(result.APIs, rec)
	}

	for dir := range dirs {
		result.Structure.Directories = append(result.Structure.Directories, dir)
	}
	sort.Strings(result.Structure.Directories)

	result.Graph = buildDependencyGraph(result.Dependencies)

	// DistilledTokens measures the serialized API surface, not raw source.
	result.Metadata.DistilledTokens = a.counter.CountString(serializeAPIs(result.APIs))
	if result.Metadata.OriginalTokens > 0 {
		result.Metadata.CompressionRatio = float64(result.Metadata.DistilledTokens) / float64(result.Metadata.OriginalTokens)
	}

	return result
}

// serializeAPIs renders the canonical machine form of the extracted
// surface used for compression accounting. JSON keeps it deterministic
// and independent of whichever formatter the caller picks later.
func serializeAPIs(apis []Record) string {
	data, err := json.Marshal(apis)
	if err != nil {
		return ""
	}
	return string(data)
}
