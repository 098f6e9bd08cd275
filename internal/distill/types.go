// Package distill turns a filtered list of source files into a compact
// summary of their public API surface plus dependency and sizing metadata.
//
// The pipeline is: a Dispatcher fans files out across a bounded pool of
// workers, each Worker runs one file through language detection, token
// accounting, extraction and normalization, and an Aggregator folds the
// per-file records into a single Result for rendering.
package distill

// Canonical export kinds. Extractors report free-text kinds; anything
// outside this set normalizes to KindConst.
const (
	KindFunction  = "function"
	KindClass     = "class"
	KindInterface = "interface"
	KindConst     = "const"
	KindType      = "type"
	KindEnum      = "enum"
)

// Visibility levels. Languages without an explicit model default to public.
const (
	VisibilityPublic    = "public"
	VisibilityPrivate   = "private"
	VisibilityProtected = "protected"
)

// Member kinds. Constructors, getters and setters normalize to method.
const (
	MemberProperty = "property"
	MemberMethod   = "method"
)

// FileInput is one (path, raw content) pair from the file-discovery
// boundary. The list arriving here is already filtered by ignore rules.
type FileInput struct {
	Path    string
	Content []byte
}

// SourceLocation is a 1-indexed line range. Zero values mean the extractor
// did not report a location.
type SourceLocation struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

// Member is a normalized class or interface member.
type Member struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Kind      string `json:"kind"` // property | method
}

// Export is one normalized exported symbol.
type Export struct {
	Name       string         `json:"name"`
	Kind       string         `json:"kind"`
	Signature  string         `json:"signature"`
	Visibility string         `json:"visibility"`
	Location   SourceLocation `json:"sourceLocation"`
	Members    []Member       `json:"members,omitempty"`
}

// Record is the normalized per-file outcome of distillation, success or
// failure. An empty Language means no extractor claimed the file: exports
// and imports are empty and OriginalTokenCount is 0. When extraction
// failed, Error carries the message and OriginalTokenCount still holds the
// count measured from raw content, so failures never zero out sizing data.
type Record struct {
	FilePath           string   `json:"filePath"`
	Language           string   `json:"language,omitempty"`
	Exports            []Export `json:"exports"`
	Imports            []string `json:"imports"`
	OriginalTokenCount int      `json:"originalTokenCount"`
	Error              string   `json:"error,omitempty"`
}

// Failed reports whether extraction failed for this file.
func (r *Record) Failed() bool {
	return r.Error != ""
}

// Supported reports whether any extractor claimed this file.
func (r *Record) Supported() bool {
	return r.Language != ""
}

// Dependency is the lossy per-file projection used for cross-file
// relationship views: import sources in, export names out.
type Dependency struct {
	Imports []string `json:"imports"`
	Exports []string `json:"exports"`
}

// Structure describes the shape of the processed tree.
type Structure struct {
	Directories []string       `json:"directories"`
	FileCount   int            `json:"fileCount"`
	Languages   map[string]int `json:"languages"`
}

// Metadata carries the token accounting for the run. CompressionRatio is
// DistilledTokens over OriginalTokens, or 0 when nothing was measured.
type Metadata struct {
	OriginalTokens   int     `json:"originalTokens"`
	DistilledTokens  int     `json:"distilledTokens"`
	CompressionRatio float64 `json:"compressionRatio"`
}

// FileError is a per-file extraction failure surfaced on the result.
type FileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Edge is one resolved file-to-file import relationship.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Result is the aggregated distillation outcome. APIs holds only records
// with a detected language and no error; failed files stay visible in
// Structure, Errors and the token totals. Formatters receive a Result
// read-only and must not mutate it.
type Result struct {
	RunID        string                `json:"runId"`
	APIs         []Record              `json:"apis"`
	Structure    Structure             `json:"structure"`
	Dependencies map[string]Dependency `json:"dependencies"`
	Metadata     Metadata              `json:"metadata"`
	Errors       []FileError           `json:"errors,omitempty"`
	Graph        []Edge                `json:"graph,omitempty"`
}
