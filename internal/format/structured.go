package format

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/distill/internal/compress"
	"github.com/mvp-joe/distill/internal/distill"
)

// structuredFormatter renders results as an indented record outline:
// dense, machine-oriented, stable field order. Good for diffing and for
// consumers that parse line-by-line.
type structuredFormatter struct{}

// NewStructuredFormatter creates the structured formatter.
func NewStructuredFormatter() Formatter {
	return &structuredFormatter{}
}

func (f *structuredFormatter) FormatDistillation(result *distill.Result, opts Options) (string, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "files=%d dirs=%d\n", result.Structure.FileCount, len(result.Structure.Directories))

	for _, rec := range filterAPIs(result.APIs, opts) {
		fmt.Fprintf(&sb, "file %s lang=%s tokens=%d\n", rec.FilePath, rec.Language, rec.OriginalTokenCount)

		if opts.IncludeImports {
			for _, imp := range rec.Imports {
				fmt.Fprintf(&sb, "  import %s\n", imp)
			}
		}

		if opts.GroupByType {
			groups := groupByKind(rec.Exports)
			for _, kind := range kindOrder {
				for _, exp := range groups[kind] {
					f.writeExport(&sb, exp)
				}
			}
		} else {
			for _, exp := range rec.Exports {
				f.writeExport(&sb, exp)
			}
		}
	}

	for _, e := range result.Errors {
		fmt.Fprintf(&sb, "error %s %s\n", e.Path, e.Message)
	}

	for _, edge := range result.Graph {
		fmt.Fprintf(&sb, "dep %s -> %s\n", edge.From, edge.To)
	}

	if opts.IncludeMetadata {
		fmt.Fprintf(&sb, "tokens original=%d distilled=%d ratio=%.3f\n",
			result.Metadata.OriginalTokens, result.Metadata.DistilledTokens, result.Metadata.CompressionRatio)
	}

	return sb.String(), nil
}

func (f *structuredFormatter) writeExport(sb *strings.Builder, exp distill.Export) {
	fmt.Fprintf(sb, "  %s %s vis=%s lines=%d-%d sig=%s\n",
		exp.Kind, exp.Name, exp.Visibility, exp.Location.StartLine, exp.Location.EndLine, exp.Signature)
	for _, m := range exp.Members {
		fmt.Fprintf(sb, "    %s %s sig=%s\n", m.Kind, m.Name, m.Signature)
	}
}

func (f *structuredFormatter) FormatCompression(result *compress.Result, opts Options) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "files=%d bytes=%d tokens=%d\n", result.FileCount, result.TotalBytes, result.TotalTokens)
	for _, file := range result.Files {
		fmt.Fprintf(&sb, "file %s lang=%s size=%d hash=%s\n", file.Path, file.Language, file.Size, file.Hash)
	}
	return sb.String(), nil
}

func (f *structuredFormatter) FormatCombined(compression *compress.Result, distillation *distill.Result, opts Options) (string, error) {
	d, err := f.FormatDistillation(distillation, opts)
	if err != nil {
		return "", err
	}
	c, err := f.FormatCompression(compression, opts)
	if err != nil {
		return "", err
	}
	return d + c, nil
}
