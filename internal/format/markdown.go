package format

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mvp-joe/distill/internal/compress"
	"github.com/mvp-joe/distill/internal/distill"
)

// markdownFormatter renders results as prose markdown for humans and
// LLM prompts.
type markdownFormatter struct{}

// NewMarkdownFormatter creates the markdown formatter.
func NewMarkdownFormatter() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) FormatDistillation(result *distill.Result, opts Options) (string, error) {
	var sb strings.Builder
	sb.WriteString("# API Summary\n\n")

	f.writeStructure(&sb, result)

	apis := filterAPIs(result.APIs, opts)
	if opts.PreserveStructure {
		f.writeByDirectory(&sb, apis, opts)
	} else {
		for _, rec := range apis {
			f.writeRecord(&sb, rec, opts)
		}
	}

	if len(result.Errors) > 0 {
		sb.WriteString("## Errors\n\n")
		for _, e := range result.Errors {
			fmt.Fprintf(&sb, "- `%s`: %s\n", e.Path, e.Message)
		}
		sb.WriteString("\n")
	}

	if opts.IncludeMetadata {
		f.writeMetadata(&sb, result.Metadata)
	}

	return strings.TrimRight(sb.String(), "\n") + "\n", nil
}

func (f *markdownFormatter) FormatCompression(result *compress.Result, opts Options) (string, error) {
	var sb strings.Builder
	sb.WriteString("# Packed Files\n\n")
	fmt.Fprintf(&sb, "%d files, %d bytes, ~%d tokens\n\n", result.FileCount, result.TotalBytes, result.TotalTokens)

	for _, file := range result.Files {
		fmt.Fprintf(&sb, "## %s\n\n", file.Path)
		lang := ""
		if opts.SyntaxHighlight {
			lang = file.Language
		}
		fmt.Fprintf(&sb, "```%s\n%s\n```\n\n", lang, strings.TrimRight(file.Content, "\n"))
	}

	return strings.TrimRight(sb.String(), "\n") + "\n", nil
}

func (f *markdownFormatter) FormatCombined(compression *compress.Result, distillation *distill.Result, opts Options) (string, error) {
	d, err := f.FormatDistillation(distillation, opts)
	if err != nil {
		return "", err
	}
	c, err := f.FormatCompression(compression, opts)
	if err != nil {
		return "", err
	}
	return d + "\n" + c, nil
}

func (f *markdownFormatter) writeStructure(sb *strings.Builder, result *distill.Result) {
	fmt.Fprintf(sb, "%d files", result.Structure.FileCount)
	if len(result.Structure.Languages) > 0 {
		langs := make([]string, 0, len(result.Structure.Languages))
		for lang := range result.Structure.Languages {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
		parts := make([]string, 0, len(langs))
		for _, lang := range langs {
			parts = append(parts, fmt.Sprintf("%s: %d", lang, result.Structure.Languages[lang]))
		}
		fmt.Fprintf(sb, " (%s)", strings.Join(parts, ", "))
	}
	sb.WriteString("\n\n")
}

func (f *markdownFormatter) writeByDirectory(sb *strings.Builder, apis []distill.Record, opts Options) {
	byDir := make(map[string][]distill.Record)
	var dirs []string
	for _, rec := range apis {
		dir := filepath.ToSlash(filepath.Dir(rec.FilePath))
		if _, seen := byDir[dir]; !seen {
			dirs = append(dirs, dir)
		}
		byDir[dir] = append(byDir[dir], rec)
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		fmt.Fprintf(sb, "## %s/\n\n", dir)
		for _, rec := range byDir[dir] {
			f.writeRecord(sb, rec, opts)
		}
	}
}

func (f *markdownFormatter) writeRecord(sb *strings.Builder, rec distill.Record, opts Options) {
	fmt.Fprintf(sb, "### %s\n\n", rec.FilePath)

	if opts.IncludeImports && len(rec.Imports) > 0 {
		fmt.Fprintf(sb, "Imports: %s\n\n", strings.Join(rec.Imports, ", "))
	}

	if opts.GroupByType {
		groups := groupByKind(rec.Exports)
		for _, kind := range kindOrder {
			exports := groups[kind]
			if len(exports) == 0 {
				continue
			}
			fmt.Fprintf(sb, "**%s**\n\n", kind)
			for _, exp := range exports {
				f.writeExport(sb, exp, rec.Language, opts)
			}
		}
		return
	}

	for _, exp := range rec.Exports {
		f.writeExport(sb, exp, rec.Language, opts)
	}
}

func (f *markdownFormatter) writeExport(sb *strings.Builder, exp distill.Export, lang string, opts Options) {
	sig := exp.Signature
	if sig == "" {
		sig = exp.Name
	}

	if opts.SyntaxHighlight {
		fence := opts.Language
		if fence == "" {
			fence = lang
		}
		fmt.Fprintf(sb, "```%s\n%s\n```\n", fence, sig)
	} else {
		fmt.Fprintf(sb, "- `%s` %s\n", sig, lineRange(exp.Location))
	}

	for _, m := range exp.Members {
		fmt.Fprintf(sb, "  - %s `%s`\n", m.Kind, m.Signature)
	}
	sb.WriteString("\n")
}

func (f *markdownFormatter) writeMetadata(sb *strings.Builder, meta distill.Metadata) {
	sb.WriteString("## Metadata\n\n")
	fmt.Fprintf(sb, "- Original tokens: %d\n", meta.OriginalTokens)
	fmt.Fprintf(sb, "- Distilled tokens: %d\n", meta.DistilledTokens)
	fmt.Fprintf(sb, "- Compression ratio: %.3f\n", meta.CompressionRatio)
}

// lineRange formats a source location into a human-readable range.
func lineRange(loc distill.SourceLocation) string {
	if loc.StartLine == 0 && loc.EndLine == 0 {
		return ""
	}
	if loc.StartLine == loc.EndLine {
		return fmt.Sprintf("(line %d)", loc.StartLine)
	}
	return fmt.Sprintf("(lines %d-%d)", loc.StartLine, loc.EndLine)
}
