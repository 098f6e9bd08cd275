package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/distill/internal/config"
	"github.com/mvp-joe/distill/internal/distill"
	"github.com/mvp-joe/distill/internal/files"
	"github.com/mvp-joe/distill/internal/format"
	"github.com/mvp-joe/distill/internal/language"
	"github.com/mvp-joe/distill/internal/logger"
)

var (
	distillWorkers    int
	distillFormat     string
	distillOutput     string
	includePrivate    bool
	includeDocstrings bool
	includeImports    bool
	includeMetadata   bool
	groupByType       bool
	preserveStructure bool
	syntaxHighlight   bool
)

var distillCmd = &cobra.Command{
	Use:   "distill [paths...]",
	Short: "Extract the public API surface of the given files or directories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDistill,
}

func init() {
	distillCmd.Flags().IntVarP(&distillWorkers, "workers", "w", 0, "concurrent workers (1-16, 0 = from config)")
	distillCmd.Flags().StringVarP(&distillFormat, "format", "f", "", "output format (see 'distill formats')")
	distillCmd.Flags().StringVarP(&distillOutput, "output", "o", "", "output file (default: stdout)")
	distillCmd.Flags().BoolVar(&includePrivate, "include-private", false, "include non-public symbols")
	distillCmd.Flags().BoolVar(&includeDocstrings, "include-docstrings", true, "attach doc comments to signatures")
	distillCmd.Flags().BoolVar(&includeImports, "include-imports", true, "list imports per file")
	distillCmd.Flags().BoolVar(&includeMetadata, "include-metadata", true, "include token accounting")
	distillCmd.Flags().BoolVar(&groupByType, "group-by-type", false, "group exports by kind")
	distillCmd.Flags().BoolVar(&preserveStructure, "preserve-structure", false, "organize output by directory")
	distillCmd.Flags().BoolVar(&syntaxHighlight, "syntax-highlight", false, "fence signatures as code blocks")
	rootCmd.AddCommand(distillCmd)
}

func runDistill(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyDistillFlags(cmd, cfg)

	inputs, err := files.Load(args)
	if err != nil {
		return err
	}
	logger.Info("distilling", "files", len(inputs), "workers", cfg.Workers)

	formatter, err := formatters.Resolve(cfg.Output.Format)
	if err != nil {
		return err
	}

	// Ctrl-C stops submission; in-flight files drain and the partial
	// result still renders.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := language.ProcessingOptions{
		IncludePrivate:    cfg.Processing.IncludePrivate,
		IncludeDocstrings: cfg.Processing.IncludeDocstrings,
	}

	var reporter distill.ProgressReporter = distill.NoOpProgressReporter{}
	if !quiet {
		reporter = newBarReporter()
	}

	distiller := distill.NewDistiller(cfg.Workers, opts, distill.WithProgress(reporter))
	result, runErr := distiller.Distill(ctx, inputs)
	if result == nil {
		return runErr
	}
	if runErr != nil {
		logger.Warn("run interrupted, rendering partial result", "error", runErr)
	}

	text, err := formatter.FormatDistillation(result, renderOptions(cfg))
	if err != nil {
		return err
	}

	if err := writeOutput(distillOutput, text); err != nil {
		return err
	}

	logger.Info("done",
		"apis", len(result.APIs),
		"errors", len(result.Errors),
		"originalTokens", result.Metadata.OriginalTokens,
		"distilledTokens", result.Metadata.DistilledTokens,
		"ratio", fmt.Sprintf("%.3f", result.Metadata.CompressionRatio))
	return nil
}

// applyDistillFlags overlays explicitly-set flags on the loaded config.
func applyDistillFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("workers") {
		cfg.Workers = distillWorkers
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = distillFormat
	}
	if cmd.Flags().Changed("include-private") {
		cfg.Processing.IncludePrivate = includePrivate
	}
	if cmd.Flags().Changed("include-docstrings") {
		cfg.Processing.IncludeDocstrings = includeDocstrings
	}
	if cmd.Flags().Changed("include-imports") {
		cfg.Output.IncludeImports = includeImports
	}
	if cmd.Flags().Changed("include-metadata") {
		cfg.Output.IncludeMetadata = includeMetadata
	}
	if cmd.Flags().Changed("group-by-type") {
		cfg.Output.GroupByType = groupByType
	}
	if cmd.Flags().Changed("preserve-structure") {
		cfg.Output.PreserveStructure = preserveStructure
	}
	if cmd.Flags().Changed("syntax-highlight") {
		cfg.Output.SyntaxHighlight = syntaxHighlight
	}
	cfg.Normalize()
}

// renderOptions converts config into the formatter option bag.
func renderOptions(cfg *config.Config) format.Options {
	return format.Options{
		IncludeImports:    cfg.Output.IncludeImports,
		IncludePrivate:    cfg.Processing.IncludePrivate,
		IncludeDocstrings: cfg.Processing.IncludeDocstrings,
		IncludeMetadata:   cfg.Output.IncludeMetadata,
		GroupByType:       cfg.Output.GroupByType,
		PreserveStructure: cfg.Output.PreserveStructure,
		SyntaxHighlight:   cfg.Output.SyntaxHighlight,
	}
}
