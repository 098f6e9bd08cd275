package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/distill/internal/compress"
	"github.com/mvp-joe/distill/internal/distill"
	"github.com/mvp-joe/distill/internal/files"
	"github.com/mvp-joe/distill/internal/language"
	"github.com/mvp-joe/distill/internal/logger"
)

var (
	compressFormat   string
	compressOutput   string
	compressCombined bool
)

var compressCmd = &cobra.Command{
	Use:   "compress [paths...]",
	Short: "Package raw file contents (sizes, hashes, full text)",
	Long: `Compress packages the raw contents of the given files instead of
extracting their API surface. With --combined, both artifacts are rendered
together.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompress,
}

func init() {
	compressCmd.Flags().StringVarP(&compressFormat, "format", "f", "", "output format (see 'distill formats')")
	compressCmd.Flags().StringVarP(&compressOutput, "output", "o", "", "output file (default: stdout)")
	compressCmd.Flags().BoolVar(&compressCombined, "combined", false, "render distillation and compression together")
	rootCmd.AddCommand(compressCmd)
}

func runCompress(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = compressFormat
	}
	cfg.Normalize()

	inputs, err := files.Load(args)
	if err != nil {
		return err
	}

	formatter, err := formatters.Resolve(cfg.Output.Format)
	if err != nil {
		return err
	}

	compression := compress.NewCompressor().Compress(inputs)
	logger.Info("compressed", "files", compression.FileCount, "bytes", compression.TotalBytes)

	var text string
	if compressCombined {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts := language.ProcessingOptions{
			IncludePrivate:    cfg.Processing.IncludePrivate,
			IncludeDocstrings: cfg.Processing.IncludeDocstrings,
		}
		distiller := distill.NewDistiller(cfg.Workers, opts)
		result, runErr := distiller.Distill(ctx, inputs)
		if result == nil {
			return runErr
		}

		text, err = formatter.FormatCombined(compression, result, renderOptions(cfg))
	} else {
		text, err = formatter.FormatCompression(compression, renderOptions(cfg))
	}
	if err != nil {
		return err
	}

	return writeOutput(compressOutput, text)
}
