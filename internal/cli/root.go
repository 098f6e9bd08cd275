// Package cli wires the distill pipeline to the command line. Everything
// here is I/O glue: the pipeline itself lives in internal/distill.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/distill/internal/config"
	"github.com/mvp-joe/distill/internal/format"
	"github.com/mvp-joe/distill/internal/logger"
)

var (
	rootDir string
	verbose bool
	quiet   bool
)

// formatters is the process-wide formatter registry, constructed once at
// startup and passed by reference to every command. No import-time
// side effects.
var formatters = format.NewDefaultRegistry()

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "distill",
	Short: "Distill a source tree into its public API surface",
	Long: `Distill reduces a codebase to a compact, language-aware summary of its
exported functions, classes, types and members, plus dependency and sizing
metadata, ready to paste into an LLM context window.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{Debug: verbose, Quiet: quiet})
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "project root (config is read from <root>/.distill)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only show errors")
}

// loadConfig loads the effective configuration for the current invocation.
func loadConfig() (*config.Config, error) {
	return config.NewLoader(rootDir).Load()
}

// writeOutput writes rendered text to a file, or stdout when path is "".
func writeOutput(path, text string) error {
	if path == "" {
		fmt.Println(text)
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
