// Package config loads and validates distill configuration.
// Priority: defaults, then .distill/config.yml, then DISTILL_* environment
// variables (env wins).
package config

import (
	"github.com/mvp-joe/distill/internal/distill"
)

// Config is the complete distill configuration.
type Config struct {
	Workers    int              `yaml:"workers" mapstructure:"workers"`
	Processing ProcessingConfig `yaml:"processing" mapstructure:"processing"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// ProcessingConfig holds the per-language extraction toggles.
type ProcessingConfig struct {
	IncludePrivate    bool `yaml:"include_private" mapstructure:"include_private"`
	IncludeDocstrings bool `yaml:"include_docstrings" mapstructure:"include_docstrings"`
}

// OutputConfig holds rendering defaults. Per-invocation flags override
// these.
type OutputConfig struct {
	Format            string `yaml:"format" mapstructure:"format"`
	IncludeImports    bool   `yaml:"include_imports" mapstructure:"include_imports"`
	IncludeMetadata   bool   `yaml:"include_metadata" mapstructure:"include_metadata"`
	GroupByType       bool   `yaml:"group_by_type" mapstructure:"group_by_type"`
	PreserveStructure bool   `yaml:"preserve_structure" mapstructure:"preserve_structure"`
	SyntaxHighlight   bool   `yaml:"syntax_highlight" mapstructure:"syntax_highlight"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Workers: 8,
		Processing: ProcessingConfig{
			IncludePrivate:    false,
			IncludeDocstrings: true,
		},
		Output: OutputConfig{
			Format:          "markdown",
			IncludeImports:  true,
			IncludeMetadata: true,
		},
	}
}

// Normalize clamps out-of-range values instead of rejecting them. The
// worker count boundary contract is clamp-to-range, never fail.
func (c *Config) Normalize() {
	c.Workers = distill.ClampWorkerCount(c.Workers)
	if c.Output.Format == "" {
		c.Output.Format = "markdown"
	}
}
