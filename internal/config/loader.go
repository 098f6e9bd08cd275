package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins).
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (DISTILL_*)
// 2. Config file (.distill/config.yml or .distill/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".distill")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("DISTILL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("workers")
	v.BindEnv("processing.include_private")
	v.BindEnv("processing.include_docstrings")
	v.BindEnv("output.format")
	v.BindEnv("output.include_imports")
	v.BindEnv("output.include_metadata")
	v.BindEnv("output.group_by_type")
	v.BindEnv("output.preserve_structure")
	v.BindEnv("output.syntax_highlight")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// No config file is fine; defaults plus env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Normalize()
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("processing.include_private", defaults.Processing.IncludePrivate)
	v.SetDefault("processing.include_docstrings", defaults.Processing.IncludeDocstrings)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.include_imports", defaults.Output.IncludeImports)
	v.SetDefault("output.include_metadata", defaults.Output.IncludeMetadata)
	v.SetDefault("output.group_by_type", defaults.Output.GroupByType)
	v.SetDefault("output.preserve_structure", defaults.Output.PreserveStructure)
	v.SetDefault("output.syntax_highlight", defaults.Output.SyntaxHighlight)
}
