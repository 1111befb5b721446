package config

import (
	"strings"

	"github.com/mvp-joe/testable-docs/internal/binding"
)

// Config represents the complete testable-docs configuration.
// It can be loaded from .testable-docs/config.yml with environment variable overrides.
type Config struct {
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Binding  BindingConfig  `yaml:"binding" mapstructure:"binding"`
	Analyzer AnalyzerConfig `yaml:"analyzer" mapstructure:"analyzer"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// PathsConfig defines which files to analyze and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to ignore
}

// BindingConfig selects how comments are associated with declarations.
type BindingConfig struct {
	Strategy       string `yaml:"strategy" mapstructure:"strategy"`               // "proximity" or "attached"
	ClassDistance  int    `yaml:"class_distance" mapstructure:"class_distance"`   // max bytes between comment and class
	MethodDistance int    `yaml:"method_distance" mapstructure:"method_distance"` // max bytes between comment and method key
}

// AnalyzerConfig tunes directory analysis.
type AnalyzerConfig struct {
	Workers   int `yaml:"workers" mapstructure:"workers"`       // files extracted in parallel
	CacheSize int `yaml:"cache_size" mapstructure:"cache_size"` // extraction results kept for watch mode
}

// OutputConfig defines how results are written.
type OutputConfig struct {
	Format   string `yaml:"format" mapstructure:"format"`     // "json" or "yaml"
	Database string `yaml:"database" mapstructure:"database"` // optional SQLite documentation index
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: []string{
				"**/*.js",
				"**/*.mjs",
				"**/*.cjs",
				"**/*.jsx",
				"**/*.ts",
				"**/*.tsx",
			},
			Ignore: []string{
				"node_modules/**",
				".git/**",
				"dist/**",
				"build/**",
				"coverage/**",
				"**/*.min.js",
				"**/*.d.ts",
			},
		},
		Binding: BindingConfig{
			Strategy:       string(binding.StrategyProximity),
			ClassDistance:  binding.DefaultClassDistance,
			MethodDistance: binding.DefaultMethodDistance,
		},
		Analyzer: AnalyzerConfig{
			Workers:   4,
			CacheSize: 10_000,
		},
		Output: OutputConfig{
			Format:   "json",
			Database: "", // Empty means no SQLite index is written
		},
	}
}

// BindingOptions converts the binding section to binding.Options.
func (c *Config) BindingOptions() binding.Options {
	return binding.Options{
		Strategy:       binding.Strategy(strings.ToLower(c.Binding.Strategy)),
		ClassDistance:  c.Binding.ClassDistance,
		MethodDistance: c.Binding.MethodDistance,
	}
}
