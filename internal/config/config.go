package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"repoprompt/internal/token"
	"repoprompt/pkg/types"
)

// Defaults for token budgeting and output naming.
const (
	DefaultMaxTokens     = 100_000
	DefaultOverlapTokens = 1_000
	DefaultSafetyMargin  = 2_000
	DefaultPattern       = "prompt_{index:03}.{ext}"
)

// Format is the output format for generated prompts.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatXML      Format = "xml"
	FormatJSON     Format = "json"
	FormatCustom   Format = "custom"
)

// Extension returns the output file extension for the format. Custom
// formats fall back to "txt" unless Config.CustomExtension overrides it.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatXML:
		return "xml"
	case FormatJSON:
		return "json"
	default:
		return "txt"
	}
}

// Valid reports whether f names a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatMarkdown, FormatXML, FormatJSON, FormatCustom:
		return true
	}
	return false
}

// Config holds the full pipeline configuration. Zero values are filled in
// by Default(); file values are layered on by Load; flags override both.
type Config struct {
	RootDir   string `toml:"root_dir"`
	OutputDir string `toml:"output_dir"`

	// Pattern names output files; it must contain {index} (or a padded
	// variant) and {ext}.
	Pattern string `toml:"pattern"`
	Format  Format `toml:"format"`

	MaxTokens     int `toml:"max_tokens"`
	OverlapTokens int `toml:"overlap_tokens"`
	SafetyMargin  int `toml:"safety_margin"`

	Tokenizer            token.Kind `toml:"tokenizer"`
	PreferLineBoundaries bool       `toml:"prefer_line_boundaries"`

	// Filtering
	ExcludeFiles []string `toml:"exclude_files"`
	ExcludeDirs  []string `toml:"exclude_dirs"`
	AllowOnly    []string `toml:"allow_only"`
	StripComments    bool `toml:"strip_comments"`
	StripDocComments bool `toml:"strip_doc_comments"`
	StripTests       bool `toml:"strip_tests"`
	StripDebug       bool `toml:"strip_debug"`

	Preset         string `toml:"preset"`
	DryRun         bool   `toml:"-"`
	IncludeBinary  bool   `toml:"include_binary"`
	BackupExisting bool   `toml:"backup_existing"`

	// TemplatePath points at an external text/template file, required for
	// the custom format.
	TemplatePath    string `toml:"template_path"`
	CustomName      string `toml:"custom_name"`
	CustomExtension string `toml:"custom_extension"`

	// HistoryPath overrides the default run-history database location.
	HistoryPath string `toml:"history_path"`

	LogLevel string `toml:"log_level"`
	Workers  int    `toml:"workers"`
}

// Default returns a configuration with the stock defaults applied.
func Default() Config {
	return Config{
		RootDir:              ".",
		OutputDir:            "out",
		Pattern:              DefaultPattern,
		Format:               FormatMarkdown,
		MaxTokens:            DefaultMaxTokens,
		OverlapTokens:        DefaultOverlapTokens,
		SafetyMargin:         DefaultSafetyMargin,
		Tokenizer:            token.KindSimple,
		PreferLineBoundaries: true,
		BackupExisting:       true,
		LogLevel:             "info",
	}
}

// Load layers an optional TOML file over the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, &types.PathError{Path: path, Err: err}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	info, err := os.Stat(c.RootDir)
	if err != nil {
		return fmt.Errorf("root directory does not exist: %s", c.RootDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path is not a directory: %s", c.RootDir)
	}

	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be greater than 0")
	}
	if c.OverlapTokens >= c.MaxTokens {
		return fmt.Errorf("overlap_tokens (%d) must be less than max_tokens (%d)", c.OverlapTokens, c.MaxTokens)
	}
	if c.SafetyMargin >= c.MaxTokens {
		return fmt.Errorf("safety_margin (%d) must be less than max_tokens (%d)", c.SafetyMargin, c.MaxTokens)
	}

	if !c.Format.Valid() {
		return fmt.Errorf("unknown output format %q", c.Format)
	}

	if c.Pattern == "" {
		return types.ErrEmptyPattern
	}
	if !strings.Contains(c.Pattern, "{index") {
		return &types.InvalidPatternError{Pattern: c.Pattern, Reason: "pattern must contain an {index} placeholder"}
	}
	if !strings.Contains(c.Pattern, "{ext}") {
		return &types.InvalidPatternError{Pattern: c.Pattern, Reason: "pattern must contain an {ext} placeholder"}
	}

	if _, err := token.New(c.Tokenizer); err != nil {
		return err
	}

	if c.TemplatePath != "" {
		info, err := os.Stat(c.TemplatePath)
		if err != nil {
			return fmt.Errorf("template file does not exist: %s", c.TemplatePath)
		}
		if info.IsDir() {
			return fmt.Errorf("template path is not a file: %s", c.TemplatePath)
		}
	}

	if c.Format == FormatCustom {
		if c.CustomName == "" {
			return fmt.Errorf("custom format requires custom_name")
		}
		if c.CustomExtension == "" {
			return fmt.Errorf("custom format requires custom_extension")
		}
		if c.TemplatePath == "" {
			return fmt.Errorf("custom format requires template_path")
		}
	}

	return nil
}

// EffectiveChunkTokens is the per-chunk capacity after the safety margin.
func (c *Config) EffectiveChunkTokens() int {
	n := c.MaxTokens - c.SafetyMargin
	if n < 0 {
		return 0
	}
	return n
}

// OutputExtension resolves the extension to use for output files.
func (c *Config) OutputExtension() string {
	if c.Format == FormatCustom && c.CustomExtension != "" {
		return c.CustomExtension
	}
	return c.Format.Extension()
}
