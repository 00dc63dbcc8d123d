package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repoprompt/internal/config"
	"repoprompt/internal/logger"
	"repoprompt/internal/pipeline"
	"repoprompt/internal/render"
	"repoprompt/internal/token"
)

func generateCmd() *cobra.Command {
	var (
		configPath string
		dir        string
		out        string
		pattern    string
		format     string
		maxTokens  int
		overlap    int
		margin     int
		tokenizer  string
		presetID   string
		dryRun     bool
		logLevel   string
		workers    int

		includeBinary bool
		noBackup      bool

		excludeFiles []string
		excludeDirs  []string
		allowOnly    []string

		stripComments    bool
		stripDocComments bool
		stripTests       bool
		stripDebug       bool

		templatePath string
		formatName   string
		ext          string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Scan a repository and generate prompt files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Flags override file values only when set.
			flags := cmd.Flags()
			if flags.Changed("dir") {
				cfg.RootDir = dir
			}
			if flags.Changed("out") {
				cfg.OutputDir = out
			}
			if flags.Changed("pattern") {
				cfg.Pattern = pattern
			}
			if flags.Changed("format") {
				cfg.Format = config.Format(format)
			}
			if flags.Changed("max-tokens") {
				cfg.MaxTokens = maxTokens
			}
			if flags.Changed("overlap") {
				cfg.OverlapTokens = overlap
			}
			if flags.Changed("safety-margin") {
				cfg.SafetyMargin = margin
			}
			if flags.Changed("tokenizer") {
				cfg.Tokenizer = token.Kind(tokenizer)
			}
			if flags.Changed("preset") {
				cfg.Preset = presetID
			}
			if flags.Changed("include-binary") {
				cfg.IncludeBinary = includeBinary
			}
			if flags.Changed("no-backup") {
				cfg.BackupExisting = !noBackup
			}
			if flags.Changed("exclude-file") {
				cfg.ExcludeFiles = excludeFiles
			}
			if flags.Changed("exclude-dir") {
				cfg.ExcludeDirs = excludeDirs
			}
			if flags.Changed("allow-only") {
				cfg.AllowOnly = allowOnly
			}
			if flags.Changed("strip-comments") {
				cfg.StripComments = stripComments
			}
			if flags.Changed("strip-doc-comments") {
				cfg.StripDocComments = stripDocComments
			}
			if flags.Changed("strip-tests") {
				cfg.StripTests = stripTests
			}
			if flags.Changed("strip-debug") {
				cfg.StripDebug = stripDebug
			}
			if flags.Changed("template") {
				cfg.TemplatePath = templatePath
			}
			if flags.Changed("format-name") {
				cfg.CustomName = formatName
			}
			if flags.Changed("ext") {
				cfg.CustomExtension = ext
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			cfg.DryRun = dryRun

			log := logger.New(cfg.LogLevel)

			p, err := pipeline.New(cfg, log)
			if err != nil {
				return err
			}

			stats, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.Summary(render.RunSummary{
				RootDir:   cfg.RootDir,
				OutputDir: cfg.OutputDir,
				Format:    string(cfg.Format),
				Preset:    cfg.Preset,
				Stats:     stats.Scan,
				Chunks:    stats.Chunks,
				MaxTokens: cfg.EffectiveChunkTokens(),
				Duration:  stats.Duration,
				DryRun:    cfg.DryRun,
			}))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "repoprompt.toml", "Path to TOML config file")
	f.StringVarP(&dir, "dir", "d", ".", "Root directory to scan for source files")
	f.StringVarP(&out, "out", "o", "out", "Output directory for generated prompts")
	f.StringVar(&pattern, "pattern", config.DefaultPattern, "Output filename pattern")
	f.StringVarP(&format, "format", "f", "markdown", "Output format (markdown/xml/json/custom)")
	f.IntVar(&maxTokens, "max-tokens", config.DefaultMaxTokens, "Max tokens per chunk")
	f.IntVar(&overlap, "overlap", config.DefaultOverlapTokens, "Overlap tokens between parts of a split file")
	f.IntVar(&margin, "safety-margin", config.DefaultSafetyMargin, "Tokens held back from the chunk limit")
	f.StringVar(&tokenizer, "tokenizer", "simple", "Token estimator (simple/enhanced)")
	f.StringVarP(&presetID, "preset", "p", "", "LLM preset for specialized output (see 'repoprompt presets')")
	f.BoolVar(&dryRun, "dry-run", false, "Plan the run without writing files")
	f.BoolVar(&includeBinary, "include-binary", false, "Carry binary files into chunks (by size)")
	f.BoolVar(&noBackup, "no-backup", false, "Do not back up existing output files")
	f.StringSliceVar(&excludeFiles, "exclude-file", nil, "Glob of files to exclude (repeatable)")
	f.StringSliceVar(&excludeDirs, "exclude-dir", nil, "Directory name/glob to exclude (repeatable)")
	f.StringSliceVar(&allowOnly, "allow-only", nil, "Only process files matching these globs")
	f.BoolVar(&stripComments, "strip-comments", false, "Remove comments before token estimation")
	f.BoolVar(&stripDocComments, "strip-doc-comments", false, "Remove doc comments")
	f.BoolVar(&stripTests, "strip-tests", false, "Remove test code")
	f.BoolVar(&stripDebug, "strip-debug", false, "Remove debug print statements")
	f.StringVar(&templatePath, "template", "", "Path to a custom template file")
	f.StringVar(&formatName, "format-name", "", "Custom format name (requires --format custom)")
	f.StringVar(&ext, "ext", "", "Custom file extension without the dot (requires --format custom)")
	f.StringVar(&logLevel, "log-level", "info", "Log level (debug/info/warn/error)")
	f.IntVar(&workers, "workers", 0, "Scanner worker count (0 = number of CPUs)")

	return cmd
}
