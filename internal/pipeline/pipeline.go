// Package pipeline orchestrates a generation run: scan the tree, pack
// files into chunks, render and write output, and record the run.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"repoprompt/internal/config"
	"repoprompt/internal/filter"
	"repoprompt/internal/history"
	"repoprompt/internal/logger"
	"repoprompt/internal/preset"
	"repoprompt/internal/scanner"
	"repoprompt/internal/splitter"
	"repoprompt/internal/template"
	"repoprompt/internal/token"
	"repoprompt/internal/writer"
	"repoprompt/pkg/types"
)

// Pipeline runs the scan, split, and write stages against one
// validated configuration.
type Pipeline struct {
	cfg config.Config
	log *slog.Logger

	scanner  *scanner.Scanner
	splitter *splitter.Splitter
	writer   *writer.Writer
	preset   *preset.Preset
}

// New validates the configuration and assembles the stages.
func New(cfg config.Config, log *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}

	estimator, err := token.New(cfg.Tokenizer)
	if err != nil {
		return nil, err
	}

	var p *preset.Preset
	if cfg.Preset != "" {
		pr, err := preset.ByID(cfg.Preset)
		if err != nil {
			return nil, err
		}
		p = &pr
	}

	engine, err := template.New(cfg.Format, cfg.TemplatePath, p)
	if err != nil {
		return nil, err
	}

	scan := scanner.New(scanner.Options{
		RootDir:       cfg.RootDir,
		OutputDir:     cfg.OutputDir,
		IncludeBinary: cfg.IncludeBinary,
		Workers:       cfg.Workers,
		Estimator:     estimator,
		CodeFilter: filter.NewCodeFilter(filter.CodeFilterOptions{
			RemoveComments:    cfg.StripComments,
			RemoveDocComments: cfg.StripDocComments,
			RemoveDebug:       cfg.StripDebug,
			RemoveTests:       cfg.StripTests,
		}),
		FileFilter: filter.NewFileFilter(filter.FileFilterOptions{
			ExcludeFiles: cfg.ExcludeFiles,
			ExcludeDirs:  cfg.ExcludeDirs,
			AllowOnly:    cfg.AllowOnly,
		}),
		Logger: log,
	})

	split := splitter.New(splitter.Options{
		MaxChunkTokens:       cfg.EffectiveChunkTokens(),
		OverlapTokens:        cfg.OverlapTokens,
		PreferLineBoundaries: cfg.PreferLineBoundaries,
		Estimator:            estimator,
		Logger:               log,
	})

	write := writer.New(writer.Options{
		OutputDir:      cfg.OutputDir,
		Pattern:        cfg.Pattern,
		Extension:      cfg.OutputExtension(),
		Format:         string(cfg.Format),
		BackupExisting: cfg.BackupExisting,
		Engine:         engine,
		Logger:         log,
	})

	return &Pipeline{
		cfg:      cfg,
		log:      log,
		scanner:  scan,
		splitter: split,
		writer:   write,
		preset:   p,
	}, nil
}

// Run executes the pipeline and returns run statistics. In dry-run mode
// the write stage is skipped and FilesWritten stays 0.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	p.log.Info("starting pipeline", "root", p.cfg.RootDir)

	scanStart := time.Now()
	files, scanStats, err := p.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}
	scanDuration := time.Since(scanStart)
	p.log.Info("scan stage complete",
		"files", len(files),
		"text", scanStats.TextFiles,
		"binary", scanStats.BinaryFiles,
		"duration", scanDuration)

	splitStart := time.Now()
	chunks, err := p.splitter.Split(files)
	if err != nil {
		return nil, err
	}
	splitDuration := time.Since(splitStart)
	p.log.Info("split stage complete", "chunks", len(chunks), "duration", splitDuration)

	p.warnNearLimit(chunks)

	writeStart := time.Now()
	filesWritten := 0
	if p.cfg.DryRun {
		p.log.Warn("dry run mode, skipping file writes")
	} else {
		if err := p.writer.WriteChunks(chunks); err != nil {
			return nil, err
		}
		if err := p.writer.WriteSummary(chunks, time.Since(start)); err != nil {
			return nil, err
		}
		filesWritten = len(chunks) + 1 // summary.json
	}
	writeDuration := time.Since(writeStart)

	stats := newStats(scanStats, chunks)
	stats.Duration = time.Since(start)
	stats.ScanDuration = scanDuration
	stats.SplitDuration = splitDuration
	stats.WriteDuration = writeDuration
	stats.OutputDirectory = p.cfg.OutputDir
	stats.FilesWritten = filesWritten

	p.recordHistory(start, stats)

	p.log.Info("pipeline complete",
		"chunks", stats.TotalChunks,
		"tokens", stats.TotalTokens,
		"written", stats.FilesWritten,
		"duration", stats.Duration)

	return stats, nil
}

// warnNearLimit flags chunks above 90% of capacity; estimation error can
// push those past a real model limit.
func (p *Pipeline) warnNearLimit(chunks []types.Chunk) {
	limit := p.cfg.EffectiveChunkTokens()
	if limit <= 0 {
		return
	}
	nearLimit := 0
	for _, c := range chunks {
		if c.Utilization(limit) > 0.9 {
			nearLimit++
		}
	}
	if nearLimit > 0 {
		p.log.Warn("chunks above 90% of token limit", "count", nearLimit, "limit", limit)
	}
}

// recordHistory stores the run in the local history database. History is
// best-effort: failures are logged and swallowed.
func (p *Pipeline) recordHistory(start time.Time, stats *Stats) {
	path := p.cfg.HistoryPath
	if path == "" {
		path = history.DefaultPath()
	}

	store, err := history.Open(path)
	if err != nil {
		p.log.Warn("history unavailable", "path", path, "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	_, err = store.Record(history.Run{
		StartedAt:    start,
		RootDir:      p.cfg.RootDir,
		OutputDir:    p.cfg.OutputDir,
		Format:       string(p.cfg.Format),
		Preset:       p.cfg.Preset,
		FilesScanned: stats.TotalFiles,
		Chunks:       stats.TotalChunks,
		TotalTokens:  stats.TotalTokens,
		Duration:     stats.Duration,
	})
	if err != nil {
		p.log.Warn("failed to record run history", "error", err)
	}
}
