// Package writer persists rendered chunks. Every file write is atomic:
// content goes to a .tmp sibling, is synced, then renamed over the
// target, so an interrupted run never leaves a torn output file.
package writer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"repoprompt/internal/logger"
	"repoprompt/internal/template"
	"repoprompt/pkg/types"
)

// Summary is the run metadata written to summary.json next to the
// chunk files.
type Summary struct {
	TotalChunks     int            `json:"total_chunks"`
	TotalFiles      int            `json:"total_files"`
	TotalTokens     int            `json:"total_tokens"`
	DurationSecs    float64        `json:"duration_secs"`
	OutputDirectory string         `json:"output_directory"`
	Format          string         `json:"format"`
	Chunks          []ChunkSummary `json:"chunks"`
	GeneratedAt     string         `json:"generated_at"`
}

// ChunkSummary describes one written chunk file.
type ChunkSummary struct {
	Index    int    `json:"index"` // 1-based for display
	Files    int    `json:"files"`
	Tokens   int    `json:"tokens"`
	Filename string `json:"filename"`
}

// Options configures a Writer.
type Options struct {
	OutputDir      string
	Pattern        string // must contain {index} (or padded variant) and {ext}
	Extension      string
	Format         string
	BackupExisting bool
	Engine         *template.Engine
	Logger         *slog.Logger
}

// Writer renders chunks through the template engine and writes the
// resulting documents.
type Writer struct {
	outputDir      string
	pattern        string
	extension      string
	format         string
	backupExisting bool
	engine         *template.Engine
	log            *slog.Logger
}

// New creates a Writer.
func New(opts Options) *Writer {
	w := &Writer{
		outputDir:      opts.OutputDir,
		pattern:        opts.Pattern,
		extension:      opts.Extension,
		format:         opts.Format,
		backupExisting: opts.BackupExisting,
		engine:         opts.Engine,
		log:            opts.Logger,
	}
	if w.log == nil {
		w.log = logger.Discard()
	}
	return w
}

// WriteChunks renders and writes every chunk, creating the output
// directory if needed.
func (w *Writer) WriteChunks(chunks []types.Chunk) error {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return &types.PathError{Path: w.outputDir, Err: err}
	}

	w.log.Info("writing chunks", "count", len(chunks), "dir", w.outputDir)

	for _, chunk := range chunks {
		if err := w.writeChunk(chunk, len(chunks)); err != nil {
			return err
		}
	}

	return nil
}

func (w *Writer) writeChunk(chunk types.Chunk, totalChunks int) error {
	content, err := w.engine.Render(chunk, totalChunks)
	if err != nil {
		return err
	}

	path := w.OutputPath(chunk.Index)
	if err := w.writeFileAtomic(path, []byte(content)); err != nil {
		return err
	}

	w.log.Debug("wrote chunk",
		"index", chunk.Index+1,
		"total", totalChunks,
		"files", len(chunk.Files),
		"tokens", chunk.TotalTokens,
		"path", path)
	return nil
}

// OutputPath resolves the file path for a chunk index (0-based in,
// 1-based in the filename).
func (w *Writer) OutputPath(index int) string {
	n := index + 1
	name := w.pattern
	name = strings.ReplaceAll(name, "{index:03}", fmt.Sprintf("%03d", n))
	name = strings.ReplaceAll(name, "{index:02}", fmt.Sprintf("%02d", n))
	name = strings.ReplaceAll(name, "{index}", fmt.Sprintf("%d", n))
	name = strings.ReplaceAll(name, "{ext}", w.extension)
	return filepath.Join(w.outputDir, name)
}

// writeFileAtomic backs up an existing target when configured, then
// writes via tmp file, sync, and rename.
func (w *Writer) writeFileAtomic(path string, content []byte) error {
	if w.backupExisting {
		if _, err := os.Stat(path); err == nil {
			if err := w.backupFile(path); err != nil {
				return err
			}
		}
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return &types.PathError{Path: tmpPath, Err: err}
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return &types.PathError{Path: tmpPath, Err: err}
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return &types.PathError{Path: tmpPath, Err: err}
	}
	if err := f.Close(); err != nil {
		return &types.PathError{Path: tmpPath, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return &types.PathError{Path: path, Err: err}
	}
	return nil
}

func (w *Writer) backupFile(path string) error {
	backupPath := fmt.Sprintf("%s.backup.%d", path, time.Now().UnixNano())
	data, err := os.ReadFile(path)
	if err != nil {
		return &types.PathError{Path: path, Err: err}
	}
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return &types.PathError{Path: backupPath, Err: err}
	}
	w.log.Debug("created backup", "path", backupPath)
	return nil
}

// WriteSummary writes summary.json describing the whole run.
func (w *Writer) WriteSummary(chunks []types.Chunk, duration time.Duration) error {
	summary := Summary{
		TotalChunks:     len(chunks),
		DurationSecs:    duration.Seconds(),
		OutputDirectory: w.outputDir,
		Format:          w.format,
		Chunks:          make([]ChunkSummary, 0, len(chunks)),
		GeneratedAt:     time.Now().Format("2006-01-02 15:04:05"),
	}
	for _, c := range chunks {
		summary.TotalFiles += len(c.Files)
		summary.TotalTokens += c.TotalTokens
		summary.Chunks = append(summary.Chunks, ChunkSummary{
			Index:    c.Index + 1,
			Files:    len(c.Files),
			Tokens:   c.TotalTokens,
			Filename: filepath.Base(w.OutputPath(c.Index)),
		})
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	path := filepath.Join(w.outputDir, "summary.json")
	if err := w.writeFileAtomic(path, append(data, '\n')); err != nil {
		return err
	}

	w.log.Info("wrote summary", "path", path)
	return nil
}

// CleanupBackups removes .backup. files in the output directory older
// than maxAge and returns how many were removed.
func (w *Writer) CleanupBackups(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(w.outputDir)
	if err != nil {
		return 0, &types.PathError{Path: w.outputDir, Err: err}
	}

	removed := 0
	now := time.Now()
	for _, entry := range entries {
		if entry.IsDir() || !strings.Contains(entry.Name(), ".backup.") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > maxAge {
			path := filepath.Join(w.outputDir, entry.Name())
			if err := os.Remove(path); err != nil {
				return removed, &types.PathError{Path: path, Err: err}
			}
			removed++
			w.log.Debug("removed old backup", "path", path)
		}
	}

	return removed, nil
}
