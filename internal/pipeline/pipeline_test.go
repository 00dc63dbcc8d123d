package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repoprompt/internal/config"
	"repoprompt/internal/history"
	"repoprompt/internal/scanner"
	"repoprompt/pkg/types"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.RootDir = t.TempDir()
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.HistoryPath = filepath.Join(t.TempDir(), "history.db")
	return cfg
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestPipelineBasicExecution(t *testing.T) {
	cfg := testConfig(t)
	writeFile(t, cfg.RootDir, "file1.rs", "fn main() {}")
	writeFile(t, cfg.RootDir, "file2.rs", "pub fn test() {}")

	p, err := New(cfg, nil)
	require.NoError(t, err)

	stats, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalFiles)
	assert.Equal(t, 1, stats.TotalChunks)
	assert.Equal(t, 2, stats.FilesWritten) // one chunk plus summary.json
	assert.Greater(t, stats.TotalTokens, 0)

	_, err = os.Stat(filepath.Join(cfg.OutputDir, "prompt_001.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg.OutputDir, "summary.json"))
	assert.NoError(t, err)
}

func TestPipelineDryRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.DryRun = true
	writeFile(t, cfg.RootDir, "file.rs", "fn main() {}")

	p, err := New(cfg, nil)
	require.NoError(t, err)

	stats, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.FilesWritten)
	assert.Equal(t, 1, stats.TotalChunks)

	_, err = os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(err), "dry run must not create the output dir")
}

func TestPipelineSplitsAcrossChunks(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxTokens = 100
	cfg.SafetyMargin = 0
	cfg.OverlapTokens = 10

	// Two files of 75 tokens each (300 chars / 4) cannot share a chunk.
	writeFile(t, cfg.RootDir, "a.txt", pad(300))
	writeFile(t, cfg.RootDir, "b.txt", pad(300))

	p, err := New(cfg, nil)
	require.NoError(t, err)

	stats, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalChunks)
	assert.Equal(t, 0, stats.Chunks[0].Index)
	assert.Equal(t, 1, stats.Chunks[1].Index)
}

func TestPipelineEmptyRoot(t *testing.T) {
	cfg := testConfig(t)

	p, err := New(cfg, nil)
	require.NoError(t, err)

	_, err = p.Run(context.Background())

	var noFiles *types.NoFilesError
	assert.True(t, errors.As(err, &noFiles))
}

func TestPipelineRecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	writeFile(t, cfg.RootDir, "file.rs", "fn main() {}")

	p, err := New(cfg, nil)
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.NoError(t, err)

	store, err := history.Open(cfg.HistoryPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runs, err := store.Recent(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, cfg.RootDir, runs[0].RootDir)
	assert.Equal(t, 1, runs[0].Chunks)
}

func TestPipelineRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxTokens = 0

	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestPipelineRejectsUnknownPreset(t *testing.T) {
	cfg := testConfig(t)
	cfg.Preset = "not-a-preset"

	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestPipelineWithPreset(t *testing.T) {
	cfg := testConfig(t)
	cfg.Preset = "code-review"
	writeFile(t, cfg.RootDir, "file.go", "package main\n")

	p, err := New(cfg, nil)
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "prompt_001.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Code Review")
}

func TestStatsCalculation(t *testing.T) {
	chunks := []types.Chunk{
		types.NewChunk(0, nil, 100),
		types.NewChunk(1, nil, 200),
	}

	s := newStats(scanner.Stats{TotalFiles: 2, TextFiles: 2}, chunks)
	s.Duration = time.Second

	assert.Equal(t, 2, s.TotalChunks)
	assert.Equal(t, 300, s.TotalTokens)
	assert.Equal(t, 150, s.AvgTokensPerChunk)
	assert.Equal(t, 200, s.MaxChunkTokens)
	assert.Equal(t, 100, s.MinChunkTokens)
	assert.InDelta(t, 2.0, s.ThroughputFilesPerSec(), 0.001)
	assert.InDelta(t, 300.0, s.ThroughputTokensPerSec(), 0.001)
}

func pad(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
