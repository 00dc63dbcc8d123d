package splitter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repoprompt/internal/token"
	"repoprompt/pkg/types"
)

func newTestSplitter(maxTokens, overlapTokens int) *Splitter {
	return New(Options{
		MaxChunkTokens: maxTokens,
		OverlapTokens:  overlapTokens,
		Estimator:      token.Simple{},
	})
}

func TestSplitEmptyInput(t *testing.T) {
	s := newTestSplitter(3000, 100)

	chunks, err := s.Split(nil)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = s.Split([]types.FileData{})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplitSingleFile(t *testing.T) {
	s := newTestSplitter(3000, 100)

	files := []types.FileData{
		types.NewTextFile("/repo/main.go", "main.go", "package main", 300),
	}

	chunks, err := s.Split(files)
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0].Files, 1)
	assert.Equal(t, 300, chunks[0].TotalTokens)
	assert.Equal(t, 0, chunks[0].Index)
}

func TestSplitMultipleFilesSingleChunk(t *testing.T) {
	s := newTestSplitter(1000, 100)

	files := []types.FileData{
		types.NewTextFile("/repo/a.go", "a.go", "package a", 300),
		types.NewTextFile("/repo/b.go", "b.go", "package b", 300),
	}

	chunks, err := s.Split(files)
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0].Files, 2)
	assert.Equal(t, 600, chunks[0].TotalTokens)
}

func TestSplitMultipleChunks(t *testing.T) {
	s := newTestSplitter(500, 100)

	files := []types.FileData{
		types.NewTextFile("/repo/a.go", "a.go", "package a", 300),
		types.NewTextFile("/repo/b.go", "b.go", "package b", 300),
	}

	chunks, err := s.Split(files)
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, 1, chunks[1].Index)
	assert.Len(t, chunks[0].Files, 1)
	assert.Len(t, chunks[1].Files, 1)
}

func TestSplitLargeFile(t *testing.T) {
	s := newTestSplitter(500, 100)

	lines := make([]string, 1000)
	for i := range lines {
		lines[i] = fmt.Sprintf("fn function_%d() {}", i)
	}
	content := strings.Join(lines, "\n")

	files := []types.FileData{
		types.NewTextFile("/repo/large.rs", "large.rs", content, 3000),
	}

	chunks, err := s.Split(files)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1, "large file should be split")

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Index)
		require.Len(t, chunk.Files, 1)

		part := chunk.Files[0]
		assert.Equal(t, "/repo/large.rs", part.AbsolutePath)
		assert.Contains(t, part.RelativePath, "large.rs [Part ")
		assert.Contains(t, part.RelativePath, fmt.Sprintf("[Part %d/", i+1))
		assert.Equal(t, chunk.TotalTokens, part.TokenCount)
	}
}

func TestSplitLargeFilePartsOverlap(t *testing.T) {
	s := newTestSplitter(500, 100)

	lines := make([]string, 400)
	for i := range lines {
		lines[i] = fmt.Sprintf("line number %04d padded out to a typical width", i)
	}

	files := []types.FileData{
		types.NewTextFile("/repo/big.txt", "big.txt", strings.Join(lines, "\n"), 5000),
	}

	chunks, err := s.Split(files)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	// Adjacent parts repeat trailing lines for context continuity.
	first, _ := chunks[0].Files[0].ContentString()
	second, _ := chunks[1].Files[0].ContentString()

	firstLines := strings.Split(first, "\n")
	lastOfFirst := firstLines[len(firstLines)-1]
	assert.Contains(t, second, lastOfFirst, "second part should repeat the first part's tail")
}

func TestSplitBinaryFileTooLarge(t *testing.T) {
	s := newTestSplitter(2500, 100)

	file := types.NewBinaryFile("/repo/blob.bin", "blob.bin", 10000)
	file.TokenCount = 10000 // forced into scope: size stands in for tokens

	chunks, err := s.Split([]types.FileData{file})

	require.Error(t, err)
	assert.Nil(t, chunks, "hard failure must produce no partial output")

	var tooLarge *types.FileTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, "/repo/blob.bin", tooLarge.Path)
	assert.Equal(t, 10000, tooLarge.Size)
	assert.Equal(t, 2500, tooLarge.Limit)
}

func TestSplitBinaryFileWithinLimit(t *testing.T) {
	s := newTestSplitter(2500, 100)

	file := types.NewBinaryFile("/repo/icon.png", "icon.png", 900)
	file.TokenCount = 900

	chunks, err := s.Split([]types.FileData{file})
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.True(t, chunks[0].Files[0].IsBinary())
	assert.Equal(t, 900, chunks[0].TotalTokens)
}

func TestSplitIndicesContiguousAcrossLargeFile(t *testing.T) {
	s := newTestSplitter(500, 50)

	lines := make([]string, 500)
	for i := range lines {
		lines[i] = fmt.Sprintf("some reasonably long line of code %d", i)
	}

	files := []types.FileData{
		types.NewTextFile("/repo/a.go", "a.go", "package a", 200),
		types.NewTextFile("/repo/b.go", "b.go", "package b", 200),
		types.NewTextFile("/repo/huge.go", "huge.go", strings.Join(lines, "\n"), 4000),
		types.NewTextFile("/repo/z.go", "z.go", "package z", 200),
	}

	chunks, err := s.Split(files)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 3)

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Index, "indices must be gapless in emission order")
		assert.NotEmpty(t, chunk.Files, "no chunk is ever empty")
	}

	// The trailing small file lands in a fresh chunk after the parts.
	last := chunks[len(chunks)-1]
	assert.Equal(t, "z.go", last.Files[0].RelativePath)
}

func TestSplitNoUnnecessarySplitting(t *testing.T) {
	s := newTestSplitter(1000, 100)

	files := []types.FileData{
		types.NewTextFile("/repo/a.go", "a.go", "aaa", 400),
		types.NewTextFile("/repo/b.go", "b.go", "bbb", 400),
		types.NewTextFile("/repo/c.go", "c.go", "ccc", 400),
	}

	chunks, err := s.Split(files)
	require.NoError(t, err)

	var got []string
	for _, chunk := range chunks {
		for _, f := range chunk.Files {
			got = append(got, f.RelativePath)
		}
	}
	assert.Equal(t, []string{"a.go", "b.go", "c.go"}, got,
		"files within capacity are never sliced or reordered")
}

func TestSplitPackingCorrectness(t *testing.T) {
	s := newTestSplitter(1000, 100)

	files := []types.FileData{
		types.NewTextFile("/repo/a.go", "a.go", "a", 250),
		types.NewTextFile("/repo/b.go", "b.go", "b", 250),
		types.NewTextFile("/repo/c.go", "c.go", "c", 250),
		types.NewTextFile("/repo/d.go", "d.go", "d", 600),
		types.NewTextFile("/repo/e.go", "e.go", "e", 100),
	}

	chunks, err := s.Split(files)
	require.NoError(t, err)

	for _, chunk := range chunks {
		sum := 0
		for _, f := range chunk.Files {
			sum += f.TokenCount
		}
		assert.Equal(t, sum, chunk.TotalTokens)
		assert.LessOrEqual(t, chunk.TotalTokens, 1000)
	}
}

func TestSplitDeterministic(t *testing.T) {
	s := newTestSplitter(500, 100)

	lines := make([]string, 300)
	for i := range lines {
		lines[i] = fmt.Sprintf("deterministic line %d with stable content", i)
	}

	files := []types.FileData{
		types.NewTextFile("/repo/a.go", "a.go", "package a", 300),
		types.NewTextFile("/repo/big.go", "big.go", strings.Join(lines, "\n"), 3000),
		types.NewTextFile("/repo/c.go", "c.go", "package c", 300),
	}

	first, err := s.Split(files)
	require.NoError(t, err)
	second, err := s.Split(files)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSplitParametersOverlapBound(t *testing.T) {
	lines := make([]string, 200)
	for i := range lines {
		lines[i] = strings.Repeat("x", 40)
	}

	configs := []struct{ maxTokens, overlap int }{
		{500, 100},
		{500, 5000}, // overlap budget far beyond capacity
		{10, 10},
		{1, 1},
		{100000, 0},
	}

	for _, cfg := range configs {
		t.Run(fmt.Sprintf("max=%d_overlap=%d", cfg.maxTokens, cfg.overlap), func(t *testing.T) {
			s := newTestSplitter(cfg.maxTokens, cfg.overlap)
			params := s.calculateSplitParameters(lines)

			assert.GreaterOrEqual(t, params.linesPerChunk, 1)
			assert.LessOrEqual(t, params.overlapLines, params.linesPerChunk/2,
				"overlap must leave room for forward progress")
			assert.GreaterOrEqual(t, params.estimatedParts, 1)
		})
	}
}

func TestSplitLargeFileWithoutLines(t *testing.T) {
	s := newTestSplitter(100, 10)

	// Token count claims oversized but the content has no lines to cut on:
	// the record passes through as a single degenerate part.
	file := types.NewTextFile("/repo/weird.txt", "weird.txt", "", 500)

	chunks, err := s.Split([]types.FileData{file})
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, "weird.txt", chunks[0].Files[0].RelativePath)
}

func TestSplitSingleEnormousLine(t *testing.T) {
	s := newTestSplitter(100, 10)

	// One line cannot be cut below a line boundary; the part is emitted
	// anyway (soft overflow) instead of failing.
	file := types.NewTextFile("/repo/min.js", "min.js", strings.Repeat("a", 4000), 1000)

	chunks, err := s.Split([]types.FileData{file})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	assert.Greater(t, chunks[0].TotalTokens, 100)
}

func TestSplitLinesTrailingNewline(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb"))
	assert.Empty(t, splitLines(""))
}
