package splitter

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"repoprompt/internal/token"
	"repoprompt/pkg/types"
)

// sampleLines is the number of leading lines measured to derive the
// average token cost per line of a large file.
const sampleLines = 100

// Options configures a Splitter.
type Options struct {
	// MaxChunkTokens is the capacity per chunk, already net of any safety
	// margin.
	MaxChunkTokens int

	// OverlapTokens is the target overlap between adjacent parts when a
	// large file is sliced.
	OverlapTokens int

	// PreferLineBoundaries is accepted for configuration compatibility;
	// the slicing algorithm already cuts at line boundaries only.
	PreferLineBoundaries bool

	// Estimator measures candidate part sizes.
	Estimator token.Estimator

	// Logger receives debug/warn diagnostics. Optional.
	Logger *slog.Logger
}

// Splitter packs an ordered list of file records into token-bounded chunks.
// Packing is greedy and order-preserving: determinism and readability of
// the resulting prompts take priority over bin-packing optimality.
type Splitter struct {
	maxChunkTokens       int
	overlapTokens        int
	preferLineBoundaries bool
	estimator            token.Estimator
	log                  *slog.Logger
}

// New creates a splitter.
func New(opts Options) *Splitter {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	est := opts.Estimator
	if est == nil {
		est = token.Simple{}
	}
	return &Splitter{
		maxChunkTokens:       opts.MaxChunkTokens,
		overlapTokens:        opts.OverlapTokens,
		preferLineBoundaries: opts.PreferLineBoundaries,
		estimator:            est,
		log:                  log,
	}
}

// Split packs files into chunks respecting the token capacity.
//
// Files that fit are grouped together in input order. A file that alone
// exceeds capacity is sliced into overlapping parts, each emitted as its
// own single-file chunk. A binary record over capacity cannot be sliced
// and aborts the whole call with *types.FileTooLargeError.
//
// An empty input yields an empty output and no error.
func (s *Splitter) Split(files []types.FileData) ([]types.Chunk, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var chunks []types.Chunk
	builder := newChunkBuilder(0, s.maxChunkTokens)

	for _, file := range files {
		var err error
		builder, chunks, err = s.processFile(file, builder, chunks)
		if err != nil {
			return nil, err
		}
	}

	if chunk, ok := builder.build(); ok {
		chunks = append(chunks, chunk)
	}

	s.logSplitResults(chunks)
	return chunks, nil
}

// processFile routes one record: append to the current builder, roll over
// to a fresh builder, or hand off to the large-file path.
func (s *Splitter) processFile(file types.FileData, builder *chunkBuilder, chunks []types.Chunk) (*chunkBuilder, []types.Chunk, error) {
	if file.TokenCount > s.maxChunkTokens {
		return s.handleLargeFile(file, builder, chunks)
	}

	if builder.canFit(file.TokenCount) {
		builder.addFile(file)
		return builder, chunks, nil
	}

	// Finalize the current chunk and start a new one.
	if chunk, ok := builder.build(); ok {
		chunks = append(chunks, chunk)
	}
	builder = newChunkBuilder(len(chunks), s.maxChunkTokens)
	builder.addFile(file)
	return builder, chunks, nil
}

// handleLargeFile finalizes the current builder, slices the oversized file
// into parts, and emits each part as a single-file chunk.
func (s *Splitter) handleLargeFile(file types.FileData, builder *chunkBuilder, chunks []types.Chunk) (*chunkBuilder, []types.Chunk, error) {
	s.log.Debug("file exceeds limit, splitting into parts",
		"path", file.RelativePath, "tokens", file.TokenCount, "limit", s.maxChunkTokens)

	if chunk, ok := builder.build(); ok {
		chunks = append(chunks, chunk)
	}

	parts, err := s.splitLargeFile(&file)
	if err != nil {
		return nil, nil, err
	}

	for _, part := range parts {
		b := newChunkBuilder(len(chunks), s.maxChunkTokens)
		b.addFile(part)
		if chunk, ok := b.build(); ok {
			chunks = append(chunks, chunk)
		}
	}

	return newChunkBuilder(len(chunks), s.maxChunkTokens), chunks, nil
}

// splitLargeFile slices one oversized text record into ordered, overlapping
// parts. Each part's token count is measured in full; a part that still
// exceeds capacity is emitted with a warning rather than failing the run,
// since the limit is itself an estimate.
func (s *Splitter) splitLargeFile(file *types.FileData) ([]types.FileData, error) {
	content, ok := file.ContentString()
	if !ok {
		return nil, &types.FileTooLargeError{
			Path:  file.AbsolutePath,
			Size:  file.TokenCount,
			Limit: s.maxChunkTokens,
		}
	}

	lines := splitLines(content)
	totalLines := len(lines)

	if totalLines == 0 {
		return []types.FileData{*file}, nil
	}

	params := s.calculateSplitParameters(lines)

	parts := make([]types.FileData, 0, params.estimatedParts+1)
	startLine := 0
	partNumber := 1

	for startLine < totalLines {
		endLine := startLine + params.linesPerChunk
		if endLine > totalLines {
			endLine = totalLines
		}

		partContent := strings.Join(lines[startLine:endLine], "\n")
		tokenCount := s.estimator.Estimate(partContent)

		if tokenCount > s.maxChunkTokens {
			s.log.Warn("split part exceeds token limit",
				"path", file.RelativePath,
				"part", partNumber, "parts", params.estimatedParts,
				"tokens", tokenCount, "limit", s.maxChunkTokens)
		}

		parts = append(parts, types.NewTextFile(
			file.AbsolutePath,
			partLabel(file.RelativePath, partNumber, params.estimatedParts),
			partContent,
			tokenCount,
		))

		if endLine >= totalLines {
			break
		}

		startLine = endLine - params.overlapLines
		if startLine < 0 {
			startLine = 0
		}
		partNumber++
	}

	s.log.Debug("split file into parts",
		"path", file.RelativePath, "parts", len(parts), "estimated", params.estimatedParts)

	return parts, nil
}

// splitParameters is the per-file slicing plan derived from a sample.
// The actual per-part token count is still measured after slicing; these
// values only steer the cut points.
type splitParameters struct {
	linesPerChunk  int
	overlapLines   int
	estimatedParts int
}

// calculateSplitParameters samples the first lines of the file to estimate
// the token cost per line, then derives how many lines fit a chunk and how
// many to repeat across cuts. Overlap is capped at half a chunk so forward
// progress through the file is always guaranteed.
func (s *Splitter) calculateSplitParameters(lines []string) splitParameters {
	sampleSize := len(lines)
	if sampleSize > sampleLines {
		sampleSize = sampleLines
	}

	sampleTokens := s.estimator.Estimate(strings.Join(lines[:sampleSize], "\n"))

	avgTokensPerLine := 1.0
	if sampleSize > 0 {
		avgTokensPerLine = float64(sampleTokens) / float64(sampleSize)
		if avgTokensPerLine < 1.0 {
			avgTokensPerLine = 1.0
		}
	}

	linesPerChunk := int(float64(s.maxChunkTokens) / avgTokensPerLine)
	if linesPerChunk < 1 {
		linesPerChunk = 1
	}

	overlapLines := int(float64(s.overlapTokens) / avgTokensPerLine)
	if overlapLines > linesPerChunk/2 {
		overlapLines = linesPerChunk / 2
	}

	stride := linesPerChunk - overlapLines
	estimatedParts := (len(lines) + stride - 1) / stride

	return splitParameters{
		linesPerChunk:  linesPerChunk,
		overlapLines:   overlapLines,
		estimatedParts: estimatedParts,
	}
}

func (s *Splitter) logSplitResults(chunks []types.Chunk) {
	if len(chunks) == 0 {
		return
	}

	totalFiles := 0
	utilization := 0.0
	for i := range chunks {
		totalFiles += chunks[i].FileCount()
		utilization += chunks[i].Utilization(s.maxChunkTokens)
	}

	s.log.Debug("split complete",
		"chunks", len(chunks),
		"files", totalFiles,
		"avg_utilization", utilization/float64(len(chunks)))
}

func partLabel(relPath string, part, estimated int) string {
	return fmt.Sprintf("%s [Part %d/%d]", relPath, part, estimated)
}

// splitLines splits on '\n' without producing a trailing empty line for
// content that ends in a newline.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
