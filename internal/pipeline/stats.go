package pipeline

import (
	"time"

	"repoprompt/internal/scanner"
	"repoprompt/pkg/types"
)

// Stats summarizes a completed pipeline run.
type Stats struct {
	TotalFiles  int
	TextFiles   int
	BinaryFiles int

	TotalChunks       int
	TotalTokens       int
	AvgTokensPerChunk int
	MaxChunkTokens    int
	MinChunkTokens    int

	Duration      time.Duration
	ScanDuration  time.Duration
	SplitDuration time.Duration
	WriteDuration time.Duration

	OutputDirectory string
	FilesWritten    int

	// Scan carries the raw scanner counters (including skips and errors).
	Scan scanner.Stats

	// Chunks are retained for summary rendering.
	Chunks []types.Chunk
}

func newStats(scanStats scanner.Stats, chunks []types.Chunk) *Stats {
	s := &Stats{
		TotalFiles:  scanStats.TotalFiles,
		TextFiles:   scanStats.TextFiles,
		BinaryFiles: scanStats.BinaryFiles,
		TotalChunks: len(chunks),
		Scan:        scanStats,
		Chunks:      chunks,
	}

	for i, c := range chunks {
		s.TotalTokens += c.TotalTokens
		if c.TotalTokens > s.MaxChunkTokens {
			s.MaxChunkTokens = c.TotalTokens
		}
		if i == 0 || c.TotalTokens < s.MinChunkTokens {
			s.MinChunkTokens = c.TotalTokens
		}
	}
	if len(chunks) > 0 {
		s.AvgTokensPerChunk = s.TotalTokens / len(chunks)
	}
	return s
}

// ThroughputFilesPerSec returns scanned files per second of total runtime.
func (s *Stats) ThroughputFilesPerSec() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalFiles) / s.Duration.Seconds()
}

// ThroughputTokensPerSec returns emitted tokens per second of total runtime.
func (s *Stats) ThroughputTokensPerSec() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalTokens) / s.Duration.Seconds()
}
