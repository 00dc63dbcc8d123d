package types

// Chunk is a bounded-size group of file records destined for one
// LLM-facing prompt. Chunks are immutable once built: the splitter assigns
// gapless, 0-based indices in emission order and never creates an empty one.
type Chunk struct {
	// Index is the sequential chunk number, starting at 0 across the run.
	Index int

	// Files are the records packed into this chunk, in input order.
	Files []FileData

	// TotalTokens is the sum of TokenCount over Files.
	TotalTokens int
}

// NewChunk creates a chunk.
func NewChunk(index int, files []FileData, totalTokens int) Chunk {
	return Chunk{Index: index, Files: files, TotalTokens: totalTokens}
}

// FileCount returns the number of files in this chunk.
func (c *Chunk) FileCount() int { return len(c.Files) }

// IsEmpty reports whether the chunk holds no files.
func (c *Chunk) IsEmpty() bool { return len(c.Files) == 0 }

// Utilization returns TotalTokens as a fraction of maxTokens (0.0 to 1.0,
// possibly above 1.0 for best-effort large-file parts).
func (c *Chunk) Utilization(maxTokens int) float64 {
	if maxTokens == 0 {
		return 0
	}
	return float64(c.TotalTokens) / float64(maxTokens)
}
