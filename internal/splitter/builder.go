package splitter

import "repoprompt/pkg/types"

// chunkBuilder accumulates files for one chunk. A builder is used once:
// build finalizes it and ownership moves to a fresh builder.
type chunkBuilder struct {
	index     int
	maxTokens int
	files     []types.FileData
	tokens    int
}

func newChunkBuilder(index, maxTokens int) *chunkBuilder {
	return &chunkBuilder{index: index, maxTokens: maxTokens}
}

// canFit reports whether a file of the given token count fits the
// remaining capacity.
func (b *chunkBuilder) canFit(tokens int) bool {
	return b.tokens+tokens <= b.maxTokens
}

func (b *chunkBuilder) addFile(file types.FileData) {
	b.files = append(b.files, file)
	b.tokens += file.TokenCount
}

// build finalizes the builder into a chunk. The second return is false
// when no files were added; empty chunks are never emitted.
func (b *chunkBuilder) build() (types.Chunk, bool) {
	if len(b.files) == 0 {
		return types.Chunk{}, false
	}
	return types.NewChunk(b.index, b.files, b.tokens), true
}
