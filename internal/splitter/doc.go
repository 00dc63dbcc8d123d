// Package splitter packs ordered file records into token-bounded chunks.
//
// The splitter is the core of the pipeline: it consumes the scanner's
// sorted file list and produces the chunk list the writer renders. Packing
// is greedy, single-pass, and strictly sequential — each decision depends
// on the running state of the current chunk, so the stage runs after the
// parallel scan completes and performs no I/O of its own.
//
// # Packing
//
//	s := splitter.New(splitter.Options{
//	    MaxChunkTokens: 98_000, // already net of the safety margin
//	    OverlapTokens:  1_000,
//	    Estimator:      token.Simple{},
//	})
//	chunks, err := s.Split(files)
//
// Files that fit the capacity are grouped in input order. When the next
// file would overflow the current chunk, the chunk is finalized and a new
// one starts. Chunk indices are gapless and 0-based in emission order.
//
// # Large files
//
// A text file whose token count alone exceeds capacity is sliced into
// overlapping parts, each emitted as its own single-file chunk with a
// relative path annotated "name [Part k/m]". Cut points come from a
// sampled tokens-per-line average over the first 100 lines; every part's
// real token count is then measured in full. Overlap is capped at half a
// chunk's worth of lines, which guarantees forward progress.
//
// Part sizing is best-effort: a pathological input (one enormous line) can
// produce a part over the limit. That case is logged and the part is still
// emitted — callers needing a hard ceiling must re-check downstream.
//
// A binary record over capacity has no lines to cut on and fails the whole
// call with *types.FileTooLargeError, producing no partial output.
package splitter
