// Package types provides shared type definitions for repoprompt.
//
// This package defines the domain values passed between pipeline stages:
// file records produced by the scanner, chunks produced by the splitter,
// and the typed errors the stages surface.
//
// # Core Types
//
// FileData represents one scanned file. Its content is a tagged variant,
// either text (already code-filtered) or binary (size only):
//
//	f := types.NewTextFile("/repo/main.go", "main.go", src, 320)
//	if f.IsText() {
//	    content, _ := f.ContentString()
//	    _ = content
//	}
//
// Chunk is a bounded-size group of file records destined for a single
// LLM prompt. Indices are gapless and 0-based in emission order:
//
//	for _, c := range chunks {
//	    fmt.Printf("chunk %d: %d files, %d tokens\n",
//	        c.Index, c.FileCount(), c.TotalTokens)
//	}
//
// # Errors
//
// Typed errors carry enough context for callers to report failures
// precisely. Match them with errors.As:
//
//	var tooLarge *types.FileTooLargeError
//	if errors.As(err, &tooLarge) {
//	    log.Fatalf("%s exceeds the %d token limit", tooLarge.Path, tooLarge.Limit)
//	}
package types
