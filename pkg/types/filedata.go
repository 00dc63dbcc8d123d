package types

import "strings"

// ContentKind discriminates the two content variants a FileData can carry.
type ContentKind string

const (
	ContentText   ContentKind = "text"
	ContentBinary ContentKind = "binary"
)

// FileData represents one scanned file with its content and metadata.
// Records are produced by the scanner (already code-filtered and
// token-estimated) and consumed by the splitter, which never re-derives
// TokenCount except for freshly sliced parts of a large file.
type FileData struct {
	// AbsolutePath is the filesystem path the file was read from.
	AbsolutePath string

	// RelativePath is the path relative to the scan root. It is the stable
	// sort key for deterministic ordering, and the label templates render.
	// Parts of a split file carry an annotated label here.
	RelativePath string

	// Kind selects which content variant is populated.
	Kind ContentKind

	// Text holds the (filtered) file content for text records.
	Text string

	// BinarySize holds the file size in bytes for binary records.
	BinarySize int64

	// TokenCount is the estimated token count, fixed at scan time.
	// Binary records carry 0 unless forced into scope, in which case the
	// byte size stands in for tokens during capacity checks.
	TokenCount int
}

// NewTextFile creates a text file record.
func NewTextFile(absPath, relPath, content string, tokenCount int) FileData {
	return FileData{
		AbsolutePath: absPath,
		RelativePath: relPath,
		Kind:         ContentText,
		Text:         content,
		TokenCount:   tokenCount,
	}
}

// NewBinaryFile creates a binary file record with a zero token count.
func NewBinaryFile(absPath, relPath string, size int64) FileData {
	return FileData{
		AbsolutePath: absPath,
		RelativePath: relPath,
		Kind:         ContentBinary,
		BinarySize:   size,
	}
}

// IsText reports whether this record carries text content.
func (f *FileData) IsText() bool { return f.Kind == ContentText }

// IsBinary reports whether this record carries binary content.
func (f *FileData) IsBinary() bool { return f.Kind == ContentBinary }

// ContentString returns the text content and true for text records,
// or "" and false for binary records.
func (f *FileData) ContentString() (string, bool) {
	if f.Kind == ContentText {
		return f.Text, true
	}
	return "", false
}

// SizeBytes returns the content size in bytes for either variant.
func (f *FileData) SizeBytes() int64 {
	if f.Kind == ContentBinary {
		return f.BinarySize
	}
	return int64(len(f.Text))
}

// LineCount returns the number of lines for text records, or 0 and false
// for binary records.
func (f *FileData) LineCount() (int, bool) {
	if f.Kind != ContentText {
		return 0, false
	}
	if f.Text == "" {
		return 0, true
	}
	return strings.Count(f.Text, "\n") + 1, true
}
