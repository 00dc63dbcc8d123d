package types

import (
	"errors"
	"fmt"
)

// Domain errors shared across pipeline stages.
var (
	// ErrEmptyPattern is returned when an output pattern is blank.
	ErrEmptyPattern = errors.New("output pattern cannot be empty")
)

// FileTooLargeError is returned when a binary record exceeds the chunk
// token budget. Binary content has no line structure to split on, so the
// whole operation aborts rather than emit a misleading partial chunk set.
type FileTooLargeError struct {
	Path  string
	Size  int
	Limit int
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file %q is too large: %d tokens exceeds limit of %d tokens", e.Path, e.Size, e.Limit)
}

// NoFilesError is returned when a scan finds nothing to process.
type NoFilesError struct {
	Root string
}

func (e *NoFilesError) Error() string {
	return fmt.Sprintf("no processable files found in %q: check ignore rules or file permissions", e.Root)
}

// InvalidPatternError is returned for output patterns missing required
// placeholders.
type InvalidPatternError struct {
	Pattern string
	Reason  string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid output pattern %q: %s", e.Pattern, e.Reason)
}

// PathError wraps an I/O failure with the path it occurred on.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("accessing %q: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }
