package filter

import (
	"path"
	"strings"
)

// FileFilterOptions selects which files the scanner visits.
type FileFilterOptions struct {
	// ExcludeFiles holds glob patterns for files to skip.
	ExcludeFiles []string

	// ExcludeDirs holds glob patterns for directories whose entire subtree
	// is skipped.
	ExcludeDirs []string

	// AllowOnly, when non-empty, restricts processing to files matching at
	// least one of these patterns.
	AllowOnly []string
}

// FileFilter decides whether a relative path should be processed.
type FileFilter struct {
	excludeFiles []string
	excludeDirs  []string
	allowOnly    []string
}

// NewFileFilter creates a filter from glob pattern lists. Patterns use
// path.Match syntax and are tried against both the full relative path and
// its base name, so "*.md" matches files at any depth.
func NewFileFilter(opts FileFilterOptions) *FileFilter {
	return &FileFilter{
		excludeFiles: opts.ExcludeFiles,
		excludeDirs:  opts.ExcludeDirs,
		allowOnly:    opts.AllowOnly,
	}
}

// ShouldProcess reports whether the relative path passes the filter.
func (f *FileFilter) ShouldProcess(relPath string) bool {
	relPath = path.Clean(strings.ReplaceAll(relPath, "\\", "/"))

	if len(f.allowOnly) > 0 && !matchesAny(f.allowOnly, relPath) {
		return false
	}

	// A pattern on any ancestor directory excludes the whole subtree.
	for _, seg := range strings.Split(path.Dir(relPath), "/") {
		if seg == "." || seg == "" {
			continue
		}
		if matchesSegment(f.excludeDirs, seg) {
			return false
		}
	}

	return !matchesAny(f.excludeFiles, relPath)
}

func matchesAny(patterns []string, relPath string) bool {
	base := path.Base(relPath)
	for _, p := range patterns {
		if ok, err := path.Match(p, relPath); err == nil && ok {
			return true
		}
		if ok, err := path.Match(p, base); err == nil && ok {
			return true
		}
	}
	return false
}

func matchesSegment(patterns []string, segment string) bool {
	for _, p := range patterns {
		if ok, err := path.Match(p, segment); err == nil && ok {
			return true
		}
	}
	return false
}
