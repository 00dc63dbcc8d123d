package scanner

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"repoprompt/pkg/types"
)

var binaryExtensions = map[string]struct{}{
	"exe": {}, "dll": {}, "so": {}, "dylib": {}, "a": {}, "o": {}, "obj": {},
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "bmp": {}, "ico": {}, "webp": {},
	"mp3": {}, "mp4": {}, "avi": {}, "mkv": {}, "mov": {}, "wav": {}, "flac": {},
	"pdf": {}, "doc": {}, "docx": {}, "xls": {}, "xlsx": {}, "ppt": {}, "pptx": {},
	"zip": {}, "tar": {}, "gz": {}, "bz2": {}, "xz": {}, "7z": {}, "rar": {},
	"wasm": {}, "pyc": {}, "class": {},
}

// hasBinaryExtension reports whether the path carries a known binary
// file extension.
func hasBinaryExtension(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return false
	}
	_, ok := binaryExtensions[ext]
	return ok
}

// isLikelyBinary sniffs the first 8KB of a file. A null byte, or an
// ASCII ratio below 0.85, marks the file as binary. Empty files are text.
func isLikelyBinary(path string) (bool, error) {
	const (
		bufferSize     = 8192
		asciiThreshold = 0.85
	)

	f, err := os.Open(path)
	if err != nil {
		return false, &types.PathError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, bufferSize)
	n, err := f.Read(buf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return false, &types.PathError{Path: path, Err: err}
		}
		return false, nil
	}
	sample := buf[:n]

	asciiCount := 0
	for _, b := range sample {
		if b == 0 {
			return true, nil
		}
		if b < 128 {
			asciiCount++
		}
	}

	return float64(asciiCount)/float64(n) < asciiThreshold, nil
}
