package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repoprompt/internal/filter"
	"repoprompt/pkg/types"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func writeBinary(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))
}

func relPaths(files []types.FileData) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelativePath
	}
	return out
}

func TestScanFindsFilesSorted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "zeta.go", "package zeta\n")
	writeFile(t, root, "alpha.go", "package alpha\n")
	writeFile(t, root, "sub/mid.go", "package mid\n")

	s := New(Options{RootDir: root})
	files, stats, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha.go", "sub/mid.go", "zeta.go"}, relPaths(files))
	assert.Equal(t, 3, stats.TextFiles)
	assert.Equal(t, 0, stats.Errors)

	for _, f := range files {
		assert.True(t, f.IsText())
		assert.Greater(t, f.TokenCount, 0)
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	s := New(Options{RootDir: t.TempDir()})
	_, _, err := s.Scan(context.Background())

	var noFiles *types.NoFilesError
	assert.True(t, errors.As(err, &noFiles))
}

func TestScanSkipsBinaryByDefault(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "code.go", "package main\n")
	writeBinary(t, root, "blob.bin", make([]byte, 100)) // null bytes
	writeBinary(t, root, "image.png", []byte("not really a png"))

	s := New(Options{RootDir: root})
	files, stats, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"code.go"}, relPaths(files))
	assert.Equal(t, 2, stats.BinaryFiles)
	assert.Equal(t, 2, stats.SkippedFiles)
}

func TestScanIncludesBinaryWhenEnabled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "code.go", "package main\n")
	writeBinary(t, root, "blob.bin", make([]byte, 100))

	s := New(Options{RootDir: root, IncludeBinary: true})
	files, _, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "blob.bin", files[0].RelativePath)
	assert.True(t, files[0].IsBinary())
	assert.Equal(t, int64(100), files[0].BinarySize)
	assert.Equal(t, 100, files[0].TokenCount, "byte size stands in for tokens")
}

func TestScanRespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "ignored.go\nbuild/\n")
	writeFile(t, root, "kept.go", "package kept\n")
	writeFile(t, root, "ignored.go", "package ignored\n")
	writeFile(t, root, "build/out.go", "package out\n")
	writeFile(t, root, "sub/ignored.go", "package subignored\n")

	s := New(Options{RootDir: root})
	files, _, err := s.Scan(context.Background())
	require.NoError(t, err)

	// Unanchored patterns apply in subdirectories too.
	assert.Equal(t, []string{"kept.go"}, relPaths(files))
}

func TestScanNestedGitignoreScopedToItsDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sub/.gitignore", "local.go\n")
	writeFile(t, root, "sub/local.go", "package local\n")
	writeFile(t, root, "local.go", "package toplevel\n")

	s := New(Options{RootDir: root})
	files, _, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"local.go"}, relPaths(files))
}

func TestScanSkipsHiddenAndLockFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, ".env", "SECRET=1\n")
	writeFile(t, root, ".git/config", "[core]\n")
	writeFile(t, root, "Cargo.lock", "[[package]]\n")
	writeFile(t, root, "package-lock.json", "{}\n")

	s := New(Options{RootDir: root})
	files, _, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"main.go"}, relPaths(files))
}

func TestScanSkipsOutputDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "out/prompt_001.md", "# old output\n")

	s := New(Options{RootDir: root, OutputDir: filepath.Join(root, "out")})
	files, _, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"main.go"}, relPaths(files))
}

func TestScanAppliesFileFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "README.md", "# readme\n")

	s := New(Options{
		RootDir:    root,
		FileFilter: filter.NewFileFilter(filter.FileFilterOptions{AllowOnly: []string{"*.go"}}),
	})
	files, _, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"main.go"}, relPaths(files))
}

func TestScanAppliesCodeFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n// a comment\nfunc main() {}\n")

	s := New(Options{
		RootDir:    root,
		CodeFilter: filter.NewCodeFilter(filter.CodeFilterOptions{RemoveComments: true}),
	})
	files, _, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.NotContains(t, files[0].Text, "a comment")
	assert.Contains(t, files[0].Text, "func main()")
}

func TestScanCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(Options{RootDir: root})
	_, _, err := s.Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHasBinaryExtension(t *testing.T) {
	assert.True(t, hasBinaryExtension("app.exe"))
	assert.True(t, hasBinaryExtension("IMAGE.PNG"))
	assert.True(t, hasBinaryExtension("archive.tar"))
	assert.False(t, hasBinaryExtension("code.rs"))
	assert.False(t, hasBinaryExtension("no_extension"))
}

func TestIsLikelyBinary(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "text.txt")
	require.NoError(t, os.WriteFile(text, []byte("Hello, world!"), 0o644))
	got, err := isLikelyBinary(text)
	require.NoError(t, err)
	assert.False(t, got)

	bin := filepath.Join(dir, "bin.dat")
	require.NoError(t, os.WriteFile(bin, make([]byte, 100), 0o644))
	got, err = isLikelyBinary(bin)
	require.NoError(t, err)
	assert.True(t, got)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	got, err = isLikelyBinary(empty)
	require.NoError(t, err)
	assert.False(t, got)

	highBit := filepath.Join(dir, "high.dat")
	data := make([]byte, 100)
	for i := range data {
		data[i] = 0xFF
	}
	require.NoError(t, os.WriteFile(highBit, data, 0o644))
	got, err = isLikelyBinary(highBit)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestIgnoreMatcher(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"),
		[]byte("# comment\n\n*.tmp\ntarget/\n/rooted.txt\nsub/deep.txt\n"), 0o644))

	m := &ignoreMatcher{}
	m.loadDir(dir, "")

	assert.True(t, m.Match("a.tmp", false))
	assert.True(t, m.Match("nested/b.tmp", false))
	assert.True(t, m.Match("target", true))
	assert.False(t, m.Match("target.txt", false), "dir-only pattern must not match files")
	assert.True(t, m.Match("rooted.txt", false))
	assert.True(t, m.Match("sub/deep.txt", false))
	assert.False(t, m.Match("other/sub/deep.txt", false), "anchored pattern is rooted")
	assert.False(t, m.Match("kept.go", false))
}
