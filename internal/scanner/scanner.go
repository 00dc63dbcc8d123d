package scanner

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"repoprompt/internal/filter"
	"repoprompt/internal/logger"
	"repoprompt/internal/token"
	"repoprompt/pkg/types"
)

// Lock files carry no prompt value and are skipped by name.
var lockFileNames = map[string]struct{}{
	"Cargo.lock":        {},
	"package-lock.json": {},
	"yarn.lock":         {},
	"pnpm-lock.yaml":    {},
	"Gemfile.lock":      {},
	"composer.lock":     {},
}

// Stats summarizes one scan.
type Stats struct {
	TotalFiles   int
	TextFiles    int
	BinaryFiles  int
	SkippedFiles int
	Errors       int
}

// Options configures a Scanner.
type Options struct {
	RootDir       string
	OutputDir     string // skipped during the walk when it lives under RootDir
	IncludeBinary bool
	Workers       int // defaults to runtime.NumCPU()

	Estimator  token.Estimator
	CodeFilter *filter.CodeFilter
	FileFilter *filter.FileFilter
	Logger     *slog.Logger
}

// Scanner walks a directory tree and turns its files into FileData
// records, ready for chunking.
type Scanner struct {
	root          string
	outputDir     string
	includeBinary bool
	workers       int

	estimator  token.Estimator
	codeFilter *filter.CodeFilter
	fileFilter *filter.FileFilter
	log        *slog.Logger
}

// New creates a Scanner. Nil filters behave as pass-through; a nil
// estimator falls back to the simple heuristic.
func New(opts Options) *Scanner {
	s := &Scanner{
		root:          opts.RootDir,
		outputDir:     opts.OutputDir,
		includeBinary: opts.IncludeBinary,
		workers:       opts.Workers,
		estimator:     opts.Estimator,
		codeFilter:    opts.CodeFilter,
		fileFilter:    opts.FileFilter,
		log:           opts.Logger,
	}
	if s.workers <= 0 {
		s.workers = runtime.NumCPU()
	}
	if s.estimator == nil {
		s.estimator = token.Simple{}
	}
	if s.codeFilter == nil {
		s.codeFilter = filter.NewCodeFilter(filter.CodeFilterOptions{})
	}
	if s.fileFilter == nil {
		s.fileFilter = filter.NewFileFilter(filter.FileFilterOptions{})
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	return s
}

// Scan walks the root directory and returns all processable files sorted
// by relative path. Per-file failures are logged and counted, not fatal;
// an empty result is a NoFilesError.
func (s *Scanner) Scan(ctx context.Context) ([]types.FileData, Stats, error) {
	paths, ignored, err := s.discover()
	if err != nil {
		return nil, Stats{}, err
	}

	s.log.Debug("scan discovered files", "count", len(paths), "ignored", ignored, "root", s.root)

	var (
		textFiles   int32
		binaryFiles int32
		skipped     int32
		errCount    int32
	)

	var mu sync.Mutex
	files := make([]types.FileData, 0, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	semaphore := make(chan struct{}, s.workers)

	for _, p := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			if err := gctx.Err(); err != nil {
				return err
			}

			fd, err := s.processFile(p, &textFiles, &binaryFiles, &skipped)
			if err != nil {
				s.log.Warn("failed to process file", "path", p, "error", err)
				atomic.AddInt32(&errCount, 1)
				return nil
			}
			if fd == nil {
				return nil
			}

			mu.Lock()
			files = append(files, *fd)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{
		TotalFiles:   len(paths),
		TextFiles:    int(textFiles),
		BinaryFiles:  int(binaryFiles),
		SkippedFiles: int(skipped) + ignored,
		Errors:       int(errCount),
	}

	if len(files) == 0 {
		return nil, stats, &types.NoFilesError{Root: s.root}
	}

	// Deterministic ordering regardless of worker scheduling.
	sort.Slice(files, func(i, j int) bool {
		return files[i].RelativePath < files[j].RelativePath
	})

	s.log.Debug("scan complete",
		"total", stats.TotalFiles,
		"text", stats.TextFiles,
		"binary", stats.BinaryFiles,
		"skipped", stats.SkippedFiles,
		"errors", stats.Errors)

	return files, stats, nil
}

// discover walks the tree serially and collects candidate file paths.
// Hidden entries, lock files, gitignored paths, the output directory,
// and filter-excluded paths are pruned here; content sniffing happens
// later in the worker pool.
func (s *Scanner) discover() ([]string, int, error) {
	var (
		paths   []string
		ignored int
	)

	absOut := ""
	if s.outputDir != "" {
		if a, err := filepath.Abs(s.outputDir); err == nil {
			absOut = a
		}
	}

	matcher := &ignoreMatcher{}

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Warn("walk error", "path", p, "error", err)
			ignored++
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(s.root, p)
		if relErr != nil {
			rel = p
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				matcher.loadDir(p, "")
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if absOut != "" {
				if a, err := filepath.Abs(p); err == nil && a == absOut {
					return filepath.SkipDir
				}
			}
			if matcher.Match(rel, true) {
				return filepath.SkipDir
			}
			matcher.loadDir(p, rel)
			return nil
		}

		// Symlinks are not followed.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			ignored++
			return nil
		}
		if _, isLock := lockFileNames[d.Name()]; isLock {
			ignored++
			return nil
		}
		if matcher.Match(rel, false) {
			ignored++
			return nil
		}
		if !s.fileFilter.ShouldProcess(rel) {
			ignored++
			return nil
		}

		paths = append(paths, p)
		return nil
	})
	if err != nil {
		return nil, 0, &types.PathError{Path: s.root, Err: err}
	}

	return paths, ignored, nil
}

func (s *Scanner) processFile(p string, textFiles, binaryFiles, skipped *int32) (*types.FileData, error) {
	rel, err := filepath.Rel(s.root, p)
	if err != nil {
		rel = p
	}
	rel = filepath.ToSlash(rel)

	if hasBinaryExtension(p) {
		return s.binaryFileData(p, rel, binaryFiles, skipped)
	}

	binary, err := isLikelyBinary(p)
	if err != nil {
		return nil, err
	}
	if binary {
		return s.binaryFileData(p, rel, binaryFiles, skipped)
	}

	content, err := os.ReadFile(p)
	if err != nil {
		return nil, &types.PathError{Path: p, Err: err}
	}
	if !utf8.Valid(content) {
		// Passed the sniff but is not decodable text.
		return s.binaryFileData(p, rel, binaryFiles, skipped)
	}

	filtered := s.codeFilter.Filter(string(content), rel)
	count := s.estimator.Estimate(filtered)

	atomic.AddInt32(textFiles, 1)
	fd := types.NewTextFile(p, rel, filtered, count)
	return &fd, nil
}

func (s *Scanner) binaryFileData(p, rel string, binaryFiles, skipped *int32) (*types.FileData, error) {
	atomic.AddInt32(binaryFiles, 1)

	if !s.includeBinary {
		s.log.Debug("skipping binary file", "path", rel)
		atomic.AddInt32(skipped, 1)
		return nil, nil
	}

	info, err := os.Stat(p)
	if err != nil {
		return nil, &types.PathError{Path: p, Err: err}
	}

	fd := types.NewBinaryFile(p, rel, info.Size())
	// Byte size stands in for tokens so capacity checks see the weight.
	fd.TokenCount = int(info.Size())
	return &fd, nil
}
