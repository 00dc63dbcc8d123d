// Package scanner walks a directory tree and produces the ordered file
// records the splitter consumes.
//
// Discovery is a serial walk that prunes hidden entries, lock files,
// gitignored paths, the output directory, and anything the file filter
// rejects. The surviving paths are then read, sniffed, code-filtered,
// and token-estimated by a bounded worker pool. Per-file failures are
// logged and counted rather than aborting the scan; only an empty
// result is an error.
//
// Binary detection is two-staged: a known extension short-circuits, and
// everything else gets an 8KB content sniff (null bytes or a low ASCII
// ratio mean binary). Binary files are skipped unless IncludeBinary is
// set, in which case they are carried by size with no content.
package scanner
