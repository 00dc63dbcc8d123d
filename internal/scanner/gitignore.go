package scanner

import (
	"bufio"
	"os"
	"path"
	"strings"
)

// ignoreRule is a single pattern from a .gitignore file, scoped to the
// directory the file lives in.
type ignoreRule struct {
	base    string // slash-separated path relative to the scan root, "" for root
	pattern string
	dirOnly bool
	rooted  bool // pattern contained a slash, anchored to base
}

// ignoreMatcher applies a practical subset of gitignore semantics:
// blank lines and # comments are skipped, a trailing / restricts the
// pattern to directories, and a pattern containing / is anchored to the
// directory of its .gitignore. Negation (!) is not supported.
type ignoreMatcher struct {
	rules []ignoreRule
}

// loadDir reads dir/.gitignore if present and appends its rules. base is
// dir's slash-separated path relative to the scan root ("" for the root).
func (m *ignoreMatcher) loadDir(dir, base string) {
	f, err := os.Open(path.Join(dir, ".gitignore"))
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		rule := ignoreRule{base: base}
		if strings.HasSuffix(line, "/") {
			rule.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		line = strings.TrimPrefix(line, "/")
		rule.rooted = strings.Contains(line, "/")
		rule.pattern = line
		m.rules = append(m.rules, rule)
	}
}

// Match reports whether relPath (slash-separated, relative to the scan
// root) is ignored. isDir distinguishes directory entries for dir-only
// patterns.
func (m *ignoreMatcher) Match(relPath string, isDir bool) bool {
	for _, r := range m.rules {
		if r.dirOnly && !isDir {
			continue
		}
		sub, ok := underBase(relPath, r.base)
		if !ok {
			continue
		}
		if r.rooted {
			if matched, _ := path.Match(r.pattern, sub); matched {
				return true
			}
			continue
		}
		// Unanchored: the pattern matches any path segment.
		for _, seg := range strings.Split(sub, "/") {
			if matched, _ := path.Match(r.pattern, seg); matched {
				return true
			}
		}
	}
	return false
}

func underBase(relPath, base string) (string, bool) {
	if base == "" {
		return relPath, true
	}
	if relPath == base {
		return "", false
	}
	if strings.HasPrefix(relPath, base+"/") {
		return relPath[len(base)+1:], true
	}
	return "", false
}
