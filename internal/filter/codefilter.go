package filter

import (
	"path/filepath"
	"strings"
)

// CodeFilterOptions selects what the code filter strips from source text.
type CodeFilterOptions struct {
	RemoveComments    bool
	RemoveDocComments bool
	RemoveDebug       bool
	RemoveTests       bool
}

// language describes comment and test syntax for one family of languages.
type language struct {
	lineComment string
	docPrefixes []string // line-comment prefixes that are doc comments
	blockStart  string
	blockEnd    string
	debugCalls  []string // trimmed-line prefixes for debug prints
	testPrefix  string   // trimmed-line prefix opening a test function
	indented    bool     // test bodies end by dedent, not by brace
}

var languages = map[string]language{
	".go": {
		lineComment: "//",
		blockStart:  "/*",
		blockEnd:    "*/",
		debugCalls:  []string{"fmt.Println(", "fmt.Printf(", "println("},
		testPrefix:  "func Test",
	},
	".rs": {
		lineComment: "//",
		docPrefixes: []string{"///", "//!"},
		blockStart:  "/*",
		blockEnd:    "*/",
		debugCalls:  []string{"println!(", "dbg!(", "eprintln!("},
		testPrefix:  "#[test]",
	},
	".js": {
		lineComment: "//",
		docPrefixes: []string{"/**"},
		blockStart:  "/*",
		blockEnd:    "*/",
		debugCalls:  []string{"console.log(", "console.debug(", "debugger"},
	},
	".py": {
		lineComment: "#",
		debugCalls:  []string{"print(", "breakpoint()"},
		testPrefix:  "def test_",
		indented:    true,
	},
	".c": {
		lineComment: "//",
		blockStart:  "/*",
		blockEnd:    "*/",
		debugCalls:  []string{"printf("},
	},
}

func init() {
	// Alias extensions sharing a syntax family.
	languages[".ts"] = languages[".js"]
	languages[".jsx"] = languages[".js"]
	languages[".tsx"] = languages[".js"]
	languages[".h"] = languages[".c"]
	languages[".cpp"] = languages[".c"]
	languages[".hpp"] = languages[".c"]
	languages[".java"] = languages[".c"]
}

// CodeFilter strips comments, debug prints, and test scaffolding from
// source text before token estimation. It is a line-based heuristic, not a
// parser: string literals are respected when locating comment markers, but
// no AST is built.
type CodeFilter struct {
	opts CodeFilterOptions
}

// NewCodeFilter creates a code filter.
func NewCodeFilter(opts CodeFilterOptions) *CodeFilter {
	return &CodeFilter{opts: opts}
}

// Enabled reports whether any stripping is configured.
func (f *CodeFilter) Enabled() bool {
	return f.opts.RemoveComments || f.opts.RemoveDocComments || f.opts.RemoveDebug || f.opts.RemoveTests
}

// Filter returns content with the configured constructs removed. Files in
// unknown languages pass through unchanged.
func (f *CodeFilter) Filter(content, path string) string {
	if !f.Enabled() {
		return content
	}

	lang, ok := languages[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return content
	}

	if f.opts.RemoveTests && strings.HasSuffix(path, "_test.go") {
		return ""
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	inBlock := false
	skipDepth := 0  // brace depth while skipping a test function
	skipTest := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if skipTest {
			if lang.indented {
				// Body ends at the next non-indented, non-empty line.
				if trimmed != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
					skipTest = false
				} else {
					continue
				}
			} else {
				skipDepth += strings.Count(line, "{") - strings.Count(line, "}")
				if skipDepth <= 0 && strings.Contains(line, "}") {
					skipTest = false
				}
				continue
			}
		}

		if inBlock {
			if idx := strings.Index(line, lang.blockEnd); idx >= 0 {
				inBlock = false
				line = line[idx+len(lang.blockEnd):]
				if strings.TrimSpace(line) == "" {
					continue
				}
			} else {
				continue
			}
		}

		if f.opts.RemoveTests && lang.testPrefix != "" && strings.HasPrefix(trimmed, lang.testPrefix) {
			skipTest = true
			skipDepth = strings.Count(line, "{") - strings.Count(line, "}")
			continue
		}

		if f.opts.RemoveDebug && isDebugLine(trimmed, lang) {
			continue
		}

		line, dropped, opened := f.stripComments(line, trimmed, lang)
		inBlock = opened
		if dropped {
			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// stripComments removes comment text from one line. dropped is true when
// the whole line was a comment; opened is true when a block comment starts
// on this line and does not close.
func (f *CodeFilter) stripComments(line, trimmed string, lang language) (result string, dropped, opened bool) {
	removeLine := f.opts.RemoveComments
	removeDoc := f.opts.RemoveComments || f.opts.RemoveDocComments

	if removeDoc {
		for _, prefix := range lang.docPrefixes {
			if strings.HasPrefix(trimmed, prefix) {
				return "", true, false
			}
		}
	}

	if !removeLine {
		return line, false, false
	}

	if lang.lineComment != "" {
		if idx := indexOutsideStrings(line, lang.lineComment); idx >= 0 {
			line = strings.TrimRight(line[:idx], " \t")
			if strings.TrimSpace(line) == "" {
				return "", true, false
			}
		}
	}

	if lang.blockStart != "" {
		if idx := indexOutsideStrings(line, lang.blockStart); idx >= 0 {
			rest := line[idx+len(lang.blockStart):]
			if end := strings.Index(rest, lang.blockEnd); end >= 0 {
				line = line[:idx] + rest[end+len(lang.blockEnd):]
			} else {
				line = strings.TrimRight(line[:idx], " \t")
				opened = true
			}
			if strings.TrimSpace(line) == "" {
				return "", true, opened
			}
		}
	}

	return line, false, opened
}

func isDebugLine(trimmed string, lang language) bool {
	for _, call := range lang.debugCalls {
		if strings.HasPrefix(trimmed, call) {
			return true
		}
	}
	return false
}

// indexOutsideStrings returns the index of marker in line, ignoring
// occurrences inside single-, double-, or backtick-quoted literals.
func indexOutsideStrings(line, marker string) int {
	var quote byte
	for i := 0; i+len(marker) <= len(line); i++ {
		c := line[i]
		if quote != 0 {
			if c == '\\' && quote != '`' {
				i++ // skip escaped character
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
			continue
		}
		if line[i:i+len(marker)] == marker {
			return i
		}
	}
	return -1
}
