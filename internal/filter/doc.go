// Package filter narrows what the scanner feeds into chunking.
//
// Two independent filters live here. FileFilter decides which paths are
// visited at all, using glob patterns over relative paths:
//
//	ff := filter.NewFileFilter(filter.FileFilterOptions{
//	    ExcludeDirs:  []string{"vendor", "node_modules"},
//	    ExcludeFiles: []string{"*.lock"},
//	})
//	ff.ShouldProcess("vendor/x/y.go") // false
//
// CodeFilter strips constructs from text content before token estimation:
// comments, doc comments, debug prints, and test scaffolding, per language
// family (Go, Rust, JS/TS, Python, C/C++/Java). It is line-based — string
// literals are respected when locating comment markers, but no AST is
// built, so pathological code can slip through. Unknown languages pass
// through untouched.
package filter
