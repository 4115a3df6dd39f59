// Package scan implements the call-site scanner: it walks a directory tree
// of source files and reports every call expression whose callee name starts
// with a given prefix. Parsing is hidden behind the Frontend interface so
// additional language grammars can be added without touching the traversal
// logic.
package scan
