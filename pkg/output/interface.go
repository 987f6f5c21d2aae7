// Package output renders filtered lines for the terminal or machine
// consumption. The engine owns what to emit; this package only owns how a
// line looks (highlighting, numbering, encoding).
package output

import "loggrep/pkg/filter"

// Writer renders filtered lines in a specific format.
type Writer interface {
	// WriteLine renders one output line.
	WriteLine(line *filter.Line) error

	// Name returns the format name (text, json).
	Name() string
}

// WriteOptions controls writer behavior.
type WriteOptions struct {
	// LineNumbers prefixes each line with its input line number.
	LineNumbers bool

	// Prefix is prepended to each line (e.g. a file path when searching
	// multiple files).
	Prefix string
}
