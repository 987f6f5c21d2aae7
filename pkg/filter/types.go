// Package filter implements the streaming match/context engine: it decides
// per line whether the line is a candidate (at/after the reference instant,
// or undated), applies pattern matching to candidates, and emits matched
// lines together with any requested before/after context, in input order,
// without duplication.
package filter

import "time"

// ReferencePolicy selects how the reference instant is fixed for a run.
type ReferencePolicy int

const (
	// RefFirstTimestamp fixes the reference to the instant of the first
	// dated line in the input (file mode default). Lines seen before the
	// reference resolves are candidates and are not re-filtered.
	RefFirstTimestamp ReferencePolicy = iota

	// RefExplicit uses an operator-supplied instant.
	RefExplicit

	// RefStartTime uses the instant captured at engine start (live-stream
	// default).
	RefStartTime
)

// Options configures a filter Engine. Validated once at construction.
type Options struct {
	// Patterns is a non-empty ordered list of regex strings, OR'd together.
	Patterns []string

	// CaseInsensitive enables case-folded matching.
	CaseInsensitive bool

	// Invert reports non-matching candidate lines instead.
	Invert bool

	// Before and After are the context widths. Zero means no context lines
	// of that kind; matches are always emitted regardless of width.
	Before int
	After  int

	// Policy selects the reference-instant policy.
	Policy ReferencePolicy

	// Reference is the explicit cutoff (required for RefExplicit) or the
	// start instant (required for RefStartTime).
	Reference time.Time
}

// Line is one emitted output line.
type Line struct {
	// Text is the line content.
	Text string

	// Num is the 1-based input line number.
	Num int

	// Match is true for primary matches, false for context lines.
	Match bool
}
