// Package parser provides pull-based line sources for log input.
package parser

import "context"

// LineSource yields raw text lines one at a time.
// Implementations must be safe for sequential access (not concurrent).
type LineSource interface {
	// Next returns the next line without its trailing newline.
	// Returns io.EOF when no more lines are available. A live source
	// blocks until a line arrives or the stream ends.
	Next(ctx context.Context) (string, error)

	// Close releases any resources held by the source.
	Close() error
}
