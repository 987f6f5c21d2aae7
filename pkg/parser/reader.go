package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ReaderSource implements LineSource over an io.Reader (e.g. stdin).
//
// Decoding is permissive: byte sequences that are not valid UTF-8 are
// replaced with U+FFFD rather than aborting the run, since binary-tainted
// streams (mixed-encoding device logs) are an expected input class.
type ReaderSource struct {
	scanner *bufio.Scanner
	name    string
}

// NewReaderSource creates a LineSource reading from r.
// The name is used in error messages (e.g. "stdin").
func NewReaderSource(r io.Reader, name string) *ReaderSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	return &ReaderSource{
		scanner: scanner,
		name:    name,
	}
}

// Next returns the next line, with invalid UTF-8 replaced.
func (s *ReaderSource) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading %s: %w", s.name, err)
		}
		return "", io.EOF
	}

	line := s.scanner.Text()
	if !utf8.ValidString(line) {
		line = strings.ToValidUTF8(line, "�")
	}
	return line, nil
}

// Close is a no-op; the caller owns the underlying reader.
func (s *ReaderSource) Close() error {
	return nil
}
