package parser

import (
	"context"
	"fmt"
	"os"
)

// FileSource implements LineSource for reading from a single log file.
type FileSource struct {
	file   *os.File
	reader *ReaderSource
}

// NewFileSource opens path and returns a LineSource over its lines.
func NewFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	return &FileSource{
		file:   f,
		reader: NewReaderSource(f, path),
	}, nil
}

// Next returns the next line of the file.
func (s *FileSource) Next(ctx context.Context) (string, error) {
	return s.reader.Next(ctx)
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	return s.file.Close()
}
