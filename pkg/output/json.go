package output

import (
	"encoding/json"
	"io"

	"loggrep/pkg/filter"
)

// JSONWriter renders one JSON object per output line (JSONL).
type JSONWriter struct {
	enc  *json.Encoder
	opts WriteOptions
}

// jsonLine is the wire shape of one output line.
type jsonLine struct {
	Line       string `json:"line"`
	LineNumber int    `json:"line_number"`
	Match      bool   `json:"match"`
	File       string `json:"file,omitempty"`
}

// NewJSONWriter creates a JSONL writer.
func NewJSONWriter(w io.Writer, opts WriteOptions) *JSONWriter {
	return &JSONWriter{
		enc:  json.NewEncoder(w),
		opts: opts,
	}
}

// Name returns the format name.
func (j *JSONWriter) Name() string {
	return "json"
}

// WriteLine renders one output line as a JSON object.
func (j *JSONWriter) WriteLine(line *filter.Line) error {
	return j.enc.Encode(jsonLine{
		Line:       line.Text,
		LineNumber: line.Num,
		Match:      line.Match,
		File:       j.opts.Prefix,
	})
}
