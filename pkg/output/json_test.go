package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"loggrep/pkg/filter"
)

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf, WriteOptions{Prefix: "app.log"})

	lines := []*filter.Line{
		{Text: "context line", Num: 1},
		{Text: "ERROR boom", Num: 2, Match: true},
	}
	for _, l := range lines {
		if err := w.WriteLine(l); err != nil {
			t.Fatalf("WriteLine() error = %v", err)
		}
	}

	raw := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(raw) != 2 {
		t.Fatalf("got %d JSONL records, want 2", len(raw))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(raw[0]), &first); err != nil {
		t.Fatalf("invalid JSON %q: %v", raw[0], err)
	}
	if first["line"] != "context line" || first["match"] != false {
		t.Errorf("first record = %v", first)
	}
	if first["line_number"] != float64(1) {
		t.Errorf("line_number = %v, want 1", first["line_number"])
	}
	if first["file"] != "app.log" {
		t.Errorf("file = %v, want app.log", first["file"])
	}

	var second map[string]any
	if err := json.Unmarshal([]byte(raw[1]), &second); err != nil {
		t.Fatalf("invalid JSON %q: %v", raw[1], err)
	}
	if second["match"] != true {
		t.Errorf("second record = %v, want match true", second)
	}
}

func TestJSONWriter_OmitsEmptyFile(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf, WriteOptions{})

	if err := w.WriteLine(&filter.Line{Text: "x", Num: 1, Match: true}); err != nil {
		t.Fatalf("WriteLine() error = %v", err)
	}

	if strings.Contains(buf.String(), `"file"`) {
		t.Errorf("output = %q, file field should be omitted when empty", buf.String())
	}
}
