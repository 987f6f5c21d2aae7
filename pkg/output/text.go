package output

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"loggrep/pkg/filter"
)

// TextWriter renders lines as plain text, optionally highlighting the
// matched substrings of primary matches. It follows grep's conventions:
// matches join prefix fields with ':', context lines with '-'.
type TextWriter struct {
	w         io.Writer
	opts      WriteOptions
	patterns  []*regexp.Regexp
	highlight *color.Color // nil when highlighting is disabled
}

// NewTextWriter creates a text writer. The patterns are used to highlight
// matched substrings; mode is one of always, never, or auto (auto enables
// color only when w is a terminal).
func NewTextWriter(w io.Writer, patterns []*regexp.Regexp, mode string, opts WriteOptions) *TextWriter {
	tw := &TextWriter{
		w:        w,
		opts:     opts,
		patterns: patterns,
	}

	switch mode {
	case "always":
		tw.highlight = color.New(color.FgRed, color.Bold)
		tw.highlight.EnableColor()
	case "never":
	default: // auto
		if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			tw.highlight = color.New(color.FgRed, color.Bold)
			tw.highlight.EnableColor()
		}
	}

	return tw
}

// Name returns the format name.
func (t *TextWriter) Name() string {
	return "text"
}

// WriteLine renders one output line.
func (t *TextWriter) WriteLine(line *filter.Line) error {
	sep := "-"
	text := line.Text
	if line.Match {
		sep = ":"
		text = t.highlightMatches(text)
	}

	var head string
	if t.opts.Prefix != "" {
		head += t.opts.Prefix + sep
	}
	if t.opts.LineNumbers {
		head += fmt.Sprintf("%d%s", line.Num, sep)
	}

	_, err := fmt.Fprintf(t.w, "%s%s\n", head, text)
	return err
}

// highlightMatches colors every pattern occurrence in the line.
func (t *TextWriter) highlightMatches(text string) string {
	if t.highlight == nil {
		return text
	}
	for _, re := range t.patterns {
		text = re.ReplaceAllStringFunc(text, func(m string) string {
			return t.highlight.Sprint(m)
		})
	}
	return text
}
