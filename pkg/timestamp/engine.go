package timestamp

import (
	"fmt"
	"time"
)

// Engine detects and parses timestamps at the start of log lines against
// an ordered grammar table. An Engine is immutable after construction and
// safe for concurrent use.
type Engine struct {
	grammars []*Grammar
	year     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithYear fixes the year injected into yearless dialects (syslog, logcat).
// The default is the year at construction time.
func WithYear(year int) Option {
	return func(e *Engine) {
		e.year = year
	}
}

// WithGrammars prepends user-defined grammars to the table, so they are
// tried before the built-ins.
func WithGrammars(grammars []*Grammar) Option {
	return func(e *Engine) {
		e.grammars = append(compile(grammars), e.grammars...)
	}
}

// New creates an Engine with the built-in grammar table.
func New(opts ...Option) *Engine {
	e := &Engine{
		grammars: compile(DefaultGrammars()),
		year:     time.Now().Year(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Grammars returns the engine's grammar table in trial order.
func (e *Engine) Grammars() []*Grammar {
	return e.grammars
}

// DetectAndParse extracts the timestamp from a log line, if any. Grammars
// are tried in table order and the first whose pattern matches and whose
// layout parses wins; a pattern match that fails to parse (say, month 13)
// falls through to the next grammar. The result is truncated to
// millisecond precision. The second return is false when the line carries
// no recognizable timestamp.
func (e *Engine) DetectAndParse(line string) (time.Time, bool) {
	for _, g := range e.grammars {
		m := g.Pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		t, err := time.Parse(g.Layout, m[1])
		if err != nil {
			continue
		}

		if g.NeedsYear {
			t = time.Date(e.year, t.Month(), t.Day(),
				t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
		}

		return t.Truncate(time.Millisecond), true
	}

	return time.Time{}, false
}

// ParseReference parses a user-supplied instant (the --since value) with
// the same grammar table used for log lines, so any timestamp format the
// engine can read in a log is also accepted as a reference.
func (e *Engine) ParseReference(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty reference instant")
	}

	t, ok := e.DetectAndParse(s)
	if !ok {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
	}
	return t, nil
}
