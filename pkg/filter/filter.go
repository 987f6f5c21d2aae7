package filter

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"loggrep/pkg/parser"
	"loggrep/pkg/timestamp"
)

// Engine consumes a line source in a single forward pass and yields the
// filtered output sequence. Each Engine owns its own ring buffer, after
// counter, and reference-instant cell; it holds no locks and shares no
// state across runs.
type Engine struct {
	src      parser.LineSource
	ts       *timestamp.Engine
	patterns []*regexp.Regexp
	invert   bool

	beforeWidth int
	afterWidth  int

	policy ReferencePolicy
	ref    time.Time
	refSet bool

	before    []Line // bounded at beforeWidth, oldest first
	afterLeft int
	pending   []Line
	lineNum   int
}

// New creates an Engine reading from src. Configuration errors (empty
// pattern list, invalid regex, negative context width, missing explicit
// reference) are reported here, before any line is processed.
func New(opts Options, ts *timestamp.Engine, src parser.LineSource) (*Engine, error) {
	if len(opts.Patterns) == 0 {
		return nil, errors.New("at least one pattern is required")
	}
	if opts.Before < 0 {
		return nil, fmt.Errorf("before-context must be non-negative, got %d", opts.Before)
	}
	if opts.After < 0 {
		return nil, fmt.Errorf("after-context must be non-negative, got %d", opts.After)
	}

	patterns := make([]*regexp.Regexp, 0, len(opts.Patterns))
	for _, p := range opts.Patterns {
		expr := p
		if opts.CaseInsensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}

	e := &Engine{
		src:         src,
		ts:          ts,
		patterns:    patterns,
		invert:      opts.Invert,
		beforeWidth: opts.Before,
		afterWidth:  opts.After,
		policy:      opts.Policy,
	}

	switch opts.Policy {
	case RefExplicit:
		if opts.Reference.IsZero() {
			return nil, errors.New("explicit reference policy requires a reference instant")
		}
		e.ref, e.refSet = opts.Reference, true
	case RefStartTime:
		if opts.Reference.IsZero() {
			return nil, errors.New("start-time reference policy requires a start instant")
		}
		e.ref, e.refSet = opts.Reference, true
	case RefFirstTimestamp:
		// Resolved lazily from the first dated line; until then every
		// line is a candidate.
	default:
		return nil, fmt.Errorf("unknown reference policy %d", opts.Policy)
	}

	return e, nil
}

// Patterns returns the compiled patterns, for driver-side highlighting.
func (e *Engine) Patterns() []*regexp.Regexp {
	return e.patterns
}

// Next returns the next output line in input order.
// Returns io.EOF when the source is exhausted; lines still held in the
// before-context buffer at that point are dropped, never flushed.
func (e *Engine) Next(ctx context.Context) (*Line, error) {
	for len(e.pending) == 0 {
		text, err := e.src.Next(ctx)
		if err != nil {
			return nil, err
		}
		e.process(text)
	}

	out := e.pending[0]
	e.pending = e.pending[1:]
	return &out, nil
}

// process runs the per-line state transitions and appends any output the
// line produces (context flush, match, after-context) to the pending queue.
func (e *Engine) process(text string) {
	e.lineNum++
	rec := Line{Text: text, Num: e.lineNum}

	ts, dated := e.ts.DetectAndParse(text)

	// First-timestamp policy: the first dated line fixes the reference
	// and itself remains a candidate.
	if dated && !e.refSet && e.policy == RefFirstTimestamp {
		e.ref, e.refSet = ts, true
	}

	if dated && e.refSet && ts.Before(e.ref) {
		// Time-excluded: still buffered so a later match can show
		// context across the reference boundary, but never a match
		// and no effect on the after counter.
		e.pushBefore(rec)
		return
	}

	isMatch := e.matches(text) != e.invert

	switch {
	case isMatch:
		e.flushBefore()
		rec.Match = true
		e.pending = append(e.pending, rec)
		e.afterLeft = e.afterWidth
	case e.afterLeft > 0:
		e.pending = append(e.pending, rec)
		e.afterLeft--
		// Anything still buffered precedes a line that is now being
		// emitted; flushing it later would reorder output.
		e.before = e.before[:0]
	default:
		e.pushBefore(rec)
	}
}

// matches reports whether any pattern matches the line.
func (e *Engine) matches(text string) bool {
	for _, re := range e.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// pushBefore appends to the before-context ring, evicting the oldest entry
// when over capacity.
func (e *Engine) pushBefore(rec Line) {
	if e.beforeWidth == 0 {
		return
	}
	if len(e.before) == e.beforeWidth {
		copy(e.before, e.before[1:])
		e.before = e.before[:len(e.before)-1]
	}
	e.before = append(e.before, rec)
}

// flushBefore moves the buffered before-context, oldest first, to the
// pending queue and clears the ring.
func (e *Engine) flushBefore() {
	e.pending = append(e.pending, e.before...)
	e.before = e.before[:0]
}
