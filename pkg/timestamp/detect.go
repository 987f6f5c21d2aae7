package timestamp

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"time"
)

// DefaultSampleSize is the number of lines sampled from the head of a
// file when detecting its timestamp format.
const DefaultSampleSize = 100

// GrammarMatch reports how well one grammar fits a sample.
type GrammarMatch struct {
	Grammar    *Grammar
	MatchCount int
	Confidence float64
	ParsedTime time.Time
}

// DetectionResult is the outcome of sampling a log for timestamp formats.
// Matches is sorted best first.
type DetectionResult struct {
	SampledLines  int
	ParsedLines   int
	Matches       []GrammarMatch
	AmbiguityNote string
}

// HasMatch reports whether any grammar matched the sample.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}

// BestMatch returns the highest-confidence match, or nil.
func (r *DetectionResult) BestMatch() *GrammarMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// DetectFromFile samples up to sampleSize non-empty lines from the head
// of the file at path and detects their timestamp formats.
func (e *Engine) DetectFromFile(ctx context.Context, path string, sampleSize int) (*DetectionResult, error) {
	lines, err := sampleFile(ctx, path, sampleSize)
	if err != nil {
		return nil, err
	}
	return e.DetectFromLines(lines), nil
}

// DetectFromLines tests each line against the grammar table and tallies
// which grammars claim it. Each line counts for at most one grammar, the
// first in table order that both matches and parses, mirroring how lines
// are treated during a search. Confidence is the share of sampled lines a
// grammar claimed.
func (e *Engine) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{SampledLines: len(lines)}

	counts := make(map[*Grammar]int)
	first := make(map[*Grammar]time.Time)

	for _, line := range lines {
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

			counts[g]++
			if _, seen := first[g]; !seen {
				first[g] = t.Truncate(time.Millisecond)
			}
			result.ParsedLines++
			break
		}
	}

	for _, g := range e.grammars {
		n := counts[g]
		if n == 0 {
			continue
		}
		result.Matches = append(result.Matches, GrammarMatch{
			Grammar:    g,
			MatchCount: n,
			Confidence: float64(n) / float64(result.SampledLines),
			ParsedTime: first[g],
		})
	}

	// Best first; on equal confidence the more specific pattern wins.
	sort.SliceStable(result.Matches, func(i, j int) bool {
		if result.Matches[i].Confidence != result.Matches[j].Confidence {
			return result.Matches[i].Confidence > result.Matches[j].Confidence
		}
		return len(result.Matches[i].Grammar.PatternStr) > len(result.Matches[j].Grammar.PatternStr)
	})

	for _, m := range result.Matches {
		if m.Grammar.Ambiguous {
			result.AmbiguityNote = fmt.Sprintf(
				"%s dates are ambiguous (month/day order cannot be inferred from the text); "+
					"define a custom format if the log uses day-first dates", m.Grammar.Name)
			break
		}
	}

	return result
}

// sampleFile reads up to sampleSize non-empty lines from the head of path.
func sampleFile(ctx context.Context, path string, sampleSize int) ([]string, error) {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided log path is expected
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) >= sampleSize {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return lines, nil
}
