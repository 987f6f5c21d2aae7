package timestamp

import "regexp"

// Grammar describes one timestamp dialect: a regex that locates the
// timestamp in a line (capture group 1) and the Go layout that parses
// the captured text.
type Grammar struct {
	Name       string
	Pattern    *regexp.Regexp
	PatternStr string
	Layout     string
	Examples   []string

	// NeedsYear marks dialects whose timestamps carry no year; the
	// engine injects its fixed year after parsing.
	NeedsYear bool

	// Ambiguous marks dialects whose date order cannot be inferred
	// from the text alone (MM/DD vs DD/MM).
	Ambiguous bool
}

// DefaultGrammars returns the built-in grammar table in priority order.
// More specific dialects come first so that, for example, a zoned RFC 3339
// timestamp is never claimed by the zoneless ISO 8601 grammar. All patterns
// are anchored at line start except Apache/Nginx access logs, whose
// timestamp sits mid-line in brackets.
func DefaultGrammars() []*Grammar {
	return []*Grammar{
		{
			Name:       "RFC 3339",
			PatternStr: `^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2}))`,
			Layout:     "2006-01-02T15:04:05Z07:00",
			Examples:   []string{"2025-10-05T14:30:02Z", "2025-10-05T14:30:02.123+02:00"},
		},
		{
			Name:       "ISO 8601 (compact offset)",
			PatternStr: `^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?[+-]\d{4})`,
			Layout:     "2006-01-02T15:04:05-0700",
			Examples:   []string{"2025-10-05T14:30:02+0200"},
		},
		{
			Name:       "ISO 8601",
			PatternStr: `^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?)`,
			Layout:     "2006-01-02T15:04:05",
			Examples:   []string{"2025-10-05T14:30:02", "2025-10-05T14:30:02.123"},
		},
		{
			Name:       "ISO 8601 basic (zoned)",
			PatternStr: `^(\d{8}T\d{6}(?:\.\d+)?(?:Z|[+-]\d{4}))`,
			Layout:     "20060102T150405Z0700",
			Examples:   []string{"20251005T143002Z", "20251005T143002+0200"},
		},
		{
			Name:       "ISO 8601 basic",
			PatternStr: `^(\d{8}T\d{6}(?:\.\d+)?)`,
			Layout:     "20060102T150405",
			Examples:   []string{"20251005T143002"},
		},
		{
			Name:       "Python logging",
			PatternStr: `^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3})`,
			Layout:     "2006-01-02 15:04:05,000",
			Examples:   []string{"2025-10-05 14:30:02,123"},
		},
		{
			Name:       "ISO 8601 (space-separated)",
			PatternStr: `^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d+)?)`,
			Layout:     "2006-01-02 15:04:05",
			Examples:   []string{"2025-10-05 14:30:02", "2025-10-05 14:30:02.500"},
		},
		{
			Name:       "Nginx error log",
			PatternStr: `^(\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2})`,
			Layout:     "2006/01/02 15:04:05",
			Examples:   []string{"2025/10/05 14:30:02"},
		},
		{
			Name:       "Apache/Nginx access log",
			PatternStr: `\[(\d{2}/[A-Z][a-z]{2}/\d{4}:\d{2}:\d{2}:\d{2} [+-]\d{4})\]`,
			Layout:     "02/Jan/2006:15:04:05 -0700",
			Examples:   []string{`[05/Oct/2025:14:30:02 +0000]`},
		},
		{
			Name:       "Apache error log",
			PatternStr: `^\[([A-Z][a-z]{2} [A-Z][a-z]{2} \d{2} \d{2}:\d{2}:\d{2} \d{4})\]`,
			Layout:     "Mon Jan 02 15:04:05 2006",
			Examples:   []string{"[Sun Oct 05 14:30:02 2025]"},
		},
		{
			Name:       "Month day, year",
			PatternStr: `^([A-Z][a-z]{2} {1,2}\d{1,2}, \d{4} \d{2}:\d{2}:\d{2}(?:\.\d+)?)`,
			Layout:     "Jan _2, 2006 15:04:05",
			Examples:   []string{"Oct 05, 2025 14:30:02", "Oct 5, 2025 14:30:02.123"},
		},
		{
			Name:       "Syslog with year",
			PatternStr: `^([A-Z][a-z]{2} {1,2}\d{1,2} \d{4} \d{2}:\d{2}:\d{2})`,
			Layout:     "Jan _2 2006 15:04:05",
			Examples:   []string{"Oct  5 2025 14:30:02"},
		},
		{
			Name:       "Day month year",
			PatternStr: `^(\d{1,2} [A-Z][a-z]{2} \d{4} \d{2}:\d{2}:\d{2})`,
			Layout:     "_2 Jan 2006 15:04:05",
			Examples:   []string{"5 Oct 2025 14:30:02"},
		},
		{
			Name:       "US numeric date",
			PatternStr: `^(\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2})`,
			Layout:     "01/02/2006 15:04:05",
			Examples:   []string{"10/05/2025 14:30:02"},
			Ambiguous:  true,
		},
		{
			Name:       "European numeric date",
			PatternStr: `^(\d{2}\.\d{2}\.\d{4} \d{2}:\d{2}:\d{2})`,
			Layout:     "02.01.2006 15:04:05",
			Examples:   []string{"05.10.2025 14:30:02"},
		},
		{
			Name:       "Syslog (BSD)",
			PatternStr: `^([A-Z][a-z]{2} {1,2}\d{1,2} \d{2}:\d{2}:\d{2})`,
			Layout:     "Jan _2 15:04:05",
			Examples:   []string{"Oct  5 14:30:02", "Jun 14 15:16:01"},
			NeedsYear:  true,
		},
		{
			Name:       "Android logcat",
			PatternStr: `^(\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d+)?)`,
			Layout:     "01-02 15:04:05",
			Examples:   []string{"10-05 14:30:02.123"},
			NeedsYear:  true,
		},
	}
}

// compile fills in the compiled Pattern for every grammar in the table.
func compile(grammars []*Grammar) []*Grammar {
	for _, g := range grammars {
		if g.Pattern == nil {
			g.Pattern = regexp.MustCompile(g.PatternStr)
		}
	}
	return grammars
}
