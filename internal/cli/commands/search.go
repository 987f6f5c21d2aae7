package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"loggrep/pkg/config"
	"loggrep/pkg/filter"
	"loggrep/pkg/output"
	"loggrep/pkg/parser"
	"loggrep/pkg/timestamp"
)

// ExitCode is set by commands to indicate the result.
var ExitCode = 0

// SearchOptions holds command-line options for the search (root) command.
type SearchOptions struct {
	Files       []string
	Since       string
	FromNow     bool
	IgnoreCase  bool
	Invert      bool
	After       int
	Before      int
	Around      int
	Color       string
	Output      string
	LineNumbers bool
	ConfigPath  string
}

// NewSearchCommand creates the search command (used as the root command).
func NewSearchCommand() *cobra.Command {
	opts := &SearchOptions{}

	cmd := &cobra.Command{
		Use:   "loggrep [flags] PATTERN...",
		Short: "Timestamp-aware log search",
		Long: `loggrep searches log lines for regex patterns, but only at or after a
reference instant understood from the log's own timestamps.

Multiple patterns are OR'd together. Timestamps are detected per line
against common log dialects (syslog, ISO 8601/RFC 3339, Android logcat,
Apache/Nginx, numeric dates); lines without a timestamp always remain
candidates.

The reference instant is, in order of preference:
  - the --since value, when given
  - the instant at startup, when --from-now is given (live streams)
  - the first timestamp found in the input

Exit codes:
  0 - At least one line was emitted as a match
  1 - No matches
  2 - Configuration or runtime error`,
		Example: `  # Matches of ERROR after a specific time
  loggrep --since "2025-10-04 12:00:00" -f /var/log/syslog ERROR

  # Live stream, case-insensitive, two context lines each side
  adb logcat | loggrep --from-now -i -C 2 "fatal" "anr in"

  # Invert match (like grep -v)
  loggrep -v "health check ok" -f access.log`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Files, "file", "f", nil, "Log file(s) to search, glob patterns allowed (default: stdin)")
	cmd.Flags().StringVar(&opts.Since, "since", "", "Only consider lines at or after this instant (any supported timestamp format)")
	cmd.Flags().BoolVar(&opts.FromNow, "from-now", false, "Use the current time as the reference instant (for live streams)")
	cmd.Flags().BoolVarP(&opts.IgnoreCase, "ignore-case", "i", false, "Case-insensitive matching")
	cmd.Flags().BoolVarP(&opts.Invert, "invert-match", "v", false, "Select non-matching lines")
	cmd.Flags().IntVarP(&opts.After, "after-context", "A", 0, "Print NUM lines of context after matches")
	cmd.Flags().IntVarP(&opts.Before, "before-context", "B", 0, "Print NUM lines of context before matches")
	cmd.Flags().IntVarP(&opts.Around, "context", "C", 0, "Print NUM lines of context around matches")
	cmd.Flags().StringVar(&opts.Color, "color", "", "Highlight matches: always, never, or auto")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.LineNumbers, "line-number", "n", false, "Prefix output with input line numbers")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Config file with defaults and custom timestamp formats")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string, opts *SearchOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	ts := newTimestampEngine(cfg)

	fopts := filter.Options{
		Patterns:        args,
		CaseInsensitive: opts.IgnoreCase,
		Invert:          opts.Invert,
		Before:          contextWidth(cmd, "before-context", opts.Before, opts.Around, cfg.BeforeContext),
		After:           contextWidth(cmd, "after-context", opts.After, opts.Around, cfg.AfterContext),
	}

	switch {
	case opts.Since != "":
		ref, err := ts.ParseReference(opts.Since)
		if err != nil {
			return err
		}
		fopts.Policy = filter.RefExplicit
		fopts.Reference = ref
	case opts.FromNow:
		fopts.Policy = filter.RefStartTime
		fopts.Reference = time.Now()
	default:
		fopts.Policy = filter.RefFirstTimestamp
	}

	colorMode := opts.Color
	if colorMode == "" {
		colorMode = cfg.Color
	}

	anyMatch := false

	if len(opts.Files) == 0 {
		matched, err := searchSource(ctx, cmd.OutOrStdout(), parser.NewReaderSource(cmd.InOrStdin(), "stdin"), "", fopts, ts, opts, colorMode)
		if err != nil {
			return err
		}
		anyMatch = matched
	} else {
		files, err := parser.ExpandGlobs(opts.Files)
		if err != nil {
			return err
		}

		for _, file := range files {
			src, err := parser.NewFileSource(file)
			if err != nil {
				return err
			}

			prefix := ""
			if len(files) > 1 {
				prefix = file
			}

			// Each file is its own run: fresh reference instant
			// and context state, grep-style.
			matched, err := searchSource(ctx, cmd.OutOrStdout(), src, prefix, fopts, ts, opts, colorMode)
			closeErr := src.Close()
			if err != nil {
				return err
			}
			if closeErr != nil {
				return closeErr
			}
			anyMatch = anyMatch || matched
		}
	}

	if anyMatch {
		ExitCode = 0
	} else {
		ExitCode = 1
	}
	return nil
}

// searchSource runs one filter engine over one source and renders its
// output, reporting whether any primary match was emitted.
func searchSource(ctx context.Context, w io.Writer, src parser.LineSource, prefix string,
	fopts filter.Options, ts *timestamp.Engine, opts *SearchOptions, colorMode string) (bool, error) {

	engine, err := filter.New(fopts, ts, src)
	if err != nil {
		return false, err
	}

	writer, err := newWriter(w, engine.Patterns(), colorMode, opts, prefix)
	if err != nil {
		return false, err
	}

	matched := false
	for {
		line, err := engine.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return matched, err
		}
		if line.Match {
			matched = true
		}
		if err := writer.WriteLine(line); err != nil {
			return matched, err
		}
	}

	return matched, nil
}

func newWriter(w io.Writer, patterns []*regexp.Regexp, colorMode string, opts *SearchOptions, prefix string) (output.Writer, error) {
	wopts := output.WriteOptions{
		LineNumbers: opts.LineNumbers,
		Prefix:      prefix,
	}

	switch opts.Output {
	case "text":
		return output.NewTextWriter(w, patterns, colorMode, wopts), nil
	case "json":
		return output.NewJSONWriter(w, wopts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

// loadConfig loads the config file from the flag, the environment, or
// falls back to built-in defaults.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return config.FromEnvironment(), nil
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newTimestampEngine builds the timestamp engine, with any user-defined
// grammars from the config tried before the built-ins. The current year is
// captured here, once, for yearless dialects.
func newTimestampEngine(cfg *config.Config) *timestamp.Engine {
	tsOpts := []timestamp.Option{timestamp.WithYear(time.Now().Year())}
	if len(cfg.Formats) > 0 {
		tsOpts = append(tsOpts, timestamp.WithGrammars(cfg.Grammars()))
	}
	return timestamp.New(tsOpts...)
}

// contextWidth resolves one context width from its flag, the combined
// around flag, and the config default. The around value sets both widths;
// when both are given the larger wins.
func contextWidth(cmd *cobra.Command, flag string, value, around, configDefault int) int {
	if !cmd.Flags().Changed(flag) && !cmd.Flags().Changed("context") && configDefault > 0 {
		return configDefault
	}
	if around > value {
		return around
	}
	return value
}
