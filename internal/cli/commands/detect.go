package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"loggrep/pkg/timestamp"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output     string
	SampleSize int
	ShowAll    bool
	ConfigPath string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Detect timestamp formats in a log file",
		Long: `Analyze a log file to detect which timestamp grammars its lines use.

Samples lines from the head of the file and tests them against the grammar
table (plus any custom formats from the config file). Reports each matching
grammar with a confidence score.

Example:
  loggrep detect /var/log/myapp.log
  loggrep detect --sample 500 /var/log/large.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "table", "Output format (table|plain|json)")
	cmd.Flags().IntVar(&opts.SampleSize, "sample", timestamp.DefaultSampleSize, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all matching grammars, not just the best match")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Config file with custom timestamp formats")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s", logFile)
	}

	cfg, err := loadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	ts := newTimestampEngine(cfg)

	result, err := ts.DetectFromFile(ctx, logFile, opts.SampleSize)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	switch opts.Output {
	case "json":
		return writeDetectJSON(cmd, result, logFile, opts)
	case "plain":
		return writeDetectPlain(cmd, result, logFile, opts)
	case "table":
		return writeDetectTable(cmd, result, logFile, opts)
	default:
		return fmt.Errorf("unknown output format %q (use table, plain, or json)", opts.Output)
	}
}

// selected returns the matches to display.
func selected(result *timestamp.DetectionResult, opts *DetectOptions) []timestamp.GrammarMatch {
	if opts.ShowAll || len(result.Matches) == 0 {
		return result.Matches
	}
	return result.Matches[:1]
}

func writeDetectTable(cmd *cobra.Command, result *timestamp.DetectionResult, logFile string, opts *DetectOptions) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "File: %s (%d lines sampled, %d with timestamps)\n", logFile, result.SampledLines, result.ParsedLines)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No timestamp format detected. Check the first few lines manually,")
		fmt.Fprintln(w, "or define a custom format in the config file.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 60},
	})

	tw.AppendHeader(table.Row{"Format", "Confidence", "Matches", "Sample Timestamp"})

	for _, m := range selected(result, opts) {
		tw.AppendRow(table.Row{
			m.Grammar.Name,
			fmt.Sprintf("%.0f%%", m.Confidence*100),
			m.MatchCount,
			m.ParsedTime.Format(time.RFC3339),
		})
	}

	tw.Render()

	if result.AmbiguityNote != "" {
		fmt.Fprintf(w, "Note: %s\n", result.AmbiguityNote)
	}

	return nil
}

func writeDetectPlain(cmd *cobra.Command, result *timestamp.DetectionResult, logFile string, opts *DetectOptions) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "file\t%s\nsampled\t%d\nparsed\t%d\n", logFile, result.SampledLines, result.ParsedLines)
	for _, m := range selected(result, opts) {
		fmt.Fprintf(w, "format\t%s\t%.2f\t%d\t%s\n",
			m.Grammar.Name, m.Confidence, m.MatchCount, m.ParsedTime.Format(time.RFC3339))
	}
	return nil
}

func writeDetectJSON(cmd *cobra.Command, result *timestamp.DetectionResult, logFile string, opts *DetectOptions) error {
	type jsonMatch struct {
		Format     string    `json:"format"`
		Pattern    string    `json:"pattern"`
		Layout     string    `json:"layout"`
		Confidence float64   `json:"confidence"`
		MatchCount int       `json:"match_count"`
		ParsedTime time.Time `json:"parsed_time"`
	}

	out := struct {
		File          string      `json:"file"`
		SampledLines  int         `json:"sampled_lines"`
		ParsedLines   int         `json:"parsed_lines"`
		Matches       []jsonMatch `json:"matches"`
		AmbiguityNote string      `json:"ambiguity_note,omitempty"`
	}{
		File:          logFile,
		SampledLines:  result.SampledLines,
		ParsedLines:   result.ParsedLines,
		AmbiguityNote: result.AmbiguityNote,
	}

	for _, m := range selected(result, opts) {
		out.Matches = append(out.Matches, jsonMatch{
			Format:     m.Grammar.Name,
			Pattern:    m.Grammar.PatternStr,
			Layout:     m.Grammar.Layout,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			ParsedTime: m.ParsedTime,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
