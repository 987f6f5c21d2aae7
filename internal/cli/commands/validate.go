package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"loggrep/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a loggrep configuration file without running a search.

Checks:
  - YAML syntax
  - Color mode and context width values
  - Custom format regex validity (including the required capture group)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Color mode:      %s\n", cfg.Color)
	fmt.Fprintf(w, "  Before context:  %d\n", cfg.BeforeContext)
	fmt.Fprintf(w, "  After context:   %d\n", cfg.AfterContext)
	fmt.Fprintf(w, "  Custom formats:  %d\n", len(cfg.Formats))

	for i, f := range cfg.Formats {
		yearNote := ""
		if f.NeedsYear {
			yearNote = " (no year)"
		}
		fmt.Fprintf(w, "  %d. %s%s\n", i+1, f.Name, yearNote)
	}

	return nil
}
