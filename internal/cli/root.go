// Package cli provides the command-line interface for loggrep.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loggrep/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
// Exit codes follow grep: 0 for at least one match, 1 for no matches,
// 2 for configuration or runtime errors.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command. The root command itself
// runs the search; detection and config helpers are subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := commands.NewSearchCommand()
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
