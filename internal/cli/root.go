// Package cli provides the command-line interface for fieldlint.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errIssuesFound signals that the run completed but errors were reported.
// Warnings alone never trip it.
var errIssuesFound = errors.New("issues found")

// Execute runs the root command and returns the process exit code: 0 for a
// clean run, 1 when errors were reported, 2 for operational failures.
func Execute() int {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errIssuesFound) {
			return 1
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 2
	}
	return 0
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fieldlint",
		Short:         "Lint field-list docstrings against callable signatures",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newCheckCommand())
	return rootCmd
}
