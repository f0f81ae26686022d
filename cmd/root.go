// root.go defines the root command and CLI execution entry point.
//
// Separated from store.go to isolate cobra setup from store lifecycle
// management.
package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jamesblissett/tagfs/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tagfs",
	Short: "Tag-oriented virtual filesystem over a corpus of file paths",
	Long:  `tagfs tracks tags against file paths and exposes them as a synthetic, FUSE-mounted filesystem of boolean tag queries.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if author == "" {
			author = detectAuthor()
		}

		return nil
	},
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, executes the command, and ensures proper cleanup
// of any opened store before exit. Exit code follows the documented
// table: 0 success, 1 user error, 2 I/O/store error, 3 mount error.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	err := rootCmd.Execute()
	closeStore()

	if code := exitCode(err); code != 0 {
		os.Exit(code)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
