// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Commands access these via exported accessor functions rather than
// directly accessing the variables, the same separation the teacher
// draws between flag wiring and command logic.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jamesblissett/tagfs/internal/config"
	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

var (
	output        string
	author        string
	database      string
	caseSensitive bool
	ignoreCase    bool
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// Author returns the author flag value.
func Author() string { return author }

// Database returns the resolved database path.
// Priority: --database flag > TAGFS_DATABASE env var > ~/.tagfs/tagfs.db
// (.tagfs/tagfs.db when the home directory is unknown).
func Database() string {
	if database != "" {
		return database
	}
	if env := os.Getenv("TAGFS_DATABASE"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".tagfs", "tagfs.db")
	}
	return filepath.Join(home, ".tagfs", "tagfs.db")
}

// CaseFold returns whether tag matching should fold case, resolved from
// --case-sensitive / --ignore-case flags, falling back to the config
// default when neither is passed.
func CaseFold() bool {
	switch {
	case ignoreCase:
		return true
	case caseSensitive:
		return false
	default:
		cfg, err := config.Load()
		if err != nil {
			return false
		}
		return cfg.CaseFold()
	}
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if error was printed (suppressing Cobra error), or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// detectAuthor resolves the default author for audit-log attribution.
// Returns empty string when config is missing or has no author set.
func detectAuthor() string {
	if cfg, err := config.Load(); err == nil && cfg.Author.Name != "" {
		return cfg.Author.Name
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVarP(&author, "author", "a", "", "Audit log attribution")
	rootCmd.PersistentFlags().StringVar(&database, "database", "", "Database path (default ~/.tagfs/tagfs.db)")
	rootCmd.PersistentFlags().BoolVar(&caseSensitive, "case-sensitive", false, "Match tags case-sensitively")
	rootCmd.PersistentFlags().BoolVar(&ignoreCase, "ignore-case", false, "Match tags case-insensitively")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
