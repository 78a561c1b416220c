/*
Copyright © 2026 Seeker Labs <dev@seeker-labs.io>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Commands access these via accessor functions rather than directly
// reading the variables.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/seeker-labs/radarhub/internal/store"
)

var validOutputFormats = []string{"json"}

var (
	output   string
	db       string
	logLevel string
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// DB returns the resolved database path.
// Priority: --db flag > RADARHUB_DB env var > radarhub.db in the working
// directory.
func DB() string {
	if db != "" {
		return db
	}
	if env := os.Getenv("RADARHUB_DB"); env != "" {
		return env
	}
	return "radarhub.db"
}

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v with indentation and writes it to the output writer.
// Returns nil without printing if output format is not JSON.
func PrintJSON(v any) error {
	if !JSON() {
		return nil
	}
	b, err := store.MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVar(&db, "db", "", "Database path (default radarhub.db, or RADARHUB_DB)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
