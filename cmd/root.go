/*
Copyright © 2026 Seeker Labs <dev@seeker-labs.io>
*/

// root.go defines the root command and CLI execution entry point.
//
// Design: commands open the store lazily via openStore rather than in a
// PersistentPreRunE, so help, completion, and flag validation never touch
// the database file.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seeker-labs/radarhub/internal/logger"
	"github.com/seeker-labs/radarhub/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "radarhub",
	Short: "Personal tech radar: aggregate, search, and curate items from many sources",
	Long: `radarhub maintains a local corpus of items pulled from configured sources
(repositories, papers, posts) and serves ranked full-text search, structured
filtering, bookmarks, and search history over it.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}
		log = logger.New(logLevel, true)
		return nil
	},
}

// log is the process logger, built in PersistentPreRunE from --log-level.
var log = zap.NewNop()

// openStore opens the resolved database and ensures the schema exists.
// Callers must Close the returned store.
func openStore() (*store.SQLiteStore, error) {
	st, err := store.Open(DB())
	if err != nil {
		return nil, err
	}
	if err := st.Init(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("initialise schema: %w", err)
	}
	return st, nil
}

// Execute runs the root command. Exit code 1 indicates error.
func Execute() {
	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
