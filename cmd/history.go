/*
Copyright © 2026 Seeker Labs <dev@seeker-labs.io>
*/

// history.go implements search history retrieval: prefix suggestions and
// recent searches.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seeker-labs/radarhub/internal/format"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Search history",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var historySuggestCmd = &cobra.Command{
	Use:   "suggest <prefix>",
	Short: "Suggest past queries matching a prefix, highest-value first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := st.Suggest(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if JSON() {
			return PrintJSON(entries)
		}
		format.Suggestions(out, entries)
		return nil
	},
}

var historyRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recent searches, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := st.Recent(cmd.Context())
		if err != nil {
			return err
		}
		if JSON() {
			return PrintJSON(entries)
		}
		format.Suggestions(out, entries)
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historySuggestCmd, historyRecentCmd)
	rootCmd.AddCommand(historyCmd)
}
