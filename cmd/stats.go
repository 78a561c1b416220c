/*
Copyright © 2026 Seeker Labs <dev@seeker-labs.io>
*/

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seeker-labs/radarhub/internal/format"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Stats(cmd.Context())
		if err != nil {
			return err
		}
		if JSON() {
			return PrintJSON(stats)
		}
		format.Stats(out, stats)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
