/*
Copyright © 2026 Seeker Labs <dev@seeker-labs.io>
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sweepDays int

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete old unbookmarked items",
	Long: `Delete items fetched more than --days ago. Bookmarked items are
never deleted, whatever their age.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		deleted, err := st.RetentionSweep(cmd.Context(), sweepDays)
		if err != nil {
			return err
		}
		if JSON() {
			return PrintJSON(map[string]any{"deleted": deleted, "days": sweepDays})
		}
		fmt.Fprintf(out, "deleted %d items older than %d days\n", deleted, sweepDays)
		return nil
	},
}

func init() {
	sweepCmd.Flags().IntVar(&sweepDays, "days", 30, "Maximum age in days")
	rootCmd.AddCommand(sweepCmd)
}
