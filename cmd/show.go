/*
Copyright © 2026 Seeker Labs <dev@seeker-labs.io>
*/

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seeker-labs/radarhub/internal/format"
)

var showCmd = &cobra.Command{
	Use:   "show <item-id>",
	Short: "Show one item in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		item, err := st.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if JSON() {
			return PrintJSON(item.ToJSON())
		}
		return format.Item(out, item)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
