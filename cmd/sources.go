/*
Copyright © 2026 Seeker Labs <dev@seeker-labs.io>
*/

// sources.go implements the source catalog commands: list, enable, disable,
// and loading catalogs from YAML.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seeker-labs/radarhub/internal/config"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage the source catalog",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var sourcesLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List configured sources",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sources, err := st.ListSources(cmd.Context())
		if err != nil {
			return err
		}
		if JSON() {
			return PrintJSON(sources)
		}
		for _, src := range sources {
			state := "disabled"
			if src.Enabled {
				state = "enabled"
			}
			fmt.Fprintf(out, "%-20s %-10s %-8s %s\n", src.ID, src.Type, state, src.Name)
		}
		return nil
	},
}

func toggleCmd(use, short string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.ToggleSource(cmd.Context(), args[0], enabled); err != nil {
				return err
			}
			if JSON() {
				return PrintJSON(map[string]any{"source": args[0], "enabled": enabled})
			}
			fmt.Fprintf(out, "%s: enabled=%v\n", args[0], enabled)
			return nil
		},
	}
}

var sourcesLoadCmd = &cobra.Command{
	Use:   "load <dir>",
	Short: "Load sources.yaml and keywords.yaml from a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := config.Apply(cmd.Context(), st, args[0]); err != nil {
			return err
		}
		if JSON() {
			return PrintJSON(map[string]string{"loaded": args[0]})
		}
		fmt.Fprintf(out, "catalogs loaded from %s\n", args[0])
		return nil
	},
}

func init() {
	sourcesCmd.AddCommand(
		sourcesLsCmd,
		toggleCmd("enable <id>", "Enable a source", true),
		toggleCmd("disable <id>", "Disable a source", false),
		sourcesLoadCmd,
	)
	rootCmd.AddCommand(sourcesCmd)
}
