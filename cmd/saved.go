/*
Copyright © 2026 Seeker Labs <dev@seeker-labs.io>
*/

// saved.go implements saved search templates: add, list, remove.

package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	savedQuery   string
	savedFilters string
	savedSort    string
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved searches",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var savedAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Save a named search template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var filters map[string]any
		if savedFilters != "" {
			if err := json.Unmarshal([]byte(savedFilters), &filters); err != nil {
				return fmt.Errorf("parse --filters: %w", err)
			}
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		id, err := st.SaveSearch(cmd.Context(), args[0], savedQuery, filters, savedSort)
		if err != nil {
			return err
		}
		if JSON() {
			return PrintJSON(map[string]any{"id": id, "name": args[0]})
		}
		fmt.Fprintf(out, "saved search %d: %s\n", id, args[0])
		return nil
	},
}

var savedLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List saved searches, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		searches, err := st.ListSavedSearches(cmd.Context())
		if err != nil {
			return err
		}
		if JSON() {
			return PrintJSON(searches)
		}
		for _, s := range searches {
			fmt.Fprintf(out, "%4d  %-24s %s\n", s.ID, s.Name, s.Query)
		}
		return nil
	},
}

var savedRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a saved search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteSavedSearch(cmd.Context(), id); err != nil {
			return err
		}
		if JSON() {
			return PrintJSON(map[string]any{"deleted": id})
		}
		fmt.Fprintf(out, "deleted saved search %d\n", id)
		return nil
	},
}

func init() {
	savedAddCmd.Flags().StringVarP(&savedQuery, "query", "q", "", "Search query text")
	savedAddCmd.Flags().StringVar(&savedFilters, "filters", "", "Filters as a JSON object")
	savedAddCmd.Flags().StringVar(&savedSort, "sort", "", "Sort key (default score)")

	savedCmd.AddCommand(savedAddCmd, savedLsCmd, savedRmCmd)
	rootCmd.AddCommand(savedCmd)
}
