/*
Copyright © 2026 Seeker Labs <dev@seeker-labs.io>
*/

// bookmark.go implements bookmark management: add, edit, remove, list.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seeker-labs/radarhub/internal/format"
	"github.com/seeker-labs/radarhub/internal/store"
)

var (
	bookmarkNote     string
	bookmarkTags     []string
	bookmarkReviewed bool
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage bookmarks",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add <item-id>",
	Short: "Bookmark an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.AddBookmark(cmd.Context(), args[0], bookmarkNote, bookmarkTags); err != nil {
			return err
		}
		if JSON() {
			return PrintJSON(map[string]string{"bookmarked": args[0]})
		}
		fmt.Fprintf(out, "bookmarked %s\n", args[0])
		return nil
	},
}

var bookmarkEditCmd = &cobra.Command{
	Use:   "edit <item-id>",
	Short: "Update a bookmark's note, tags, or reviewed flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.UpdateBookmark(cmd.Context(), args[0], bookmarkNote, bookmarkTags, bookmarkReviewed); err != nil {
			return err
		}
		if JSON() {
			return PrintJSON(map[string]string{"updated": args[0]})
		}
		fmt.Fprintf(out, "updated bookmark on %s\n", args[0])
		return nil
	},
}

var bookmarkRmCmd = &cobra.Command{
	Use:   "rm <item-id>",
	Short: "Remove a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.RemoveBookmark(cmd.Context(), args[0]); err != nil {
			return err
		}
		if JSON() {
			return PrintJSON(map[string]string{"removed": args[0]})
		}
		fmt.Fprintf(out, "removed bookmark from %s\n", args[0])
		return nil
	},
}

var bookmarkLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List bookmarked items, newest bookmark first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		items, err := st.ListBookmarks(cmd.Context())
		if err != nil {
			return err
		}
		if JSON() {
			jsonItems := make([]store.ItemJSON, 0, len(items))
			for i := range items {
				jsonItems = append(jsonItems, items[i].ToJSON())
			}
			return PrintJSON(jsonItems)
		}
		format.Items(out, items)
		return nil
	},
}

func init() {
	bookmarkAddCmd.Flags().StringVarP(&bookmarkNote, "note", "N", "", "Bookmark note")
	bookmarkAddCmd.Flags().StringSliceVarP(&bookmarkTags, "tag", "t", nil, "Bookmark tags (repeatable)")
	bookmarkEditCmd.Flags().StringVarP(&bookmarkNote, "note", "N", "", "Bookmark note")
	bookmarkEditCmd.Flags().StringSliceVarP(&bookmarkTags, "tag", "t", nil, "Bookmark tags (repeatable)")
	bookmarkEditCmd.Flags().BoolVar(&bookmarkReviewed, "reviewed", false, "Mark as reviewed")

	bookmarkCmd.AddCommand(bookmarkAddCmd, bookmarkEditCmd, bookmarkRmCmd, bookmarkLsCmd)
	rootCmd.AddCommand(bookmarkCmd)
}
