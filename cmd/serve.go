/*
Copyright © 2026 Seeker Labs <dev@seeker-labs.io>
*/

// serve.go starts the MCP server over stdio. The logger is rebuilt on
// stderr with the production encoder since stdout carries JSON-RPC.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seeker-labs/radarhub/internal/logger"
	"github.com/seeker-labs/radarhub/internal/mcp"
	"github.com/seeker-labs/radarhub/internal/search"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the corpus over MCP (stdio)",
	Long: `Run the Model Context Protocol server on stdin/stdout so LLM clients
can search, inspect, and bookmark items. Logs go to stderr.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		log := logger.New(logLevel, false)
		defer func() { _ = log.Sync() }()

		engine := search.New(st, log)
		return mcp.Serve(st, engine, log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
