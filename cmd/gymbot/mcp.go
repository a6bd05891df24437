// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server over the record store for Claude integration.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/gymbot/internal/mcp"
	"github.com/harperreed/gymbot/internal/tracker"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read and edit your rep grid through
a standardized protocol. The server communicates via stdin/stdout and
talks to the record store given by --api.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "gymbot": {
        "command": "gymbot",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  show_grid        The week-by-exercise grid
  list_exercises   Flat records, optionally filtered
  set_reps         Set max reps for a week and exercise
  add_week         Start the next week
  add_exercise     Add an exercise column
  delete_exercise  Delete an exercise from every week
  health           Probe the record store

AVAILABLE RESOURCES:

  gymbot://grid        Current grid
  gymbot://exercises   All records`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr := tracker.New(client, logger)
		if err := tr.Load(cmd.Context()); err != nil {
			logger.Warn("initial load failed", "err", err)
		}

		server, err := mcp.NewServer(tr, client, version)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		if err := server.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
