// ABOUTME: Root Cobra command for gymbot CLI.
// ABOUTME: Loads config, builds the logger and REST client in PersistentPreRunE.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/gymbot/internal/api"
	"github.com/harperreed/gymbot/internal/config"
	"github.com/harperreed/gymbot/internal/tracker"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	apiURL  string
	verbose bool

	cfg    *config.Config
	logger *log.Logger
	client *api.Client
)

var rootCmd = &cobra.Command{
	Use:           "gymbot",
	Short:         "Weekly max-rep tracker",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Gymbot tracks your max reps per exercise, week by week.

Records live in a REST record store. Gymbot pivots them into a grid with
one row per week and one column per exercise, grouped by category
(PUSH, PULL, LEG).

QUICK START:

  $ gymbot serve &                            # Run a local record store
  $ gymbot exercise add "Bench Press" -c push # Add an exercise column
  $ gymbot set 1 "Bench Press" 12             # Week 1, 12 reps
  $ gymbot week add                           # Start the next week
  $ gymbot table                              # Print the grid
  $ gymbot table --tui                        # Edit the grid interactively

RECORD STORE:

  By default gymbot talks to http://localhost:8080/api. Point it elsewhere
  with --api, the GYMBOT_API_URL environment variable, or api_url in
  ~/.config/gymbot/config.json.

MCP INTEGRATION:

  Run 'gymbot mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "gymbot": { "command": "gymbot", "args": ["mcp"] }
    }
  }`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("api") {
			cfg.APIURL = apiURL
		}

		level, err := cfg.GetLogLevel()
		if err != nil {
			return err
		}
		if verbose {
			level = log.DebugLevel
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "gymbot",
			Level:  level,
		})

		client = api.NewClient(cfg.GetAPIURL(), logger)
		logger.Debug("using record store", "url", client.BaseURL())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", api.DefaultBaseURL, "record store base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadTracker builds a tracker over the REST client and loads the grid.
func loadTracker(ctx context.Context) (*tracker.Tracker, error) {
	tr := tracker.New(client, logger)
	if err := tr.Load(ctx); err != nil {
		return nil, storeErr(err)
	}
	return tr, nil
}

// storeErr turns a record store failure into its user-facing message.
func storeErr(err error) error {
	var se *api.StatusError
	var nr *api.NoResponseError
	if errors.As(err, &se) || errors.As(err, &nr) {
		return errors.New(api.Describe(err))
	}
	return err
}
