// ABOUTME: CLI command for probing the record store's health endpoints.
// ABOUTME: Prints status, version, and environment; --retry probes again on failure.
package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/gymbot/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	healthRetry int
	healthWait  time.Duration
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the record store",
	Long: `Check that the record store is reachable.

Calls the health check and info endpoints and prints the result. With
--retry N, a failed probe is tried again up to N more times.

EXAMPLES:

  gymbot health
  gymbot health --retry 3 --wait 2s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var state tracker.HealthState
		for attempt := 0; ; attempt++ {
			state = tracker.Probe(cmd.Context(), client)
			if state.Status == tracker.StatusConnected || attempt >= healthRetry {
				break
			}
			logger.Debug("health probe failed, retrying", "attempt", attempt+1, "err", state.Message)
			select {
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			case <-time.After(healthWait):
			}
		}
		printHealth(cmd.OutOrStdout(), state)
		if state.Status != tracker.StatusConnected {
			return errors.New(state.Message)
		}
		return nil
	},
}

func printHealth(w io.Writer, state tracker.HealthState) {
	faint := color.New(color.Faint)
	if state.Status != tracker.StatusConnected {
		color.New(color.FgRed).Fprintf(w, "✗ %s\n", state.Status)
		return
	}
	color.New(color.FgGreen).Fprintf(w, "✓ %s\n", state.Status)
	if state.Check != nil {
		fmt.Fprintf(w, "%s %s\n", faint.Sprint("Status:     "), state.Check.Status)
		fmt.Fprintf(w, "%s %s\n", faint.Sprint("Checked:    "), state.Check.CheckedAt().Format(time.RFC3339))
	}
	if state.Info != nil {
		fmt.Fprintf(w, "%s %s\n", faint.Sprint("Application:"), state.Info.Application)
		fmt.Fprintf(w, "%s %s\n", faint.Sprint("Version:    "), state.Info.Version)
		fmt.Fprintf(w, "%s %s\n", faint.Sprint("Environment:"), state.Info.Environment)
	}
}

func init() {
	healthCmd.Flags().IntVar(&healthRetry, "retry", 0, "retry a failed probe up to N times")
	healthCmd.Flags().DurationVar(&healthWait, "wait", time.Second, "wait between retries")
	rootCmd.AddCommand(healthCmd)
}
