// ABOUTME: CLI commands for managing weeks.
// ABOUTME: Adds the next week for every exercise and shows a single week.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var weekCmd = &cobra.Command{
	Use:     "week",
	Aliases: []string{"w"},
	Short:   "Manage weeks",
}

var weekAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Start the next week",
	Long: `Start the next week.

Creates a record with 0 reps for every known exercise at one past the
highest week. With no exercises yet, week 1 is started with no records.

Records are created one at a time. If one fails, the ones before it stay.

EXAMPLES:

  gymbot week add`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := loadTracker(cmd.Context())
		if err != nil {
			return err
		}
		exercises := len(tr.Grid().Columns)
		week, err := tr.AddWeek(cmd.Context())
		if err != nil {
			return storeErr(err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ ")
		fmt.Fprintf(cmd.OutOrStdout(), "Added week %d (%d exercises)\n", week, exercises)
		return nil
	},
}

var weekShowCmd = &cobra.Command{
	Use:   "show <week>",
	Short: "Show the records of one week",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		week, err := strconv.Atoi(args[0])
		if err != nil || week < 1 {
			return fmt.Errorf("invalid week: %s", args[0])
		}
		records, err := client.ExercisesByWeek(cmd.Context(), week)
		if err != nil {
			return storeErr(err)
		}
		if len(records) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No records for week %d.\n", week)
			return nil
		}
		printRecords(cmd.OutOrStdout(), records)
		return nil
	},
}

func init() {
	weekCmd.AddCommand(weekAddCmd)
	weekCmd.AddCommand(weekShowCmd)
	rootCmd.AddCommand(weekCmd)
}
