// ABOUTME: CLI command for setting the max reps of one grid cell.
// ABOUTME: Updates the existing record or creates one when the cell is blank.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/gymbot/internal/pivot"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:     "set <week> <exercise> <reps>",
	Aliases: []string{"s"},
	Short:   "Set max reps for an exercise in a week",
	Long: `Set the max reps for one cell of the grid.

If a record exists for that week and exercise it is updated; otherwise a
new record is created using the exercise's category.

EXAMPLES:

  gymbot set 3 "Bench Press" 15
  gymbot set 1 Squat 20`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		week, err := strconv.Atoi(args[0])
		if err != nil || week < 1 {
			return fmt.Errorf("invalid week: %s", args[0])
		}
		name := args[1]
		if _, err := pivot.ParseReps(args[2]); err != nil {
			return err
		}

		tr, err := loadTracker(cmd.Context())
		if err != nil {
			return err
		}
		if !tr.Grid().HasColumn(name) {
			return fmt.Errorf("unknown exercise: %s (add it with 'gymbot exercise add')", name)
		}

		if _, err := tr.Edit(cmd.Context(), week, name, args[2]); err != nil {
			return storeErr(err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ ")
		fmt.Fprintf(cmd.OutOrStdout(), "Week %d %s: %s reps\n", week, name, args[2])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
