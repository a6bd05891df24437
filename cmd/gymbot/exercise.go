// ABOUTME: CLI commands for adding and deleting exercise columns.
// ABOUTME: Delete removes every week of an exercise after a [y/N] prompt.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gymbot/internal/models"
	"github.com/spf13/cobra"
)

var (
	exerciseCategory string
	exerciseYes      bool
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex", "e"},
	Short:   "Manage exercises",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise column",
	Long: `Add an exercise column.

Creates one record with 0 reps at the earliest week (week 1 when the grid
is empty). Other weeks stay blank until you set them.

CATEGORIES:

  push, pull, leg (any letter case)

EXAMPLES:

  gymbot exercise add "Bench Press" --category push
  gymbot exercise add Squat -c LEG`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := models.ParseCategory(exerciseCategory)
		if err != nil {
			return err
		}
		tr, err := loadTracker(cmd.Context())
		if err != nil {
			return err
		}
		name := strings.TrimSpace(args[0])
		if err := tr.AddExercise(cmd.Context(), name, category); err != nil {
			return storeErr(err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ ")
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", name, category)
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete an exercise from every week",
	Long: `Delete an exercise and all of its records across every week.

Asks for confirmation unless --yes is given. Records are deleted one at a
time; if one fails, the ones before it stay deleted.

EXAMPLES:

  gymbot exercise delete "Bench Press"
  gymbot exercise rm Squat --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := loadTracker(cmd.Context())
		if err != nil {
			return err
		}
		confirm := func(name string) bool {
			if exerciseYes {
				return true
			}
			return promptYesNo(cmd.InOrStdin(), cmd.OutOrStdout(),
				fmt.Sprintf("Delete %q from every week?", name))
		}
		n, err := tr.DeleteExercise(cmd.Context(), args[0], confirm)
		if err != nil {
			return storeErr(err)
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ ")
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%d records)\n", args[0], n)
		return nil
	},
}

// promptYesNo asks question on out and reads a y/yes answer from in.
func promptYesNo(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func init() {
	exerciseAddCmd.Flags().StringVarP(&exerciseCategory, "category", "c", "", "category: push, pull, or leg")
	_ = exerciseAddCmd.MarkFlagRequired("category")
	exerciseDeleteCmd.Flags().BoolVarP(&exerciseYes, "yes", "y", false, "skip confirmation")
	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseDeleteCmd)
	rootCmd.AddCommand(exerciseCmd)
}
