// ABOUTME: CLI commands for listing flat exercise records.
// ABOUTME: Filters by week or category, groups by category or week, and shows one record.
package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gymbot/internal/api"
	"github.com/harperreed/gymbot/internal/models"
	"github.com/spf13/cobra"
)

var (
	listWeek     int
	listCategory string
	listGrouped  bool
	listByWeek   bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List exercise records",
	Long: `List exercise records as stored, one per line.

OUTPUT FORMAT:

  Each line shows: ID  WEEK  CATEGORY  NAME  REPS

  The ID is an 8-character prefix of the record id.

FILTERING:

  --week N        only records of week N
  --category C    only records of category C (push, pull, leg)
  --grouped       group records under their category
  --by-week       group records under their week

EXAMPLES:

  gymbot list
  gymbot list --week 2
  gymbot list -c pull
  gymbot list --grouped`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		switch {
		case listGrouped:
			grouped, err := client.GroupedExercises(ctx)
			if err != nil {
				return storeErr(err)
			}
			printGrouped(out, grouped)
			return nil
		case listByWeek:
			byWeek, err := client.GroupedByWeek(ctx)
			if err != nil {
				return storeErr(err)
			}
			printByWeek(out, byWeek)
			return nil
		}

		var records []models.Exercise
		var err error
		switch {
		case listWeek > 0 && listCategory != "":
			return fmt.Errorf("use either --week or --category, not both")
		case listWeek > 0:
			records, err = client.ExercisesByWeek(ctx, listWeek)
		case listCategory != "":
			var c models.Category
			c, err = models.ParseCategory(listCategory)
			if err != nil {
				return err
			}
			records, err = client.ExercisesByCategory(ctx, c)
		default:
			records, err = client.ListExercises(ctx)
		}
		if err != nil {
			return storeErr(err)
		}

		if len(records) == 0 {
			fmt.Fprintln(out, "No records found.")
			return nil
		}
		printRecords(out, records)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one record by id or id prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := client.GetExercise(cmd.Context(), args[0])
		if api.IsNotFound(err) {
			e, err = findByPrefix(cmd, args[0])
		}
		if err != nil {
			return storeErr(err)
		}
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("ID:      "), e.ID)
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("Name:    "), e.Name)
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("Category:"), e.Category)
		fmt.Fprintf(out, "%s %d\n", faint.Sprint("Week:    "), e.WeekNumber)
		fmt.Fprintf(out, "%s %d\n", faint.Sprint("Max reps:"), e.MaxReps)
		return nil
	},
}

// findByPrefix resolves an id prefix, such as the 8 characters 'list'
// prints, against the full record list.
func findByPrefix(cmd *cobra.Command, prefix string) (*models.Exercise, error) {
	records, err := client.ListExercises(cmd.Context())
	if err != nil {
		return nil, err
	}
	var matches []models.Exercise
	for _, e := range records {
		if strings.HasPrefix(e.ID, prefix) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("record not found: %s", prefix)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%s matches %d records, use a longer prefix", prefix, len(matches))
	}
}

func printRecords(w io.Writer, records []models.Exercise) {
	faint := color.New(color.Faint)
	for _, e := range records {
		fmt.Fprintf(w, "%s %s %s %s %d\n",
			faint.Sprint(padRight(e.ShortID(), 8)),
			faint.Sprintf("wk%-3d", e.WeekNumber),
			padRight(string(e.Category), 4),
			padRight(truncate(e.Name, 24), 24),
			e.MaxReps)
	}
}

func printGrouped(w io.Writer, grouped models.GroupedExercises) {
	if len(grouped) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}
	for _, c := range models.Categories() {
		records, ok := grouped[c]
		if !ok {
			continue
		}
		categoryColors[c].Fprintf(w, "%s (%d)\n", c, len(records))
		printRecords(w, records)
	}
}

func printByWeek(w io.Writer, byWeek map[int][]models.Exercise) {
	if len(byWeek) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}
	weeks := make([]int, 0, len(byWeek))
	for week := range byWeek {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)
	bold := color.New(color.Bold)
	for _, week := range weeks {
		bold.Fprintf(w, "Week %d\n", week)
		printRecords(w, byWeek[week])
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().IntVarP(&listWeek, "week", "w", 0, "only records of this week")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "only records of this category")
	listCmd.Flags().BoolVarP(&listGrouped, "grouped", "g", false, "group records by category")
	listCmd.Flags().BoolVar(&listByWeek, "by-week", false, "group records by week")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
