// ABOUTME: CLI command for printing the week-by-exercise grid.
// ABOUTME: Renders category headers, week rows, and conflict warnings; --tui opens the editor.
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/harperreed/gymbot/internal/models"
	"github.com/harperreed/gymbot/internal/pivot"
	"github.com/harperreed/gymbot/internal/tui"
	"github.com/spf13/cobra"
)

var tableTUI bool

var tableCmd = &cobra.Command{
	Use:     "table",
	Aliases: []string{"grid", "t"},
	Short:   "Show the rep grid",
	Long: `Show every week and exercise as a grid.

One row per week, one column per exercise. Columns are grouped by category
(PUSH, PULL, LEG). A blank cell prints as '-'.

If two records share the same week and exercise, the first one is shown
and a warning lists every id involved.

EXAMPLES:

  gymbot table         # Print the grid
  gymbot table --tui   # Edit the grid interactively`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := loadTracker(cmd.Context())
		if err != nil {
			return err
		}
		if tableTUI {
			return tui.Run(cmd.Context(), tr, client)
		}
		renderGrid(cmd.OutOrStdout(), tr.Grid())
		return nil
	},
}

var categoryColors = map[models.Category]*color.Color{
	models.CategoryPush: color.New(color.FgRed, color.Bold),
	models.CategoryPull: color.New(color.FgBlue, color.Bold),
	models.CategoryLeg:  color.New(color.FgGreen, color.Bold),
}

// renderGrid writes the grid as a bordered table.
func renderGrid(w io.Writer, grid *pivot.Grid) {
	if grid.Empty() {
		fmt.Fprintln(w, "No exercises yet. Add one with 'gymbot exercise add'.")
		return
	}

	var groups []string
	for _, grp := range grid.Groups {
		names := make([]string, len(grp.Columns))
		for i, col := range grp.Columns {
			names[i] = col.Name
		}
		c := categoryColors[grp.Category]
		groups = append(groups, c.Sprint(grp.Category)+" "+strings.Join(names, ", "))
	}
	fmt.Fprintln(w, strings.Join(groups, "  |  "))

	columns := grid.OrderedColumns()
	headers := []string{"Week"}
	for _, col := range columns {
		headers = append(headers, col.Name)
	}

	rows := make([][]string, 0, len(grid.Rows))
	for _, row := range grid.Rows {
		line := []string{strconv.Itoa(row.Week)}
		for _, col := range columns {
			line = append(line, cellText(row.Cells[col.Name]))
		}
		rows = append(rows, line)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			if col > 0 {
				return style.Align(lipgloss.Right)
			}
			return style
		})
	fmt.Fprintln(w, t.String())

	for _, c := range grid.Conflicts {
		color.New(color.FgYellow).Fprintf(w, "warning: week %d %q has %d records (%s); showing %s\n",
			c.Week, c.Name, len(c.IDs), strings.Join(c.IDs, ", "), c.IDs[0])
	}
}

func cellText(c pivot.Cell) string {
	if c.Empty() {
		return "-"
	}
	return strconv.Itoa(*c.Reps)
}

func init() {
	tableCmd.Flags().BoolVar(&tableTUI, "tui", false, "open the interactive grid editor")
	rootCmd.AddCommand(tableCmd)
}
