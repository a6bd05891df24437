// ABOUTME: Pivots flat exercise records into a week-by-exercise grid.
// ABOUTME: The grid is derived state, rebuilt from the full record list every time.
package pivot

import (
	"sort"

	"github.com/harperreed/gymbot/internal/models"
)

// Cell is the value at one (week, exercise) position. An empty cell has
// nil Reps and an empty ID.
type Cell struct {
	Reps *int   `json:"reps" yaml:"reps"`
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
}

// Empty reports whether no record backs the cell.
func (c Cell) Empty() bool {
	return c.Reps == nil
}

// Column is one exercise with the category of its first occurrence.
type Column struct {
	Name     string          `json:"name" yaml:"name"`
	Category models.Category `json:"category" yaml:"category"`
}

// Group is a category header with its columns.
type Group struct {
	Category models.Category `json:"category" yaml:"category"`
	Columns  []Column        `json:"columns" yaml:"columns"`
}

// Row is one week of the grid.
type Row struct {
	Week  int             `json:"week" yaml:"week"`
	Cells map[string]Cell `json:"cells" yaml:"cells"`
}

// Conflict is a (week, name) pair backed by more than one record.
// IDs are in input order; the first one is the record the grid shows.
type Conflict struct {
	Week int      `json:"week" yaml:"week"`
	Name string   `json:"name" yaml:"name"`
	IDs  []string `json:"ids" yaml:"ids"`
}

// Grid is the pivoted view of a record list.
type Grid struct {
	Weeks     []int      `json:"weeks" yaml:"weeks"`
	Columns   []Column   `json:"columns" yaml:"columns"`
	Groups    []Group    `json:"groups" yaml:"groups"`
	Rows      []Row      `json:"rows" yaml:"rows"`
	Conflicts []Conflict `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

type cellKey struct {
	week int
	name string
}

// Forward builds the grid for records. Input order only matters for
// first-occurrence decisions: the category of a name and which of several
// duplicate records fills a cell.
func Forward(records []models.Exercise) *Grid {
	columns := Exercises(records)
	weeks := Weeks(records)

	first := make(map[cellKey]int, len(records))
	var conflictOrder []cellKey
	dupes := make(map[cellKey][]string)
	for i, r := range records {
		k := cellKey{week: r.WeekNumber, name: r.Name}
		j, seen := first[k]
		if !seen {
			first[k] = i
			continue
		}
		if _, tracked := dupes[k]; !tracked {
			conflictOrder = append(conflictOrder, k)
			dupes[k] = []string{records[j].ID}
		}
		dupes[k] = append(dupes[k], r.ID)
	}

	rows := make([]Row, 0, len(weeks))
	for _, week := range weeks {
		row := Row{Week: week, Cells: make(map[string]Cell, len(columns))}
		for _, col := range columns {
			i, ok := first[cellKey{week: week, name: col.Name}]
			if !ok {
				row.Cells[col.Name] = Cell{}
				continue
			}
			reps := records[i].MaxReps
			row.Cells[col.Name] = Cell{Reps: &reps, ID: records[i].ID}
		}
		rows = append(rows, row)
	}

	var conflicts []Conflict
	for _, k := range conflictOrder {
		conflicts = append(conflicts, Conflict{Week: k.week, Name: k.name, IDs: dupes[k]})
	}

	return &Grid{
		Weeks:     weeks,
		Columns:   columns,
		Groups:    groupColumns(columns),
		Rows:      rows,
		Conflicts: conflicts,
	}
}

// Exercises returns each unique exercise name with the category of its
// first occurrence, in first-seen order.
func Exercises(records []models.Exercise) []Column {
	seen := make(map[string]bool)
	var columns []Column
	for _, r := range records {
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		columns = append(columns, Column{Name: r.Name, Category: r.Category})
	}
	return columns
}

// Weeks returns the distinct week numbers in ascending order.
func Weeks(records []models.Exercise) []int {
	seen := make(map[int]bool)
	var weeks []int
	for _, r := range records {
		if seen[r.WeekNumber] {
			continue
		}
		seen[r.WeekNumber] = true
		weeks = append(weeks, r.WeekNumber)
	}
	sort.Ints(weeks)
	return weeks
}

// CategoryOf returns the first-seen category for name.
func CategoryOf(records []models.Exercise, name string) (models.Category, bool) {
	for _, r := range records {
		if r.Name == name {
			return r.Category, true
		}
	}
	return "", false
}

// Find returns the first record for (week, name) in input order.
func Find(records []models.Exercise, week int, name string) (models.Exercise, bool) {
	for _, r := range records {
		if r.WeekNumber == week && r.Name == name {
			return r, true
		}
	}
	return models.Exercise{}, false
}

// groupColumns splits columns under the fixed category headers. Columns
// with a category outside the enumeration are left out of every group.
func groupColumns(columns []Column) []Group {
	var groups []Group
	for _, cat := range models.Categories() {
		var members []Column
		for _, col := range columns {
			if col.Category == cat {
				members = append(members, col)
			}
		}
		if len(members) > 0 {
			groups = append(groups, Group{Category: cat, Columns: members})
		}
	}
	return groups
}

// Cell looks up the cell at (week, name).
func (g *Grid) Cell(week int, name string) (Cell, bool) {
	for _, row := range g.Rows {
		if row.Week != week {
			continue
		}
		c, ok := row.Cells[name]
		return c, ok
	}
	return Cell{}, false
}

// CellCount returns the number of cells, populated or empty.
func (g *Grid) CellCount() int {
	n := 0
	for _, row := range g.Rows {
		n += len(row.Cells)
	}
	return n
}

// HasColumn reports whether name is one of the grid's exercises.
func (g *Grid) HasColumn(name string) bool {
	for _, col := range g.Columns {
		if col.Name == name {
			return true
		}
	}
	return false
}

// Empty reports whether the grid has no rows.
func (g *Grid) Empty() bool {
	return len(g.Rows) == 0
}

// OrderedColumns returns grouped columns in header order, followed by any
// columns that belong to no group.
func (g *Grid) OrderedColumns() []Column {
	var out []Column
	grouped := make(map[string]bool)
	for _, grp := range g.Groups {
		for _, col := range grp.Columns {
			out = append(out, col)
			grouped[col.Name] = true
		}
	}
	for _, col := range g.Columns {
		if !grouped[col.Name] {
			out = append(out, col)
		}
	}
	return out
}
