// ABOUTME: Tests for the record-to-grid pivot.
// ABOUTME: Covers cell coverage, ordering, first-occurrence rules, and conflicts.
package pivot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/harperreed/gymbot/internal/models"
)

func rec(id, name string, cat models.Category, week, reps int) models.Exercise {
	return models.Exercise{ID: id, Name: name, Category: cat, WeekNumber: week, MaxReps: reps}
}

func intp(n int) *int { return &n }

func sampleRecords() []models.Exercise {
	return []models.Exercise{
		rec("1", "Bench", models.CategoryPush, 2, 10),
		rec("2", "Row", models.CategoryPull, 1, 12),
		rec("3", "Squat", models.CategoryLeg, 3, 8),
		rec("4", "Bench", models.CategoryPush, 1, 9),
		rec("5", "Dip", models.CategoryPush, 3, 15),
	}
}

func TestForwardCoversEveryCell(t *testing.T) {
	tests := []struct {
		name    string
		records []models.Exercise
		cells   int
	}{
		{"empty", nil, 0},
		{"single", []models.Exercise{rec("1", "Bench", models.CategoryPush, 1, 5)}, 1},
		{"sparse", sampleRecords(), 3 * 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Forward(tt.records)
			if got := g.CellCount(); got != tt.cells {
				t.Errorf("CellCount() = %d, want %d", got, tt.cells)
			}
			for _, row := range g.Rows {
				for _, col := range g.Columns {
					if _, ok := row.Cells[col.Name]; !ok {
						t.Errorf("week %d missing cell for %s", row.Week, col.Name)
					}
				}
			}
		})
	}
}

func TestForwardWeeksSortedAndUnique(t *testing.T) {
	g := Forward(sampleRecords())
	if diff := cmp.Diff([]int{1, 2, 3}, g.Weeks); diff != "" {
		t.Errorf("Weeks mismatch (-want +got):\n%s", diff)
	}
	for i, row := range g.Rows {
		if row.Week != g.Weeks[i] {
			t.Errorf("Rows[%d].Week = %d, want %d", i, row.Week, g.Weeks[i])
		}
	}
}

func TestForwardWeeksNumericOrder(t *testing.T) {
	g := Forward([]models.Exercise{
		rec("1", "Bench", models.CategoryPush, 10, 1),
		rec("2", "Bench", models.CategoryPush, 9, 1),
		rec("3", "Bench", models.CategoryPush, 100, 1),
	})
	if diff := cmp.Diff([]int{9, 10, 100}, g.Weeks); diff != "" {
		t.Errorf("Weeks mismatch (-want +got):\n%s", diff)
	}
}

func TestForwardCells(t *testing.T) {
	g := Forward(sampleRecords())

	tests := []struct {
		week int
		name string
		want Cell
	}{
		{1, "Bench", Cell{Reps: intp(9), ID: "4"}},
		{2, "Bench", Cell{Reps: intp(10), ID: "1"}},
		{1, "Row", Cell{Reps: intp(12), ID: "2"}},
		{2, "Row", Cell{}},
		{3, "Squat", Cell{Reps: intp(8), ID: "3"}},
		{1, "Dip", Cell{}},
	}

	for _, tt := range tests {
		got, ok := g.Cell(tt.week, tt.name)
		if !ok {
			t.Errorf("Cell(%d, %s) missing", tt.week, tt.name)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Cell(%d, %s) mismatch (-want +got):\n%s", tt.week, tt.name, diff)
		}
	}
}

func TestForwardEmptyCellIsExplicit(t *testing.T) {
	g := Forward(sampleRecords())
	c, ok := g.Cell(2, "Squat")
	if !ok {
		t.Fatal("expected an explicit empty cell")
	}
	if !c.Empty() || c.ID != "" {
		t.Errorf("expected empty cell, got %+v", c)
	}
}

func TestForwardGroupsInFixedOrder(t *testing.T) {
	g := Forward([]models.Exercise{
		rec("1", "Squat", models.CategoryLeg, 1, 5),
		rec("2", "Row", models.CategoryPull, 1, 5),
		rec("3", "Bench", models.CategoryPush, 1, 5),
		rec("4", "Press", models.CategoryPush, 1, 5),
	})

	want := []Group{
		{Category: models.CategoryPush, Columns: []Column{{"Bench", models.CategoryPush}, {"Press", models.CategoryPush}}},
		{Category: models.CategoryPull, Columns: []Column{{"Row", models.CategoryPull}}},
		{Category: models.CategoryLeg, Columns: []Column{{"Squat", models.CategoryLeg}}},
	}
	if diff := cmp.Diff(want, g.Groups); diff != "" {
		t.Errorf("Groups mismatch (-want +got):\n%s", diff)
	}
}

func TestForwardOmitsEmptyGroups(t *testing.T) {
	g := Forward([]models.Exercise{rec("1", "Row", models.CategoryPull, 1, 5)})
	if len(g.Groups) != 1 || g.Groups[0].Category != models.CategoryPull {
		t.Errorf("expected only a PULL group, got %+v", g.Groups)
	}
}

func TestForwardFirstOccurrenceCategoryWins(t *testing.T) {
	g := Forward([]models.Exercise{
		rec("a", "Row", models.CategoryPull, 1, 10),
		rec("b", "Row", models.CategoryPush, 2, 11),
	})

	if diff := cmp.Diff([]Column{{Name: "Row", Category: models.CategoryPull}}, g.Columns); diff != "" {
		t.Errorf("Columns mismatch (-want +got):\n%s", diff)
	}
	if len(g.Groups) != 1 || g.Groups[0].Category != models.CategoryPull {
		t.Errorf("expected Row under PULL, got %+v", g.Groups)
	}
}

func TestForwardUnknownCategoryKeepsCells(t *testing.T) {
	g := Forward([]models.Exercise{
		rec("1", "Plank", models.Category("core"), 1, 60),
		rec("2", "Bench", models.CategoryPush, 1, 5),
	})

	if !g.HasColumn("Plank") {
		t.Fatal("expected Plank column")
	}
	if c, _ := g.Cell(1, "Plank"); c.Empty() {
		t.Error("expected Plank cell to be populated")
	}
	for _, grp := range g.Groups {
		for _, col := range grp.Columns {
			if col.Name == "Plank" {
				t.Error("Plank should not be in any category group")
			}
		}
	}
	ordered := g.OrderedColumns()
	if len(ordered) != 2 || ordered[0].Name != "Bench" || ordered[1].Name != "Plank" {
		t.Errorf("OrderedColumns() = %+v", ordered)
	}
}

func TestForwardDuplicateFirstMatchWinsAndIsReported(t *testing.T) {
	g := Forward([]models.Exercise{
		rec("first", "Bench", models.CategoryPush, 1, 5),
		rec("other", "Row", models.CategoryPull, 1, 7),
		rec("second", "Bench", models.CategoryPush, 1, 99),
		rec("third", "Bench", models.CategoryPush, 1, 42),
	})

	c, _ := g.Cell(1, "Bench")
	if c.ID != "first" || *c.Reps != 5 {
		t.Errorf("expected first record to surface, got %+v", c)
	}

	want := []Conflict{{Week: 1, Name: "Bench", IDs: []string{"first", "second", "third"}}}
	if diff := cmp.Diff(want, g.Conflicts); diff != "" {
		t.Errorf("Conflicts mismatch (-want +got):\n%s", diff)
	}
}

func TestForwardNoConflictsForCleanData(t *testing.T) {
	if g := Forward(sampleRecords()); len(g.Conflicts) != 0 {
		t.Errorf("expected no conflicts, got %+v", g.Conflicts)
	}
}

func TestForwardIsIdempotent(t *testing.T) {
	records := sampleRecords()
	first := Forward(records)
	second := Forward(records)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Forward not idempotent (-first +second):\n%s", diff)
	}
}

func TestForwardIgnoresInputOrderForLayout(t *testing.T) {
	records := sampleRecords()
	reversed := make([]models.Exercise, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}

	a := Forward(records)
	b := Forward(reversed)
	if diff := cmp.Diff(a.Weeks, b.Weeks); diff != "" {
		t.Errorf("weeks differ:\n%s", diff)
	}
	if diff := cmp.Diff(a.Rows, b.Rows); diff != "" {
		t.Errorf("rows differ:\n%s", diff)
	}
}

func TestForwardEmptyInput(t *testing.T) {
	g := Forward(nil)
	if !g.Empty() {
		t.Error("expected empty grid")
	}
	if len(g.Columns) != 0 || len(g.Groups) != 0 {
		t.Errorf("expected no columns or groups, got %+v", g)
	}
}
