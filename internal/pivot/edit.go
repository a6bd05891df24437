// ABOUTME: Turns single-cell grid edits and management commands into store actions.
// ABOUTME: Actions are plans only; executing them is the caller's job.
package pivot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/gymbot/internal/models"
)

// ErrInvalidReps is returned when an edited value is not a non-negative integer.
var ErrInvalidReps = errors.New("reps must be a whole number")

// ActionKind says which store call an Action needs.
type ActionKind int

const (
	ActionCreate ActionKind = iota
	ActionUpdate
)

func (k ActionKind) String() string {
	switch k {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action is one create or update against the record store.
// ID is set only for updates.
type Action struct {
	Kind  ActionKind
	ID    string
	Input models.ExerciseInput
}

// ParseReps parses an edited cell value. It is stricter than a prefix
// parse: "12abc" and "12.5" are rejected, not read as 12.
func ParseReps(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReps, value)
	}
	return n, nil
}

// ApplyEdit plans the store call for setting (week, name) to value.
// An existing record keeps its id, name, week and category. A missing one
// is created with the category the name already has, or PUSH for a new name.
func ApplyEdit(records []models.Exercise, week int, name string, value string) (Action, error) {
	reps, err := ParseReps(value)
	if err != nil {
		return Action{}, err
	}

	if existing, ok := Find(records, week, name); ok {
		return Action{
			Kind:  ActionUpdate,
			ID:    existing.ID,
			Input: existing.Input().WithMaxReps(reps),
		}, nil
	}

	category, ok := CategoryOf(records, name)
	if !ok {
		category = models.CategoryPush
	}
	return Action{
		Kind: ActionCreate,
		Input: models.ExerciseInput{
			Name:       name,
			MaxReps:    reps,
			WeekNumber: week,
			Category:   category,
		},
	}, nil
}

// NextWeek returns one past the highest week, or 1 when there are none.
func NextWeek(records []models.Exercise) int {
	next := 1
	for _, r := range records {
		if r.WeekNumber >= next {
			next = r.WeekNumber + 1
		}
	}
	return next
}

// PlanAddWeek plans a zero-rep record for every known exercise at the next week.
func PlanAddWeek(records []models.Exercise) (int, []Action) {
	week := NextWeek(records)
	var actions []Action
	for _, col := range Exercises(records) {
		actions = append(actions, Action{
			Kind: ActionCreate,
			Input: models.ExerciseInput{
				Name:       col.Name,
				MaxReps:    0,
				WeekNumber: week,
				Category:   col.Category,
			},
		})
	}
	return week, actions
}

// PlanAddExercise plans a zero-rep record for a new exercise at the earliest
// week. Other weeks are not backfilled.
func PlanAddExercise(records []models.Exercise, name string, category models.Category) (Action, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Action{}, models.ErrEmptyName
	}
	if !models.IsValidCategory(string(category)) {
		return Action{}, models.ErrInvalidCategory
	}

	week := 1
	if weeks := Weeks(records); len(weeks) > 0 {
		week = weeks[0]
	}
	return Action{
		Kind: ActionCreate,
		Input: models.ExerciseInput{
			Name:       name,
			MaxReps:    0,
			WeekNumber: week,
			Category:   category,
		},
	}, nil
}

// PlanDeleteExercise returns the ids of every record named name, across all weeks.
func PlanDeleteExercise(records []models.Exercise, name string) []string {
	var ids []string
	for _, r := range records {
		if r.Name == name {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
