// ABOUTME: Table view controller owning the record list, grid, and UI state.
// ABOUTME: Every mutation goes to the store and is followed by a full reload.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harperreed/gymbot/internal/api"
	"github.com/harperreed/gymbot/internal/models"
	"github.com/harperreed/gymbot/internal/pivot"
)

// Store is the subset of the Record Store the tracker needs.
type Store interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	CreateExercise(ctx context.Context, in models.ExerciseInput) (*models.Exercise, error)
	UpdateExercise(ctx context.Context, id string, in models.ExerciseInput) (*models.Exercise, error)
	DeleteExercise(ctx context.Context, id string) error
}

var _ Store = (*api.Client)(nil)

// ErrUnknownExercise is returned when deleting a name with no records.
var ErrUnknownExercise = errors.New("no records for exercise")

// ErrStale is returned by Load when a newer load superseded it.
var ErrStale = errors.New("superseded by a newer request")

// ConfirmFunc asks the user to confirm deleting every record of name.
type ConfirmFunc func(name string) bool

// State is a point-in-time copy of the view state.
type State struct {
	Records []models.Exercise
	Grid    *pivot.Grid
	Loading bool
	Err     string
}

// Tracker holds the records and the grid derived from them. It never
// holds its lock across a store call.
type Tracker struct {
	store Store
	log   *log.Logger

	mu       sync.Mutex
	records  []models.Exercise
	grid     *pivot.Grid
	inflight int
	errMsg   string
	loadSeq  uint64
}

// New creates a Tracker over store. A nil logger discards output.
func New(store Store, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tracker{
		store: store,
		log:   logger,
		grid:  pivot.Forward(nil),
	}
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return State{
		Records: append([]models.Exercise(nil), t.records...),
		Grid:    t.grid,
		Loading: t.inflight > 0,
		Err:     t.errMsg,
	}
}

// Records returns a copy of the current record list.
func (t *Tracker) Records() []models.Exercise {
	return t.Snapshot().Records
}

// Grid returns the current grid. Grids are never mutated after creation.
func (t *Tracker) Grid() *pivot.Grid {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.grid
}

// Load fetches the full record list and rebuilds the grid from scratch.
// A completion that arrives after a newer Load was issued is discarded
// and reported as ErrStale.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	t.loadSeq++
	token := t.loadSeq
	t.inflight++
	t.mu.Unlock()

	records, err := t.store.ListExercises(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.inflight--
	if token != t.loadSeq {
		t.log.Debug("discarding stale load", "token", token, "latest", t.loadSeq)
		return ErrStale
	}
	if err != nil {
		t.errMsg = api.Describe(err)
		t.log.Error("load exercises", "err", err)
		return err
	}
	t.records = records
	t.grid = pivot.Forward(records)
	t.errMsg = ""
	t.log.Debug("loaded exercises", "records", len(records), "weeks", len(t.grid.Weeks))
	return nil
}

// Edit sets the cell (week, name) to value. A value that is not a whole
// number is rejected: Edit returns false and touches neither the store nor
// the local state. Every executed edit reloads; Load drops completions
// that a newer load has overtaken.
func (t *Tracker) Edit(ctx context.Context, week int, name, value string) (bool, error) {
	action, err := pivot.ApplyEdit(t.Records(), week, name, value)
	if err != nil {
		t.log.Debug("edit rejected", "week", week, "exercise", name, "value", value)
		return false, nil
	}

	if err := t.execute(ctx, action); err != nil {
		return false, t.fail("edit", err)
	}
	return true, t.reload(ctx)
}

// AddWeek creates a zero-rep record at the next week for every known
// exercise, one call at a time. A failure part way leaves the earlier
// creates in place.
func (t *Tracker) AddWeek(ctx context.Context) (int, error) {
	week, actions := pivot.PlanAddWeek(t.Records())
	for _, a := range actions {
		if err := t.execute(ctx, a); err != nil {
			return week, t.fail("add week", err)
		}
	}
	t.log.Info("added week", "week", week, "exercises", len(actions))
	return week, t.reload(ctx)
}

// AddExercise creates a zero-rep record for a new exercise at the earliest week.
func (t *Tracker) AddExercise(ctx context.Context, name string, category models.Category) error {
	action, err := pivot.PlanAddExercise(t.Records(), name, category)
	if err != nil {
		return err
	}
	if err := t.execute(ctx, action); err != nil {
		return t.fail("add exercise", err)
	}
	t.log.Info("added exercise", "name", action.Input.Name, "category", category, "week", action.Input.WeekNumber)
	return t.reload(ctx)
}

// DeleteExercise removes every record of name across all weeks once
// confirm approves. It returns the number of records deleted.
func (t *Tracker) DeleteExercise(ctx context.Context, name string, confirm ConfirmFunc) (int, error) {
	ids := pivot.PlanDeleteExercise(t.Records(), name)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownExercise, name)
	}
	if confirm == nil || !confirm(name) {
		return 0, nil
	}
	for i, id := range ids {
		if err := t.store.DeleteExercise(ctx, id); err != nil {
			return i, t.fail("delete exercise", err)
		}
	}
	t.log.Info("deleted exercise", "name", name, "records", len(ids))
	return len(ids), t.reload(ctx)
}

func (t *Tracker) execute(ctx context.Context, a pivot.Action) error {
	switch a.Kind {
	case pivot.ActionCreate:
		_, err := t.store.CreateExercise(ctx, a.Input)
		return err
	case pivot.ActionUpdate:
		_, err := t.store.UpdateExercise(ctx, a.ID, a.Input)
		return err
	default:
		return fmt.Errorf("unknown action kind: %s", a.Kind)
	}
}

// reload is Load after a mutation. Being superseded by a newer load is
// not an error for the mutation.
func (t *Tracker) reload(ctx context.Context) error {
	if err := t.Load(ctx); err != nil && !errors.Is(err, ErrStale) {
		return err
	}
	return nil
}

func (t *Tracker) fail(op string, err error) error {
	t.mu.Lock()
	t.errMsg = api.Describe(err)
	t.mu.Unlock()
	t.log.Error(op, "err", err)
	return err
}
