// ABOUTME: Repository interface for exercise record storage.
// ABOUTME: Defines the CRUD contract the reference server is written against.
package storage

import (
	"context"
	"errors"

	"github.com/harperreed/gymbot/internal/models"
)

var (
	// ErrNotFound is returned when no record matches an id.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a (name, week) pair already has a record.
	ErrDuplicate = errors.New("exercise already recorded for that week")
	// ErrAmbiguous is returned when an id prefix matches several records.
	ErrAmbiguous = errors.New("ambiguous id prefix")
)

// Filter narrows ListExercises. Zero values match everything.
type Filter struct {
	Week     int
	Category string
}

// Repository defines the storage interface for exercise records.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	CreateExercise(ctx context.Context, e *models.Exercise) error
	GetExercise(ctx context.Context, idOrPrefix string) (*models.Exercise, error)
	GetExerciseByID(ctx context.Context, id string) (*models.Exercise, error)
	ListExercises(ctx context.Context, f Filter) ([]models.Exercise, error)
	UpdateExercise(ctx context.Context, e *models.Exercise) error
	DeleteExercise(ctx context.Context, idOrPrefix string) error
	DeleteExerciseByID(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close() error
}
