// ABOUTME: Exercise record model and Category enum for rep tracking.
// ABOUTME: One record holds the max reps for a named exercise in a given week.
package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category classifies an exercise by movement type.
type Category string

const (
	CategoryPush Category = "PUSH"
	CategoryPull Category = "PULL"
	CategoryLeg  Category = "LEG"
)

// Categories returns the known categories in display order.
func Categories() []Category {
	return []Category{CategoryPush, CategoryPull, CategoryLeg}
}

// IsValidCategory reports whether s is a known category. The check is
// case-sensitive, matching the wire format.
func IsValidCategory(s string) bool {
	switch Category(s) {
	case CategoryPush, CategoryPull, CategoryLeg:
		return true
	}
	return false
}

// ParseCategory parses user input in any letter case.
func ParseCategory(s string) (Category, error) {
	c := strings.ToUpper(strings.TrimSpace(s))
	if !IsValidCategory(c) {
		return "", fmt.Errorf("unknown category: %s (use push, pull, or leg)", s)
	}
	return Category(c), nil
}

var (
	ErrEmptyName       = errors.New("exercise name is required")
	ErrInvalidCategory = errors.New("category must be PUSH, PULL, or LEG")
	ErrInvalidWeek     = errors.New("week number must be positive")
	ErrNegativeReps    = errors.New("max reps must not be negative")
)

// Exercise is one persisted (name, category, week, reps) record.
type Exercise struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	MaxReps    int      `json:"maxReps" yaml:"max_reps"`
	WeekNumber int      `json:"weekNumber" yaml:"week_number"`
	Category   Category `json:"category" yaml:"category"`
}

// ExerciseInput is the request body for creating or updating a record.
type ExerciseInput struct {
	Name       string   `json:"name"`
	MaxReps    int      `json:"maxReps"`
	WeekNumber int      `json:"weekNumber"`
	Category   Category `json:"category"`
}

// Validate checks the field invariants of a record body.
func (in ExerciseInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if !IsValidCategory(string(in.Category)) {
		return ErrInvalidCategory
	}
	if in.WeekNumber < 1 {
		return ErrInvalidWeek
	}
	if in.MaxReps < 0 {
		return ErrNegativeReps
	}
	return nil
}

// NewExercise creates an Exercise from an input with a generated id.
func NewExercise(in ExerciseInput) *Exercise {
	return &Exercise{
		ID:         uuid.NewString(),
		Name:       in.Name,
		MaxReps:    in.MaxReps,
		WeekNumber: in.WeekNumber,
		Category:   in.Category,
	}
}

// Input returns the record's fields as an update body.
func (e Exercise) Input() ExerciseInput {
	return ExerciseInput{
		Name:       e.Name,
		MaxReps:    e.MaxReps,
		WeekNumber: e.WeekNumber,
		Category:   e.Category,
	}
}

// WithMaxReps returns a copy of the input with maxReps replaced.
func (in ExerciseInput) WithMaxReps(reps int) ExerciseInput {
	in.MaxReps = reps
	return in
}

// ShortID returns an 8-character id prefix for display.
func (e Exercise) ShortID() string {
	if len(e.ID) <= 8 {
		return e.ID
	}
	return e.ID[:8]
}

// GroupedExercises maps each present category to its records.
type GroupedExercises map[Category][]Exercise
