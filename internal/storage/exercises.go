// ABOUTME: Exercise record CRUD operations for SQLite storage.
// ABOUTME: Implements Repository with prefix id resolution and duplicate detection.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/gymbot/internal/models"
)

const exerciseColumns = `id, name, category, week_number, max_reps`

// CreateExercise stores a new record. A record for the same (name, week)
// already present yields ErrDuplicate.
func (d *DB) CreateExercise(ctx context.Context, e *models.Exercise) error {
	query := `
		INSERT INTO exercises (id, name, category, week_number, max_reps)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := d.db.ExecContext(ctx, query, e.ID, e.Name, string(e.Category), e.WeekNumber, e.MaxReps)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create exercise %s week %d: %w", e.Name, e.WeekNumber, ErrDuplicate)
		}
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// GetExercise retrieves a record by id or id prefix.
func (d *DB) GetExercise(ctx context.Context, idOrPrefix string) (*models.Exercise, error) {
	id, err := d.resolveExerciseID(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	return d.GetExerciseByID(ctx, id)
}

// GetExerciseByID retrieves a record by its full id. A prefix never matches.
func (d *DB) GetExerciseByID(ctx context.Context, id string) (*models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = ?`
	return scanExercise(d.db.QueryRowContext(ctx, query, id))
}

// ListExercises returns records in insertion order. The category filter
// ignores letter case.
func (d *DB) ListExercises(ctx context.Context, f Filter) ([]models.Exercise, error) {
	var where []string
	var args []interface{}

	if f.Week > 0 {
		where = append(where, "week_number = ?")
		args = append(args, f.Week)
	}
	if f.Category != "" {
		where = append(where, "UPPER(category) = UPPER(?)")
		args = append(args, f.Category)
	}

	query := `SELECT ` + exerciseColumns + ` FROM exercises`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY rowid ASC"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// UpdateExercise replaces every field of the record with e.ID.
func (d *DB) UpdateExercise(ctx context.Context, e *models.Exercise) error {
	query := `
		UPDATE exercises
		SET name = ?, category = ?, week_number = ?, max_reps = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := d.db.ExecContext(ctx, query, e.Name, string(e.Category), e.WeekNumber, e.MaxReps, e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update exercise %s: %w", e.ID, ErrDuplicate)
		}
		return fmt.Errorf("update exercise: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update exercise %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

// DeleteExercise removes a record by id or id prefix.
func (d *DB) DeleteExercise(ctx context.Context, idOrPrefix string) error {
	id, err := d.resolveExerciseID(ctx, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return d.DeleteExerciseByID(ctx, id)
}

// DeleteExerciseByID removes the record with exactly this id.
func (d *DB) DeleteExerciseByID(ctx context.Context, id string) error {
	result, err := d.db.ExecContext(ctx, "DELETE FROM exercises WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete exercise %s: %w", id, ErrNotFound)
	}

	return nil
}

// resolveExerciseID finds the full id from a prefix.
func (d *DB) resolveExerciseID(ctx context.Context, idOrPrefix string) (string, error) {
	if idOrPrefix == "" {
		return "", ErrNotFound
	}
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	query := `SELECT id FROM exercises WHERE id LIKE ? || '%'`
	rows, err := d.db.QueryContext(ctx, query, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve exercise ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan exercise ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve exercise ID: %w", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%s: %w", idOrPrefix, ErrNotFound)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%s matches %d records: %w", idOrPrefix, len(matches), ErrAmbiguous)
	}

	return matches[0], nil
}

// scanExercise scans a single row into an Exercise.
func scanExercise(row *sql.Row) (*models.Exercise, error) {
	var e models.Exercise
	var category string

	err := row.Scan(&e.ID, &e.Name, &category, &e.WeekNumber, &e.MaxReps)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}
	e.Category = models.Category(category)

	return &e, nil
}

// scanExercises scans multiple rows into a slice of Exercises.
func scanExercises(rows *sql.Rows) ([]models.Exercise, error) {
	exercises := []models.Exercise{}

	for rows.Next() {
		var e models.Exercise
		var category string

		if err := rows.Scan(&e.ID, &e.Name, &category, &e.WeekNumber, &e.MaxReps); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		e.Category = models.Category(category)

		exercises = append(exercises, e)
	}

	return exercises, rows.Err()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
