// ABOUTME: Exercise CRUD and query calls against the Record Store.
// ABOUTME: Each method maps 1:1 onto one REST endpoint under /exercises.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/harperreed/gymbot/internal/models"
)

// ListExercises returns every record.
func (c *Client) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	var out []models.Exercise
	if err := c.do(ctx, http.MethodGet, "/exercises", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GroupedExercises returns records keyed by category.
func (c *Client) GroupedExercises(ctx context.Context) (models.GroupedExercises, error) {
	out := models.GroupedExercises{}
	if err := c.do(ctx, http.MethodGet, "/exercises/grouped", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GroupedByWeek returns records keyed by week number.
func (c *Client) GroupedByWeek(ctx context.Context) (map[int][]models.Exercise, error) {
	out := map[int][]models.Exercise{}
	if err := c.do(ctx, http.MethodGet, "/exercises/grouped/week", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetExercise returns the record with id.
func (c *Client) GetExercise(ctx context.Context, id string) (*models.Exercise, error) {
	var out models.Exercise
	if err := c.do(ctx, http.MethodGet, "/exercises/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExercisesByWeek returns the records for one week.
func (c *Client) ExercisesByWeek(ctx context.Context, week int) ([]models.Exercise, error) {
	var out []models.Exercise
	if err := c.do(ctx, http.MethodGet, "/exercises/week/"+strconv.Itoa(week), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExercisesByCategory returns the records in one category.
func (c *Client) ExercisesByCategory(ctx context.Context, category models.Category) ([]models.Exercise, error) {
	var out []models.Exercise
	path := "/exercises/category/" + url.PathEscape(string(category))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateExercise stores a new record and returns it with its assigned id.
func (c *Client) CreateExercise(ctx context.Context, in models.ExerciseInput) (*models.Exercise, error) {
	var out models.Exercise
	if err := c.do(ctx, http.MethodPost, "/exercises", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateExercise replaces the fields of record id.
func (c *Client) UpdateExercise(ctx context.Context, id string, in models.ExerciseInput) (*models.Exercise, error) {
	var out models.Exercise
	if err := c.do(ctx, http.MethodPut, "/exercises/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteExercise removes record id.
func (c *Client) DeleteExercise(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/exercises/"+url.PathEscape(id), nil, nil)
}
