// ABOUTME: Tests for the reference server's routes.
// ABOUTME: Drives the chi router over a temp SQLite store with httptest.
package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/harperreed/gymbot/internal/models"
	"github.com/harperreed/gymbot/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "gymbot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, log.New(io.Discard), Info{Version: "test"})
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func create(t *testing.T, s *Server, name string, category models.Category, week, reps int) models.Exercise {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/exercises", models.ExerciseInput{
		Name: name, Category: category, WeekNumber: week, MaxReps: reps,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var e models.Exercise
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
	return e
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/health/check", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[models.HealthStatus](t, rec)
	assert.Equal(t, "ok", status.Status)
	assert.NotZero(t, status.Timestamp)

	rec = do(t, s, http.MethodGet, "/api/health/info", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[models.HealthInfo](t, rec)
	assert.Equal(t, "gymbot", info.Application)
	assert.Equal(t, "test", info.Version)
	assert.Equal(t, "development", info.Environment)
}

func TestHealthCheckStorageDown(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "gymbot.db"))
	require.NoError(t, err)
	s := New(db, log.New(io.Discard), Info{})
	require.NoError(t, db.Close())

	rec := do(t, s, http.MethodGet, "/api/health/check", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	status := decode[models.HealthStatus](t, rec)
	assert.Equal(t, "error", status.Status)
}

func TestListEmpty(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/exercises", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestCreateAndGet(t *testing.T) {
	s := newTestServer(t)

	e := create(t, s, "Bench", models.CategoryPush, 1, 10)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, 10, e.MaxReps)

	rec := do(t, s, http.MethodGet, "/api/exercises/"+e.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, e, decode[models.Exercise](t, rec))
}

func TestCreateInvalid(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"empty name", models.ExerciseInput{Category: models.CategoryPush, WeekNumber: 1}},
		{"lowercase category", models.ExerciseInput{Name: "Bench", Category: "push", WeekNumber: 1}},
		{"week zero", models.ExerciseInput{Name: "Bench", Category: models.CategoryPush}},
		{"negative reps", models.ExerciseInput{Name: "Bench", Category: models.CategoryPush, WeekNumber: 1, MaxReps: -1}},
		{"not an object", "bench"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/exercises", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestCreateDuplicateConflicts(t *testing.T) {
	s := newTestServer(t)
	create(t, s, "Squat", models.CategoryLeg, 1, 5)

	rec := do(t, s, http.MethodPost, "/api/exercises", models.ExerciseInput{
		Name: "Squat", Category: models.CategoryLeg, WeekNumber: 1, MaxReps: 7,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdate(t *testing.T) {
	s := newTestServer(t)
	e := create(t, s, "Row", models.CategoryPull, 1, 8)

	in := e.Input().WithMaxReps(12)
	rec := do(t, s, http.MethodPut, "/api/exercises/"+e.ID, in)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[models.Exercise](t, rec)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, 12, got.MaxReps)

	rec = do(t, s, http.MethodPut, "/api/exercises/00000000-0000-0000-0000-000000000000", in)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/exercises/"+e.ID, models.ExerciseInput{Name: "Row"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDelete(t *testing.T) {
	s := newTestServer(t)
	e := create(t, s, "Row", models.CategoryPull, 1, 8)

	rec := do(t, s, http.MethodDelete, "/api/exercises/"+e.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, s, http.MethodDelete, "/api/exercises/"+e.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/exercises/"+e.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIDRoutesRequireFullID(t *testing.T) {
	s := newTestServer(t)
	e := create(t, s, "Row", models.CategoryPull, 1, 8)
	prefix := "/api/exercises/" + e.ID[:8]

	rec := do(t, s, http.MethodGet, prefix, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPut, prefix, models.ExerciseInput{
		Name: "Row", Category: models.CategoryPull, WeekNumber: 1, MaxReps: 9,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodDelete, prefix, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/exercises/"+e.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[models.Exercise](t, rec)
	assert.Equal(t, 8, got.MaxReps)
}

func TestQueries(t *testing.T) {
	s := newTestServer(t)
	create(t, s, "Bench", models.CategoryPush, 1, 10)
	create(t, s, "Row", models.CategoryPull, 1, 8)
	create(t, s, "Bench", models.CategoryPush, 2, 11)

	rec := do(t, s, http.MethodGet, "/api/exercises/week/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Exercise](t, rec), 2)

	rec = do(t, s, http.MethodGet, "/api/exercises/week/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/exercises/category/push", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Exercise](t, rec), 2)

	rec = do(t, s, http.MethodGet, "/api/exercises/grouped", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	grouped := decode[models.GroupedExercises](t, rec)
	assert.Len(t, grouped[models.CategoryPush], 2)
	assert.Len(t, grouped[models.CategoryPull], 1)
	_, hasLeg := grouped[models.CategoryLeg]
	assert.False(t, hasLeg)

	rec = do(t, s, http.MethodGet, "/api/exercises/grouped/week", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	byWeek := decode[map[int][]models.Exercise](t, rec)
	assert.Len(t, byWeek[1], 2)
	assert.Len(t, byWeek[2], 1)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodOptions, "/api/exercises", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
}
