// ABOUTME: Exercise and health HTTP handlers.
// ABOUTME: Maps repository errors onto 400, 404, and 409 responses.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/harperreed/gymbot/internal/models"
	"github.com/harperreed/gymbot/internal/storage"
)

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UnixMilli(),
		Message:   "gymbot backend is healthy",
	}
	if err := s.repo.Ping(r.Context()); err != nil {
		s.log.Error("storage ping failed", "err", err)
		status.Status = "error"
		status.Message = "storage unavailable"
		writeJSON(w, http.StatusServiceUnavailable, status)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleHealthInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthInfo{
		Application: "gymbot",
		Version:     s.info.Version,
		Environment: s.info.Environment,
		Features:    "Exercise tracking, weekly rep grid",
	})
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, storage.Filter{})
}

func (s *Server) handleExercisesByWeek(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil || week < 1 {
		writeError(w, http.StatusBadRequest, "week must be a positive integer")
		return
	}
	s.list(w, r, storage.Filter{Week: week})
}

func (s *Server) handleExercisesByCategory(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, storage.Filter{Category: chi.URLParam(r, "category")})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request, f storage.Filter) {
	exercises, err := s.repo.ListExercises(r.Context(), f)
	if err != nil {
		s.internalError(w, "list exercises", err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleGroupedByCategory(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.repo.ListExercises(r.Context(), storage.Filter{})
	if err != nil {
		s.internalError(w, "list exercises", err)
		return
	}
	grouped := models.GroupedExercises{}
	for _, e := range exercises {
		grouped[e.Category] = append(grouped[e.Category], e)
	}
	writeJSON(w, http.StatusOK, grouped)
}

func (s *Server) handleGroupedByWeek(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.repo.ListExercises(r.Context(), storage.Filter{})
	if err != nil {
		s.internalError(w, "list exercises", err)
		return
	}
	grouped := map[int][]models.Exercise{}
	for _, e := range exercises {
		grouped[e.WeekNumber] = append(grouped[e.WeekNumber], e)
	}
	writeJSON(w, http.StatusOK, grouped)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	e, err := s.repo.GetExerciseByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storageError(w, "get exercise", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	e := models.NewExercise(in)
	if err := s.repo.CreateExercise(r.Context(), e); err != nil {
		s.storageError(w, "create exercise", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	existing, err := s.repo.GetExerciseByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storageError(w, "update exercise", err)
		return
	}

	e := &models.Exercise{
		ID:         existing.ID,
		Name:       in.Name,
		MaxReps:    in.MaxReps,
		WeekNumber: in.WeekNumber,
		Category:   in.Category,
	}
	if err := s.repo.UpdateExercise(r.Context(), e); err != nil {
		s.storageError(w, "update exercise", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteExerciseByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.storageError(w, "delete exercise", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeInput(w http.ResponseWriter, r *http.Request) (models.ExerciseInput, bool) {
	var in models.ExerciseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return in, false
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return in, false
	}
	return in, true
}

func (s *Server) storageError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "exercise not found")
	case errors.Is(err, storage.ErrAmbiguous):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrDuplicate):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.internalError(w, op, err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, "err", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
