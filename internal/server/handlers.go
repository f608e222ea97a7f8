package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleLogWorkout(w http.ResponseWriter, r *http.Request) {
	var entry models.WorkoutEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := entry.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	id, err := s.db.LogWorkout(r.Context(), entry)
	if err != nil {
		s.log.Error("log workout", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseWorkoutFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.db.ListWorkouts(r.Context(), filter)
	if err != nil {
		s.writeStoreError(w, "list workouts", err)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	detail, err := s.db.GetWorkoutDetail(r.Context(), workoutID)
	if err != nil {
		s.writeStoreError(w, "get workout", err)
		return
	}
	if detail == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	deleted, err := s.db.DeleteWorkout(r.Context(), workoutID)
	if err != nil {
		s.writeStoreError(w, "delete workout", err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleListWorkoutTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.db.ListWorkoutTypes(r.Context())
	if err != nil {
		s.writeStoreError(w, "list workout types", err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.db.ListExerciseNames(r.Context())
	if err != nil {
		s.writeStoreError(w, "list exercises", err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) writeStoreError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, storage.ErrInvalidArgument) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.log.Error(op, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseWorkoutFilter builds the list filter from query parameters. Dates are
// strict YYYY-MM-DD; anything else fails before a query is issued.
func parseWorkoutFilter(r *http.Request) (storage.WorkoutFilter, error) {
	var filter storage.WorkoutFilter

	if v := r.URL.Query().Get("start"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &d
	}
	if v := r.URL.Query().Get("end"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &d
	}
	filter.WorkoutType = r.URL.Query().Get("type")
	return filter, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, errors.New("invalid date " + strconv.Quote(s) + ": expected YYYY-MM-DD")
	}
	return d, nil
}

// queryInt reads an integer query parameter, falling back to def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New("invalid " + name + " parameter: " + strconv.Quote(v))
	}
	return n, nil
}
