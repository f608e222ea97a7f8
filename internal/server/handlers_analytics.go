package server

import (
	"net/http"
)

func (s *Server) handleProgression(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}

	points, err := s.db.ExerciseProgression(r.Context(), exercise)
	if err != nil {
		s.writeStoreError(w, "exercise progression", err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleTopSets(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}

	sets, err := s.db.TopSetByDate(r.Context(), exercise)
	if err != nil {
		s.writeStoreError(w, "top sets", err)
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

func (s *Server) handleOneRM(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}

	points, err := s.db.Estimated1RMProgression(r.Context(), exercise)
	if err != nil {
		s.writeStoreError(w, "1RM progression", err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleWeeklyVolume(w http.ResponseWriter, r *http.Request) {
	weeks, err := queryInt(r, "weeks", 12)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	volumes, err := s.db.GetWeeklyVolume(r.Context(), weeks)
	if err != nil {
		s.writeStoreError(w, "weekly volume", err)
		return
	}
	writeJSON(w, http.StatusOK, volumes)
}

func (s *Server) handleWeeklyCardio(w http.ResponseWriter, r *http.Request) {
	weeks, err := queryInt(r, "weeks", 12)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	summary, err := s.db.GetWeeklyCardioSummary(r.Context(), weeks)
	if err != nil {
		s.writeStoreError(w, "weekly cardio", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// CardioGoalProgress reports this week's cardio minutes against the
// configured weekly goal.
type CardioGoalProgress struct {
	Goal           int  `json:"goal"`
	CurrentMinutes int  `json:"current_minutes"`
	Remaining      int  `json:"remaining"`
	Reached        bool `json:"reached"`
}

func (s *Server) handleCardioGoal(w http.ResponseWriter, r *http.Request) {
	minutes, err := s.db.CurrentWeekCardioMinutes(r.Context())
	if err != nil {
		s.writeStoreError(w, "current week cardio", err)
		return
	}

	progress := CardioGoalProgress{
		Goal:           s.cardioGoal,
		CurrentMinutes: minutes,
		Reached:        minutes >= s.cardioGoal,
	}
	if !progress.Reached {
		progress.Remaining = s.cardioGoal - minutes
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handlePersonalRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.PersonalRecords(r.Context(), r.URL.Query().Get("exercise"))
	if err != nil {
		s.writeStoreError(w, "personal records", err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleVolumeByExercise(w http.ResponseWriter, r *http.Request) {
	volumes, err := s.db.VolumeByExercise(r.Context())
	if err != nil {
		s.writeStoreError(w, "volume by exercise", err)
		return
	}
	writeJSON(w, http.StatusOK, volumes)
}

func (s *Server) handleFrequency(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", 30)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	freq, err := s.db.GetWorkoutFrequency(r.Context(), days)
	if err != nil {
		s.writeStoreError(w, "workout frequency", err)
		return
	}
	writeJSON(w, http.StatusOK, freq)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDataStats(r.Context())
	if err != nil {
		s.writeStoreError(w, "data stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
