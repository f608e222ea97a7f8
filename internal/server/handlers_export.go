package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/export"
)

func (s *Server) handleExportWorkouts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseWorkoutFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.db.ListWorkouts(r.Context(), filter)
	if err != nil {
		s.writeStoreError(w, "export workouts", err)
		return
	}

	writeCSVHeaders(w, "workouts.csv")
	if err := export.WriteWorkoutsCSV(w, workouts); err != nil {
		s.log.Error("export workouts csv", "error", err)
	}
}

func (s *Server) handleExportSets(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")

	sets, err := s.db.ListSetsForExport(r.Context(), exercise)
	if err != nil {
		s.writeStoreError(w, "export sets", err)
		return
	}

	writeCSVHeaders(w, "sets.csv")
	if exercise != "" {
		err = export.WriteExerciseCSV(w, sets)
	} else {
		err = export.WriteSetsCSV(w, sets)
	}
	if err != nil {
		s.log.Error("export sets csv", "error", err)
	}
}

func (s *Server) handleExportCardio(w http.ResponseWriter, r *http.Request) {
	cardio, err := s.db.ListCardioForExport(r.Context())
	if err != nil {
		s.writeStoreError(w, "export cardio", err)
		return
	}

	writeCSVHeaders(w, "cardio.csv")
	if err := export.WriteCardioCSV(w, cardio); err != nil {
		s.log.Error("export cardio csv", "error", err)
	}
}

func writeCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
}
