package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db         *storage.DB
	log        *slog.Logger
	apiKey     string
	cardioGoal int
	router     chi.Router
}

// New creates a new Server with all routes configured. cardioGoal is the
// weekly cardio-minutes target reported by the goal endpoint.
func New(db *storage.DB, apiKey string, cardioGoal int, log *slog.Logger) *Server {
	s := &Server{
		db:         db,
		log:        log,
		apiKey:     apiKey,
		cardioGoal: cardioGoal,
		router:     chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Mutations require the API key
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/workouts", s.handleLogWorkout)
			r.Delete("/workouts/{id}", s.handleDeleteWorkout)
		})

		r.Get("/workouts", s.handleListWorkouts)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Get("/workout-types", s.handleListWorkoutTypes)
		r.Get("/exercises", s.handleListExercises)

		r.Get("/analytics/progression", s.handleProgression)
		r.Get("/analytics/top-sets", s.handleTopSets)
		r.Get("/analytics/one-rm", s.handleOneRM)
		r.Get("/analytics/weekly-volume", s.handleWeeklyVolume)
		r.Get("/analytics/weekly-cardio", s.handleWeeklyCardio)
		r.Get("/analytics/cardio-goal", s.handleCardioGoal)
		r.Get("/analytics/records", s.handlePersonalRecords)
		r.Get("/analytics/volume-by-exercise", s.handleVolumeByExercise)
		r.Get("/analytics/frequency", s.handleFrequency)
		r.Get("/stats", s.handleStats)

		r.Get("/export/workouts.csv", s.handleExportWorkouts)
		r.Get("/export/sets.csv", s.handleExportSets)
		r.Get("/export/cardio.csv", s.handleExportCardio)
	})
}
