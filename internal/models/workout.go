package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Workout is a row in the workouts table. Date carries no time component.
type Workout struct {
	ID          uuid.UUID
	Date        time.Time
	WorkoutType string
	Notes       string
}

// Set is a row in the sets table. ExerciseName is the grouping key for all
// analytics and is matched exactly (case-sensitive, no canonicalization).
type Set struct {
	ID           int64
	WorkoutID    uuid.UUID
	ExerciseName string
	SetNumber    int
	Reps         int
	Weight       float64
	RPE          *float64
}

// CardioSession is a row in the cardio_sessions table.
type CardioSession struct {
	ID         int64
	WorkoutID  uuid.UUID
	CardioType string
	Minutes    int
}

// SetEntry is one set of a workout being logged.
type SetEntry struct {
	ExerciseName string   `json:"exercise_name"`
	SetNumber    int      `json:"set_number"`
	Reps         int      `json:"reps"`
	Weight       float64  `json:"weight"`
	RPE          *float64 `json:"rpe,omitempty"`
}

// WorkoutEntry is the input for logging a complete workout: the workout row,
// its sets, and an optional cardio summary. The whole entry is stored as a
// single transaction; cardio is recorded only when CardioMinutes > 0.
type WorkoutEntry struct {
	Date          time.Time  `json:"-"`
	DateStr       string     `json:"date"`
	WorkoutType   string     `json:"workout_type"`
	Notes         string     `json:"notes,omitempty"`
	Sets          []SetEntry `json:"sets"`
	CardioType    string     `json:"cardio_type,omitempty"`
	CardioMinutes int        `json:"cardio_minutes,omitempty"`
}

// Validate checks the entry before it reaches the store. RPE is advisory and
// deliberately not range-checked here beyond being parseable.
func (e *WorkoutEntry) Validate() error {
	if e.Date.IsZero() {
		d, err := time.Parse("2006-01-02", e.DateStr)
		if err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", e.DateStr)
		}
		e.Date = d
	}
	if e.WorkoutType == "" {
		return fmt.Errorf("workout_type is required")
	}
	for i, s := range e.Sets {
		if s.ExerciseName == "" {
			return fmt.Errorf("set %d: exercise_name is required", i+1)
		}
		if s.Reps <= 0 {
			return fmt.Errorf("set %d: reps must be positive", i+1)
		}
		if s.Weight < 0 {
			return fmt.Errorf("set %d: weight must not be negative", i+1)
		}
	}
	if e.CardioMinutes < 0 {
		return fmt.Errorf("cardio_minutes must not be negative")
	}
	return nil
}
