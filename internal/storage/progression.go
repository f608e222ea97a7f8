package storage

import (
	"context"
	"fmt"
	"math"
	"time"
)

// ProgressionPoint aggregates one exercise's sets on a single date. Dates with
// no matching sets are omitted entirely, never zero-filled.
type ProgressionPoint struct {
	Date        string  `json:"date"`
	MaxWeight   float64 `json:"max_weight"`
	TotalVolume float64 `json:"total_volume"`
	TotalReps   int     `json:"total_reps"`
	NumSets     int     `json:"num_sets"`
}

// ExerciseProgression returns per-date aggregates for one exercise in
// chronological order. Exercise names match exactly.
func (db *DB) ExerciseProgression(ctx context.Context, exerciseName string) ([]ProgressionPoint, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT w.date,
		        MAX(s.weight),
		        SUM(s.reps * s.weight),
		        SUM(s.reps)::int,
		        COUNT(s.id)::int
		 FROM sets s
		 JOIN workouts w ON s.workout_id = w.id
		 WHERE s.exercise_name = $1
		 GROUP BY w.date
		 ORDER BY w.date ASC`,
		exerciseName)
	if err != nil {
		return nil, fmt.Errorf("querying progression: %w", err)
	}
	defer rows.Close()

	var result []ProgressionPoint
	for rows.Next() {
		var p ProgressionPoint
		var date time.Time
		if err := rows.Scan(&date, &p.MaxWeight, &p.TotalVolume, &p.TotalReps, &p.NumSets); err != nil {
			return nil, fmt.Errorf("scanning progression: %w", err)
		}
		p.Date = date.Format("2006-01-02")
		result = append(result, p)
	}
	return result, rows.Err()
}

// TopSet is the heaviest set of an exercise on one date.
type TopSet struct {
	Date   string   `json:"date"`
	Weight float64  `json:"weight"`
	Reps   int      `json:"reps"`
	RPE    *float64 `json:"rpe,omitempty"`
}

// TopSetByDate returns, per date, the single heaviest set of the exercise.
// When several sets tie at the max weight DISTINCT ON keeps exactly one of
// them; which one is not specified, only that one row per date comes back.
func (db *DB) TopSetByDate(ctx context.Context, exerciseName string) ([]TopSet, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT ON (w.date) w.date, s.weight, s.reps, s.rpe
		 FROM sets s
		 JOIN workouts w ON s.workout_id = w.id
		 WHERE s.exercise_name = $1
		 ORDER BY w.date ASC, s.weight DESC`,
		exerciseName)
	if err != nil {
		return nil, fmt.Errorf("querying top sets: %w", err)
	}
	defer rows.Close()

	var result []TopSet
	for rows.Next() {
		var t TopSet
		var date time.Time
		if err := rows.Scan(&date, &t.Weight, &t.Reps, &t.RPE); err != nil {
			return nil, fmt.Errorf("scanning top set: %w", err)
		}
		t.Date = date.Format("2006-01-02")
		result = append(result, t)
	}
	return result, rows.Err()
}

// OneRMPoint is one set annotated with its Epley estimate.
type OneRMPoint struct {
	Date         string   `json:"date"`
	Estimated1RM float64  `json:"estimated_1rm"`
	ActualWeight float64  `json:"actual_weight"`
	Reps         int      `json:"reps"`
	RPE          *float64 `json:"rpe,omitempty"`
}

// Estimated1RMProgression returns one point per set (not per date) for the
// exercise, in chronological order, each carrying its Epley estimate.
func (db *DB) Estimated1RMProgression(ctx context.Context, exerciseName string) ([]OneRMPoint, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT w.date, s.weight, s.reps, s.rpe
		 FROM sets s
		 JOIN workouts w ON s.workout_id = w.id
		 WHERE s.exercise_name = $1
		 ORDER BY w.date ASC, s.id ASC`,
		exerciseName)
	if err != nil {
		return nil, fmt.Errorf("querying 1RM progression: %w", err)
	}
	defer rows.Close()

	var result []OneRMPoint
	for rows.Next() {
		var p OneRMPoint
		var date time.Time
		if err := rows.Scan(&date, &p.ActualWeight, &p.Reps, &p.RPE); err != nil {
			return nil, fmt.Errorf("scanning 1RM point: %w", err)
		}
		p.Date = date.Format("2006-01-02")
		p.Estimated1RM = round2(EstimateOneRM(p.ActualWeight, p.Reps))
		result = append(result, p)
	}
	return result, rows.Err()
}

// EstimateOneRM applies the Epley formula: a single rep is the lift itself,
// anything longer extrapolates as weight × (1 + reps/30). The formula is a
// deliberate approximation; keep the arithmetic exact.
func EstimateOneRM(weight float64, reps int) float64 {
	if reps == 1 {
		return weight
	}
	return weight * (1 + float64(reps)/30)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
