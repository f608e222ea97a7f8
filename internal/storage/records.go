package storage

import (
	"context"
	"fmt"
	"time"
)

// PersonalRecord is the heaviest set ever logged for an exercise. Reps and
// date belong to a set achieving that weight; on ties any one qualifies.
type PersonalRecord struct {
	ExerciseName string  `json:"exercise_name"`
	MaxWeight    float64 `json:"max_weight"`
	Reps         int     `json:"reps"`
	Date         string  `json:"date"`
}

// PersonalRecords returns the all-time max-weight set per exercise. With a
// name it yields at most one record for that exercise; with "" it yields one
// record per distinct exercise, alphabetically.
func (db *DB) PersonalRecords(ctx context.Context, exerciseName string) ([]PersonalRecord, error) {
	query := `SELECT DISTINCT ON (s.exercise_name) s.exercise_name, s.weight, s.reps, w.date
		 FROM sets s
		 JOIN workouts w ON s.workout_id = w.id`
	var args []any
	if exerciseName != "" {
		query += ` WHERE s.exercise_name = $1`
		args = append(args, exerciseName)
	}
	query += ` ORDER BY s.exercise_name ASC, s.weight DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying personal records: %w", err)
	}
	defer rows.Close()

	var result []PersonalRecord
	for rows.Next() {
		var r PersonalRecord
		var date time.Time
		if err := rows.Scan(&r.ExerciseName, &r.MaxWeight, &r.Reps, &date); err != nil {
			return nil, fmt.Errorf("scanning personal record: %w", err)
		}
		r.Date = date.Format("2006-01-02")
		result = append(result, r)
	}
	return result, rows.Err()
}

// ExerciseVolume is an exercise's all-time totals.
type ExerciseVolume struct {
	ExerciseName string  `json:"exercise_name"`
	TotalVolume  float64 `json:"total_volume"`
	TotalSets    int     `json:"total_sets"`
	TotalReps    int     `json:"total_reps"`
	AvgWeight    float64 `json:"avg_weight"`
}

// VolumeByExercise returns all-time totals per exercise, heaviest total
// volume first.
func (db *DB) VolumeByExercise(ctx context.Context) ([]ExerciseVolume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT exercise_name,
		        SUM(reps * weight),
		        COUNT(id)::int,
		        SUM(reps)::int,
		        AVG(weight)
		 FROM sets
		 GROUP BY exercise_name
		 ORDER BY SUM(reps * weight) DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercise volume: %w", err)
	}
	defer rows.Close()

	var result []ExerciseVolume
	for rows.Next() {
		var e ExerciseVolume
		if err := rows.Scan(&e.ExerciseName, &e.TotalVolume, &e.TotalSets, &e.TotalReps, &e.AvgWeight); err != nil {
			return nil, fmt.Errorf("scanning exercise volume: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// WorkoutFrequency summarizes how often workouts were logged in a window.
type WorkoutFrequency struct {
	TotalWorkouts int     `json:"total_workouts"`
	DaysAnalyzed  int     `json:"days_analyzed"`
	AvgPerWeek    float64 `json:"avg_per_week"`
}

// GetWorkoutFrequency counts workouts dated within the last daysBack days and
// derives a weekly rate. A zero-day window reports a rate of 0 rather than
// dividing by zero.
func (db *DB) GetWorkoutFrequency(ctx context.Context, daysBack int) (*WorkoutFrequency, error) {
	if daysBack < 0 {
		return nil, fmt.Errorf("%w: daysBack must not be negative", ErrInvalidArgument)
	}
	cutoff := time.Now().AddDate(0, 0, -daysBack)

	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*)::int FROM workouts WHERE date >= $1`, cutoff).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	freq := &WorkoutFrequency{TotalWorkouts: count, DaysAnalyzed: daysBack}
	if daysBack > 0 {
		freq.AvgPerWeek = round2(float64(count) / float64(daysBack) * 7)
	}
	return freq, nil
}
