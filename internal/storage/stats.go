package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about all stored data.
type DataStats struct {
	TotalWorkouts      int64             `json:"total_workouts"`
	TotalSets          int64             `json:"total_sets"`
	TotalCardioMinutes int64             `json:"total_cardio_minutes"`
	DistinctExercises  int64             `json:"distinct_exercises"`
	EarliestDate       *string           `json:"earliest_date"`
	LatestDate         *string           `json:"latest_date"`
	WorkoutsByType     []WorkoutTypeStat `json:"workouts_by_type"`
}

// WorkoutTypeStat holds summary stats for a single workout type.
type WorkoutTypeStat struct {
	WorkoutType string `json:"workout_type"`
	Count       int64  `json:"count"`
}

// GetDataStats returns aggregate statistics across the whole log.
func (db *DB) GetDataStats(ctx context.Context) (*DataStats, error) {
	stats := &DataStats{}

	err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM workouts`).Scan(&stats.TotalWorkouts)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	err = db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sets`).Scan(&stats.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(minutes), 0) FROM cardio_sessions`).Scan(&stats.TotalCardioMinutes)
	if err != nil {
		return nil, fmt.Errorf("summing cardio minutes: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT exercise_name) FROM sets`).Scan(&stats.DistinctExercises)
	if err != nil {
		return nil, fmt.Errorf("counting exercises: %w", err)
	}

	var earliest, latest *time.Time
	err = db.pool.QueryRow(ctx,
		`SELECT MIN(date), MAX(date) FROM workouts`).Scan(&earliest, &latest)
	if err != nil {
		return nil, fmt.Errorf("querying date range: %w", err)
	}
	if earliest != nil {
		s := earliest.Format("2006-01-02")
		stats.EarliestDate = &s
	}
	if latest != nil {
		s := latest.Format("2006-01-02")
		stats.LatestDate = &s
	}

	rows, err := db.pool.Query(ctx,
		`SELECT workout_type, COUNT(*)
		 FROM workouts
		 GROUP BY workout_type
		 ORDER BY COUNT(*) DESC, workout_type`)
	if err != nil {
		return nil, fmt.Errorf("querying workouts by type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s WorkoutTypeStat
		if err := rows.Scan(&s.WorkoutType, &s.Count); err != nil {
			return nil, fmt.Errorf("scanning workout type stat: %w", err)
		}
		stats.WorkoutsByType = append(stats.WorkoutsByType, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
