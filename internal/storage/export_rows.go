package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SetExportRow is one set joined with its workout, shaped for CSV export.
type SetExportRow struct {
	SetID        int64
	WorkoutID    uuid.UUID
	Date         string
	WorkoutType  string
	ExerciseName string
	SetNumber    int
	Reps         int
	Weight       float64
	RPE          *float64
	Notes        string
}

// ListSetsForExport returns all sets joined with workout date and type,
// newest workout first, sets in insertion order within a workout. With an
// exercise name it restricts to that exercise in chronological order, the
// shape the per-exercise export wants.
func (db *DB) ListSetsForExport(ctx context.Context, exerciseName string) ([]SetExportRow, error) {
	query := `SELECT s.id, w.id, w.date, w.workout_type,
		 s.exercise_name, s.set_number, s.reps, s.weight, s.rpe, w.notes
		 FROM sets s
		 JOIN workouts w ON s.workout_id = w.id`
	var args []any
	if exerciseName != "" {
		query += ` WHERE s.exercise_name = $1 ORDER BY w.date ASC, s.id ASC`
		args = append(args, exerciseName)
	} else {
		query += ` ORDER BY w.date DESC, s.id ASC`
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sets for export: %w", err)
	}
	defer rows.Close()

	var result []SetExportRow
	for rows.Next() {
		var r SetExportRow
		var date time.Time
		if err := rows.Scan(&r.SetID, &r.WorkoutID, &date, &r.WorkoutType,
			&r.ExerciseName, &r.SetNumber, &r.Reps, &r.Weight, &r.RPE, &r.Notes); err != nil {
			return nil, fmt.Errorf("scanning set export row: %w", err)
		}
		r.Date = date.Format("2006-01-02")
		result = append(result, r)
	}
	return result, rows.Err()
}

// CardioExportRow is one cardio session joined with its workout.
type CardioExportRow struct {
	CardioID    int64
	WorkoutID   uuid.UUID
	Date        string
	WorkoutType string
	CardioType  string
	Minutes     int
}

// ListCardioForExport returns all cardio sessions with workout date and type,
// newest first.
func (db *DB) ListCardioForExport(ctx context.Context) ([]CardioExportRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT c.id, w.id, w.date, w.workout_type, c.cardio_type, c.minutes
		 FROM cardio_sessions c
		 JOIN workouts w ON c.workout_id = w.id
		 ORDER BY w.date DESC, c.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying cardio for export: %w", err)
	}
	defer rows.Close()

	var result []CardioExportRow
	for rows.Next() {
		var r CardioExportRow
		var date time.Time
		if err := rows.Scan(&r.CardioID, &r.WorkoutID, &date, &r.WorkoutType, &r.CardioType, &r.Minutes); err != nil {
			return nil, fmt.Errorf("scanning cardio export row: %w", err)
		}
		r.Date = date.Format("2006-01-02")
		result = append(result, r)
	}
	return result, rows.Err()
}
