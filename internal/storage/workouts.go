package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WorkoutFilter restricts ListWorkouts. Bounds are optional and conjunctive:
// nil means no restriction on that dimension. Date bounds are inclusive
// calendar dates; WorkoutType is an exact match.
type WorkoutFilter struct {
	StartDate   *time.Time
	EndDate     *time.Time
	WorkoutType string
}

// WorkoutSummary is one row of the workout list: the workout plus per-workout
// aggregates. Aggregates are zero, never absent, for workouts with no sets or
// cardio.
type WorkoutSummary struct {
	ID            uuid.UUID `json:"id"`
	Date          string    `json:"date"`
	WorkoutType   string    `json:"workout_type"`
	Notes         string    `json:"notes,omitempty"`
	TotalSets     int       `json:"total_sets"`
	TotalVolume   float64   `json:"total_volume"`
	CardioMinutes int       `json:"cardio_minutes"`
}

// LogWorkout stores a complete workout entry in one transaction: the workout
// row, its sets, and the cardio session when minutes > 0. Either everything
// is stored or nothing is.
func (db *DB) LogWorkout(ctx context.Context, entry models.WorkoutEntry) (uuid.UUID, error) {
	id := uuid.New()

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO workouts (id, date, workout_type, notes) VALUES ($1, $2, $3, $4)`,
		id, entry.Date, entry.WorkoutType, entry.Notes)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting workout: %w", err)
	}

	if len(entry.Sets) > 0 {
		query := `INSERT INTO sets (workout_id, exercise_name, set_number, reps, weight, rpe) VALUES `
		args := make([]any, 0, len(entry.Sets)*6)
		valueStrings := make([]string, 0, len(entry.Sets))

		for i, s := range entry.Sets {
			base := i * 6
			valueStrings = append(valueStrings, fmt.Sprintf(
				"($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6,
			))
			args = append(args, id, s.ExerciseName, s.SetNumber, s.Reps, s.Weight, s.RPE)
		}

		if _, err := tx.Exec(ctx, query+strings.Join(valueStrings, ","), args...); err != nil {
			return uuid.Nil, fmt.Errorf("inserting sets: %w", err)
		}
	}

	if entry.CardioMinutes > 0 {
		cardioType := entry.CardioType
		if cardioType == "" {
			cardioType = "General"
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO cardio_sessions (workout_id, cardio_type, minutes) VALUES ($1, $2, $3)`,
			id, cardioType, entry.CardioMinutes)
		if err != nil {
			return uuid.Nil, fmt.Errorf("inserting cardio session: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("committing workout: %w", err)
	}
	return id, nil
}

// ListWorkouts returns workout summaries matching the filter, most recent
// first. Per-workout aggregates come from correlated subqueries so a workout
// with both sets and cardio is never double-counted.
func (db *DB) ListWorkouts(ctx context.Context, filter WorkoutFilter) ([]WorkoutSummary, error) {
	query := `SELECT w.id, w.date, w.workout_type, w.notes,
		 (SELECT COUNT(*) FROM sets s WHERE s.workout_id = w.id)::int,
		 COALESCE((SELECT SUM(s.reps * s.weight) FROM sets s WHERE s.workout_id = w.id), 0),
		 COALESCE((SELECT SUM(c.minutes) FROM cardio_sessions c WHERE c.workout_id = w.id), 0)::int
		 FROM workouts w`

	var conds []string
	var args []any
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conds = append(conds, fmt.Sprintf("w.date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conds = append(conds, fmt.Sprintf("w.date <= $%d", len(args)))
	}
	if filter.WorkoutType != "" {
		args = append(args, filter.WorkoutType)
		conds = append(conds, fmt.Sprintf("w.workout_type = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY w.date DESC, w.id"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []WorkoutSummary
	for rows.Next() {
		var w WorkoutSummary
		var date time.Time
		if err := rows.Scan(&w.ID, &date, &w.WorkoutType, &w.Notes,
			&w.TotalSets, &w.TotalVolume, &w.CardioMinutes); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		w.Date = date.Format("2006-01-02")
		result = append(result, w)
	}
	return result, rows.Err()
}

// SetDetail is one set inside a workout detail, in original insertion order.
type SetDetail struct {
	ExerciseName string   `json:"exercise_name"`
	SetNumber    int      `json:"set_number"`
	Reps         int      `json:"reps"`
	Weight       float64  `json:"weight"`
	RPE          *float64 `json:"rpe,omitempty"`
}

// CardioDetail is one cardio session inside a workout detail.
type CardioDetail struct {
	CardioType string `json:"cardio_type"`
	Minutes    int    `json:"minutes"`
}

// WorkoutDetail is a workout with all its sets and cardio sessions.
type WorkoutDetail struct {
	ID          uuid.UUID      `json:"id"`
	Date        string         `json:"date"`
	WorkoutType string         `json:"workout_type"`
	Notes       string         `json:"notes,omitempty"`
	Sets        []SetDetail    `json:"sets"`
	Cardio      []CardioDetail `json:"cardio"`
}

// GetWorkoutDetail retrieves a single workout with its sets (insertion order)
// and cardio sessions. A missing id yields (nil, nil); callers branch on
// absence rather than on an error.
func (db *DB) GetWorkoutDetail(ctx context.Context, workoutID uuid.UUID) (*WorkoutDetail, error) {
	detail := &WorkoutDetail{ID: workoutID}
	var date time.Time

	err := db.pool.QueryRow(ctx,
		`SELECT date, workout_type, notes FROM workouts WHERE id = $1`,
		workoutID).Scan(&date, &detail.WorkoutType, &detail.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}
	detail.Date = date.Format("2006-01-02")

	setRows, err := db.pool.Query(ctx,
		`SELECT exercise_name, set_number, reps, weight, rpe
		 FROM sets WHERE workout_id = $1 ORDER BY id`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var s SetDetail
		if err := setRows.Scan(&s.ExerciseName, &s.SetNumber, &s.Reps, &s.Weight, &s.RPE); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		detail.Sets = append(detail.Sets, s)
	}
	if err := setRows.Err(); err != nil {
		return nil, err
	}

	cardioRows, err := db.pool.Query(ctx,
		`SELECT cardio_type, minutes FROM cardio_sessions WHERE workout_id = $1 ORDER BY id`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying cardio sessions: %w", err)
	}
	defer cardioRows.Close()

	for cardioRows.Next() {
		var c CardioDetail
		if err := cardioRows.Scan(&c.CardioType, &c.Minutes); err != nil {
			return nil, fmt.Errorf("scanning cardio session: %w", err)
		}
		detail.Cardio = append(detail.Cardio, c)
	}
	return detail, cardioRows.Err()
}

// DeleteWorkout removes a workout together with its sets and cardio sessions
// in one transaction. Returns true if the workout existed; false (and no
// change) otherwise. A failure mid-sequence leaves all three tables untouched.
func (db *DB) DeleteWorkout(ctx context.Context, workoutID uuid.UUID) (bool, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists int
	err = tx.QueryRow(ctx, `SELECT 1 FROM workouts WHERE id = $1`, workoutID).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking workout: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sets WHERE workout_id = $1`, workoutID); err != nil {
		return false, fmt.Errorf("deleting sets: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM cardio_sessions WHERE workout_id = $1`, workoutID); err != nil {
		return false, fmt.Errorf("deleting cardio sessions: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, workoutID); err != nil {
		return false, fmt.Errorf("deleting workout: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("committing delete: %w", err)
	}
	return true, nil
}

// ListWorkoutTypes returns all distinct workout types, ascending.
func (db *DB) ListWorkoutTypes(ctx context.Context) ([]string, error) {
	return db.listDistinct(ctx, `SELECT DISTINCT workout_type FROM workouts ORDER BY workout_type`)
}

// ListExerciseNames returns all distinct exercise names ever logged, ascending.
func (db *DB) ListExerciseNames(ctx context.Context) ([]string, error) {
	return db.listDistinct(ctx, `SELECT DISTINCT exercise_name FROM sets ORDER BY exercise_name`)
}

func (db *DB) listDistinct(ctx context.Context, query string) ([]string, error) {
	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying distinct values: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning value: %w", err)
		}
		result = append(result, v)
	}
	return result, rows.Err()
}
