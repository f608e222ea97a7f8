package storage_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

var (
	workoutInsertSQL = regexp.QuoteMeta(`INSERT INTO workouts (id, date, workout_type, notes) VALUES ($1, $2, $3, $4)`)
	setsInsertSQL    = regexp.QuoteMeta(`INSERT INTO sets (workout_id, exercise_name, set_number, reps, weight, rpe) VALUES `)
	cardioInsertSQL  = regexp.QuoteMeta(`INSERT INTO cardio_sessions (workout_id, cardio_type, minutes) VALUES ($1, $2, $3)`)
)

func testDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestLogWorkout(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	db := storage.NewWithConn(mock)
	ctx := context.Background()
	date := testDate(t, "2024-01-15")

	t.Run("full entry with sets and cardio", func(t *testing.T) {
		rpe := 8.5
		entry := models.WorkoutEntry{
			Date:        date,
			WorkoutType: "Push",
			Notes:       "felt strong",
			Sets: []models.SetEntry{
				{ExerciseName: "Bench Press", SetNumber: 1, Reps: 8, Weight: 100},
				{ExerciseName: "Bench Press", SetNumber: 2, Reps: 6, Weight: 105, RPE: &rpe},
			},
			CardioType:    "Running",
			CardioMinutes: 20,
		}

		mock.ExpectBegin()
		mock.ExpectExec(workoutInsertSQL).
			WithArgs(pgxmock.AnyArg(), date, "Push", "felt strong").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(setsInsertSQL).
			WithArgs(
				pgxmock.AnyArg(), "Bench Press", 1, 8, 100.0, (*float64)(nil),
				pgxmock.AnyArg(), "Bench Press", 2, 6, 105.0, &rpe,
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 2))
		mock.ExpectExec(cardioInsertSQL).
			WithArgs(pgxmock.AnyArg(), "Running", 20).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		id, err := db.LogWorkout(ctx, entry)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cardio type defaults to General", func(t *testing.T) {
		entry := models.WorkoutEntry{
			Date:          date,
			WorkoutType:   "Cardio",
			CardioMinutes: 30,
		}

		mock.ExpectBegin()
		mock.ExpectExec(workoutInsertSQL).
			WithArgs(pgxmock.AnyArg(), date, "Cardio", "").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(cardioInsertSQL).
			WithArgs(pgxmock.AnyArg(), "General", 30).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		_, err := db.LogWorkout(ctx, entry)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no cardio row when minutes is zero", func(t *testing.T) {
		entry := models.WorkoutEntry{
			Date:        date,
			WorkoutType: "Legs",
			Sets: []models.SetEntry{
				{ExerciseName: "Squat", SetNumber: 1, Reps: 5, Weight: 140},
			},
		}

		mock.ExpectBegin()
		mock.ExpectExec(workoutInsertSQL).
			WithArgs(pgxmock.AnyArg(), date, "Legs", "").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(setsInsertSQL).
			WithArgs(pgxmock.AnyArg(), "Squat", 1, 5, 140.0, (*float64)(nil)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		_, err := db.LogWorkout(ctx, entry)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("set insert failure aborts the transaction", func(t *testing.T) {
		entry := models.WorkoutEntry{
			Date:        date,
			WorkoutType: "Push",
			Sets: []models.SetEntry{
				{ExerciseName: "Bench Press", SetNumber: 1, Reps: 8, Weight: 100},
			},
		}

		mock.ExpectBegin()
		mock.ExpectExec(workoutInsertSQL).
			WithArgs(pgxmock.AnyArg(), date, "Push", "").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(setsInsertSQL).
			WithArgs(pgxmock.AnyArg(), "Bench Press", 1, 8, 100.0, (*float64)(nil)).
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		_, err := db.LogWorkout(ctx, entry)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteWorkout(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	db := storage.NewWithConn(mock)
	ctx := context.Background()
	id := uuid.New()

	checkSQL := regexp.QuoteMeta(`SELECT 1 FROM workouts WHERE id = $1`)

	t.Run("existing workout is removed", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(checkSQL).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sets WHERE workout_id = $1`)).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 3))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cardio_sessions WHERE workout_id = $1`)).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM workouts WHERE id = $1`)).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		deleted, err := db.DeleteWorkout(ctx, id)
		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing workout reports false without deleting", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(checkSQL).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		deleted, err := db.DeleteWorkout(ctx, id)
		assert.NoError(t, err)
		assert.False(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mid-sequence failure aborts the transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(checkSQL).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sets WHERE workout_id = $1`)).
			WithArgs(id).
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		_, err := db.DeleteWorkout(ctx, id)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListWorkouts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	db := storage.NewWithConn(mock)
	ctx := context.Background()

	listSQL := regexp.QuoteMeta(`SELECT w.id, w.date, w.workout_type, w.notes,`)
	columns := []string{"id", "date", "workout_type", "notes", "total_sets", "total_volume", "cardio_minutes"}
	id1 := uuid.New()
	id2 := uuid.New()

	t.Run("summaries come back with aggregates", func(t *testing.T) {
		mock.ExpectQuery(listSQL).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(id1, testDate(t, "2024-01-16"), "Pull", "", 12, 2400.0, 0).
				AddRow(id2, testDate(t, "2024-01-15"), "Push", "pr day", 10, 2100.5, 20))

		got, err := db.ListWorkouts(ctx, storage.WorkoutFilter{})
		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, "2024-01-16", got[0].Date)
		assert.Equal(t, 12, got[0].TotalSets)
		assert.Equal(t, 2400.0, got[0].TotalVolume)
		assert.Equal(t, "pr day", got[1].Notes)
		assert.Equal(t, 20, got[1].CardioMinutes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filters become conjunctive conditions", func(t *testing.T) {
		start := testDate(t, "2024-01-01")
		end := testDate(t, "2024-01-31")

		mock.ExpectQuery(listSQL).
			WithArgs(start, end, "Push").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(id2, testDate(t, "2024-01-15"), "Push", "", 10, 2100.0, 0))

		got, err := db.ListWorkouts(ctx, storage.WorkoutFilter{
			StartDate:   &start,
			EndDate:     &end,
			WorkoutType: "Push",
		})
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "Push", got[0].WorkoutType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matches yields an empty list", func(t *testing.T) {
		mock.ExpectQuery(listSQL).
			WillReturnRows(pgxmock.NewRows(columns))

		got, err := db.ListWorkouts(ctx, storage.WorkoutFilter{})
		assert.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetWorkoutDetail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	db := storage.NewWithConn(mock)
	ctx := context.Background()
	id := uuid.New()

	workoutSQL := regexp.QuoteMeta(`SELECT date, workout_type, notes FROM workouts WHERE id = $1`)
	setsSQL := regexp.QuoteMeta(`SELECT exercise_name, set_number, reps, weight, rpe`)
	cardioSQL := regexp.QuoteMeta(`SELECT cardio_type, minutes FROM cardio_sessions WHERE workout_id = $1`)

	t.Run("workout with sets and cardio", func(t *testing.T) {
		rpe := 9.0
		mock.ExpectQuery(workoutSQL).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{"date", "workout_type", "notes"}).
				AddRow(testDate(t, "2024-01-15"), "Push", "pr day"))
		mock.ExpectQuery(setsSQL).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{"exercise_name", "set_number", "reps", "weight", "rpe"}).
				AddRow("Bench Press", 1, 8, 100.0, (*float64)(nil)).
				AddRow("Bench Press", 2, 6, 105.0, &rpe))
		mock.ExpectQuery(cardioSQL).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{"cardio_type", "minutes"}).
				AddRow("Running", 20))

		detail, err := db.GetWorkoutDetail(ctx, id)
		assert.NoError(t, err)
		if assert.NotNil(t, detail) {
			assert.Equal(t, "2024-01-15", detail.Date)
			assert.Equal(t, "Push", detail.WorkoutType)
			assert.Len(t, detail.Sets, 2)
			assert.Equal(t, "Bench Press", detail.Sets[0].ExerciseName)
			assert.Nil(t, detail.Sets[0].RPE)
			if assert.NotNil(t, detail.Sets[1].RPE) {
				assert.Equal(t, 9.0, *detail.Sets[1].RPE)
			}
			assert.Len(t, detail.Cardio, 1)
			assert.Equal(t, 20, detail.Cardio[0].Minutes)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent workout yields nil without error", func(t *testing.T) {
		mock.ExpectQuery(workoutSQL).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		detail, err := db.GetWorkoutDetail(ctx, id)
		assert.NoError(t, err)
		assert.Nil(t, detail)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListDistinctValues(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	db := storage.NewWithConn(mock)
	ctx := context.Background()

	t.Run("workout types come back deduplicated and ascending", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT workout_type FROM workouts ORDER BY workout_type`)).
			WillReturnRows(pgxmock.NewRows([]string{"workout_type"}).
				AddRow("Legs").
				AddRow("Pull").
				AddRow("Push"))

		got, err := db.ListWorkoutTypes(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []string{"Legs", "Pull", "Push"}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exercise names come from sets", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT exercise_name FROM sets ORDER BY exercise_name`)).
			WillReturnRows(pgxmock.NewRows([]string{"exercise_name"}).
				AddRow("Bench Press").
				AddRow("Squat"))

		got, err := db.ListExerciseNames(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []string{"Bench Press", "Squat"}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows yields empty slice", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT workout_type`)).
			WillReturnRows(pgxmock.NewRows([]string{"workout_type"}))

		got, err := db.ListWorkoutTypes(ctx)
		assert.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
