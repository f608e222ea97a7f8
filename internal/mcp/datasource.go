package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the record store for MCP tools so tests can stub it.
type DataSource interface {
	LogWorkout(ctx context.Context, entry models.WorkoutEntry) (uuid.UUID, error)
	ListWorkouts(ctx context.Context, filter storage.WorkoutFilter) ([]storage.WorkoutSummary, error)
	GetWorkoutDetail(ctx context.Context, workoutID uuid.UUID) (*storage.WorkoutDetail, error)
	ExerciseProgression(ctx context.Context, exerciseName string) ([]storage.ProgressionPoint, error)
	TopSetByDate(ctx context.Context, exerciseName string) ([]storage.TopSet, error)
	Estimated1RMProgression(ctx context.Context, exerciseName string) ([]storage.OneRMPoint, error)
	GetWeeklyVolume(ctx context.Context, weeksBack int) ([]storage.WeeklyVolume, error)
	GetWeeklyCardioSummary(ctx context.Context, weeksBack int) ([]storage.WeeklyCardio, error)
	CurrentWeekCardioMinutes(ctx context.Context) (int, error)
	PersonalRecords(ctx context.Context, exerciseName string) ([]storage.PersonalRecord, error)
	VolumeByExercise(ctx context.Context) ([]storage.ExerciseVolume, error)
	GetWorkoutFrequency(ctx context.Context, daysBack int) (*storage.WorkoutFrequency, error)
	GetDataStats(ctx context.Context) (*storage.DataStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
