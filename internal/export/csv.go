// Package export renders engine row shapes as CSV. It is pure formatting:
// all querying stays behind the Store interface.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/storage"
)

// Store is the slice of the record store the exporter reads from.
type Store interface {
	ListWorkouts(ctx context.Context, filter storage.WorkoutFilter) ([]storage.WorkoutSummary, error)
	ListSetsForExport(ctx context.Context, exerciseName string) ([]storage.SetExportRow, error)
	ListCardioForExport(ctx context.Context) ([]storage.CardioExportRow, error)
}

// WriteWorkoutsCSV writes workout summary rows with a header.
func WriteWorkoutsCSV(w io.Writer, rows []storage.WorkoutSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Workout ID", "Date", "Workout Type", "Total Sets", "Total Volume", "Cardio Minutes", "Notes"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.ID.String(),
			r.Date,
			r.WorkoutType,
			strconv.Itoa(r.TotalSets),
			fmt.Sprintf("%.2f", r.TotalVolume),
			strconv.Itoa(r.CardioMinutes),
			r.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing workout row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSetsCSV writes all-sets rows with a header.
func WriteSetsCSV(w io.Writer, rows []storage.SetExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Set ID", "Workout ID", "Date", "Workout Type", "Exercise", "Set Number", "Reps", "Weight", "RPE"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			strconv.FormatInt(r.SetID, 10),
			r.WorkoutID.String(),
			r.Date,
			r.WorkoutType,
			r.ExerciseName,
			strconv.Itoa(r.SetNumber),
			strconv.Itoa(r.Reps),
			formatWeight(r.Weight),
			formatRPE(r.RPE),
		}); err != nil {
			return fmt.Errorf("writing set row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteExerciseCSV writes one exercise's sets, chronological, including the
// workout notes column the per-exercise report carries.
func WriteExerciseCSV(w io.Writer, rows []storage.SetExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Set ID", "Date", "Workout Type", "Exercise", "Set Number", "Reps", "Weight", "RPE", "Workout Notes"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			strconv.FormatInt(r.SetID, 10),
			r.Date,
			r.WorkoutType,
			r.ExerciseName,
			strconv.Itoa(r.SetNumber),
			strconv.Itoa(r.Reps),
			formatWeight(r.Weight),
			formatRPE(r.RPE),
			r.Notes,
		}); err != nil {
			return fmt.Errorf("writing set row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCardioCSV writes cardio session rows with a header.
func WriteCardioCSV(w io.Writer, rows []storage.CardioExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Cardio ID", "Workout ID", "Date", "Workout Type", "Cardio Type", "Minutes"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			strconv.FormatInt(r.CardioID, 10),
			r.WorkoutID.String(),
			r.Date,
			r.WorkoutType,
			r.CardioType,
			strconv.Itoa(r.Minutes),
		}); err != nil {
			return fmt.Errorf("writing cardio row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Result reports what a directory export produced.
type Result struct {
	Workouts     int    `json:"workouts"`
	Sets         int    `json:"sets"`
	Cardio       int    `json:"cardio"`
	WorkoutsFile string `json:"workouts_file"`
	SetsFile     string `json:"sets_file"`
	CardioFile   string `json:"cardio_file"`
}

// All writes workouts, sets, and cardio CSVs into dir with timestamped
// filenames. An optional filter restricts the workouts file; the sets and
// cardio dumps are always complete.
func All(ctx context.Context, store Store, dir string, filter storage.WorkoutFilter) (*Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}
	stamp := time.Now().Format("20060102_150405")

	workouts, err := store.ListWorkouts(ctx, filter)
	if err != nil {
		return nil, err
	}
	sets, err := store.ListSetsForExport(ctx, "")
	if err != nil {
		return nil, err
	}
	cardio, err := store.ListCardioForExport(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Workouts:     len(workouts),
		Sets:         len(sets),
		Cardio:       len(cardio),
		WorkoutsFile: filepath.Join(dir, "workouts_"+stamp+".csv"),
		SetsFile:     filepath.Join(dir, "sets_"+stamp+".csv"),
		CardioFile:   filepath.Join(dir, "cardio_"+stamp+".csv"),
	}

	if err := writeFile(result.WorkoutsFile, func(w io.Writer) error {
		return WriteWorkoutsCSV(w, workouts)
	}); err != nil {
		return nil, err
	}
	if err := writeFile(result.SetsFile, func(w io.Writer) error {
		return WriteSetsCSV(w, sets)
	}); err != nil {
		return nil, err
	}
	if err := writeFile(result.CardioFile, func(w io.Writer) error {
		return WriteCardioCSV(w, cardio)
	}); err != nil {
		return nil, err
	}
	return result, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func formatRPE(rpe *float64) string {
	if rpe == nil {
		return ""
	}
	return strconv.FormatFloat(*rpe, 'f', -1, 64)
}
