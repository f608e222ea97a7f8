package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/export"
	"github.com/claude/liftlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	outDir := flag.String("out", "exports", "directory to write CSV files into")
	startStr := flag.String("start", "", "only export workouts on or after this date (YYYY-MM-DD)")
	endStr := flag.String("end", "", "only export workouts on or before this date (YYYY-MM-DD)")
	workoutType := flag.String("type", "", "only export workouts of this type")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var filter storage.WorkoutFilter
	if *startStr != "" {
		d, err := time.Parse("2006-01-02", *startStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -start date %q: expected YYYY-MM-DD\n", *startStr)
			os.Exit(1)
		}
		filter.StartDate = &d
	}
	if *endStr != "" {
		d, err := time.Parse("2006-01-02", *endStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -end date %q: expected YYYY-MM-DD\n", *endStr)
			os.Exit(1)
		}
		filter.EndDate = &d
	}
	filter.WorkoutType = *workoutType

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	result, err := export.All(ctx, db, *outDir, filter)
	if err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}

	log.Info("export complete",
		"workouts", result.Workouts,
		"sets", result.Sets,
		"cardio", result.Cardio,
	)
	fmt.Printf("Wrote %s (%d workouts)\n", result.WorkoutsFile, result.Workouts)
	fmt.Printf("Wrote %s (%d sets)\n", result.SetsFile, result.Sets)
	fmt.Printf("Wrote %s (%d cardio sessions)\n", result.CardioFile, result.Cardio)
}
