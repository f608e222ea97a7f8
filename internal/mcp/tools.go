package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// parseDateFilter builds a workout filter from optional tool arguments.
func parseDateFilter(startStr, endStr, workoutType string) (storage.WorkoutFilter, error) {
	var filter storage.WorkoutFilter
	if startStr != "" {
		d, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &d
	}
	if endStr != "" {
		d, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &d
	}
	filter.WorkoutType = workoutType
	return filter, nil
}

// --- Tool definitions ---

var toolLogWorkout = mcp.NewTool("log_workout",
	mcp.WithDescription("Log a complete workout: the workout row, its strength sets, and an optional cardio summary. Stored atomically."),
	mcp.WithString("entry", mcp.Required(), mcp.Description(`Workout entry JSON, e.g. {"date":"2024-01-15","workout_type":"Push","sets":[{"exercise_name":"Bench Press","set_number":1,"reps":8,"weight":100}],"cardio_type":"Running","cardio_minutes":20}`)),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("List workout summaries (total sets, total volume, cardio minutes), most recent first, with optional date and type filters."),
	mcp.WithString("start", mcp.Description("Inclusive start date (YYYY-MM-DD)")),
	mcp.WithString("end", mcp.Description("Inclusive end date (YYYY-MM-DD)")),
	mcp.WithString("type", mcp.Description("Exact workout type (e.g. 'Push', 'Legs')")),
)

var toolGetWorkoutDetail = mcp.NewTool("get_workout_detail",
	mcp.WithDescription("Retrieve one workout with all its sets (in logged order) and cardio sessions."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout ID (UUID)")),
)

var toolGetProgression = mcp.NewTool("get_exercise_progression",
	mcp.WithDescription("Per-date aggregates for one exercise: max weight, total volume, total reps, set count. Exact, case-sensitive exercise name."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
)

var toolGetTopSets = mcp.NewTool("get_top_sets",
	mcp.WithDescription("The heaviest set per date for one exercise, chronological."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
)

var toolGetEstimated1RM = mcp.NewTool("get_estimated_1rm",
	mcp.WithDescription("Epley-estimated one-rep max per set for one exercise, chronological. A single-rep set estimates as its own weight."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
)

var toolGetWeeklyVolume = mcp.NewTool("get_weekly_volume",
	mcp.WithDescription("Total lifted volume (reps × weight) per Monday-keyed week."),
	mcp.WithNumber("weeks", mcp.Description("Number of weeks back to analyze. Defaults to 12.")),
)

var toolGetWeeklyCardio = mcp.NewTool("get_weekly_cardio",
	mcp.WithDescription("Cardio minutes and workout count per Monday-keyed week."),
	mcp.WithNumber("weeks", mcp.Description("Number of weeks back to analyze. Defaults to 12.")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("All-time heaviest set per exercise, alphabetical. With an exercise name, just that exercise's record."),
	mcp.WithString("exercise", mcp.Description("Exercise name. Omit for all exercises.")),
)

var toolGetVolumeByExercise = mcp.NewTool("get_volume_by_exercise",
	mcp.WithDescription("All-time totals per exercise (volume, sets, reps, average weight), heaviest volume first."),
)

var toolGetWorkoutFrequency = mcp.NewTool("get_workout_frequency",
	mcp.WithDescription("Workout count and average-per-week rate over a trailing window of days."),
	mcp.WithNumber("days", mcp.Description("Number of days back to analyze. Defaults to 30.")),
)

var toolGetDataStats = mcp.NewTool("get_data_stats",
	mcp.WithDescription("Aggregate stats for the whole log: totals, date range, workouts by type."),
)

// --- Tool handlers ---

func (h *handlers) logWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("entry")
	if err != nil {
		return mcp.NewToolResultError("entry parameter is required"), nil
	}

	var entry models.WorkoutEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return mcp.NewToolResultError("invalid entry JSON: " + err.Error()), nil
	}
	if err := entry.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := h.ds.LogWorkout(ctx, entry)
	if err != nil {
		h.log.Error("mcp log_workout", "error", err)
		return mcp.NewToolResultError("logging failed: " + err.Error()), nil
	}
	return toolJSON(map[string]string{"id": id.String()})
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter, err := parseDateFilter(req.GetString("start", ""), req.GetString("end", ""), req.GetString("type", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	workouts, err := h.ds.ListWorkouts(ctx, filter)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(workouts)
}

func (h *handlers) getWorkoutDetail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	workoutID, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid workout ID"), nil
	}

	detail, err := h.ds.GetWorkoutDetail(ctx, workoutID)
	if err != nil {
		h.log.Error("mcp get_workout_detail", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if detail == nil {
		return mcp.NewToolResultError("workout not found"), nil
	}
	return toolJSON(detail)
}

func (h *handlers) getProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	points, err := h.ds.ExerciseProgression(ctx, exercise)
	if err != nil {
		h.log.Error("mcp get_exercise_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(points)
}

func (h *handlers) getTopSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	sets, err := h.ds.TopSetByDate(ctx, exercise)
	if err != nil {
		h.log.Error("mcp get_top_sets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(sets)
}

func (h *handlers) getEstimated1RM(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	points, err := h.ds.Estimated1RMProgression(ctx, exercise)
	if err != nil {
		h.log.Error("mcp get_estimated_1rm", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(points)
}

func (h *handlers) getWeeklyVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	volumes, err := h.ds.GetWeeklyVolume(ctx, req.GetInt("weeks", 12))
	if err != nil {
		h.log.Error("mcp get_weekly_volume", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(volumes)
}

func (h *handlers) getWeeklyCardio(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := h.ds.GetWeeklyCardioSummary(ctx, req.GetInt("weeks", 12))
	if err != nil {
		h.log.Error("mcp get_weekly_cardio", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(summary)
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := h.ds.PersonalRecords(ctx, req.GetString("exercise", ""))
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(records)
}

func (h *handlers) getVolumeByExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	volumes, err := h.ds.VolumeByExercise(ctx)
	if err != nil {
		h.log.Error("mcp get_volume_by_exercise", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(volumes)
}

func (h *handlers) getWorkoutFrequency(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	freq, err := h.ds.GetWorkoutFrequency(ctx, req.GetInt("days", 30))
	if err != nil {
		h.log.Error("mcp get_workout_frequency", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(freq)
}

func (h *handlers) getDataStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetDataStats(ctx)
	if err != nil {
		h.log.Error("mcp get_data_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(stats)
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
