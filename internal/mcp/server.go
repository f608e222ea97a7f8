package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
// cardioGoal is the weekly cardio-minutes target used by the goal resource.
func New(ds DataSource, cardioGoal int, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog strength and cardio training log. Log workouts and query progression, weekly volume, estimated 1RM, and personal records."),
	)

	h := &handlers{ds: ds, cardioGoal: cardioGoal, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolLogWorkout, Handler: h.logWorkout},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetWorkoutDetail, Handler: h.getWorkoutDetail},
		server.ServerTool{Tool: toolGetProgression, Handler: h.getProgression},
		server.ServerTool{Tool: toolGetTopSets, Handler: h.getTopSets},
		server.ServerTool{Tool: toolGetEstimated1RM, Handler: h.getEstimated1RM},
		server.ServerTool{Tool: toolGetWeeklyVolume, Handler: h.getWeeklyVolume},
		server.ServerTool{Tool: toolGetWeeklyCardio, Handler: h.getWeeklyCardio},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetVolumeByExercise, Handler: h.getVolumeByExercise},
		server.ServerTool{Tool: toolGetWorkoutFrequency, Handler: h.getWorkoutFrequency},
		server.ServerTool{Tool: toolGetDataStats, Handler: h.getDataStats},
	)

	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resPersonalRecords, Handler: h.personalRecords},
		server.ServerResource{Resource: resCardioGoal, Handler: h.cardioGoalProgress},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds         DataSource
	cardioGoal int
	log        *slog.Logger
}

// --- Resource definitions ---

var resRecentWorkouts = mcp.NewResource(
	"liftlog://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workout summaries from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resPersonalRecords = mcp.NewResource(
	"liftlog://personal_records",
	"Personal Records",
	mcp.WithResourceDescription("All-time heaviest set per exercise"),
	mcp.WithMIMEType("application/json"),
)

var resCardioGoal = mcp.NewResource(
	"liftlog://cardio_goal",
	"Weekly Cardio Goal",
	mcp.WithResourceDescription("This week's cardio minutes against the configured weekly goal"),
	mcp.WithMIMEType("application/json"),
)
