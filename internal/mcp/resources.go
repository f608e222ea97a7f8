package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/liftlog/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	start := time.Now().AddDate(0, 0, -14)
	workouts, err := h.ds.ListWorkouts(ctx, storage.WorkoutFilter{StartDate: &start})
	if err != nil {
		return nil, err
	}
	return resourceJSON(req, workouts)
}

func (h *handlers) personalRecords(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	records, err := h.ds.PersonalRecords(ctx, "")
	if err != nil {
		return nil, err
	}
	return resourceJSON(req, records)
}

func (h *handlers) cardioGoalProgress(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	minutes, err := h.ds.CurrentWeekCardioMinutes(ctx)
	if err != nil {
		return nil, err
	}

	remaining := h.cardioGoal - minutes
	if remaining < 0 {
		remaining = 0
	}
	progress := map[string]any{
		"goal_minutes":    h.cardioGoal,
		"current_minutes": minutes,
		"remaining":       remaining,
		"reached":         minutes >= h.cardioGoal,
	}
	return resourceJSON(req, progress)
}

func resourceJSON(req mcp.ReadResourceRequest, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
