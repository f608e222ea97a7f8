package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the LiftLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
// apiKey is sent on mutating requests.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func exerciseParams(exerciseName string) url.Values {
	v := url.Values{}
	if exerciseName != "" {
		v.Set("exercise", exerciseName)
	}
	return v
}

func (c *HTTPClient) LogWorkout(ctx context.Context, entry models.WorkoutEntry) (uuid.UUID, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return uuid.Nil, fmt.Errorf("httpclient: encode entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/workouts", bytes.NewReader(payload))
	if err != nil {
		return uuid.Nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("httpclient: log workout: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return uuid.Nil, fmt.Errorf("httpclient: read body: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("httpclient: log workout returned %d: %s", resp.StatusCode, body)
	}

	var result struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return uuid.Nil, fmt.Errorf("httpclient: decode workout id: %w", err)
	}
	return result.ID, nil
}

func (c *HTTPClient) ListWorkouts(ctx context.Context, filter storage.WorkoutFilter) ([]storage.WorkoutSummary, error) {
	params := url.Values{}
	if filter.StartDate != nil {
		params.Set("start", filter.StartDate.Format("2006-01-02"))
	}
	if filter.EndDate != nil {
		params.Set("end", filter.EndDate.Format("2006-01-02"))
	}
	if filter.WorkoutType != "" {
		params.Set("type", filter.WorkoutType)
	}

	body, err := c.get(ctx, "/api/v1/workouts", params)
	if err != nil {
		return nil, err
	}

	var workouts []storage.WorkoutSummary
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return workouts, nil
}

func (c *HTTPClient) GetWorkoutDetail(ctx context.Context, workoutID uuid.UUID) (*storage.WorkoutDetail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/workouts/"+workoutID.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: workout detail: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: workout detail returned %d: %s", resp.StatusCode, body)
	}

	var detail storage.WorkoutDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("httpclient: decode workout detail: %w", err)
	}
	return &detail, nil
}

func (c *HTTPClient) ExerciseProgression(ctx context.Context, exerciseName string) ([]storage.ProgressionPoint, error) {
	body, err := c.get(ctx, "/api/v1/analytics/progression", exerciseParams(exerciseName))
	if err != nil {
		return nil, err
	}

	var points []storage.ProgressionPoint
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("httpclient: decode progression: %w", err)
	}
	return points, nil
}

func (c *HTTPClient) TopSetByDate(ctx context.Context, exerciseName string) ([]storage.TopSet, error) {
	body, err := c.get(ctx, "/api/v1/analytics/top-sets", exerciseParams(exerciseName))
	if err != nil {
		return nil, err
	}

	var sets []storage.TopSet
	if err := json.Unmarshal(body, &sets); err != nil {
		return nil, fmt.Errorf("httpclient: decode top sets: %w", err)
	}
	return sets, nil
}

func (c *HTTPClient) Estimated1RMProgression(ctx context.Context, exerciseName string) ([]storage.OneRMPoint, error) {
	body, err := c.get(ctx, "/api/v1/analytics/one-rm", exerciseParams(exerciseName))
	if err != nil {
		return nil, err
	}

	var points []storage.OneRMPoint
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("httpclient: decode one-rm progression: %w", err)
	}
	return points, nil
}

func (c *HTTPClient) GetWeeklyVolume(ctx context.Context, weeksBack int) ([]storage.WeeklyVolume, error) {
	params := url.Values{}
	params.Set("weeks", strconv.Itoa(weeksBack))

	body, err := c.get(ctx, "/api/v1/analytics/weekly-volume", params)
	if err != nil {
		return nil, err
	}

	var volumes []storage.WeeklyVolume
	if err := json.Unmarshal(body, &volumes); err != nil {
		return nil, fmt.Errorf("httpclient: decode weekly volume: %w", err)
	}
	return volumes, nil
}

func (c *HTTPClient) GetWeeklyCardioSummary(ctx context.Context, weeksBack int) ([]storage.WeeklyCardio, error) {
	params := url.Values{}
	params.Set("weeks", strconv.Itoa(weeksBack))

	body, err := c.get(ctx, "/api/v1/analytics/weekly-cardio", params)
	if err != nil {
		return nil, err
	}

	var summary []storage.WeeklyCardio
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("httpclient: decode weekly cardio: %w", err)
	}
	return summary, nil
}

func (c *HTTPClient) CurrentWeekCardioMinutes(ctx context.Context) (int, error) {
	body, err := c.get(ctx, "/api/v1/analytics/cardio-goal", nil)
	if err != nil {
		return 0, err
	}

	var progress struct {
		CurrentMinutes int `json:"current_minutes"`
	}
	if err := json.Unmarshal(body, &progress); err != nil {
		return 0, fmt.Errorf("httpclient: decode cardio goal: %w", err)
	}
	return progress.CurrentMinutes, nil
}

func (c *HTTPClient) PersonalRecords(ctx context.Context, exerciseName string) ([]storage.PersonalRecord, error) {
	body, err := c.get(ctx, "/api/v1/analytics/records", exerciseParams(exerciseName))
	if err != nil {
		return nil, err
	}

	var records []storage.PersonalRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("httpclient: decode records: %w", err)
	}
	return records, nil
}

func (c *HTTPClient) VolumeByExercise(ctx context.Context) ([]storage.ExerciseVolume, error) {
	body, err := c.get(ctx, "/api/v1/analytics/volume-by-exercise", nil)
	if err != nil {
		return nil, err
	}

	var volumes []storage.ExerciseVolume
	if err := json.Unmarshal(body, &volumes); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercise volumes: %w", err)
	}
	return volumes, nil
}

func (c *HTTPClient) GetWorkoutFrequency(ctx context.Context, daysBack int) (*storage.WorkoutFrequency, error) {
	params := url.Values{}
	params.Set("days", strconv.Itoa(daysBack))

	body, err := c.get(ctx, "/api/v1/analytics/frequency", params)
	if err != nil {
		return nil, err
	}

	var freq storage.WorkoutFrequency
	if err := json.Unmarshal(body, &freq); err != nil {
		return nil, fmt.Errorf("httpclient: decode frequency: %w", err)
	}
	return &freq, nil
}

func (c *HTTPClient) GetDataStats(ctx context.Context) (*storage.DataStats, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats storage.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &stats, nil
}
