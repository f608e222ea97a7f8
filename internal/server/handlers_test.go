package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
)

func newTestServer(t *testing.T) (*Server, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	db := storage.NewWithConn(mock)
	return New(db, "secret", 150, slog.Default()), mock
}

func doRequest(srv *Server, method, target, body, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

// TestLogWorkoutEndpoint verifies the full write path: auth, validation, and
// the transactional insert.
func TestLogWorkoutEndpoint(t *testing.T) {
	srv, mock := newTestServer(t)
	body := `{"date":"2024-01-15","workout_type":"Push","sets":[{"exercise_name":"Bench Press","set_number":1,"reps":8,"weight":100}]}`

	t.Run("missing API key", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/api/v1/workouts", body, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/api/v1/workouts", "{not json", "secret")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("missing workout type", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/api/v1/workouts", `{"date":"2024-01-15"}`, "secret")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/api/v1/workouts", `{"date":"15/01/2024","workout_type":"Push"}`, "secret")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("valid entry is stored", func(t *testing.T) {
		date, _ := time.Parse("2006-01-02", "2024-01-15")
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO workouts (id, date, workout_type, notes) VALUES ($1, $2, $3, $4)`)).
			WithArgs(pgxmock.AnyArg(), date, "Push", "").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sets`)).
			WithArgs(pgxmock.AnyArg(), "Bench Press", 1, 8, 100.0, (*float64)(nil)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		rec := doRequest(srv, http.MethodPost, "/api/v1/workouts", body, "secret")
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
		}

		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if _, err := uuid.Parse(resp["id"]); err != nil {
			t.Errorf("response id %q is not a UUID", resp["id"])
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})
}

// TestGetWorkoutEndpoint verifies ID parsing and the 404 on absence.
func TestGetWorkoutEndpoint(t *testing.T) {
	srv, mock := newTestServer(t)

	t.Run("invalid ID", func(t *testing.T) {
		rec := doRequest(srv, http.MethodGet, "/api/v1/workouts/not-a-uuid", "", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("absent workout", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT date, workout_type, notes FROM workouts WHERE id = $1`)).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		rec := doRequest(srv, http.MethodGet, "/api/v1/workouts/"+id.String(), "", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

// TestDeleteWorkoutEndpoint verifies auth plus the 404 on absence.
func TestDeleteWorkoutEndpoint(t *testing.T) {
	srv, mock := newTestServer(t)
	id := uuid.New()

	t.Run("missing API key", func(t *testing.T) {
		rec := doRequest(srv, http.MethodDelete, "/api/v1/workouts/"+id.String(), "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("absent workout", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM workouts WHERE id = $1`)).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		rec := doRequest(srv, http.MethodDelete, "/api/v1/workouts/"+id.String(), "", "secret")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

// TestAnalyticsParamValidation verifies malformed analytics parameters are
// rejected with 400 before reaching the store.
func TestAnalyticsParamValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		target string
	}{
		{"progression needs exercise", "/api/v1/analytics/progression"},
		{"top sets needs exercise", "/api/v1/analytics/top-sets"},
		{"one-rm needs exercise", "/api/v1/analytics/one-rm"},
		{"weekly volume rejects negative weeks", "/api/v1/analytics/weekly-volume?weeks=-1"},
		{"weekly volume rejects non-numeric weeks", "/api/v1/analytics/weekly-volume?weeks=abc"},
		{"weekly cardio rejects negative weeks", "/api/v1/analytics/weekly-cardio?weeks=-2"},
		{"frequency rejects negative days", "/api/v1/analytics/frequency?days=-30"},
		{"list rejects malformed start date", "/api/v1/workouts?start=Jan-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(srv, http.MethodGet, tt.target, "", "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("GET %s status = %d, want 400", tt.target, rec.Code)
			}
		})
	}
}

// TestCardioGoalEndpoint verifies the goal arithmetic against the configured
// target.
func TestCardioGoalEndpoint(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(c.minutes), 0)::int`)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"minutes"}).AddRow(95))

	rec := doRequest(srv, http.MethodGet, "/api/v1/analytics/cardio-goal", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var got CardioGoalProgress
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Goal != 150 {
		t.Errorf("goal = %d, want 150", got.Goal)
	}
	if got.CurrentMinutes != 95 {
		t.Errorf("current_minutes = %d, want 95", got.CurrentMinutes)
	}
	if got.Remaining != 55 {
		t.Errorf("remaining = %d, want 55", got.Remaining)
	}
	if got.Reached {
		t.Error("reached = true, want false")
	}
}

// TestParseDate verifies strict date parsing.
func TestParseDate(t *testing.T) {
	if _, err := parseDate("2024-01-15"); err != nil {
		t.Errorf("parseDate(valid) error: %v", err)
	}
	for _, bad := range []string{"15-01-2024", "2024/01/15", "yesterday", ""} {
		if _, err := parseDate(bad); err == nil {
			t.Errorf("parseDate(%q) expected error", bad)
		}
	}
}

// TestQueryInt verifies the integer parameter helper, including the default.
func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?weeks=8", nil)
	if n, err := queryInt(req, "weeks", 12); err != nil || n != 8 {
		t.Errorf("queryInt(weeks) = %d, %v; want 8, nil", n, err)
	}
	if n, err := queryInt(req, "days", 30); err != nil || n != 30 {
		t.Errorf("queryInt(absent) = %d, %v; want 30, nil", n, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/?weeks=abc", nil)
	if _, err := queryInt(req, "weeks", 12); err == nil {
		t.Error("queryInt(non-numeric) expected error")
	}
}
