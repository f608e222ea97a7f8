package storage

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// weekStart returns the Monday beginning the Monday-to-Sunday week containing t,
// at midnight in t's location. Go counts Sunday as weekday 0, so shift to an
// ISO-style index (Monday=0..Sunday=6) before stepping back.
func weekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	back := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -back)
}

// WeeklyVolume is the lifted tonnage of one Monday-keyed week.
type WeeklyVolume struct {
	WeekStart   string  `json:"week_start"`
	TotalVolume float64 `json:"total_volume"`
}

// GetWeeklyVolume sums reps × weight per Monday-to-Sunday week over the last
// weeksBack weeks. Weeks with no sets are omitted; rows come back ordered by
// week start.
func (db *DB) GetWeeklyVolume(ctx context.Context, weeksBack int) ([]WeeklyVolume, error) {
	if weeksBack < 0 {
		return nil, fmt.Errorf("%w: weeksBack must not be negative", ErrInvalidArgument)
	}
	cutoff := time.Now().AddDate(0, 0, -7*weeksBack)

	rows, err := db.pool.Query(ctx,
		`SELECT w.date, SUM(s.reps * s.weight)
		 FROM sets s
		 JOIN workouts w ON s.workout_id = w.id
		 WHERE w.date >= $1
		 GROUP BY w.date
		 ORDER BY w.date ASC`,
		cutoff)
	if err != nil {
		return nil, fmt.Errorf("querying weekly volume: %w", err)
	}
	defer rows.Close()

	byWeek := make(map[string]float64)
	for rows.Next() {
		var date time.Time
		var volume float64
		if err := rows.Scan(&date, &volume); err != nil {
			return nil, fmt.Errorf("scanning daily volume: %w", err)
		}
		byWeek[weekStart(date).Format("2006-01-02")] += volume
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]WeeklyVolume, 0, len(byWeek))
	for week, volume := range byWeek {
		result = append(result, WeeklyVolume{WeekStart: week, TotalVolume: volume})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WeekStart < result[j].WeekStart })
	return result, nil
}

// WeeklyCardio is the cardio total of one Monday-keyed week.
type WeeklyCardio struct {
	WeekStart    string `json:"week_start"`
	TotalMinutes int    `json:"total_minutes"`
	WorkoutCount int    `json:"workout_count"`
}

// GetWeeklyCardioSummary sums cardio minutes and counts workouts with cardio
// per Monday-to-Sunday week over the last weeksBack weeks. Empty weeks are
// omitted.
func (db *DB) GetWeeklyCardioSummary(ctx context.Context, weeksBack int) ([]WeeklyCardio, error) {
	if weeksBack < 0 {
		return nil, fmt.Errorf("%w: weeksBack must not be negative", ErrInvalidArgument)
	}
	cutoff := time.Now().AddDate(0, 0, -7*weeksBack)

	rows, err := db.pool.Query(ctx,
		`SELECT w.date, SUM(c.minutes)::int, COUNT(DISTINCT c.workout_id)::int
		 FROM cardio_sessions c
		 JOIN workouts w ON c.workout_id = w.id
		 WHERE w.date >= $1
		 GROUP BY w.date
		 ORDER BY w.date ASC`,
		cutoff)
	if err != nil {
		return nil, fmt.Errorf("querying weekly cardio: %w", err)
	}
	defer rows.Close()

	byWeek := make(map[string]*WeeklyCardio)
	for rows.Next() {
		var date time.Time
		var minutes, count int
		if err := rows.Scan(&date, &minutes, &count); err != nil {
			return nil, fmt.Errorf("scanning daily cardio: %w", err)
		}
		week := weekStart(date).Format("2006-01-02")
		if _, ok := byWeek[week]; !ok {
			byWeek[week] = &WeeklyCardio{WeekStart: week}
		}
		byWeek[week].TotalMinutes += minutes
		byWeek[week].WorkoutCount += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]WeeklyCardio, 0, len(byWeek))
	for _, wc := range byWeek {
		result = append(result, *wc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WeekStart < result[j].WeekStart })
	return result, nil
}

// CurrentWeekCardioMinutes sums cardio minutes for workouts dated inside the
// current Monday-to-Sunday window. Zero when none exist.
func (db *DB) CurrentWeekCardioMinutes(ctx context.Context) (int, error) {
	monday := weekStart(time.Now())
	nextMonday := monday.AddDate(0, 0, 7)

	var minutes int
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(c.minutes), 0)::int
		 FROM cardio_sessions c
		 JOIN workouts w ON c.workout_id = w.id
		 WHERE w.date >= $1 AND w.date < $2`,
		monday, nextMonday).Scan(&minutes)
	if err != nil {
		return 0, fmt.Errorf("querying current week cardio: %w", err)
	}
	return minutes, nil
}
