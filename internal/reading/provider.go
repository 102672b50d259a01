// Package reading reads today's statistics from the host reader app's
// statistics database. The database is opened read-only and never mutated;
// this core only merges the numbers into the daily log.
package reading

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// TodayStats is the reading collaborator's per-day summary.
type TodayStats struct {
	PagesRead    int
	TimeSpentSec int
	Sessions     int
}

// Provider exposes the reading-statistics surface consumed by the core.
type Provider interface {
	TodayStats(ctx context.Context) (*TodayStats, error)
}

// SQLiteProvider queries the reader's statistics database. A missing
// database yields zero stats, not an error: a device without reading
// history is a normal state.
type SQLiteProvider struct {
	path string

	Now func() time.Time
}

func NewSQLiteProvider(path string) *SQLiteProvider {
	return &SQLiteProvider{path: path, Now: time.Now}
}

func (p *SQLiteProvider) TodayStats(ctx context.Context) (*TodayStats, error) {
	if p.path == "" {
		return &TodayStats{}, nil
	}
	if _, err := os.Stat(p.path); os.IsNotExist(err) {
		return &TodayStats{}, nil
	}

	db, err := sql.Open("sqlite", "file:"+p.path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open statistics db: %w", err)
	}
	defer db.Close()

	now := p.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	row := db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(duration), 0), COUNT(DISTINCT id_book)
		FROM page_stat
		WHERE start_time >= ? AND start_time < ?
	`, dayStart.Unix(), dayEnd.Unix())

	var stats TodayStats
	if err := row.Scan(&stats.PagesRead, &stats.TimeSpentSec, &stats.Sessions); err != nil {
		return nil, fmt.Errorf("query statistics db: %w", err)
	}
	return &stats, nil
}
