package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// whole list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		start_date      TEXT NOT NULL,
		weekdays        INTEGER NOT NULL CHECK(weekdays > 0 AND weekdays < 128),
		daily_start_sec INTEGER NOT NULL CHECK(daily_start_sec >= 0 AND daily_start_sec < 86400),
		daily_hour_cap  REAL NOT NULL CHECK(daily_hour_cap > 0),
		multiplier      REAL NOT NULL CHECK(multiplier > 0),
		timezone        TEXT NOT NULL DEFAULT 'UTC',
		source          TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at)`,

	`CREATE TABLE IF NOT EXISTS plan_items (
		plan_id      TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		seq          INTEGER NOT NULL,
		title        TEXT NOT NULL,
		raw_duration TEXT NOT NULL DEFAULT '',
		duration_min REAL NOT NULL CHECK(duration_min > 0),
		PRIMARY KEY (plan_id, seq)
	)`,

	`CREATE TABLE IF NOT EXISTS plan_sessions (
		plan_id      TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		seq          INTEGER NOT NULL,
		date         TEXT NOT NULL,
		start_ns     INTEGER NOT NULL,
		end_ns       INTEGER NOT NULL CHECK(end_ns > start_ns),
		duration_min REAL NOT NULL,
		title        TEXT NOT NULL,
		source_index INTEGER NOT NULL,
		part         INTEGER NOT NULL DEFAULT 1,
		parts        INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (plan_id, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_sessions_date ON plan_sessions(plan_id, date)`,
}
