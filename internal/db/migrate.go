package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate replays the schema statements in order. Each one is guarded by
// IF NOT EXISTS, so replaying on every open is safe. A column added later
// with ALTER TABLE reports "duplicate column name" on replay, which counts
// as applied.
func Migrate(conn *sql.DB) error {
	for i, stmt := range migrations {
		_, err := conn.Exec(stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column name") {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS subjects (
		id          TEXT PRIMARY KEY,
		owner_id    TEXT NOT NULL,
		name        TEXT NOT NULL,
		code        TEXT NOT NULL DEFAULT '',
		instructor  TEXT NOT NULL DEFAULT '',
		credits     INTEGER NOT NULL DEFAULT 0 CHECK(credits BETWEEN 0 AND 10),
		color       TEXT NOT NULL DEFAULT '#6366f1',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_subjects_owner ON subjects(owner_id, created_at)`,

	// subject_id is checked at commit so a subject and its assignments can be
	// removed as two statements inside one transaction.
	`CREATE TABLE IF NOT EXISTS assignments (
		id               TEXT PRIMARY KEY,
		owner_id         TEXT NOT NULL,
		subject_id       TEXT NOT NULL REFERENCES subjects(id) DEFERRABLE INITIALLY DEFERRED,
		title            TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		type             TEXT NOT NULL DEFAULT 'homework'
		                 CHECK(type IN ('homework','project','exam','quiz','presentation','other')),
		due_date         TEXT NOT NULL,
		priority         TEXT NOT NULL DEFAULT 'medium'
		                 CHECK(priority IN ('low','medium','high')),
		estimated_hours  REAL NOT NULL DEFAULT 2,
		progress         INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		is_completed     INTEGER NOT NULL DEFAULT 0,
		completed_at     TEXT,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_owner_due ON assignments(owner_id, due_date)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_owner_completed ON assignments(owner_id, is_completed)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_owner_subject ON assignments(owner_id, subject_id)`,

	`CREATE TABLE IF NOT EXISTS study_plans (
		id             TEXT PRIMARY KEY,
		owner_id       TEXT NOT NULL,
		title          TEXT NOT NULL,
		start_date     TEXT NOT NULL,
		end_date       TEXT NOT NULL,
		insights_json  TEXT,
		created_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_study_plans_owner_created ON study_plans(owner_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS study_sessions (
		id             TEXT PRIMARY KEY,
		plan_id        TEXT NOT NULL REFERENCES study_plans(id) ON DELETE CASCADE,
		position       INTEGER NOT NULL,
		assignment_id  TEXT REFERENCES assignments(id) ON DELETE SET NULL,
		subject_id     TEXT REFERENCES subjects(id) ON DELETE SET NULL,
		date           TEXT NOT NULL,
		start_time     TEXT NOT NULL DEFAULT '',
		end_time       TEXT NOT NULL DEFAULT '',
		duration_min   INTEGER NOT NULL DEFAULT 0,
		topic          TEXT NOT NULL DEFAULT '',
		description    TEXT NOT NULL DEFAULT '',
		tips_json      TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_study_sessions_plan ON study_sessions(plan_id, position)`,
	`ALTER TABLE study_sessions ADD COLUMN is_completed INTEGER NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_study_sessions_assignment ON study_sessions(assignment_id)`,
}
