package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id                    TEXT PRIMARY KEY,
		name                  TEXT NOT NULL,
		parent_id             TEXT REFERENCES projects(id) ON DELETE CASCADE,
		color                 TEXT NOT NULL,
		description           TEXT,
		default_duration      INTEGER NOT NULL DEFAULT 60 CHECK(default_duration >= 5),
		notification_interval INTEGER CHECK(notification_interval IS NULL OR notification_interval >= 1),
		is_archived           INTEGER NOT NULL DEFAULT 0,
		is_pinned             INTEGER NOT NULL DEFAULT 0,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_parent ON projects(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_archived ON projects(is_archived)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_pinned ON projects(is_pinned)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL,
		project_id TEXT REFERENCES projects(id) ON DELETE CASCADE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// NULL project_id means global; IFNULL folds all globals into one scope
	// so the name stays unique among them too.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_name_scope ON tags(name, IFNULL(project_id, ''))`,
	`CREATE INDEX IF NOT EXISTS idx_tags_project ON tags(project_id)`,

	`CREATE TABLE IF NOT EXISTS planning (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		scheduled_start TEXT NOT NULL,
		scheduled_end   TEXT NOT NULL,
		priority        TEXT NOT NULL DEFAULT 'medium'
		                CHECK(priority IN ('low','medium','critical')),
		description     TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_planning_start ON planning(scheduled_start)`,
	`CREATE INDEX IF NOT EXISTS idx_planning_end ON planning(scheduled_end)`,

	`CREATE TABLE IF NOT EXISTS planning_tags (
		planning_id TEXT NOT NULL REFERENCES planning(id) ON DELETE CASCADE,
		tag_id      TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (planning_id, tag_id)
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id                    TEXT PRIMARY KEY,
		project_id            TEXT REFERENCES projects(id) ON DELETE SET NULL,
		start_time            TEXT NOT NULL,
		end_time              TEXT,
		planned_duration      INTEGER NOT NULL CHECK(planned_duration >= 1),
		actual_duration       INTEGER GENERATED ALWAYS AS (
		                          CASE WHEN end_time IS NULL THEN NULL
		                          ELSE (CAST(strftime('%s', end_time) AS INTEGER)
		                              - CAST(strftime('%s', start_time) AS INTEGER)) / 60
		                          END) VIRTUAL,
		planning_id           TEXT REFERENCES planning(id) ON DELETE SET NULL,
		notes                 TEXT,
		satisfaction_score    INTEGER,
		tasks_done            TEXT,
		notification_disabled INTEGER NOT NULL DEFAULT 0,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_end ON sessions(end_time)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_planning ON sessions(planning_id)`,

	// At most one session may be open at a time.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_single_active
		ON sessions((end_time IS NULL)) WHERE end_time IS NULL`,

	`CREATE TABLE IF NOT EXISTS session_tags (
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		tag_id     TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (session_id, tag_id)
	)`,

	`CREATE TABLE IF NOT EXISTS settings (
		key_name   TEXT PRIMARY KEY,
		value_json TEXT NOT NULL CHECK(json_valid(value_json)),
		updated_at TEXT NOT NULL
	)`,
}
