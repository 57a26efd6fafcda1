package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time; it should succeed.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"projects", "tags", "planning", "planning_tags", "sessions", "session_tags", "settings"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_projects_parent",
		"idx_tags_name_scope",
		"idx_planning_start",
		"idx_planning_end",
		"idx_sessions_start",
		"idx_sessions_single_active",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_ActualDurationIsComputed(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO sessions (id, start_time, end_time, planned_duration, created_at, updated_at)
		VALUES ('s1', '2025-01-01T09:00:00Z', '2025-01-01T10:29:59Z', 60, '2025-01-01T09:00:00Z', '2025-01-01T09:00:00Z')`)
	require.NoError(t, err)

	var actual int
	require.NoError(t, db.QueryRow(`SELECT actual_duration FROM sessions WHERE id = 's1'`).Scan(&actual))
	assert.Equal(t, 89, actual, "whole minutes, truncated")
}

func TestMigrate_SingleActiveSessionIndex(t *testing.T) {
	db := openTestDB(t)

	insert := `INSERT INTO sessions (id, start_time, end_time, planned_duration, created_at, updated_at)
		VALUES (?, '2025-01-01T09:00:00Z', ?, 30, '2025-01-01T09:00:00Z', '2025-01-01T09:00:00Z')`

	_, err := db.Exec(insert, "done1", "2025-01-01T09:30:00Z")
	require.NoError(t, err)
	_, err = db.Exec(insert, "done2", "2025-01-01T09:45:00Z")
	require.NoError(t, err, "any number of stopped sessions is fine")

	_, err = db.Exec(insert, "open1", nil)
	require.NoError(t, err)
	_, err = db.Exec(insert, "open2", nil)
	assert.Error(t, err, "a second open session must violate the index")
}

func TestMigrate_GlobalTagNamesUnique(t *testing.T) {
	db := openTestDB(t)

	insert := `INSERT INTO tags (id, name, color, project_id, created_at, updated_at)
		VALUES (?, 'focus', '#ffffff', NULL, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`
	_, err := db.Exec(insert, "t1")
	require.NoError(t, err)
	_, err = db.Exec(insert, "t2")
	assert.Error(t, err)
}
