package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

func NewSQLiteSessionRepo(db db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

const sessionSelect = `SELECT s.id, s.project_id, s.start_time, s.end_time, s.planned_duration, s.actual_duration,
	s.planning_id, s.notes, s.satisfaction_score, s.tasks_done, s.notification_disabled,
	s.created_at, s.updated_at, p.name, p.color, p.notification_interval
	FROM sessions s LEFT JOIN projects p ON p.id = s.project_id`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO sessions (id, project_id, start_time, end_time, planned_duration, planning_id,
		notes, satisfaction_score, tasks_done, notification_disabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		nullableStringToValue(s.ProjectID),
		timeToString(s.StartTime),
		nullableTimeToString(s.EndTime),
		s.PlannedDuration,
		nullableStringToValue(s.PlanningID),
		nullableStringToValue(s.Notes),
		nullableIntToValue(s.SatisfactionScore),
		nullableStringToValue(s.TasksDone),
		boolToInt(s.NotificationDisabled),
		timeToString(s.CreatedAt),
		timeToString(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	s, err := r.getOne(ctx, sessionSelect+` WHERE s.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("Session not found")
	}
	return s, err
}

func (r *SQLiteSessionRepo) GetActive(ctx context.Context) (*domain.Session, error) {
	s, err := r.getOne(ctx, sessionSelect+` WHERE s.end_time IS NULL ORDER BY s.start_time DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *SQLiteSessionRepo) List(ctx context.Context) ([]*domain.Session, error) {
	return r.list(ctx, sessionSelect+` ORDER BY s.start_time DESC`)
}

func (r *SQLiteSessionRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Session, error) {
	return r.list(ctx, sessionSelect+`
		WHERE s.end_time IS NOT NULL ORDER BY s.start_time DESC LIMIT ?`, limit)
}

func (r *SQLiteSessionRepo) ListCompletedBetween(ctx context.Context, from, to time.Time) ([]*domain.Session, error) {
	return r.list(ctx, sessionSelect+`
		WHERE s.end_time IS NOT NULL AND s.start_time >= ? AND s.start_time < ?
		ORDER BY s.start_time`,
		timeToString(from), timeToString(to))
}

func (r *SQLiteSessionRepo) ExistsForPlanning(ctx context.Context, planningID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE planning_id = ?`, planningID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking sessions for planning: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.Session) error {
	query := `UPDATE sessions SET project_id = ?, start_time = ?, end_time = ?, planned_duration = ?,
		planning_id = ?, notes = ?, satisfaction_score = ?, tasks_done = ?, notification_disabled = ?,
		updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableStringToValue(s.ProjectID),
		timeToString(s.StartTime),
		nullableTimeToString(s.EndTime),
		s.PlannedDuration,
		nullableStringToValue(s.PlanningID),
		nullableStringToValue(s.Notes),
		nullableIntToValue(s.SatisfactionScore),
		nullableStringToValue(s.TasksDone),
		boolToInt(s.NotificationDisabled),
		timeToString(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	return expectAffected(res, "Session not found")
}

func (r *SQLiteSessionRepo) SetTags(ctx context.Context, sessionID string, tagIDs []string) error {
	return replaceTags(ctx, r.db, "session_tags", "session_id", sessionID, tagIDs)
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return expectAffected(res, "Session not found")
}

func (r *SQLiteSessionRepo) getOne(ctx context.Context, query string, args ...any) (*domain.Session, error) {
	s, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	if s.Tags, err = loadTags(ctx, r.db, "session_tags", "session_id", s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSessionRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Session, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	sessions := []*domain.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	rows.Close()

	for _, s := range sessions {
		if s.Tags, err = loadTags(ctx, r.db, "session_tags", "session_id", s.ID); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	var projectID, endStr, planningID, notes, tasksDone sql.NullString
	var projectName, projectColor sql.NullString
	var actual, satisfaction, interval sql.NullInt64
	var disabled int
	var startStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&s.ID, &projectID, &startStr, &endStr, &s.PlannedDuration, &actual,
		&planningID, &notes, &satisfaction, &tasksDone, &disabled,
		&createdAtStr, &updatedAtStr, &projectName, &projectColor, &interval,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	s.ProjectID = nullStringPtr(projectID)
	s.EndTime = parseNullableTime(endStr, time.RFC3339)
	s.ActualDuration = nullIntPtr(actual)
	s.PlanningID = nullStringPtr(planningID)
	s.Notes = nullStringPtr(notes)
	s.SatisfactionScore = nullIntPtr(satisfaction)
	s.TasksDone = nullStringPtr(tasksDone)
	s.NotificationDisabled = intToBool(disabled)
	if s.ProjectID != nil && projectName.Valid {
		s.Project = &domain.ProjectRef{
			ID:                   *s.ProjectID,
			Name:                 projectName.String,
			Color:                projectColor.String,
			NotificationInterval: nullIntPtr(interval),
		}
	}

	if s.StartTime, err = parseTime("start_time", startStr); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &s, nil
}
