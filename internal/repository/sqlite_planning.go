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

// SQLitePlanningRepo implements PlanningRepo using a SQLite database.
// Reads fill in the project reference and the attached tags.
type SQLitePlanningRepo struct {
	db db.DBTX
}

func NewSQLitePlanningRepo(db db.DBTX) *SQLitePlanningRepo {
	return &SQLitePlanningRepo{db: db}
}

const planningSelect = `SELECT pl.id, pl.project_id, pl.scheduled_start, pl.scheduled_end, pl.priority,
	pl.description, pl.created_at, pl.updated_at, p.name, p.color, p.notification_interval
	FROM planning pl JOIN projects p ON p.id = pl.project_id`

func (r *SQLitePlanningRepo) Create(ctx context.Context, p *domain.Planning) error {
	query := `INSERT INTO planning (id, project_id, scheduled_start, scheduled_end, priority, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ProjectID,
		timeToString(p.ScheduledStart),
		timeToString(p.ScheduledEnd),
		string(p.Priority),
		nullableStringToValue(p.Description),
		timeToString(p.CreatedAt),
		timeToString(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting planning: %w", err)
	}
	return nil
}

func (r *SQLitePlanningRepo) GetByID(ctx context.Context, id string) (*domain.Planning, error) {
	p, err := scanPlanning(r.db.QueryRowContext(ctx, planningSelect+` WHERE pl.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("Planning not found")
	}
	if err != nil {
		return nil, err
	}
	if p.Tags, err = loadTags(ctx, r.db, "planning_tags", "planning_id", p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLitePlanningRepo) List(ctx context.Context) ([]*domain.Planning, error) {
	return r.list(ctx, planningSelect+` ORDER BY pl.scheduled_start DESC`)
}

func (r *SQLitePlanningRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Planning, error) {
	return r.list(ctx, planningSelect+`
		WHERE pl.scheduled_start >= ? AND pl.scheduled_start < ?
		ORDER BY pl.scheduled_start`,
		timeToString(from), timeToString(to))
}

func (r *SQLitePlanningRepo) FindOverlapping(ctx context.Context, start, end time.Time, excludeID string) ([]*domain.Planning, error) {
	return r.list(ctx, planningSelect+`
		WHERE pl.scheduled_start < ? AND pl.scheduled_end > ? AND pl.id != ?
		ORDER BY pl.scheduled_start`,
		timeToString(end), timeToString(start), excludeID)
}

func (r *SQLitePlanningRepo) Update(ctx context.Context, p *domain.Planning) error {
	query := `UPDATE planning SET project_id = ?, scheduled_start = ?, scheduled_end = ?, priority = ?,
		description = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.ProjectID,
		timeToString(p.ScheduledStart),
		timeToString(p.ScheduledEnd),
		string(p.Priority),
		nullableStringToValue(p.Description),
		timeToString(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating planning: %w", err)
	}
	return expectAffected(res, "Planning not found")
}

func (r *SQLitePlanningRepo) SetTags(ctx context.Context, planningID string, tagIDs []string) error {
	return replaceTags(ctx, r.db, "planning_tags", "planning_id", planningID, tagIDs)
}

func (r *SQLitePlanningRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM planning WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting planning: %w", err)
	}
	return expectAffected(res, "Planning not found")
}

func (r *SQLitePlanningRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Planning, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing planning: %w", err)
	}
	items := []*domain.Planning{}
	for rows.Next() {
		p, err := scanPlanning(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating planning: %w", err)
	}
	rows.Close()

	// Tags are loaded once the cursor is closed; an in-memory database has a
	// single connection.
	for _, p := range items {
		if p.Tags, err = loadTags(ctx, r.db, "planning_tags", "planning_id", p.ID); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func scanPlanning(row rowScanner) (*domain.Planning, error) {
	var p domain.Planning
	var ref domain.ProjectRef
	var description sql.NullString
	var interval sql.NullInt64
	var startStr, endStr, priority, createdAtStr, updatedAtStr string

	err := row.Scan(
		&p.ID, &p.ProjectID, &startStr, &endStr, &priority,
		&description, &createdAtStr, &updatedAtStr,
		&ref.Name, &ref.Color, &interval,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning planning: %w", err)
	}

	p.Priority = domain.Priority(priority)
	p.Description = nullStringPtr(description)
	ref.ID = p.ProjectID
	ref.NotificationInterval = nullIntPtr(interval)
	p.Project = &ref

	if p.ScheduledStart, err = parseTime("scheduled_start", startStr); err != nil {
		return nil, err
	}
	if p.ScheduledEnd, err = parseTime("scheduled_end", endStr); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &p, nil
}
