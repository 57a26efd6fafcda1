package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(db db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

const projectColumns = `id, name, parent_id, color, description, default_duration,
	notification_interval, is_archived, is_pinned, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		nullableStringToValue(p.ParentID),
		p.Color,
		nullableStringToValue(p.Description),
		p.DefaultDuration,
		nullableIntToValue(p.NotificationInterval),
		boolToInt(p.IsArchived),
		boolToInt(p.IsPinned),
		timeToString(p.CreatedAt),
		timeToString(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("Project not found")
	}
	return p, err
}

func (r *SQLiteProjectRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking project: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if !includeArchived {
		query += ` WHERE is_archived = 0`
	}
	query += ` ORDER BY name`
	return r.list(ctx, query)
}

func (r *SQLiteProjectRepo) ListPinned(ctx context.Context) ([]*domain.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects
		WHERE is_pinned = 1 AND is_archived = 0 ORDER BY name`)
}

// ParentOf returns the parent ID of a project, nil for a root project.
func (r *SQLiteProjectRepo) ParentOf(ctx context.Context, id string) (*string, error) {
	var parent sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT parent_id FROM projects WHERE id = ?`, id).Scan(&parent)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("Project not found")
	}
	if err != nil {
		return nil, fmt.Errorf("reading project parent: %w", err)
	}
	return nullStringPtr(parent), nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, parent_id = ?, color = ?, description = ?,
		default_duration = ?, notification_interval = ?, is_archived = ?, is_pinned = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		nullableStringToValue(p.ParentID),
		p.Color,
		nullableStringToValue(p.Description),
		p.DefaultDuration,
		nullableIntToValue(p.NotificationInterval),
		boolToInt(p.IsArchived),
		boolToInt(p.IsPinned),
		timeToString(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return expectAffected(res, "Project not found")
}

// Delete removes the project. Child projects, project tags and planning go
// with it through ON DELETE CASCADE; sessions keep their rows.
func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return expectAffected(res, "Project not found")
}

func (r *SQLiteProjectRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	projects := []*domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// scanProject scans a single project row. sql.ErrNoRows is returned
// unwrapped so callers can map it to a not-found error.
func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var parentID, description sql.NullString
	var interval sql.NullInt64
	var archived, pinned int
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&p.ID, &p.Name, &parentID, &p.Color, &description, &p.DefaultDuration,
		&interval, &archived, &pinned, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.ParentID = nullStringPtr(parentID)
	p.Description = nullStringPtr(description)
	p.NotificationInterval = nullIntPtr(interval)
	p.IsArchived = intToBool(archived)
	p.IsPinned = intToBool(pinned)

	if p.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &p, nil
}

// expectAffected turns a zero-row UPDATE or DELETE into a not-found error.
func expectAffected(res sql.Result, notFoundMsg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return domain.NotFoundf("%s", notFoundMsg)
	}
	return nil
}
