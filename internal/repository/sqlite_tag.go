package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
)

// SQLiteTagRepo implements TagRepo using a SQLite database.
type SQLiteTagRepo struct {
	db db.DBTX
}

func NewSQLiteTagRepo(db db.DBTX) *SQLiteTagRepo {
	return &SQLiteTagRepo{db: db}
}

const tagColumns = `id, name, color, project_id, created_at, updated_at`

func (r *SQLiteTagRepo) Create(ctx context.Context, t *domain.Tag) error {
	query := `INSERT INTO tags (` + tagColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Name, t.Color,
		nullableStringToValue(t.ProjectID),
		timeToString(t.CreatedAt),
		timeToString(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting tag: %w", err)
	}
	return nil
}

func (r *SQLiteTagRepo) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	t, err := scanTag(r.db.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("Tag not found")
	}
	return t, err
}

func (r *SQLiteTagRepo) List(ctx context.Context) ([]*domain.Tag, error) {
	return r.list(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY name`)
}

func (r *SQLiteTagRepo) ListGlobal(ctx context.Context) ([]*domain.Tag, error) {
	return r.list(ctx, `SELECT `+tagColumns+` FROM tags WHERE project_id IS NULL ORDER BY name`)
}

func (r *SQLiteTagRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Tag, error) {
	return r.list(ctx, `SELECT `+tagColumns+` FROM tags WHERE project_id = ? ORDER BY name`, projectID)
}

func (r *SQLiteTagRepo) NameTaken(ctx context.Context, name string, projectID *string, excludeID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tags WHERE name = ? AND IFNULL(project_id, '') = IFNULL(?, '') AND id != ?`,
		name, nullableStringToValue(projectID), excludeID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking tag name: %w", err)
	}
	return n > 0, nil
}

// CountExisting returns how many of the distinct ids exist.
func (r *SQLiteTagRepo) CountExisting(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int
	query := `SELECT COUNT(*) FROM tags WHERE id IN (` + placeholders(len(ids)) + `)`
	if err := r.db.QueryRowContext(ctx, query, stringArgs(ids)...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting tags: %w", err)
	}
	return n, nil
}

func (r *SQLiteTagRepo) Update(ctx context.Context, t *domain.Tag) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tags SET name = ?, color = ?, project_id = ?, updated_at = ? WHERE id = ?`,
		t.Name, t.Color, nullableStringToValue(t.ProjectID), timeToString(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating tag: %w", err)
	}
	return expectAffected(res, "Tag not found")
}

func (r *SQLiteTagRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	return expectAffected(res, "Tag not found")
}

func (r *SQLiteTagRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

func scanTag(row rowScanner) (*domain.Tag, error) {
	var t domain.Tag
	var projectID sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(&t.ID, &t.Name, &t.Color, &projectID, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	t.ProjectID = nullStringPtr(projectID)

	if t.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &t, nil
}
