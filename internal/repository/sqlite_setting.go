package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
)

// SQLiteSettingRepo implements SettingRepo using a SQLite database.
type SQLiteSettingRepo struct {
	db db.DBTX
}

func NewSQLiteSettingRepo(db db.DBTX) *SQLiteSettingRepo {
	return &SQLiteSettingRepo{db: db}
}

func (r *SQLiteSettingRepo) List(ctx context.Context) ([]*domain.Setting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key_name, value_json, updated_at FROM settings ORDER BY key_name`)
	if err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}
	defer rows.Close()

	settings := []*domain.Setting{}
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating settings: %w", err)
	}
	return settings, nil
}

func (r *SQLiteSettingRepo) Get(ctx context.Context, key string) (*domain.Setting, error) {
	s, err := scanSetting(r.db.QueryRowContext(ctx,
		`SELECT key_name, value_json, updated_at FROM settings WHERE key_name = ?`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("Setting '%s' not found", key)
	}
	return s, err
}

func (r *SQLiteSettingRepo) Upsert(ctx context.Context, s *domain.Setting) error {
	query := `INSERT INTO settings (key_name, value_json, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key_name) DO UPDATE SET value_json = excluded.value_json, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, s.Key, string(s.Value), timeToString(s.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upserting setting: %w", err)
	}
	return nil
}

func (r *SQLiteSettingRepo) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key_name = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting setting: %w", err)
	}
	return expectAffected(res, fmt.Sprintf("Setting '%s' not found", key))
}

func scanSetting(row rowScanner) (*domain.Setting, error) {
	var s domain.Setting
	var value, updatedAtStr string
	if err := row.Scan(&s.Key, &value, &updatedAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning setting: %w", err)
	}
	s.Value = []byte(value)

	var err error
	if s.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &s, nil
}
