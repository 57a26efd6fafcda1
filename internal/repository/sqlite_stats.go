package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
)

// SQLiteStatsRepo implements StatsRepo with aggregate queries over
// completed sessions.
type SQLiteStatsRepo struct {
	db db.DBTX
}

func NewSQLiteStatsRepo(db db.DBTX) *SQLiteStatsRepo {
	return &SQLiteStatsRepo{db: db}
}

const completedInRange = `s.end_time IS NOT NULL AND s.start_time >= ? AND s.start_time < ?`

func (r *SQLiteStatsRepo) Overview(ctx context.Context, from, to time.Time) (*domain.StatsOverview, error) {
	var o domain.StatsOverview
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(s.actual_duration), 0), AVG(s.satisfaction_score)
		FROM sessions s WHERE `+completedInRange,
		timeToString(from), timeToString(to),
	).Scan(&o.TotalSessions, &o.TotalMinutes, &avg)
	if err != nil {
		return nil, fmt.Errorf("computing overview: %w", err)
	}
	if avg.Valid {
		o.AvgSatisfaction = avg.Float64
	}
	return &o, nil
}

func (r *SQLiteStatsRepo) ByProject(ctx context.Context, from, to time.Time) ([]domain.StatsBucket, error) {
	return r.buckets(ctx, `
		SELECT p.name, p.color, COUNT(s.id), COALESCE(SUM(s.actual_duration), 0) AS total
		FROM sessions s JOIN projects p ON p.id = s.project_id
		WHERE `+completedInRange+`
		GROUP BY p.id, p.name, p.color
		ORDER BY total DESC, p.name`,
		from, to)
}

func (r *SQLiteStatsRepo) ByTag(ctx context.Context, from, to time.Time) ([]domain.StatsBucket, error) {
	return r.buckets(ctx, `
		SELECT t.name, t.color, COUNT(s.id), COALESCE(SUM(s.actual_duration), 0) AS total
		FROM sessions s
		JOIN session_tags st ON st.session_id = s.id
		JOIN tags t ON t.id = st.tag_id
		WHERE `+completedInRange+`
		GROUP BY t.id, t.name, t.color
		ORDER BY total DESC, t.name`,
		from, to)
}

func (r *SQLiteStatsRepo) buckets(ctx context.Context, query string, from, to time.Time) ([]domain.StatsBucket, error) {
	rows, err := r.db.QueryContext(ctx, query, timeToString(from), timeToString(to))
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	out := []domain.StatsBucket{}
	for rows.Next() {
		var b domain.StatsBucket
		if err := rows.Scan(&b.Name, &b.Color, &b.SessionCount, &b.TotalMinutes); err != nil {
			return nil, fmt.Errorf("scanning stats row: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stats: %w", err)
	}
	return out, nil
}
