package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	ListPinned(ctx context.Context) ([]*domain.Project, error)
	ParentOf(ctx context.Context, id string) (*string, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TagRepo interface {
	Create(ctx context.Context, t *domain.Tag) error
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	List(ctx context.Context) ([]*domain.Tag, error)
	ListGlobal(ctx context.Context) ([]*domain.Tag, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Tag, error)
	// NameTaken reports whether another tag (not excludeID) already uses
	// name in the given scope. A nil projectID is the global scope.
	NameTaken(ctx context.Context, name string, projectID *string, excludeID string) (bool, error)
	CountExisting(ctx context.Context, ids []string) (int, error)
	Update(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id string) error
}

type PlanningRepo interface {
	Create(ctx context.Context, p *domain.Planning) error
	GetByID(ctx context.Context, id string) (*domain.Planning, error)
	List(ctx context.Context) ([]*domain.Planning, error)
	// ListStartingBetween returns planning whose start lies in [from, to),
	// ordered by start.
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Planning, error)
	// FindOverlapping returns planning intersecting [start, end), ignoring excludeID.
	FindOverlapping(ctx context.Context, start, end time.Time, excludeID string) ([]*domain.Planning, error)
	Update(ctx context.Context, p *domain.Planning) error
	SetTags(ctx context.Context, planningID string, tagIDs []string) error
	Delete(ctx context.Context, id string) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	// GetActive returns the open session, or nil when none is running.
	GetActive(ctx context.Context) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Session, error)
	ListCompletedBetween(ctx context.Context, from, to time.Time) ([]*domain.Session, error)
	ExistsForPlanning(ctx context.Context, planningID string) (bool, error)
	Update(ctx context.Context, s *domain.Session) error
	SetTags(ctx context.Context, sessionID string, tagIDs []string) error
	Delete(ctx context.Context, id string) error
}

type SettingRepo interface {
	List(ctx context.Context) ([]*domain.Setting, error)
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Upsert(ctx context.Context, s *domain.Setting) error
	Delete(ctx context.Context, key string) error
}

// StatsRepo aggregates completed sessions whose start lies in [from, to).
type StatsRepo interface {
	Overview(ctx context.Context, from, to time.Time) (*domain.StatsOverview, error)
	ByProject(ctx context.Context, from, to time.Time) ([]domain.StatsBucket, error)
	ByTag(ctx context.Context, from, to time.Time) ([]domain.StatsBucket, error)
}
