package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
)

type ProjectService interface {
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	ListPinned(ctx context.Context) ([]*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, in ProjectCreate) (*domain.Project, error)
	Update(ctx context.Context, id string, in ProjectUpdate) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	Tree(ctx context.Context, includeArchived bool) ([]*domain.ProjectNode, error)
}

type ProjectCreate struct {
	Name                 string
	ParentID             *string
	Color                string
	Description          *string
	DefaultDuration      *int
	NotificationInterval *int
	IsPinned             bool
}

// ProjectUpdate is a partial update. Unset fields are left alone; Nullable
// fields may also be cleared with an explicit null.
type ProjectUpdate struct {
	Name                 *string
	ParentID             domain.Nullable[string]
	Color                *string
	Description          domain.Nullable[string]
	DefaultDuration      *int
	NotificationInterval domain.Nullable[int]
	IsArchived           *bool
	IsPinned             *bool
}

type TagService interface {
	List(ctx context.Context) ([]*domain.Tag, error)
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	Create(ctx context.Context, in TagCreate) (*domain.Tag, error)
	Update(ctx context.Context, id string, in TagUpdate) (*domain.Tag, error)
	Delete(ctx context.Context, id string) error
	// AvailableForProject resolves the tags a project may use: global tags,
	// its own, then those of each ancestor.
	AvailableForProject(ctx context.Context, projectID string) ([]*domain.Tag, error)
}

type TagCreate struct {
	Name      string
	Color     string
	ProjectID *string
}

type TagUpdate struct {
	Name      *string
	Color     *string
	ProjectID domain.Nullable[string]
}

type PlanningService interface {
	List(ctx context.Context) ([]*domain.Planning, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Planning, error)
	Today(ctx context.Context) ([]*domain.Planning, error)
	GetByID(ctx context.Context, id string) (*domain.Planning, error)
	Create(ctx context.Context, in PlanningCreate) (*domain.Planning, error)
	Update(ctx context.Context, id string, in PlanningUpdate) (*domain.Planning, error)
	Delete(ctx context.Context, id string) error
}

type PlanningCreate struct {
	ProjectID      string
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Priority       domain.Priority
	Description    *string
	TagIDs         []string
}

// PlanningUpdate leaves tags untouched when TagIDs is nil; an empty non-nil
// slice clears them.
type PlanningUpdate struct {
	ProjectID      *string
	ScheduledStart *time.Time
	ScheduledEnd   *time.Time
	Priority       *domain.Priority
	Description    domain.Nullable[string]
	TagIDs         []string
}

type SessionService interface {
	Active(ctx context.Context) (*domain.Session, error)
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
	Recent(ctx context.Context, limit int) ([]*domain.Session, error)
	Start(ctx context.Context, in SessionStart) (*domain.Session, error)
	Stop(ctx context.Context, id string, review *SessionReview) (*domain.Session, error)
	AddNote(ctx context.Context, id, note string) (*domain.Session, error)
	AddTime(ctx context.Context, id string, minutes int) (*domain.Session, error)
	ToggleNotifications(ctx context.Context, id string) (*domain.Session, error)
}

type SessionStart struct {
	ProjectID       *string
	PlannedDuration *int
	PlanningID      *string
	StartTime       *time.Time
	TagIDs          []string
}

// SessionReview carries the optional end-of-session feedback. Nil fields are
// left as they are.
type SessionReview struct {
	SatisfactionScore *int
	TasksDone         *string
	Notes             *string
	TagIDs            []string
}

type SettingService interface {
	List(ctx context.Context) ([]*domain.Setting, error)
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Set(ctx context.Context, key string, value json.RawMessage) (*domain.Setting, error)
	Delete(ctx context.Context, key string) error
	// NotificationsEnabled is true unless the notifications_enabled setting
	// holds false.
	NotificationsEnabled(ctx context.Context) (bool, error)
}

type StatisticsService interface {
	Overview(ctx context.Context, r DateRange) (*domain.StatsOverview, error)
	ByProject(ctx context.Context, r DateRange) ([]domain.StatsBucket, error)
	ByTag(ctx context.Context, r DateRange) ([]domain.StatsBucket, error)
	DailyActivity(ctx context.Context, r DateRange) ([]domain.DailyActivity, error)
}

// DateRange selects whole local days, both ends inclusive. Zero values take
// the defaults: the last 30 days ending today.
type DateRange struct {
	Start time.Time
	End   time.Time
}
