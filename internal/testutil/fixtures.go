package testutil

import (
	"time"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/google/uuid"
)

// Project options
type ProjectOption func(*domain.Project)

func WithParent(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ParentID = &id
	}
}

func WithColor(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Color = c
	}
}

func WithDefaultDuration(m int) ProjectOption {
	return func(p *domain.Project) {
		p.DefaultDuration = m
	}
}

func WithNotificationInterval(m int) ProjectOption {
	return func(p *domain.Project) {
		p.NotificationInterval = &m
	}
}

func WithArchived() ProjectOption {
	return func(p *domain.Project) {
		p.IsArchived = true
	}
}

func WithPinned() ProjectOption {
	return func(p *domain.Project) {
		p.IsPinned = true
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:              uuid.New().String(),
		Name:            name,
		Color:           "#3b82f6",
		DefaultDuration: domain.DefaultProjectDuration,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tag options
type TagOption func(*domain.Tag)

func WithTagProject(id string) TagOption {
	return func(t *domain.Tag) {
		t.ProjectID = &id
	}
}

func NewTestTag(name string, opts ...TagOption) *domain.Tag {
	now := time.Now().UTC()
	t := &domain.Tag{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     "#10b981",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Planning options
type PlanningOption func(*domain.Planning)

func WithPriority(p domain.Priority) PlanningOption {
	return func(pl *domain.Planning) {
		pl.Priority = p
	}
}

func WithPlanningDescription(d string) PlanningOption {
	return func(pl *domain.Planning) {
		pl.Description = &d
	}
}

func NewTestPlanning(projectID string, start, end time.Time, opts ...PlanningOption) *domain.Planning {
	now := time.Now().UTC()
	p := &domain.Planning{
		ID:             uuid.New().String(),
		ProjectID:      projectID,
		ScheduledStart: start,
		ScheduledEnd:   end,
		Priority:       domain.PriorityMedium,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Session options
type SessionOption func(*domain.Session)

func WithSessionProject(id string) SessionOption {
	return func(s *domain.Session) {
		s.ProjectID = &id
	}
}

func WithSessionPlanning(id string) SessionOption {
	return func(s *domain.Session) {
		s.PlanningID = &id
	}
}

func WithStart(t time.Time) SessionOption {
	return func(s *domain.Session) {
		s.StartTime = t
	}
}

// WithEnd stops the session at t.
func WithEnd(t time.Time) SessionOption {
	return func(s *domain.Session) {
		s.EndTime = &t
	}
}

func WithPlanned(m int) SessionOption {
	return func(s *domain.Session) {
		s.PlannedDuration = m
	}
}

func WithSatisfaction(score int) SessionOption {
	return func(s *domain.Session) {
		s.SatisfactionScore = &score
	}
}

func WithNotificationsDisabled() SessionOption {
	return func(s *domain.Session) {
		s.NotificationDisabled = true
	}
}

// NewTestSession builds an active 60-minute session that started an hour ago.
func NewTestSession(opts ...SessionOption) *domain.Session {
	now := time.Now().UTC()
	s := &domain.Session{
		ID:              uuid.New().String(),
		StartTime:       now.Add(-time.Hour),
		PlannedDuration: 60,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
