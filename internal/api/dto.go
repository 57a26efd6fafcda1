package api

import (
	"encoding/json"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
)

// Response bodies use the snake_case names the web frontend expects.

type projectResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	ParentID             *string   `json:"parent_id"`
	Color                string    `json:"color"`
	Description          *string   `json:"description"`
	DefaultDuration      int       `json:"default_duration"`
	NotificationInterval *int      `json:"notification_interval"`
	IsArchived           bool      `json:"is_archived"`
	IsPinned             bool      `json:"is_pinned"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func toProject(p *domain.Project) projectResponse {
	return projectResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		ParentID:             p.ParentID,
		Color:                p.Color,
		Description:          p.Description,
		DefaultDuration:      p.DefaultDuration,
		NotificationInterval: p.NotificationInterval,
		IsArchived:           p.IsArchived,
		IsPinned:             p.IsPinned,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func toProjects(ps []*domain.Project) []projectResponse {
	out := make([]projectResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProject(p))
	}
	return out
}

type projectNodeResponse struct {
	projectResponse
	Children []projectNodeResponse `json:"children"`
}

func toProjectTree(nodes []*domain.ProjectNode) []projectNodeResponse {
	out := make([]projectNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, projectNodeResponse{
			projectResponse: toProject(n.Project),
			Children:        toProjectTree(n.Children),
		})
	}
	return out
}

// projectRefResponse is the nested project on planning and session bodies.
type projectRefResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func toProjectRef(p *domain.ProjectRef) *projectRefResponse {
	if p == nil {
		return nil
	}
	return &projectRefResponse{ID: p.ID, Name: p.Name, Color: p.Color}
}

type tagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	ProjectID *string   `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toTag(t *domain.Tag) tagResponse {
	return tagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Color:     t.Color,
		ProjectID: t.ProjectID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toTags(ts []*domain.Tag) []tagResponse {
	out := make([]tagResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTag(t))
	}
	return out
}

func toTagValues(ts []domain.Tag) []tagResponse {
	out := make([]tagResponse, 0, len(ts))
	for i := range ts {
		out = append(out, toTag(&ts[i]))
	}
	return out
}

type planningResponse struct {
	ID             string              `json:"id"`
	ProjectID      string              `json:"project_id"`
	ScheduledStart time.Time           `json:"scheduled_start"`
	ScheduledEnd   time.Time           `json:"scheduled_end"`
	Priority       domain.Priority     `json:"priority"`
	Description    *string             `json:"description"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Project        *projectRefResponse `json:"project"`
	Tags           []tagResponse       `json:"tags"`
}

func toPlanning(p *domain.Planning) planningResponse {
	return planningResponse{
		ID:             p.ID,
		ProjectID:      p.ProjectID,
		ScheduledStart: p.ScheduledStart,
		ScheduledEnd:   p.ScheduledEnd,
		Priority:       p.Priority,
		Description:    p.Description,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Project:        toProjectRef(p.Project),
		Tags:           toTagValues(p.Tags),
	}
}

func toPlannings(ps []*domain.Planning) []planningResponse {
	out := make([]planningResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPlanning(p))
	}
	return out
}

type sessionResponse struct {
	ID                   string              `json:"id"`
	ProjectID            *string             `json:"project_id"`
	StartTime            time.Time           `json:"start_time"`
	EndTime              *time.Time          `json:"end_time"`
	PlannedDuration      int                 `json:"planned_duration"`
	ActualDuration       *int                `json:"actual_duration"`
	PlanningID           *string             `json:"planning_id"`
	Notes                *string             `json:"notes"`
	SatisfactionScore    *int                `json:"satisfaction_score"`
	TasksDone            *string             `json:"tasks_done"`
	NotificationDisabled bool                `json:"notification_disabled"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
	Project              *projectRefResponse `json:"project"`
	Tags                 []tagResponse       `json:"tags"`
}

func toSession(s *domain.Session) *sessionResponse {
	if s == nil {
		return nil
	}
	return &sessionResponse{
		ID:                   s.ID,
		ProjectID:            s.ProjectID,
		StartTime:            s.StartTime,
		EndTime:              s.EndTime,
		PlannedDuration:      s.PlannedDuration,
		ActualDuration:       s.ActualDuration,
		PlanningID:           s.PlanningID,
		Notes:                s.Notes,
		SatisfactionScore:    s.SatisfactionScore,
		TasksDone:            s.TasksDone,
		NotificationDisabled: s.NotificationDisabled,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
		Project:              toProjectRef(s.Project),
		Tags:                 toTagValues(s.Tags),
	}
}

func toSessions(ss []*domain.Session) []*sessionResponse {
	out := make([]*sessionResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, toSession(s))
	}
	return out
}

type settingResponse struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toSetting(s *domain.Setting) settingResponse {
	return settingResponse{Key: s.Key, Value: s.Value, UpdatedAt: s.UpdatedAt}
}

type overviewResponse struct {
	TotalSessions   int     `json:"total_sessions"`
	TotalMinutes    int     `json:"total_minutes"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
}

type projectStatsResponse struct {
	ProjectName  string `json:"project_name"`
	Color        string `json:"color"`
	SessionCount int    `json:"session_count"`
	TotalMinutes int    `json:"total_minutes"`
}

type tagStatsResponse struct {
	TagName      string `json:"tag_name"`
	Color        string `json:"color"`
	SessionCount int    `json:"session_count"`
	TotalMinutes int    `json:"total_minutes"`
}

type dailyActivityResponse struct {
	Date            string  `json:"date"`
	SessionCount    int     `json:"session_count"`
	TotalMinutes    int     `json:"total_minutes"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
}

// Request bodies. Nullable fields distinguish an omitted key from an
// explicit null on partial updates. Times are strings so they can be read
// in the server's location when no offset is given.

type projectCreateRequest struct {
	Name                 string  `json:"name"`
	ParentID             *string `json:"parent_id"`
	Color                string  `json:"color"`
	Description          *string `json:"description"`
	DefaultDuration      *int    `json:"default_duration"`
	NotificationInterval *int    `json:"notification_interval"`
	IsPinned             bool    `json:"is_pinned"`
}

type projectUpdateRequest struct {
	Name                 *string                 `json:"name"`
	ParentID             domain.Nullable[string] `json:"parent_id"`
	Color                *string                 `json:"color"`
	Description          domain.Nullable[string] `json:"description"`
	DefaultDuration      *int                    `json:"default_duration"`
	NotificationInterval domain.Nullable[int]    `json:"notification_interval"`
	IsArchived           *bool                   `json:"is_archived"`
	IsPinned             *bool                   `json:"is_pinned"`
}

type tagCreateRequest struct {
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	ProjectID *string `json:"project_id"`
}

type tagUpdateRequest struct {
	Name      *string                 `json:"name"`
	Color     *string                 `json:"color"`
	ProjectID domain.Nullable[string] `json:"project_id"`
}

type planningCreateRequest struct {
	ProjectID      string          `json:"project_id"`
	ScheduledStart string          `json:"scheduled_start"`
	ScheduledEnd   string          `json:"scheduled_end"`
	Priority       domain.Priority `json:"priority"`
	Description    *string         `json:"description"`
	TagIDs         []string        `json:"tag_ids"`
}

type planningUpdateRequest struct {
	ProjectID      *string                 `json:"project_id"`
	ScheduledStart *string                 `json:"scheduled_start"`
	ScheduledEnd   *string                 `json:"scheduled_end"`
	Priority       *domain.Priority        `json:"priority"`
	Description    domain.Nullable[string] `json:"description"`
	TagIDs         []string                `json:"tag_ids"`
}

type sessionStartRequest struct {
	ProjectID       *string  `json:"project_id"`
	PlannedDuration *int     `json:"planned_duration"`
	PlanningID      *string  `json:"planning_id"`
	StartTime       *string  `json:"start_time"`
	TagIDs          []string `json:"tag_ids"`
}

type sessionReviewRequest struct {
	SatisfactionScore *int     `json:"satisfaction_score"`
	TasksDone         *string  `json:"tasks_done"`
	Notes             *string  `json:"notes"`
	TagIDs            []string `json:"tag_ids"`
}

type addNoteRequest struct {
	Note string `json:"note"`
}

type addTimeRequest struct {
	Minutes *int `json:"minutes"`
}

type settingRequest struct {
	Value json.RawMessage `json:"value"`
}
