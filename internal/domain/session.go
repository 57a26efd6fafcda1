package domain

import (
	"strings"
	"time"
)

// Session is a tracked stretch of work. A session with no EndTime is active;
// at most one session is active at a time.
type Session struct {
	ID                   string
	ProjectID            *string
	StartTime            time.Time
	EndTime              *time.Time
	PlannedDuration      int
	ActualDuration       *int
	PlanningID           *string
	Notes                *string
	SatisfactionScore    *int
	TasksDone            *string
	NotificationDisabled bool
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Project *ProjectRef
	Tags    []Tag
}

func (s *Session) IsActive() bool {
	return s.EndTime == nil
}

// Elapsed is the time since start, measured at now for active sessions and
// at the end time otherwise.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if s.EndTime != nil {
		now = *s.EndTime
	}
	return now.Sub(s.StartTime)
}

// Overtime is how far past the planned duration the session has run.
// It is negative while the session is still within plan.
func (s *Session) Overtime(now time.Time) time.Duration {
	return s.Elapsed(now) - time.Duration(s.PlannedDuration)*time.Minute
}

// AppendNote adds a "[HH:MM] note" line, stamping with at in loc.
func (s *Session) AppendNote(note string, at time.Time, loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	line := "[" + at.In(loc).Format("15:04") + "] " + note
	if s.Notes == nil || *s.Notes == "" {
		s.Notes = &line
		return
	}
	joined := strings.Join([]string{*s.Notes, line}, "\n")
	s.Notes = &joined
}

// DisplayName is the project name or a generic label for unassigned sessions.
func (s *Session) DisplayName() string {
	if s.Project != nil && s.Project.Name != "" {
		return s.Project.Name
	}
	return "Session"
}

// ValidateSatisfaction checks an optional 1-10 score.
func ValidateSatisfaction(score *int) error {
	if score != nil && (*score < 1 || *score > 10) {
		return Invalidf("satisfaction score must be between 1 and 10")
	}
	return nil
}
