package domain

import (
	"regexp"
	"time"
	"unicode/utf8"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Project struct {
	ID                   string
	Name                 string
	ParentID             *string
	Color                string
	Description          *string
	DefaultDuration      int
	NotificationInterval *int
	IsArchived           bool
	IsPinned             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ProjectRef is the slim project view embedded in planning and session rows.
type ProjectRef struct {
	ID                   string
	Name                 string
	Color                string
	NotificationInterval *int
}

// Validate checks the field-level rules. Hierarchy rules (parent exists,
// no cycles) need storage and live in the project service.
func (p *Project) Validate() error {
	if n := utf8.RuneCountInString(p.Name); n < 1 || n > 255 {
		return Invalidf("project name must be 1-255 characters")
	}
	if err := ValidateColor(p.Color); err != nil {
		return err
	}
	if p.DefaultDuration < MinProjectDuration {
		return Invalidf("default duration must be at least %d minutes", MinProjectDuration)
	}
	if p.NotificationInterval != nil && *p.NotificationInterval < 1 {
		return Invalidf("notification interval must be at least 1 minute")
	}
	return nil
}

// NotifyInterval returns the project's reminder cadence in minutes, or
// fallback when the project does not override it.
func (r *ProjectRef) NotifyInterval(fallback int) int {
	if r == nil || r.NotificationInterval == nil || *r.NotificationInterval <= 0 {
		return fallback
	}
	return *r.NotificationInterval
}

// ValidateColor checks for a #RRGGBB hex color.
func ValidateColor(c string) error {
	if !colorPattern.MatchString(c) {
		return Invalidf("color %q must be a hex color like #1a2b3c", c)
	}
	return nil
}

// ProjectNode is a project with its children, used for tree rendering.
type ProjectNode struct {
	Project  *Project
	Children []*ProjectNode
}
