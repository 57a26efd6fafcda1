package domain

import (
	"time"
	"unicode/utf8"
)

// Tag labels planning and sessions. A nil ProjectID makes the tag global;
// otherwise it is visible to the project and all of its descendants.
type Tag struct {
	ID        string
	Name      string
	Color     string
	ProjectID *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Tag) Validate() error {
	if n := utf8.RuneCountInString(t.Name); n < 1 || n > 100 {
		return Invalidf("tag name must be 1-100 characters")
	}
	return ValidateColor(t.Color)
}

// IsGlobal reports whether the tag is available to every project.
func (t *Tag) IsGlobal() bool {
	return t.ProjectID == nil
}

// ScopeLabel describes the tag's uniqueness scope for error messages.
func ScopeLabel(projectID *string) string {
	if projectID == nil {
		return "globally"
	}
	return "in this project"
}
