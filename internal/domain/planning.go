package domain

import "time"

// Planning is a scheduled block of work for a project within a single day.
type Planning struct {
	ID             string
	ProjectID      string
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Priority       Priority
	Description    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Project *ProjectRef
	Tags    []Tag
}

// Validate checks the window rules that do not need storage: a known
// priority, both ends on the same calendar day in loc, and a positive length.
func (p *Planning) Validate(loc *time.Location) error {
	if !ValidPriorities[p.Priority] {
		return Invalidf("priority %q must be one of low, medium, critical", p.Priority)
	}
	if !SameDay(p.ScheduledStart, p.ScheduledEnd, loc) {
		return Invalidf("Planning must be within the same day")
	}
	if !p.ScheduledEnd.After(p.ScheduledStart) {
		return Invalidf("End time must be after start time")
	}
	return nil
}

// Duration is the planned length of the block.
func (p *Planning) Duration() time.Duration {
	return p.ScheduledEnd.Sub(p.ScheduledStart)
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DayBounds returns [start of day, start of next day) for the date of t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
