package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
)

// FormatActiveSession renders the running session card with progress
// against the planned duration.
func FormatActiveSession(s *domain.Session, now time.Time, loc *time.Location) string {
	if s == nil {
		return RenderBox("Active Session", Dim("No session running. Start one with: planner session start"))
	}

	elapsed := int(s.Elapsed(now).Minutes())
	pct := 0.0
	if s.PlannedDuration > 0 {
		pct = float64(elapsed) / float64(s.PlannedDuration)
	}

	var b strings.Builder
	b.WriteString(sessionTitle(s) + "\n\n")
	b.WriteString(RenderProgress(pct, 30) + "\n")
	b.WriteString(fmt.Sprintf("%s of %s planned", FormatMinutes(elapsed), FormatMinutes(s.PlannedDuration)))
	if over := elapsed - s.PlannedDuration; over > 0 {
		b.WriteString("  " + StyleRed.Render(fmt.Sprintf("+%s over", FormatMinutes(over))))
	}
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("started %s", s.StartTime.In(loc).Format("15:04"))))
	if s.NotificationDisabled {
		b.WriteString("  " + Dim("🔕 muted"))
	}
	b.WriteString("\n")
	if s.Notes != nil && *s.Notes != "" {
		b.WriteString("\n" + *s.Notes + "\n")
	}
	return RenderBox("Active Session", strings.TrimRight(b.String(), "\n"))
}

// FormatSession renders a single session summary, used after start/stop.
func FormatSession(s *domain.Session, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(sessionTitle(s) + "\n")
	b.WriteString(Dim(fmt.Sprintf("%s  ·  planned %s", s.ID, FormatMinutes(s.PlannedDuration))) + "\n")
	if s.EndTime != nil {
		b.WriteString(fmt.Sprintf("%s %s\n",
			TimeRange(s.StartTime.In(loc), s.EndTime.In(loc)),
			StyleGreen.Render(FormatMinutes(actualMinutes(s)))))
	} else {
		b.WriteString(fmt.Sprintf("started %s\n", s.StartTime.In(loc).Format("15:04")))
	}
	if s.SatisfactionScore != nil {
		b.WriteString(fmt.Sprintf("satisfaction %s\n", Satisfaction(*s.SatisfactionScore)))
	}
	if s.TasksDone != nil && *s.TasksDone != "" {
		b.WriteString("done: " + *s.TasksDone + "\n")
	}
	if s.Notes != nil && *s.Notes != "" {
		b.WriteString(*s.Notes + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSessionList renders completed or running sessions as a table.
func FormatSessionList(title string, sessions []*domain.Session, now time.Time, loc *time.Location) string {
	if len(sessions) == 0 {
		return RenderBox(title, Dim("No sessions."))
	}
	headers := []string{"ID", "WHEN", "PROJECT", "TIME", "SCORE", "TAGS"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		project := Dim("--")
		if s.Project != nil {
			project = Named(s.Project.Name, s.Project.Color)
		}
		when := HumanTimestampFrom(s.StartTime.In(loc), now.In(loc))
		spent := StyleYellow.Render("▶ running")
		if s.EndTime != nil {
			spent = FormatMinutes(actualMinutes(s))
		}
		score := Dim("--")
		if s.SatisfactionScore != nil {
			score = Satisfaction(*s.SatisfactionScore)
		}
		rows = append(rows, []string{TruncID(s.ID), when, project, spent, score, TagChips(s.Tags)})
	}
	return RenderBox(title, RenderTable(headers, rows))
}

// Satisfaction colors a 1-10 score.
func Satisfaction(score int) string {
	text := fmt.Sprintf("%d/10", score)
	switch {
	case score >= 8:
		return StyleGreen.Render(text)
	case score >= 5:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}

func sessionTitle(s *domain.Session) string {
	if s.Project != nil {
		return Named(s.Project.Name, s.Project.Color)
	}
	return Bold(s.DisplayName())
}

func actualMinutes(s *domain.Session) int {
	if s.ActualDuration != nil {
		return *s.ActualDuration
	}
	return int(s.Elapsed(time.Time{}).Minutes())
}
