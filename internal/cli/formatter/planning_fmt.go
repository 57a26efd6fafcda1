package formatter

import (
	"time"

	"github.com/alexanderramin/planner/internal/domain"
)

// FormatPlanningList renders planning blocks in loc. title names the box,
// e.g. "Today".
func FormatPlanningList(title string, items []*domain.Planning, loc *time.Location) string {
	if len(items) == 0 {
		return RenderBox(title, Dim("Nothing planned."))
	}
	headers := []string{"ID", "WHEN", "PROJECT", "PRIORITY", "LENGTH", "DETAILS"}
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		start, end := p.ScheduledStart.In(loc), p.ScheduledEnd.In(loc)
		project := TruncID(p.ProjectID)
		if p.Project != nil {
			project = Named(p.Project.Name, p.Project.Color)
		}
		details := OrDash(p.Description)
		if chips := TagChips(p.Tags); chips != "" {
			details += " " + chips
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			start.Format("Mon Jan 2") + " " + TimeRange(start, end),
			project,
			PriorityBadge(p.Priority),
			FormatMinutes(int(p.Duration().Minutes())),
			details,
		})
	}
	return RenderBox(title, RenderTable(headers, rows))
}
