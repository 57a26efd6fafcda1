package formatter

import "github.com/alexanderramin/planner/internal/domain"

// FormatTagList renders tags with their scope. projectNames maps project IDs
// to display names; unknown IDs fall back to a truncated ID.
func FormatTagList(tags []*domain.Tag, projectNames map[string]string) string {
	if len(tags) == 0 {
		return RenderBox("Tags", Dim("No tags."))
	}
	headers := []string{"ID", "NAME", "COLOR", "SCOPE"}
	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		scope := StyleGreen.Render("global")
		if t.ProjectID != nil {
			if name, ok := projectNames[*t.ProjectID]; ok {
				scope = name
			} else {
				scope = TruncID(*t.ProjectID)
			}
		}
		rows = append(rows, []string{TruncID(t.ID), Named(t.Name, t.Color), Swatch(t.Color), scope})
	}
	return RenderBox("Tags", RenderTable(headers, rows))
}

// TagChips renders tags inline as "#name #name".
func TagChips(tags []domain.Tag) string {
	if len(tags) == 0 {
		return ""
	}
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += " "
		}
		out += Named("#"+t.Name, t.Color)
	}
	return out
}
