package formatter

import "github.com/alexanderramin/planner/internal/domain"

func FormatSettings(settings []*domain.Setting) string {
	if len(settings) == 0 {
		return RenderBox("Settings", Dim("No settings stored; defaults apply."))
	}
	rows := make([][]string, 0, len(settings))
	for _, s := range settings {
		rows = append(rows, []string{Bold(s.Key), string(s.Value), Dim(s.UpdatedAt.Format("2006-01-02 15:04"))})
	}
	return RenderBox("Settings", RenderTable([]string{"KEY", "VALUE", "UPDATED"}, rows))
}
