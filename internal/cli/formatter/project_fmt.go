package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planner/internal/domain"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	if len(projects) == 0 {
		return RenderBox("Projects", Dim("No projects yet. Create one with: planner project add --name <name>"))
	}

	headers := []string{"ID", "NAME", "COLOR", "DURATION", "REMIND", "FLAGS"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		remind := Dim("default")
		if p.NotificationInterval != nil {
			remind = fmt.Sprintf("every %dm", *p.NotificationInterval)
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Named(p.Name, p.Color),
			Swatch(p.Color),
			FormatMinutes(p.DefaultDuration),
			remind,
			projectFlags(p),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

func projectFlags(p *domain.Project) string {
	var flags []string
	if p.IsPinned {
		flags = append(flags, StyleYellowBold.Render("★ pinned"))
	}
	if p.IsArchived {
		flags = append(flags, Dim("archived"))
	}
	if p.ParentID != nil {
		flags = append(flags, Dim("child"))
	}
	return strings.Join(flags, " ")
}

// FormatProject renders one project's details.
func FormatProject(p *domain.Project) string {
	var b strings.Builder
	b.WriteString(Named(p.Name, p.Color) + "\n\n")
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-9s", label)), value))
	}
	field("ID", p.ID)
	field("COLOR", Swatch(p.Color))
	field("DURATION", FormatMinutes(p.DefaultDuration))
	if p.NotificationInterval != nil {
		field("REMIND", fmt.Sprintf("every %d min", *p.NotificationInterval))
	}
	if p.ParentID != nil {
		field("PARENT", TruncID(*p.ParentID))
	}
	if flags := projectFlags(p); flags != "" {
		field("FLAGS", flags)
	}
	field("NOTES", OrDash(p.Description))
	return RenderBox("", b.String())
}

// FormatProjectTree renders the project hierarchy.
func FormatProjectTree(roots []*domain.ProjectNode) string {
	if len(roots) == 0 {
		return RenderBox("Project Tree", Dim("No projects yet."))
	}
	var items []TreeItem
	var walk func(nodes []*domain.ProjectNode, level int)
	walk = func(nodes []*domain.ProjectNode, level int) {
		for i, n := range nodes {
			items = append(items, TreeItem{
				Title:    Named(n.Project.Name, n.Project.Color),
				Level:    level,
				IsLast:   i == len(nodes)-1,
				Pinned:   n.Project.IsPinned,
				Archived: n.Project.IsArchived,
				Detail:   FormatMinutes(n.Project.DefaultDuration),
			})
			walk(n.Children, level+1)
		}
	}
	walk(roots, 0)
	return RenderBox("Project Tree", strings.TrimRight(RenderTree(items), "\n"))
}
