package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/stretchr/testify/assert"
)

func project(id, name string, opts ...func(*domain.Project)) *domain.Project {
	p := &domain.Project{
		ID:              id,
		Name:            name,
		Color:           "#3b82f6",
		DefaultDuration: 60,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func TestFormatProjectList(t *testing.T) {
	interval := 5
	out := stripANSI(FormatProjectList([]*domain.Project{
		project("abcdef12-3456", "Thesis", func(p *domain.Project) {
			p.IsPinned = true
			p.NotificationInterval = &interval
		}),
		project("99999999-0000", "Chores", func(p *domain.Project) { p.IsArchived = true }),
	}))

	assert.Contains(t, out, "abcdef12")
	assert.NotContains(t, out, "abcdef12-3456")
	assert.Contains(t, out, "Thesis")
	assert.Contains(t, out, "every 5m")
	assert.Contains(t, out, "★ pinned")
	assert.Contains(t, out, "archived")
}

func TestFormatProjectList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatProjectList(nil)), "No projects yet")
}

func TestFormatProjectTree(t *testing.T) {
	root := &domain.ProjectNode{Project: project("r", "Work")}
	a := &domain.ProjectNode{Project: project("a", "Thesis")}
	b := &domain.ProjectNode{Project: project("b", "Teaching")}
	a1 := &domain.ProjectNode{Project: project("a1", "Chapter 1")}
	a.Children = []*domain.ProjectNode{a1}
	root.Children = []*domain.ProjectNode{a, b}

	out := stripANSI(FormatProjectTree([]*domain.ProjectNode{root}))

	assert.Contains(t, out, "├─ Thesis")
	assert.Contains(t, out, "│  └─ Chapter 1")
	assert.Contains(t, out, "└─ Teaching")
	assert.Less(t, strings.Index(out, "Chapter 1"), strings.Index(out, "Teaching"))
}

func TestRenderTree_BlankIndentAfterLastSibling(t *testing.T) {
	out := stripANSI(RenderTree([]TreeItem{
		{Title: "root", Level: 0, IsLast: true},
		{Title: "last", Level: 1, IsLast: true},
		{Title: "leaf", Level: 2, IsLast: true},
	}))
	assert.Equal(t, "root\n└─ last\n   └─ leaf\n", out)
}
