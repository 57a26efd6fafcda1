package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create_Defaults(t *testing.T) {
	env := setupRepos(t)
	svc := NewProjectService(env.projects, env.uow, env.opts()...)

	p, err := svc.Create(context.Background(), ProjectCreate{Name: "Thesis", Color: "#aabbcc"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID, "UUID should be generated")
	assert.Equal(t, domain.DefaultProjectDuration, p.DefaultDuration)
	assert.Equal(t, testNow, p.CreatedAt)

	fetched, err := svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thesis", fetched.Name)
}

func TestProjectService_Create_Validation(t *testing.T) {
	env := setupRepos(t)
	svc := NewProjectService(env.projects, env.uow, env.opts()...)
	ctx := context.Background()

	tests := []struct {
		name string
		in   ProjectCreate
	}{
		{"empty name", ProjectCreate{Name: "", Color: "#aabbcc"}},
		{"bad color", ProjectCreate{Name: "X", Color: "blue"}},
		{"short duration", ProjectCreate{Name: "X", Color: "#aabbcc", DefaultDuration: ptr(4)}},
		{"zero interval", ProjectCreate{Name: "X", Color: "#aabbcc", NotificationInterval: ptr(0)}},
		{"missing parent", ProjectCreate{Name: "X", Color: "#aabbcc", ParentID: ptr("ghost")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalid)
		})
	}

	_, err := svc.Create(ctx, ProjectCreate{Name: "X", Color: "#aabbcc", ParentID: ptr("ghost")})
	assert.EqualError(t, err, "Parent project not found")
}

func TestProjectService_Update_DetectsCycle(t *testing.T) {
	env := setupRepos(t)
	svc := NewProjectService(env.projects, env.uow, env.opts()...)
	ctx := context.Background()

	a := env.mustProject(t, "A")
	b := env.mustProject(t, "B", testutil.WithParent(a.ID))
	c := env.mustProject(t, "C", testutil.WithParent(b.ID))

	_, err := svc.Update(ctx, a.ID, ProjectUpdate{ParentID: domain.Some(c.ID)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalid)
	assert.EqualError(t, err, "Circular reference detected")

	_, err = svc.Update(ctx, a.ID, ProjectUpdate{ParentID: domain.Some(a.ID)})
	assert.EqualError(t, err, "Circular reference detected", "self-parenting is a cycle")

	// Reparenting sideways is fine.
	d := env.mustProject(t, "D")
	moved, err := svc.Update(ctx, c.ID, ProjectUpdate{ParentID: domain.Some(d.ID)})
	require.NoError(t, err)
	assert.Equal(t, d.ID, domain.DerefStr(moved.ParentID))
}

func TestProjectService_Update_PartialFields(t *testing.T) {
	env := setupRepos(t)
	svc := NewProjectService(env.projects, env.uow, env.opts()...)
	ctx := context.Background()

	parent := env.mustProject(t, "Parent")
	p := env.mustProject(t, "Child", testutil.WithParent(parent.ID), testutil.WithNotificationInterval(5))

	updated, err := svc.Update(ctx, p.ID, ProjectUpdate{
		Name:                 ptr("Renamed"),
		ParentID:             domain.Null[string](),
		NotificationInterval: domain.Null[int](),
		IsArchived:           ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Nil(t, updated.ParentID, "explicit null moves the project to the root")
	assert.Nil(t, updated.NotificationInterval)
	assert.True(t, updated.IsArchived)
	assert.Equal(t, p.Color, updated.Color, "unset fields are untouched")

	_, err = svc.Update(ctx, "missing", ProjectUpdate{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(ctx, p.ID, ProjectUpdate{Color: ptr("nope")})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestProjectService_Tree(t *testing.T) {
	env := setupRepos(t)
	svc := NewProjectService(env.projects, env.uow, env.opts()...)

	root := env.mustProject(t, "Root")
	child := env.mustProject(t, "Child", testutil.WithParent(root.ID))
	env.mustProject(t, "Grandchild", testutil.WithParent(child.ID))
	env.mustProject(t, "Other")

	tree, err := svc.Tree(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	var rootNode *domain.ProjectNode
	for _, n := range tree {
		if n.Project.ID == root.ID {
			rootNode = n
		}
	}
	require.NotNil(t, rootNode)
	require.Len(t, rootNode.Children, 1)
	assert.Equal(t, "Child", rootNode.Children[0].Project.Name)
	require.Len(t, rootNode.Children[0].Children, 1)
	assert.Equal(t, "Grandchild", rootNode.Children[0].Children[0].Project.Name)
}

func TestProjectService_DeleteAndPinned(t *testing.T) {
	env := setupRepos(t)
	svc := NewProjectService(env.projects, env.uow, env.opts()...)
	ctx := context.Background()

	p := env.mustProject(t, "Pinned", testutil.WithPinned())
	pinned, err := svc.ListPinned(ctx)
	require.NoError(t, err)
	assert.Len(t, pinned, 1)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), domain.ErrNotFound)
}
