package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_ProjectToChildren verifies that deleting a project removes its subtree.
func TestCascadeDelete_ProjectToChildren(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteProjectRepo(db)

	root := testutil.NewTestProject("Root")
	child := testutil.NewTestProject("Child", testutil.WithParent(root.ID))
	grandchild := testutil.NewTestProject("Grandchild", testutil.WithParent(child.ID))
	require.NoError(t, repo.Create(ctx, root))
	require.NoError(t, repo.Create(ctx, child))
	require.NoError(t, repo.Create(ctx, grandchild))

	require.NoError(t, repo.Delete(ctx, root.ID))

	_, err := repo.GetByID(ctx, grandchild.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "grandchild should be cascade-deleted")
}

// TestCascadeDelete_ProjectToTagsAndPlanning verifies project-scoped rows go with the project.
func TestCascadeDelete_ProjectToTagsAndPlanning(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projRepo := NewSQLiteProjectRepo(db)
	tagRepo := NewSQLiteTagRepo(db)
	planRepo := NewSQLitePlanningRepo(db)

	proj := testutil.NewTestProject("Doomed")
	require.NoError(t, projRepo.Create(ctx, proj))
	tag := testutil.NewTestTag("local", testutil.WithTagProject(proj.ID))
	require.NoError(t, tagRepo.Create(ctx, tag))
	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	pl := testutil.NewTestPlanning(proj.ID, start, start.Add(time.Hour))
	require.NoError(t, planRepo.Create(ctx, pl))

	require.NoError(t, projRepo.Delete(ctx, proj.ID))

	_, err := tagRepo.GetByID(ctx, tag.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = planRepo.GetByID(ctx, pl.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestCascadeDelete_SessionsSurviveProject verifies sessions keep their history.
func TestCascadeDelete_SessionsSurviveProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projRepo := NewSQLiteProjectRepo(db)
	planRepo := NewSQLitePlanningRepo(db)
	sessRepo := NewSQLiteSessionRepo(db)

	proj := testutil.NewTestProject("Gone")
	require.NoError(t, projRepo.Create(ctx, proj))
	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	pl := testutil.NewTestPlanning(proj.ID, start, start.Add(time.Hour))
	require.NoError(t, planRepo.Create(ctx, pl))
	sess := testutil.NewTestSession(
		testutil.WithSessionProject(proj.ID),
		testutil.WithSessionPlanning(pl.ID),
		testutil.WithStart(start),
		testutil.WithEnd(start.Add(45*time.Minute)),
	)
	require.NoError(t, sessRepo.Create(ctx, sess))

	require.NoError(t, projRepo.Delete(ctx, proj.ID))

	fetched, err := sessRepo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.ProjectID)
	assert.Nil(t, fetched.PlanningID)
	assert.Nil(t, fetched.Project)
}

// TestCascadeDelete_TagToAssociations verifies tag removal detaches it everywhere.
func TestCascadeDelete_TagToAssociations(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	tagRepo := NewSQLiteTagRepo(db)
	sessRepo := NewSQLiteSessionRepo(db)

	tag := testutil.NewTestTag("temp")
	require.NoError(t, tagRepo.Create(ctx, tag))
	sess := testutil.NewTestSession()
	require.NoError(t, sessRepo.Create(ctx, sess))
	require.NoError(t, sessRepo.SetTags(ctx, sess.ID, []string{tag.ID}))

	require.NoError(t, tagRepo.Delete(ctx, tag.ID))

	fetched, err := sessRepo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Tags)
}
