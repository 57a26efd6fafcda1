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

// sessionTestSetup creates the project scaffolding needed by session tests.
func sessionTestSetup(t *testing.T) (*SQLiteSessionRepo, *domain.Project) {
	t.Helper()
	db := testutil.NewTestDB(t)
	proj := testutil.NewTestProject("SessProj")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(context.Background(), proj))
	return NewSQLiteSessionRepo(db), proj
}

func TestSessionRepo_CreateAndGetByID(t *testing.T) {
	repo, proj := sessionTestSetup(t)
	ctx := context.Background()

	start := time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)
	sess := testutil.NewTestSession(
		testutil.WithSessionProject(proj.ID),
		testutil.WithStart(start),
		testutil.WithEnd(start.Add(95*time.Minute+30*time.Second)),
		testutil.WithPlanned(90),
		testutil.WithSatisfaction(7),
	)
	require.NoError(t, repo.Create(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, fetched.ID)
	require.NotNil(t, fetched.Project)
	assert.Equal(t, "SessProj", fetched.Project.Name)
	assert.Equal(t, 90, fetched.PlannedDuration)
	require.NotNil(t, fetched.ActualDuration)
	assert.Equal(t, 95, *fetched.ActualDuration)
	require.NotNil(t, fetched.SatisfactionScore)
	assert.Equal(t, 7, *fetched.SatisfactionScore)
	assert.False(t, fetched.IsActive())
	assert.Empty(t, fetched.Tags)
}

func TestSessionRepo_GetActive(t *testing.T) {
	repo, _ := sessionTestSetup(t)
	ctx := context.Background()

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Nil(t, active, "no session yet")

	stopped := testutil.NewTestSession(testutil.WithEnd(time.Now().UTC()))
	require.NoError(t, repo.Create(ctx, stopped))
	running := testutil.NewTestSession()
	require.NoError(t, repo.Create(ctx, running))

	active, err = repo.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, running.ID, active.ID)
	assert.Nil(t, active.Project)
	assert.Nil(t, active.ActualDuration)
}

func TestSessionRepo_SecondActiveRejected(t *testing.T) {
	repo, _ := sessionTestSetup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestSession()))
	assert.Error(t, repo.Create(ctx, testutil.NewTestSession()))
}

func TestSessionRepo_ListRecent_CompletedNewestFirst(t *testing.T) {
	repo, _ := sessionTestSetup(t)
	ctx := context.Background()

	base := time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		start := base.Add(time.Duration(i) * time.Hour)
		s := testutil.NewTestSession(testutil.WithStart(start), testutil.WithEnd(start.Add(30*time.Minute)))
		require.NoError(t, repo.Create(ctx, s))
	}
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession()))

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].StartTime.After(recent[1].StartTime))
	for _, s := range recent {
		assert.False(t, s.IsActive())
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestSessionRepo_ListCompletedBetween(t *testing.T) {
	repo, _ := sessionTestSetup(t)
	ctx := context.Background()

	day := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	in := testutil.NewTestSession(testutil.WithStart(day.Add(10*time.Hour)), testutil.WithEnd(day.Add(11*time.Hour)))
	out := testutil.NewTestSession(testutil.WithStart(day.Add(26*time.Hour)), testutil.WithEnd(day.Add(27*time.Hour)))
	require.NoError(t, repo.Create(ctx, in))
	require.NoError(t, repo.Create(ctx, out))

	got, err := repo.ListCompletedBetween(ctx, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, in.ID, got[0].ID)
}

func TestSessionRepo_UpdateTagsAndPlanningLink(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projRepo := NewSQLiteProjectRepo(db)
	planRepo := NewSQLitePlanningRepo(db)
	tagRepo := NewSQLiteTagRepo(db)
	repo := NewSQLiteSessionRepo(db)

	proj := testutil.NewTestProject("Linked")
	require.NoError(t, projRepo.Create(ctx, proj))
	start := time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)
	pl := testutil.NewTestPlanning(proj.ID, start, start.Add(time.Hour))
	require.NoError(t, planRepo.Create(ctx, pl))
	tag := testutil.NewTestTag("solo")
	require.NoError(t, tagRepo.Create(ctx, tag))

	linked, err := repo.ExistsForPlanning(ctx, pl.ID)
	require.NoError(t, err)
	assert.False(t, linked)

	sess := testutil.NewTestSession(testutil.WithSessionPlanning(pl.ID))
	require.NoError(t, repo.Create(ctx, sess))
	require.NoError(t, repo.SetTags(ctx, sess.ID, []string{tag.ID}))

	linked, err = repo.ExistsForPlanning(ctx, pl.ID)
	require.NoError(t, err)
	assert.True(t, linked)

	sess.NotificationDisabled = true
	sess.Notes = domain.StrPtr("[09:10] started")
	require.NoError(t, repo.Update(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, fetched.NotificationDisabled)
	assert.Equal(t, "[09:10] started", domain.DerefStr(fetched.Notes))
	require.Len(t, fetched.Tags, 1)
	assert.Equal(t, tag.ID, fetched.Tags[0].ID)
}
