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

var planDay = time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return planDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func planningTestSetup(t *testing.T) (*SQLitePlanningRepo, *SQLiteTagRepo, *domain.Project) {
	t.Helper()
	db := testutil.NewTestDB(t)
	proj := testutil.NewTestProject("Plan", testutil.WithNotificationInterval(20))
	require.NoError(t, NewSQLiteProjectRepo(db).Create(context.Background(), proj))
	return NewSQLitePlanningRepo(db), NewSQLiteTagRepo(db), proj
}

func TestPlanningRepo_CreateGetWithProjectAndTags(t *testing.T) {
	repo, tagRepo, proj := planningTestSetup(t)
	ctx := context.Background()

	tag := testutil.NewTestTag("deep")
	require.NoError(t, tagRepo.Create(ctx, tag))

	pl := testutil.NewTestPlanning(proj.ID, at(9, 0), at(10, 30),
		testutil.WithPriority(domain.PriorityCritical),
		testutil.WithPlanningDescription("outline"),
	)
	require.NoError(t, repo.Create(ctx, pl))
	require.NoError(t, repo.SetTags(ctx, pl.ID, []string{tag.ID, tag.ID}))

	fetched, err := repo.GetByID(ctx, pl.ID)
	require.NoError(t, err)
	assert.True(t, at(9, 0).Equal(fetched.ScheduledStart))
	assert.True(t, at(10, 30).Equal(fetched.ScheduledEnd))
	assert.Equal(t, domain.PriorityCritical, fetched.Priority)
	assert.Equal(t, "outline", domain.DerefStr(fetched.Description))
	require.NotNil(t, fetched.Project)
	assert.Equal(t, "Plan", fetched.Project.Name)
	assert.Equal(t, 20, fetched.Project.NotifyInterval(10))
	require.Len(t, fetched.Tags, 1, "duplicate tag IDs collapse")
	assert.Equal(t, "deep", fetched.Tags[0].Name)
}

func TestPlanningRepo_FindOverlapping(t *testing.T) {
	repo, _, proj := planningTestSetup(t)
	ctx := context.Background()

	existing := testutil.NewTestPlanning(proj.ID, at(10, 0), at(11, 0))
	require.NoError(t, repo.Create(ctx, existing))

	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"inside", at(10, 15), at(10, 45), 1},
		{"straddles start", at(9, 30), at(10, 30), 1},
		{"covers", at(9, 0), at(12, 0), 1},
		{"touches before", at(9, 0), at(10, 0), 0},
		{"touches after", at(11, 0), at(12, 0), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.FindOverlapping(ctx, tc.start, tc.end, "")
			require.NoError(t, err)
			assert.Len(t, got, tc.want)
		})
	}

	got, err := repo.FindOverlapping(ctx, at(10, 0), at(11, 0), existing.ID)
	require.NoError(t, err)
	assert.Empty(t, got, "excluded ID is ignored")
}

func TestPlanningRepo_ListStartingBetween(t *testing.T) {
	repo, _, proj := planningTestSetup(t)
	ctx := context.Background()

	early := testutil.NewTestPlanning(proj.ID, at(8, 0), at(9, 0))
	late := testutil.NewTestPlanning(proj.ID, at(14, 0), at(15, 0))
	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, early))

	got, err := repo.ListStartingBetween(ctx, at(7, 0), at(14, 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, early.ID, got[0].ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, late.ID, all[0].ID, "newest first")
}

func TestPlanningRepo_UpdateAndDelete(t *testing.T) {
	repo, tagRepo, proj := planningTestSetup(t)
	ctx := context.Background()

	tag := testutil.NewTestTag("x")
	require.NoError(t, tagRepo.Create(ctx, tag))

	pl := testutil.NewTestPlanning(proj.ID, at(9, 0), at(10, 0))
	require.NoError(t, repo.Create(ctx, pl))
	require.NoError(t, repo.SetTags(ctx, pl.ID, []string{tag.ID}))

	pl.ScheduledEnd = at(11, 0)
	pl.Priority = domain.PriorityLow
	require.NoError(t, repo.Update(ctx, pl))
	require.NoError(t, repo.SetTags(ctx, pl.ID, nil))

	fetched, err := repo.GetByID(ctx, pl.ID)
	require.NoError(t, err)
	assert.True(t, at(11, 0).Equal(fetched.ScheduledEnd))
	assert.Equal(t, domain.PriorityLow, fetched.Priority)
	assert.Empty(t, fetched.Tags)

	require.NoError(t, repo.Delete(ctx, pl.ID))
	_, err = repo.GetByID(ctx, pl.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
