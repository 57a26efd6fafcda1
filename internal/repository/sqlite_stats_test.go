package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/planner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepo_Aggregates(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projRepo := NewSQLiteProjectRepo(db)
	tagRepo := NewSQLiteTagRepo(db)
	sessRepo := NewSQLiteSessionRepo(db)
	stats := NewSQLiteStatsRepo(db)

	writing := testutil.NewTestProject("Writing", testutil.WithColor("#111111"))
	coding := testutil.NewTestProject("Coding", testutil.WithColor("#222222"))
	require.NoError(t, projRepo.Create(ctx, writing))
	require.NoError(t, projRepo.Create(ctx, coding))
	focus := testutil.NewTestTag("focus")
	require.NoError(t, tagRepo.Create(ctx, focus))

	day := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	add := func(projectID string, offset, minutes, score int, tagged bool) {
		start := day.Add(time.Duration(offset) * time.Hour)
		s := testutil.NewTestSession(
			testutil.WithSessionProject(projectID),
			testutil.WithStart(start),
			testutil.WithEnd(start.Add(time.Duration(minutes)*time.Minute)),
			testutil.WithSatisfaction(score),
		)
		require.NoError(t, sessRepo.Create(ctx, s))
		if tagged {
			require.NoError(t, sessRepo.SetTags(ctx, s.ID, []string{focus.ID}))
		}
	}
	add(writing.ID, 0, 30, 6, true)
	add(coding.ID, 1, 90, 8, true)
	add(coding.ID, 3, 60, 7, false)
	// Still running: excluded everywhere.
	require.NoError(t, sessRepo.Create(ctx, testutil.NewTestSession(testutil.WithSessionProject(writing.ID))))

	from, to := day.Add(-time.Hour), day.Add(24*time.Hour)

	o, err := stats.Overview(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, 3, o.TotalSessions)
	assert.Equal(t, 180, o.TotalMinutes)
	assert.InDelta(t, 7.0, o.AvgSatisfaction, 0.001)

	byProject, err := stats.ByProject(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, byProject, 2)
	assert.Equal(t, "Coding", byProject[0].Name)
	assert.Equal(t, 150, byProject[0].TotalMinutes)
	assert.Equal(t, 2, byProject[0].SessionCount)
	assert.Equal(t, "#111111", byProject[1].Color)

	byTag, err := stats.ByTag(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "focus", byTag[0].Name)
	assert.Equal(t, 120, byTag[0].TotalMinutes)
}

func TestStatsRepo_EmptyRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	stats := NewSQLiteStatsRepo(db)
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	o, err := stats.Overview(context.Background(), day, day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, o.TotalSessions)
	assert.Zero(t, o.AvgSatisfaction)

	byTag, err := stats.ByTag(context.Background(), day, day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, byTag)
}
