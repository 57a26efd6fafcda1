package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_Start_Defaults(t *testing.T) {
	env := setupRepos(t)
	svc := NewSessionService(env.sessions, env.uow, env.opts()...)
	ctx := context.Background()

	proj := env.mustProject(t, "Proj", testutil.WithDefaultDuration(45))
	sess, err := svc.Start(ctx, SessionStart{ProjectID: &proj.ID})
	require.NoError(t, err)
	assert.Equal(t, 45, sess.PlannedDuration, "planned duration comes from the project")
	assert.True(t, testNow.Equal(sess.StartTime))
	assert.True(t, sess.IsActive())
	require.NotNil(t, sess.Project)
	assert.Equal(t, "Proj", sess.Project.Name)

	_, err = svc.Stop(ctx, sess.ID, nil)
	require.NoError(t, err)

	bare, err := svc.Start(ctx, SessionStart{})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProjectDuration, bare.PlannedDuration)
	assert.Nil(t, bare.ProjectID)
}

func TestSessionService_Start_OnlyOneActive(t *testing.T) {
	env := setupRepos(t)
	svc := NewSessionService(env.sessions, env.uow, env.opts()...)
	ctx := context.Background()

	_, err := svc.Start(ctx, SessionStart{PlannedDuration: ptr(30)})
	require.NoError(t, err)

	_, err = svc.Start(ctx, SessionStart{PlannedDuration: ptr(30)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "Another session is already active")
}

func TestSessionService_Start_ValidatesReferences(t *testing.T) {
	env := setupRepos(t)
	svc := NewSessionService(env.sessions, env.uow, env.opts()...)
	ctx := context.Background()

	_, err := svc.Start(ctx, SessionStart{ProjectID: ptr("ghost")})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = svc.Start(ctx, SessionStart{PlanningID: ptr("ghost")})
	assert.EqualError(t, err, "Planning not found")

	_, err = svc.Start(ctx, SessionStart{TagIDs: []string{"ghost"}})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = svc.Start(ctx, SessionStart{PlannedDuration: ptr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, active, "failed starts leave nothing behind")
}

func TestSessionService_Stop_WithReview(t *testing.T) {
	env := setupRepos(t)
	svc := NewSessionService(env.sessions, env.uow, env.opts()...)
	ctx := context.Background()
	tag := env.mustTag(t, "review")

	sess, err := svc.Start(ctx, SessionStart{PlannedDuration: ptr(30)})
	require.NoError(t, err)
	env.clock.Advance(42 * time.Minute)

	stopped, err := svc.Stop(ctx, sess.ID, &SessionReview{
		SatisfactionScore: ptr(8),
		TasksDone:         ptr("drafted intro"),
		Notes:             ptr("went well"),
		TagIDs:            []string{tag.ID},
	})
	require.NoError(t, err)
	assert.False(t, stopped.IsActive())
	require.NotNil(t, stopped.ActualDuration)
	assert.Equal(t, 42, *stopped.ActualDuration)
	assert.Equal(t, 8, *stopped.SatisfactionScore)
	assert.Equal(t, "drafted intro", domain.DerefStr(stopped.TasksDone))
	assert.Equal(t, "went well", domain.DerefStr(stopped.Notes))
	require.Len(t, stopped.Tags, 1)

	_, err = svc.Stop(ctx, sess.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalid)
	assert.EqualError(t, err, "Session already stopped")

	_, err = svc.Stop(ctx, "missing", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_Stop_RejectsBadScore(t *testing.T) {
	env := setupRepos(t)
	svc := NewSessionService(env.sessions, env.uow, env.opts()...)
	ctx := context.Background()

	sess, err := svc.Start(ctx, SessionStart{})
	require.NoError(t, err)

	_, err = svc.Stop(ctx, sess.ID, &SessionReview{SatisfactionScore: ptr(11)})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	still, err := svc.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.Equal(t, sess.ID, still.ID)
}

func TestSessionService_NotesTimeAndToggle(t *testing.T) {
	env := setupRepos(t)
	svc := NewSessionService(env.sessions, env.uow, env.opts()...)
	ctx := context.Background()

	sess, err := svc.Start(ctx, SessionStart{PlannedDuration: ptr(30)})
	require.NoError(t, err)

	env.clock.Advance(5 * time.Minute)
	_, err = svc.AddNote(ctx, sess.ID, "outlined")
	require.NoError(t, err)
	env.clock.Advance(10 * time.Minute)
	noted, err := svc.AddNote(ctx, sess.ID, "  wrote draft  ")
	require.NoError(t, err)
	assert.Equal(t, "[10:05] outlined\n[10:15] wrote draft", domain.DerefStr(noted.Notes))

	_, err = svc.AddNote(ctx, sess.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	extended, err := svc.AddTime(ctx, sess.ID, domain.DefaultAddTimeMinutes)
	require.NoError(t, err)
	assert.Equal(t, 45, extended.PlannedDuration)

	_, err = svc.AddTime(ctx, sess.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	muted, err := svc.ToggleNotifications(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, muted.NotificationDisabled)
	unmuted, err := svc.ToggleNotifications(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, unmuted.NotificationDisabled)

	_, err = svc.AddTime(ctx, "missing", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_Recent_ClampsLimit(t *testing.T) {
	env := setupRepos(t)
	svc := NewSessionService(env.sessions, env.uow, env.opts()...)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		start := testNow.Add(-time.Duration(i+1) * time.Hour)
		s := testutil.NewTestSession(testutil.WithStart(start), testutil.WithEnd(start.Add(30*time.Minute)))
		require.NoError(t, env.sessions.Create(ctx, s))
	}

	recent, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 20, "default limit")

	recent, err = svc.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, recent, 5)

	recent, err = svc.Recent(ctx, 10_000)
	require.NoError(t, err)
	assert.Len(t, recent, 25)
}

func TestSessionService_Start_RollbackOnTagInsertFailure(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	tag := env.mustTag(t, "t")

	// ExecContext #1 = sessions insert, #2 = clear session_tags, #3 = tag insert.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 3,
		Err:    fmt.Errorf("injected tag insert failure"),
	}
	svc := NewSessionService(env.sessions, failUoW, env.opts()...)

	_, err := svc.Start(ctx, SessionStart{TagIDs: []string{tag.ID}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected tag insert failure")

	all, err := env.sessions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "session insert should be rolled back")
}
