package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingService_SetGetDelete(t *testing.T) {
	env := setupRepos(t)
	svc := NewSettingService(env.settings, env.opts()...)
	ctx := context.Background()

	s, err := svc.Set(ctx, "theme", json.RawMessage(`{"mode":"dark"}`))
	require.NoError(t, err)
	assert.Equal(t, "theme", s.Key)

	got, err := svc.Get(ctx, "theme")
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"dark"}`, string(got.Value))

	_, err = svc.Set(ctx, "broken", json.RawMessage(`{`))
	assert.ErrorIs(t, err, domain.ErrInvalid)
	_, err = svc.Set(ctx, " ", json.RawMessage(`1`))
	assert.ErrorIs(t, err, domain.ErrInvalid)

	require.NoError(t, svc.Delete(ctx, "theme"))
	_, err = svc.Get(ctx, "theme")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettingService_NotificationsEnabled(t *testing.T) {
	env := setupRepos(t)
	svc := NewSettingService(env.settings, env.opts()...)
	ctx := context.Background()

	on, err := svc.NotificationsEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, on, "enabled when unset")

	_, err = svc.Set(ctx, domain.SettingNotificationsEnabled, json.RawMessage(`false`))
	require.NoError(t, err)
	on, err = svc.NotificationsEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, on)

	_, err = svc.Set(ctx, domain.SettingNotificationsEnabled, json.RawMessage(`"maybe"`))
	require.NoError(t, err)
	on, err = svc.NotificationsEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, on, "non-boolean values do not silence the worker")
}
