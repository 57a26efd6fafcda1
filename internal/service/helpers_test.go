package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/repository"
	"github.com/alexanderramin/planner/internal/testutil"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable time source shared by services under test.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type testEnv struct {
	db       *sql.DB
	uow      db.UnitOfWork
	clock    *fakeClock
	projects *repository.SQLiteProjectRepo
	tags     *repository.SQLiteTagRepo
	planning *repository.SQLitePlanningRepo
	sessions *repository.SQLiteSessionRepo
	settings *repository.SQLiteSettingRepo
	stats    *repository.SQLiteStatsRepo
}

// testNow is Tuesday 2025-06-10 10:00 UTC.
var testNow = time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)

func setupRepos(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:       database,
		uow:      testutil.NewTestUoW(database),
		clock:    newFakeClock(testNow),
		projects: repository.NewSQLiteProjectRepo(database),
		tags:     repository.NewSQLiteTagRepo(database),
		planning: repository.NewSQLitePlanningRepo(database),
		sessions: repository.NewSQLiteSessionRepo(database),
		settings: repository.NewSQLiteSettingRepo(database),
		stats:    repository.NewSQLiteStatsRepo(database),
	}
}

func (e *testEnv) opts() []Option {
	return []Option{WithClock(e.clock.Now), WithLocation(time.UTC)}
}

func (e *testEnv) mustProject(t *testing.T, name string, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name, opts...)
	require.NoError(t, e.projects.Create(context.Background(), p))
	return p
}

func (e *testEnv) mustTag(t *testing.T, name string, opts ...testutil.TagOption) *domain.Tag {
	t.Helper()
	tag := testutil.NewTestTag(name, opts...)
	require.NoError(t, e.tags.Create(context.Background(), tag))
	return tag
}

func ptr[T any](v T) *T { return &v }
