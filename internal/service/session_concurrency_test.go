package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Concurrent starts against a file-backed WAL database: exactly one wins and
// every other caller sees the conflict, never a raw lock error.
func TestSessionService_Start_ConcurrentOnFileDB(t *testing.T) {
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	sessions := repository.NewSQLiteSessionRepo(database)
	svc := NewSessionService(sessions, db.NewSQLiteUnitOfWork(database),
		WithClock(func() time.Time { return testNow }))
	ctx := context.Background()

	const workers = 8
	for round := 0; round < 5; round++ {
		var wg sync.WaitGroup
		errs := make([]error, workers)
		start := make(chan struct{})
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				_, errs[i] = svc.Start(ctx, SessionStart{})
			}(i)
		}
		close(start)
		wg.Wait()

		ok := 0
		for _, err := range errs {
			if err == nil {
				ok++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrConflict, "round %d", round)
		}
		require.Equal(t, 1, ok, "round %d", round)

		active, err := svc.Active(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		_, err = svc.Stop(ctx, active.ID, nil)
		require.NoError(t, err)
	}
}
