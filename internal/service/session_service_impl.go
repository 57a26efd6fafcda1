package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/repository"
	"github.com/google/uuid"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 200
)

type sessionService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	env      env
}

func NewSessionService(sessions repository.SessionRepo, uow db.UnitOfWork, opts ...Option) SessionService {
	return &sessionService{sessions: sessions, uow: uow, env: newEnv(opts)}
}

func (s *sessionService) Active(ctx context.Context) (*domain.Session, error) {
	return s.sessions.GetActive(ctx)
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *sessionService) List(ctx context.Context) ([]*domain.Session, error) {
	return s.sessions.List(ctx)
}

// Recent returns completed sessions, newest first. A non-positive limit
// means the default; large limits are capped.
func (s *sessionService) Recent(ctx context.Context, limit int) ([]*domain.Session, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return s.sessions.ListRecent(ctx, limit)
}

func (s *sessionService) Start(ctx context.Context, in SessionStart) (sess *domain.Session, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": domain.DerefStr(in.ProjectID)}
	defer func() { s.env.observe(ctx, "start-session", startedAt, err, fields) }()

	if in.PlannedDuration != nil && *in.PlannedDuration < 1 {
		return nil, domain.Invalidf("planned duration must be at least 1 minute")
	}

	now := s.env.nowUTC()
	sess = &domain.Session{
		ID:         uuid.New().String(),
		ProjectID:  in.ProjectID,
		StartTime:  now,
		PlanningID: in.PlanningID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.StartTime != nil {
		sess.StartTime = in.StartTime.UTC().Truncate(time.Second)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		active, err := txSessions.GetActive(ctx)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.Conflictf("Another session is already active")
		}

		planned := domain.DefaultProjectDuration
		if sess.ProjectID != nil {
			project, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, *sess.ProjectID)
			if err != nil {
				if domain.IsNotFound(err) {
					return domain.Invalidf("Project not found")
				}
				return err
			}
			planned = project.DefaultDuration
		}
		sess.PlannedDuration = domain.IntFromPtrWithDefault(planned, in.PlannedDuration)

		if sess.PlanningID != nil {
			if _, err := repository.NewSQLitePlanningRepo(tx).GetByID(ctx, *sess.PlanningID); err != nil {
				if domain.IsNotFound(err) {
					return domain.Invalidf("Planning not found")
				}
				return err
			}
		}
		if err := checkTagIDs(ctx, repository.NewSQLiteTagRepo(tx), in.TagIDs); err != nil {
			return err
		}

		if err := txSessions.Create(ctx, sess); err != nil {
			if isSingleActiveViolation(err) {
				return domain.Conflictf("Another session is already active")
			}
			return err
		}
		return txSessions.SetTags(ctx, sess.ID, in.TagIDs)
	})
	if err != nil {
		return nil, err
	}
	fields["id"] = sess.ID
	return s.sessions.GetByID(ctx, sess.ID)
}

func (s *sessionService) Stop(ctx context.Context, id string, review *SessionReview) (sess *domain.Session, err error) {
	startedAt := time.Now()
	defer func() { s.env.observe(ctx, "stop-session", startedAt, err, map[string]any{"id": id}) }()

	if review != nil {
		if err = domain.ValidateSatisfaction(review.SatisfactionScore); err != nil {
			return nil, err
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		cur, err := txSessions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !cur.IsActive() {
			return domain.Invalidf("Session already stopped")
		}

		end := s.env.nowUTC()
		cur.EndTime = &end
		cur.UpdatedAt = end
		if review != nil {
			if review.SatisfactionScore != nil {
				cur.SatisfactionScore = review.SatisfactionScore
			}
			if review.TasksDone != nil {
				cur.TasksDone = review.TasksDone
			}
			if review.Notes != nil {
				cur.Notes = review.Notes
			}
		}
		if err := txSessions.Update(ctx, cur); err != nil {
			return err
		}

		if review != nil && review.TagIDs != nil {
			if err := checkTagIDs(ctx, repository.NewSQLiteTagRepo(tx), review.TagIDs); err != nil {
				return err
			}
			return txSessions.SetTags(ctx, id, review.TagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.sessions.GetByID(ctx, id)
}

// AddNote appends a time-stamped line to the session notes.
func (s *sessionService) AddNote(ctx context.Context, id, note string) (*domain.Session, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, domain.Invalidf("note must not be empty")
	}
	return s.mutate(ctx, id, func(cur *domain.Session, now time.Time) {
		cur.AppendNote(note, now, s.env.loc)
	})
}

// AddTime extends the planned duration.
func (s *sessionService) AddTime(ctx context.Context, id string, minutes int) (*domain.Session, error) {
	if minutes <= 0 {
		return nil, domain.Invalidf("minutes must be positive")
	}
	return s.mutate(ctx, id, func(cur *domain.Session, _ time.Time) {
		cur.PlannedDuration += minutes
	})
}

func (s *sessionService) ToggleNotifications(ctx context.Context, id string) (*domain.Session, error) {
	return s.mutate(ctx, id, func(cur *domain.Session, _ time.Time) {
		cur.NotificationDisabled = !cur.NotificationDisabled
	})
}

// mutate loads a session, applies fn and stores it in one transaction.
func (s *sessionService) mutate(ctx context.Context, id string, fn func(cur *domain.Session, now time.Time)) (*domain.Session, error) {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		cur, err := txSessions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		now := s.env.nowUTC()
		fn(cur, now)
		cur.UpdatedAt = now
		return txSessions.Update(ctx, cur)
	})
	if err != nil {
		return nil, err
	}
	return s.sessions.GetByID(ctx, id)
}

func isSingleActiveViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "idx_sessions_single_active")
}
