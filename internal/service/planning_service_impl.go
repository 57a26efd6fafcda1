package service

import (
	"context"
	"time"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/repository"
	"github.com/google/uuid"
)

type planningService struct {
	planning repository.PlanningRepo
	uow      db.UnitOfWork
	env      env
}

func NewPlanningService(planning repository.PlanningRepo, uow db.UnitOfWork, opts ...Option) PlanningService {
	return &planningService{planning: planning, uow: uow, env: newEnv(opts)}
}

func (s *planningService) List(ctx context.Context) ([]*domain.Planning, error) {
	return s.planning.List(ctx)
}

// ListByDate returns planning starting on the calendar day of date, in the
// service's time zone, earliest first.
func (s *planningService) ListByDate(ctx context.Context, date time.Time) ([]*domain.Planning, error) {
	from, to := domain.DayBounds(date, s.env.loc)
	return s.planning.ListStartingBetween(ctx, from, to)
}

func (s *planningService) Today(ctx context.Context) ([]*domain.Planning, error) {
	return s.ListByDate(ctx, s.env.now())
}

func (s *planningService) GetByID(ctx context.Context, id string) (*domain.Planning, error) {
	return s.planning.GetByID(ctx, id)
}

func (s *planningService) Create(ctx context.Context, in PlanningCreate) (p *domain.Planning, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": in.ProjectID}
	defer func() { s.env.observe(ctx, "create-planning", startedAt, err, fields) }()

	now := s.env.nowUTC()
	p = &domain.Planning{
		ID:             uuid.New().String(),
		ProjectID:      in.ProjectID,
		ScheduledStart: in.ScheduledStart.UTC().Truncate(time.Second),
		ScheduledEnd:   in.ScheduledEnd.UTC().Truncate(time.Second),
		Priority:       in.Priority,
		Description:    in.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if p.Priority == "" {
		p.Priority = domain.PriorityMedium
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlanning := repository.NewSQLitePlanningRepo(tx)
		if err := s.checkWindow(ctx, tx, p); err != nil {
			return err
		}
		if err := checkTagIDs(ctx, repository.NewSQLiteTagRepo(tx), in.TagIDs); err != nil {
			return err
		}
		if err := txPlanning.Create(ctx, p); err != nil {
			return err
		}
		return txPlanning.SetTags(ctx, p.ID, in.TagIDs)
	})
	if err != nil {
		return nil, err
	}
	fields["id"] = p.ID
	return s.planning.GetByID(ctx, p.ID)
}

func (s *planningService) Update(ctx context.Context, id string, in PlanningUpdate) (p *domain.Planning, err error) {
	startedAt := time.Now()
	defer func() { s.env.observe(ctx, "update-planning", startedAt, err, map[string]any{"id": id}) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlanning := repository.NewSQLitePlanningRepo(tx)

		cur, err := txPlanning.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.ProjectID != nil {
			cur.ProjectID = *in.ProjectID
		}
		if in.ScheduledStart != nil {
			cur.ScheduledStart = in.ScheduledStart.UTC().Truncate(time.Second)
		}
		if in.ScheduledEnd != nil {
			cur.ScheduledEnd = in.ScheduledEnd.UTC().Truncate(time.Second)
		}
		if in.Priority != nil {
			cur.Priority = *in.Priority
		}
		if in.Description.Set {
			cur.Description = in.Description.Ptr()
		}

		if err := s.checkWindow(ctx, tx, cur); err != nil {
			return err
		}
		cur.UpdatedAt = s.env.nowUTC()
		if err := txPlanning.Update(ctx, cur); err != nil {
			return err
		}

		if in.TagIDs != nil {
			if err := checkTagIDs(ctx, repository.NewSQLiteTagRepo(tx), in.TagIDs); err != nil {
				return err
			}
			return txPlanning.SetTags(ctx, id, in.TagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.planning.GetByID(ctx, id)
}

func (s *planningService) Delete(ctx context.Context, id string) error {
	return s.planning.Delete(ctx, id)
}

// checkWindow runs the scheduling rules in order: the project exists, the
// block sits within one day, it has positive length, and it does not
// overlap any other planning.
func (s *planningService) checkWindow(ctx context.Context, tx db.DBTX, p *domain.Planning) error {
	ok, err := repository.NewSQLiteProjectRepo(tx).Exists(ctx, p.ProjectID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.Invalidf("Project not found")
	}
	if err := p.Validate(s.env.loc); err != nil {
		return err
	}
	clashes, err := repository.NewSQLitePlanningRepo(tx).FindOverlapping(ctx, p.ScheduledStart, p.ScheduledEnd, p.ID)
	if err != nil {
		return err
	}
	if len(clashes) > 0 {
		return domain.Conflictf("Planning overlaps with existing planning")
	}
	return nil
}
