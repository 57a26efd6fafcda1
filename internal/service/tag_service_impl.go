package service

import (
	"context"
	"time"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/repository"
	"github.com/google/uuid"
)

type tagService struct {
	tags     repository.TagRepo
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	env      env
}

func NewTagService(tags repository.TagRepo, projects repository.ProjectRepo, uow db.UnitOfWork, opts ...Option) TagService {
	return &tagService{tags: tags, projects: projects, uow: uow, env: newEnv(opts)}
}

func (s *tagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.tags.List(ctx)
}

func (s *tagService) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	return s.tags.GetByID(ctx, id)
}

func (s *tagService) Create(ctx context.Context, in TagCreate) (t *domain.Tag, err error) {
	startedAt := time.Now()
	defer func() { s.env.observe(ctx, "create-tag", startedAt, err, map[string]any{"name": in.Name}) }()

	now := s.env.nowUTC()
	t = &domain.Tag{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Color:     in.Color,
		ProjectID: in.ProjectID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = t.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTags := repository.NewSQLiteTagRepo(tx)
		if err := checkTagScope(ctx, txTags, repository.NewSQLiteProjectRepo(tx), t); err != nil {
			return err
		}
		return txTags.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tagService) Update(ctx context.Context, id string, in TagUpdate) (t *domain.Tag, err error) {
	startedAt := time.Now()
	defer func() { s.env.observe(ctx, "update-tag", startedAt, err, map[string]any{"id": id}) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTags := repository.NewSQLiteTagRepo(tx)

		var err error
		t, err = txTags.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			t.Name = *in.Name
		}
		if in.Color != nil {
			t.Color = *in.Color
		}
		if in.ProjectID.Set {
			t.ProjectID = in.ProjectID.Ptr()
		}
		if err := t.Validate(); err != nil {
			return err
		}
		if err := checkTagScope(ctx, txTags, repository.NewSQLiteProjectRepo(tx), t); err != nil {
			return err
		}

		t.UpdatedAt = s.env.nowUTC()
		return txTags.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tagService) Delete(ctx context.Context, id string) error {
	return s.tags.Delete(ctx, id)
}

func (s *tagService) AvailableForProject(ctx context.Context, projectID string) ([]*domain.Tag, error) {
	ok, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*domain.Tag{}, nil
	}

	tags, err := s.tags.ListGlobal(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		seen[t.ID] = true
	}

	visited := make(map[string]bool)
	current := &projectID
	for current != nil && !visited[*current] {
		visited[*current] = true

		own, err := s.tags.ListByProject(ctx, *current)
		if err != nil {
			return nil, err
		}
		for _, t := range own {
			if !seen[t.ID] {
				seen[t.ID] = true
				tags = append(tags, t)
			}
		}

		current, err = s.projects.ParentOf(ctx, *current)
		if err != nil {
			if domain.IsNotFound(err) {
				break
			}
			return nil, err
		}
	}
	return tags, nil
}

// checkTagScope enforces name uniqueness within the tag's scope and that a
// project-scoped tag points at a real project.
func checkTagScope(ctx context.Context, tags repository.TagRepo, projects repository.ProjectRepo, t *domain.Tag) error {
	taken, err := tags.NameTaken(ctx, t.Name, t.ProjectID, t.ID)
	if err != nil {
		return err
	}
	if taken {
		return domain.Conflictf("Tag with name '%s' already exists %s", t.Name, domain.ScopeLabel(t.ProjectID))
	}
	if t.ProjectID != nil {
		ok, err := projects.Exists(ctx, *t.ProjectID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.Invalidf("Project not found")
		}
	}
	return nil
}
