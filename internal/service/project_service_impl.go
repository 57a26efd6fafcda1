package service

import (
	"context"
	"time"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	env      env
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork, opts ...Option) ProjectService {
	return &projectService{projects: projects, uow: uow, env: newEnv(opts)}
}

func (s *projectService) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, includeArchived)
}

func (s *projectService) ListPinned(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.ListPinned(ctx)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) Create(ctx context.Context, in ProjectCreate) (p *domain.Project, err error) {
	startedAt := time.Now()
	fields := map[string]any{"name": in.Name}
	defer func() { s.env.observe(ctx, "create-project", startedAt, err, fields) }()

	now := s.env.nowUTC()
	p = &domain.Project{
		ID:                   uuid.New().String(),
		Name:                 in.Name,
		ParentID:             in.ParentID,
		Color:                in.Color,
		Description:          in.Description,
		DefaultDuration:      domain.IntFromPtrWithDefault(domain.DefaultProjectDuration, in.DefaultDuration),
		NotificationInterval: in.NotificationInterval,
		IsPinned:             in.IsPinned,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err = p.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		if p.ParentID != nil {
			if err := checkParent(ctx, txProjects, *p.ParentID, p.ID); err != nil {
				return err
			}
		}
		return txProjects.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	fields["id"] = p.ID
	return p, nil
}

func (s *projectService) Update(ctx context.Context, id string, in ProjectUpdate) (p *domain.Project, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer func() { s.env.observe(ctx, "update-project", startedAt, err, fields) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)

		var err error
		p, err = txProjects.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if in.ParentID.Set {
			if in.ParentID.Null {
				p.ParentID = nil
			} else {
				if err := checkParent(ctx, txProjects, in.ParentID.Value, id); err != nil {
					return err
				}
				p.ParentID = in.ParentID.Ptr()
			}
		}
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Color != nil {
			p.Color = *in.Color
		}
		if in.Description.Set {
			p.Description = in.Description.Ptr()
		}
		if in.DefaultDuration != nil {
			p.DefaultDuration = *in.DefaultDuration
		}
		if in.NotificationInterval.Set {
			p.NotificationInterval = in.NotificationInterval.Ptr()
		}
		if in.IsArchived != nil {
			p.IsArchived = *in.IsArchived
		}
		if in.IsPinned != nil {
			p.IsPinned = *in.IsPinned
		}
		if err := p.Validate(); err != nil {
			return err
		}

		p.UpdatedAt = s.env.nowUTC()
		return txProjects.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

// Tree nests projects under their parents. Projects whose parent is not in
// the listing (for example an archived parent) are shown as roots.
func (s *projectService) Tree(ctx context.Context, includeArchived bool) ([]*domain.ProjectNode, error) {
	projects, err := s.projects.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*domain.ProjectNode, len(projects))
	for _, p := range projects {
		nodes[p.ID] = &domain.ProjectNode{Project: p}
	}

	var roots []*domain.ProjectNode
	for _, p := range projects {
		node := nodes[p.ID]
		if p.ParentID != nil {
			if parent, ok := nodes[*p.ParentID]; ok && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}

// checkParent verifies that parentID exists and that making it the parent
// of projectID would not close a loop.
func checkParent(ctx context.Context, projects repository.ProjectRepo, parentID, projectID string) error {
	ok, err := projects.Exists(ctx, parentID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.Invalidf("Parent project not found")
	}
	cycle, err := wouldCreateCycle(ctx, projects, parentID, projectID)
	if err != nil {
		return err
	}
	if cycle {
		return domain.Invalidf("Circular reference detected")
	}
	return nil
}

// wouldCreateCycle walks up from the proposed parent. Meeting projectID on
// the way means the new edge would close a loop. The visited set stops the
// walk on loops that already exist in storage.
func wouldCreateCycle(ctx context.Context, projects repository.ProjectRepo, parentID, projectID string) (bool, error) {
	visited := make(map[string]bool)
	current := &parentID
	for current != nil {
		if *current == projectID {
			return true, nil
		}
		if visited[*current] {
			return false, nil
		}
		visited[*current] = true

		next, err := projects.ParentOf(ctx, *current)
		if err != nil {
			if domain.IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
		current = next
	}
	return false, nil
}
