package service

import (
	"context"
	"strings"

	"github.com/and161185/dev-diary/internal/errs"
	"github.com/and161185/dev-diary/internal/model"
	"github.com/and161185/dev-diary/internal/repository"
)

// ProjectService defines operations over the caller's projects.
type ProjectService interface {
	List(ctx context.Context, userID int64) ([]model.Project, error)
	Get(ctx context.Context, userID, id int64) (*model.Project, error)
	Create(ctx context.Context, userID int64, name string, description *string) (*model.Project, error)
	Update(ctx context.Context, userID, id int64, p model.ProjectPatch) (*model.Project, error)
	Delete(ctx context.Context, userID, id int64) error
}

type ProjectServiceImpl struct{ repo repository.ProjectRepository }

// NewProjectService constructs ProjectService.
func NewProjectService(repo repository.ProjectRepository) *ProjectServiceImpl {
	return &ProjectServiceImpl{repo: repo}
}

func (s *ProjectServiceImpl) List(ctx context.Context, userID int64) ([]model.Project, error) {
	return s.repo.List(ctx, userID)
}

func (s *ProjectServiceImpl) Get(ctx context.Context, userID, id int64) (*model.Project, error) {
	p, err := s.repo.Get(ctx, userID, id)
	return p, as(err, errs.ErrProjectNotFound)
}

// Create stores a project; the name must not be blank.
func (s *ProjectServiceImpl) Create(ctx context.Context, userID int64, name string, description *string) (*model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Validationf("name is required")
	}
	p := &model.Project{UserID: userID, Name: name, Description: description}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update renames or redescribes a project.
func (s *ProjectServiceImpl) Update(ctx context.Context, userID, id int64, p model.ProjectPatch) (*model.Project, error) {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, errs.Validationf("name is required")
		}
		p.Name = &name
	}
	out, err := s.repo.Update(ctx, userID, id, p)
	return out, as(err, errs.ErrProjectNotFound)
}

// Delete removes a project. Its entries stay, detached.
func (s *ProjectServiceImpl) Delete(ctx context.Context, userID, id int64) error {
	return as(s.repo.Delete(ctx, userID, id), errs.ErrProjectNotFound)
}
