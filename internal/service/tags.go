package service

import (
	"context"
	"errors"
	"strings"

	"github.com/and161185/dev-diary/internal/errs"
	"github.com/and161185/dev-diary/internal/model"
	"github.com/and161185/dev-diary/internal/repository"
)

// TagService defines operations over the caller's tags.
type TagService interface {
	List(ctx context.Context, userID int64) ([]model.Tag, error)
	Create(ctx context.Context, userID int64, name string) (*model.Tag, error)
	Delete(ctx context.Context, userID, id int64) error
}

type TagServiceImpl struct{ repo repository.TagRepository }

// NewTagService constructs TagService.
func NewTagService(repo repository.TagRepository) *TagServiceImpl {
	return &TagServiceImpl{repo: repo}
}

func (s *TagServiceImpl) List(ctx context.Context, userID int64) ([]model.Tag, error) {
	return s.repo.List(ctx, userID)
}

// Create stores a new tag. Names are unique per user.
func (s *TagServiceImpl) Create(ctx context.Context, userID int64, name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Validationf("name is required")
	}
	t := &model.Tag{UserID: userID, Name: name}
	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return nil, errs.ErrTagExists
		}
		return nil, err
	}
	return t, nil
}

// Delete removes a tag and its links to entries.
func (s *TagServiceImpl) Delete(ctx context.Context, userID, id int64) error {
	return as(s.repo.Delete(ctx, userID, id), errs.ErrTagNotFound)
}
