package repository

import (
	"context"

	"github.com/and161185/dev-diary/internal/model"
)

// EntryRepository stores journal entries with their tag links.
type EntryRepository interface {
	// List returns the owner's entries matching f, newest date first.
	List(ctx context.Context, userID int64, f model.EntryFilter) ([]model.Entry, error)
	// Get loads one entry with its project and tags.
	Get(ctx context.Context, userID, id int64) (*model.Entry, error)
	// Create inserts an entry and links its tags, creating missing ones.
	Create(ctx context.Context, userID int64, in model.NewEntry) (*model.Entry, error)
	// Update applies p to an entry and returns the stored result.
	Update(ctx context.Context, userID, id int64, p model.EntryPatch) (*model.Entry, error)
	// Delete removes an entry.
	Delete(ctx context.Context, userID, id int64) error
}

// ProjectRepository stores projects.
type ProjectRepository interface {
	List(ctx context.Context, userID int64) ([]model.Project, error)
	Get(ctx context.Context, userID, id int64) (*model.Project, error)
	Create(ctx context.Context, p *model.Project) error
	Update(ctx context.Context, userID, id int64, p model.ProjectPatch) (*model.Project, error)
	Delete(ctx context.Context, userID, id int64) error
}

// TagRepository stores tags.
type TagRepository interface {
	List(ctx context.Context, userID int64) ([]model.Tag, error)
	// Create inserts a tag; a duplicate name yields errs.ErrAlreadyExists.
	Create(ctx context.Context, t *model.Tag) error
	Delete(ctx context.Context, userID, id int64) error
}
