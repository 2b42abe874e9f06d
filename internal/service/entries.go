package service

import (
	"context"
	"errors"
	"strings"

	"github.com/and161185/dev-diary/internal/errs"
	"github.com/and161185/dev-diary/internal/model"
	"github.com/and161185/dev-diary/internal/repository"
)

// Value ranges of entry scores.
const (
	MinMood  = 1
	MaxMood  = 5
	MinFocus = 1
	MaxFocus = 10
)

// EntryService defines operations over the caller's journal entries.
type EntryService interface {
	List(ctx context.Context, userID int64, f model.EntryFilter) ([]model.Entry, error)
	Get(ctx context.Context, userID, id int64) (*model.Entry, error)
	Create(ctx context.Context, userID int64, in model.NewEntry) (*model.Entry, error)
	Update(ctx context.Context, userID, id int64, p model.EntryPatch) (*model.Entry, error)
	Delete(ctx context.Context, userID, id int64) error
}

type EntryServiceImpl struct {
	entries  repository.EntryRepository
	projects repository.ProjectRepository
}

// NewEntryService constructs EntryService.
func NewEntryService(entries repository.EntryRepository, projects repository.ProjectRepository) *EntryServiceImpl {
	return &EntryServiceImpl{entries: entries, projects: projects}
}

// List returns the entries matching f, newest date first.
func (s *EntryServiceImpl) List(ctx context.Context, userID int64, f model.EntryFilter) ([]model.Entry, error) {
	f.Tag = strings.TrimSpace(f.Tag)
	f.Search = strings.TrimSpace(f.Search)
	return s.entries.List(ctx, userID, f)
}

// Get fetches a single entry.
func (s *EntryServiceImpl) Get(ctx context.Context, userID, id int64) (*model.Entry, error) {
	e, err := s.entries.Get(ctx, userID, id)
	return e, as(err, errs.ErrEntryNotFound)
}

// Create validates the entry and its project ownership, then stores it.
// Validation rules:
// - date is set
// - mood in 1..5
// - focus score, when given, in 1..10
func (s *EntryServiceImpl) Create(ctx context.Context, userID int64, in model.NewEntry) (*model.Entry, error) {
	if in.Date.IsZero() {
		return nil, errs.Validationf("date is required")
	}
	if err := checkScores(&in.Mood, in.FocusScore); err != nil {
		return nil, err
	}
	if in.ProjectID != nil && *in.ProjectID == 0 {
		in.ProjectID = nil
	}
	if in.ProjectID != nil {
		if err := s.ownProject(ctx, userID, *in.ProjectID); err != nil {
			return nil, err
		}
	}
	in.TagNames = normalizeTags(in.TagNames)
	return s.entries.Create(ctx, userID, in)
}

// Update applies a partial change. A project id of 0 detaches the project.
func (s *EntryServiceImpl) Update(ctx context.Context, userID, id int64, p model.EntryPatch) (*model.Entry, error) {
	if p.Date != nil && p.Date.IsZero() {
		return nil, errs.Validationf("date is required")
	}
	if err := checkScores(p.Mood, p.FocusScore); err != nil {
		return nil, err
	}
	if p.ProjectID != nil && *p.ProjectID == 0 {
		p.ProjectID, p.ClearProject = nil, true
	}
	if p.ProjectID != nil {
		// A missing entry wins over a foreign project.
		if _, err := s.entries.Get(ctx, userID, id); err != nil {
			return nil, as(err, errs.ErrEntryNotFound)
		}
		if err := s.ownProject(ctx, userID, *p.ProjectID); err != nil {
			return nil, err
		}
	}
	if p.TagNames != nil {
		p.TagNames = normalizeTags(p.TagNames)
	}
	e, err := s.entries.Update(ctx, userID, id, p)
	return e, as(err, errs.ErrEntryNotFound)
}

// Delete removes an entry.
func (s *EntryServiceImpl) Delete(ctx context.Context, userID, id int64) error {
	return as(s.entries.Delete(ctx, userID, id), errs.ErrEntryNotFound)
}

func (s *EntryServiceImpl) ownProject(ctx context.Context, userID, projectID int64) error {
	_, err := s.projects.Get(ctx, userID, projectID)
	return as(err, errs.ErrProjectNotFound)
}

func checkScores(mood, focus *int) error {
	if mood != nil && (*mood < MinMood || *mood > MaxMood) {
		return errs.Validationf("mood must be between %d and %d", MinMood, MaxMood)
	}
	if focus != nil && (*focus < MinFocus || *focus > MaxFocus) {
		return errs.Validationf("focus_score must be between %d and %d", MinFocus, MaxFocus)
	}
	return nil
}

// normalizeTags trims names and drops blanks and duplicates, keeping order.
// The result is non-nil.
func normalizeTags(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// as replaces a generic errs.ErrNotFound with its resource-specific form.
func as(err, notFound error) error {
	if errors.Is(err, errs.ErrNotFound) {
		return notFound
	}
	return err
}
