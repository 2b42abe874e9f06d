package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/and161185/dev-diary/internal/errs"
	"github.com/and161185/dev-diary/internal/model"
	"github.com/and161185/dev-diary/internal/repository"
)

type fakeEntryRepo struct {
	listInUser   int64
	listInFilter model.EntryFilter

	createIn  model.NewEntry
	createErr error

	updateIn  model.EntryPatch
	updateErr error

	getErr error
	delErr error
}

var _ repository.EntryRepository = (*fakeEntryRepo)(nil)

func (f *fakeEntryRepo) List(_ context.Context, userID int64, flt model.EntryFilter) ([]model.Entry, error) {
	f.listInUser, f.listInFilter = userID, flt
	return []model.Entry{}, nil
}
func (f *fakeEntryRepo) Get(_ context.Context, userID, id int64) (*model.Entry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &model.Entry{ID: id, UserID: userID}, nil
}
func (f *fakeEntryRepo) Create(_ context.Context, userID int64, in model.NewEntry) (*model.Entry, error) {
	f.createIn = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &model.Entry{ID: 1, UserID: userID, Mood: in.Mood, ProjectID: in.ProjectID}, nil
}
func (f *fakeEntryRepo) Update(_ context.Context, userID, id int64, p model.EntryPatch) (*model.Entry, error) {
	f.updateIn = p
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &model.Entry{ID: id, UserID: userID}, nil
}
func (f *fakeEntryRepo) Delete(context.Context, int64, int64) error { return f.delErr }

type fakeProjectRepo struct {
	owned map[int64]int64 // project id -> owner
	calls int
}

var _ repository.ProjectRepository = (*fakeProjectRepo)(nil)

func (f *fakeProjectRepo) List(context.Context, int64) ([]model.Project, error) {
	return []model.Project{}, nil
}
func (f *fakeProjectRepo) Get(_ context.Context, userID, id int64) (*model.Project, error) {
	f.calls++
	if owner, ok := f.owned[id]; ok && owner == userID {
		return &model.Project{ID: id, UserID: userID, Name: "p"}, nil
	}
	return nil, errs.ErrNotFound
}
func (f *fakeProjectRepo) Create(_ context.Context, p *model.Project) error {
	p.ID = int64(len(f.owned) + 1)
	return nil
}
func (f *fakeProjectRepo) Update(_ context.Context, userID, id int64, p model.ProjectPatch) (*model.Project, error) {
	if owner, ok := f.owned[id]; !ok || owner != userID {
		return nil, errs.ErrNotFound
	}
	return &model.Project{ID: id, UserID: userID, Name: *p.Name}, nil
}
func (f *fakeProjectRepo) Delete(_ context.Context, userID, id int64) error {
	if owner, ok := f.owned[id]; !ok || owner != userID {
		return errs.ErrNotFound
	}
	return nil
}

func intp(v int) *int       { return &v }
func int64p(v int64) *int64 { return &v }

func TestEntries_Create_Validation(t *testing.T) {
	t.Parallel()
	s := NewEntryService(&fakeEntryRepo{}, &fakeProjectRepo{})
	ctx := context.Background()
	d := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)

	cases := []model.NewEntry{
		{Mood: 3},
		{Date: d, Mood: 0},
		{Date: d, Mood: 6},
		{Date: d, Mood: 3, FocusScore: intp(0)},
		{Date: d, Mood: 3, FocusScore: intp(11)},
	}
	for i, in := range cases {
		if _, err := s.Create(ctx, 1, in); !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("case %d: want ErrValidation, got %v", i, err)
		}
	}

	for _, m := range []int{1, 5} {
		if _, err := s.Create(ctx, 1, model.NewEntry{Date: d, Mood: m, FocusScore: intp(10)}); err != nil {
			t.Fatalf("mood %d: %v", m, err)
		}
	}
}

func TestEntries_Create_ProjectOwnershipAndTags(t *testing.T) {
	t.Parallel()
	repo := &fakeEntryRepo{}
	projects := &fakeProjectRepo{owned: map[int64]int64{7: 1, 8: 2}}
	s := NewEntryService(repo, projects)
	ctx := context.Background()
	d := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)

	if _, err := s.Create(ctx, 1, model.NewEntry{Date: d, Mood: 3, ProjectID: int64p(8)}); !errors.Is(err, errs.ErrProjectNotFound) {
		t.Fatalf("foreign project: want ErrProjectNotFound, got %v", err)
	}

	e, err := s.Create(ctx, 1, model.NewEntry{
		Date: d, Mood: 3, ProjectID: int64p(7),
		TagNames: []string{" work ", "", "work", "health"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ProjectID == nil || *e.ProjectID != 7 {
		t.Fatalf("project not kept: %+v", e)
	}
	if got := repo.createIn.TagNames; len(got) != 2 || got[0] != "work" || got[1] != "health" {
		t.Fatalf("tags not normalized: %q", got)
	}

	calls := projects.calls
	if _, err := s.Create(ctx, 1, model.NewEntry{Date: d, Mood: 3, ProjectID: int64p(0)}); err != nil {
		t.Fatalf("project 0: %v", err)
	}
	if repo.createIn.ProjectID != nil || projects.calls != calls {
		t.Fatalf("project id 0 must mean no project")
	}
}

func TestEntries_Update(t *testing.T) {
	t.Parallel()
	repo := &fakeEntryRepo{}
	s := NewEntryService(repo, &fakeProjectRepo{owned: map[int64]int64{7: 1}})
	ctx := context.Background()

	if _, err := s.Update(ctx, 1, 10, model.EntryPatch{Mood: intp(9)}); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if _, err := s.Update(ctx, 1, 10, model.EntryPatch{ProjectID: int64p(99)}); !errors.Is(err, errs.ErrProjectNotFound) {
		t.Fatalf("want ErrProjectNotFound, got %v", err)
	}

	if _, err := s.Update(ctx, 1, 10, model.EntryPatch{ProjectID: int64p(0)}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !repo.updateIn.ClearProject || repo.updateIn.ProjectID != nil {
		t.Fatalf("project id 0 must clear the project: %+v", repo.updateIn)
	}
	if repo.updateIn.TagNames != nil {
		t.Fatalf("absent tags must stay nil")
	}

	if _, err := s.Update(ctx, 1, 10, model.EntryPatch{TagNames: []string{" "}}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if repo.updateIn.TagNames == nil || len(repo.updateIn.TagNames) != 0 {
		t.Fatalf("blank tag list must become an empty replacement: %#v", repo.updateIn.TagNames)
	}

	repo.updateErr = errs.ErrNotFound
	if _, err := s.Update(ctx, 1, 10, model.EntryPatch{}); !errors.Is(err, errs.ErrEntryNotFound) {
		t.Fatalf("want ErrEntryNotFound, got %v", err)
	}
}

func TestEntries_Update_MissingEntryBeforeForeignProject(t *testing.T) {
	t.Parallel()
	repo := &fakeEntryRepo{getErr: errs.ErrNotFound}
	projects := &fakeProjectRepo{owned: map[int64]int64{7: 2}}
	s := NewEntryService(repo, projects)

	_, err := s.Update(context.Background(), 1, 404, model.EntryPatch{ProjectID: int64p(7)})
	if !errors.Is(err, errs.ErrEntryNotFound) {
		t.Fatalf("want ErrEntryNotFound, got %v", err)
	}
	if errors.Is(err, errs.ErrProjectNotFound) {
		t.Fatalf("project must not be reported for a missing entry")
	}
	if projects.calls != 0 {
		t.Fatalf("project lookup must not run for a missing entry, got %d calls", projects.calls)
	}
}

func TestEntries_GetDeleteList(t *testing.T) {
	t.Parallel()
	repo := &fakeEntryRepo{getErr: errs.ErrNotFound, delErr: errs.ErrNotFound}
	s := NewEntryService(repo, &fakeProjectRepo{})
	ctx := context.Background()

	if _, err := s.Get(ctx, 1, 2); !errors.Is(err, errs.ErrEntryNotFound) {
		t.Fatalf("Get: want ErrEntryNotFound, got %v", err)
	}
	if err := s.Delete(ctx, 1, 2); !errors.Is(err, errs.ErrEntryNotFound) {
		t.Fatalf("Delete: want ErrEntryNotFound, got %v", err)
	}

	boom := errors.New("boom")
	repo.getErr = boom
	if _, err := s.Get(ctx, 1, 2); !errors.Is(err, boom) {
		t.Fatalf("Get: want propagated error, got %v", err)
	}

	if _, err := s.List(ctx, 3, model.EntryFilter{Tag: " work ", Search: " q "}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.listInUser != 3 || repo.listInFilter.Tag != "work" || repo.listInFilter.Search != "q" {
		t.Fatalf("filter not passed through: %+v", repo.listInFilter)
	}
}
