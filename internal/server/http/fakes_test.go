package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/and161185/dev-diary/internal/errs"
	"github.com/and161185/dev-diary/internal/model"
	"github.com/and161185/dev-diary/internal/service"
	"go.uber.org/zap/zaptest"
)

const (
	goodAccess  = "access-ok"
	goodRefresh = "refresh-ok"
)

var testUser = &model.User{ID: 7, Email: "dev@example.com", CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}

type fakeAuth struct{}

var _ service.AuthService = fakeAuth{}

func (fakeAuth) Register(_ context.Context, email, password string) (*model.User, error) {
	switch {
	case email == "taken@example.com":
		return nil, errs.ErrEmailTaken
	case password == "":
		return nil, errs.Validationf("empty password")
	}
	return &model.User{ID: 8, Email: email}, nil
}

func (fakeAuth) Login(_ context.Context, email, password string) (model.Tokens, *model.User, error) {
	if email != testUser.Email || password != "pw" {
		return model.Tokens{}, nil, errs.ErrInvalidCredentials
	}
	return model.Tokens{AccessToken: goodAccess, RefreshToken: goodRefresh}, testUser, nil
}

func (fakeAuth) Refresh(_ context.Context, raw string) (model.Tokens, error) {
	if raw != goodRefresh {
		return model.Tokens{}, errs.ErrInvalidToken
	}
	return model.Tokens{AccessToken: "access-2"}, nil
}

func (fakeAuth) Identify(_ context.Context, raw string) (*model.User, error) {
	switch raw {
	case goodAccess:
		return testUser, nil
	case "ghost":
		return nil, errs.ErrUserNotFound
	}
	return nil, errs.ErrInvalidToken
}

type fakeEntries struct {
	lastFilter model.EntryFilter
	lastPatch  model.EntryPatch
	created    model.NewEntry
}

func (f *fakeEntries) List(_ context.Context, _ int64, flt model.EntryFilter) ([]model.Entry, error) {
	f.lastFilter = flt
	return []model.Entry{{ID: 1, UserID: testUser.ID, Date: time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), Mood: 4}}, nil
}

func (f *fakeEntries) Get(_ context.Context, _ int64, id int64) (*model.Entry, error) {
	if id != 1 {
		return nil, errs.ErrEntryNotFound
	}
	return &model.Entry{ID: 1, UserID: testUser.ID, Mood: 3}, nil
}

func (f *fakeEntries) Create(_ context.Context, userID int64, in model.NewEntry) (*model.Entry, error) {
	f.created = in
	if in.ProjectID != nil && *in.ProjectID == 99 {
		return nil, errs.ErrProjectNotFound
	}
	tags := make([]model.Tag, 0, len(in.TagNames))
	for i, n := range in.TagNames {
		tags = append(tags, model.Tag{ID: int64(i + 1), UserID: userID, Name: n})
	}
	return &model.Entry{ID: 2, UserID: userID, Date: in.Date, Mood: in.Mood, Tags: tags}, nil
}

func (f *fakeEntries) Update(_ context.Context, userID, id int64, p model.EntryPatch) (*model.Entry, error) {
	f.lastPatch = p
	return &model.Entry{ID: id, UserID: userID, Mood: 2}, nil
}

func (f *fakeEntries) Delete(_ context.Context, _ int64, id int64) error {
	if id != 1 {
		return errs.ErrEntryNotFound
	}
	return nil
}

type fakeProjects struct{ lastPatch model.ProjectPatch }

func (f *fakeProjects) List(context.Context, int64) ([]model.Project, error) {
	return []model.Project{{ID: 1, UserID: testUser.ID, Name: "alpha"}}, nil
}

func (f *fakeProjects) Get(_ context.Context, _ int64, id int64) (*model.Project, error) {
	if id != 1 {
		return nil, errs.ErrProjectNotFound
	}
	return &model.Project{ID: 1, UserID: testUser.ID, Name: "alpha"}, nil
}

func (f *fakeProjects) Create(_ context.Context, userID int64, name string, desc *string) (*model.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.Validationf("name is required")
	}
	return &model.Project{ID: 2, UserID: userID, Name: name, Description: desc}, nil
}

func (f *fakeProjects) Update(_ context.Context, userID, id int64, p model.ProjectPatch) (*model.Project, error) {
	f.lastPatch = p
	return &model.Project{ID: id, UserID: userID, Name: "renamed"}, nil
}

func (f *fakeProjects) Delete(_ context.Context, _ int64, id int64) error {
	if id != 1 {
		return errs.ErrProjectNotFound
	}
	return nil
}

type fakeTags struct{}

func (fakeTags) List(context.Context, int64) ([]model.Tag, error) {
	return []model.Tag{{ID: 1, Name: "go"}}, nil
}

func (fakeTags) Create(_ context.Context, _ int64, name string) (*model.Tag, error) {
	if name == "go" {
		return nil, errs.ErrTagExists
	}
	return &model.Tag{ID: 2, Name: name}, nil
}

func (fakeTags) Delete(_ context.Context, _ int64, id int64) error {
	if id != 1 {
		return errs.ErrTagNotFound
	}
	return nil
}

type fakeInsights struct {
	lastDays    int
	lastProject *int64
	lastTag     string
}

func (f *fakeInsights) Summary(context.Context, int64) (model.Summary, error) {
	avg := 3.5
	return model.Summary{TotalEntries: 4, AverageMood: &avg, Streak: 2}, nil
}

func (f *fakeInsights) MoodTrend(_ context.Context, _ int64, days int) ([]model.DayStat, error) {
	f.lastDays = days
	if days < 1 || days > service.MaxTrendDays {
		return nil, errs.Validationf("days out of range")
	}
	return []model.DayStat{}, nil
}

func (f *fakeInsights) CalendarMonth(_ context.Context, _ int64, year, month int, projectID *int64, tag string) (map[string]model.DayStat, error) {
	f.lastProject, f.lastTag = projectID, tag
	if month < 1 || month > 12 {
		return nil, errs.Validationf("month must be between 1 and 12")
	}
	avg := 4.0
	d := time.Date(year, time.Month(month), 5, 0, 0, 0, 0, time.UTC)
	return map[string]model.DayStat{
		d.Format(model.DateLayout): {Date: d, EntryCount: 1, AverageMood: &avg},
	}, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	srv      *Server
	handler  http.Handler
	entries  *fakeEntries
	projects *fakeProjects
	insights *fakeInsights
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		entries:  &fakeEntries{},
		projects: &fakeProjects{},
		insights: &fakeInsights{},
	}
	env.srv = New(Deps{
		Auth:     fakeAuth{},
		Entries:  env.entries,
		Projects: env.projects,
		Tags:     fakeTags{},
		Insights: env.insights,
		DB:       fakePinger{},
		Cookies: NewRefreshCookies(CookieConfig{
			HashKey:  []byte("0123456789abcdef0123456789abcdef"),
			BlockKey: []byte("abcdef0123456789abcdef0123456789"),
			TTL:      time.Hour,
		}),
	}, Options{CORSOrigins: []string{"http://localhost:3000"}}, zaptest.NewLogger(t))
	env.handler = env.srv.Routes()
	return env
}

func (e *testEnv) do(method, path, body string, mods ...func(*http.Request)) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, m := range mods {
		m(req)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) authed(method, path, body string) *httptest.ResponseRecorder {
	return e.do(method, path, body, bearer(goodAccess))
}

func bearer(tok string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func newReq() *http.Request { return httptest.NewRequest(http.MethodGet, "/", nil) }
