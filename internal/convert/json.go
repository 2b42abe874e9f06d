// Package convert maps domain records to JSON transport shapes and back.
package convert

import (
	"strconv"
	"time"

	"github.com/and161185/dev-diary/internal/errs"
	"github.com/and161185/dev-diary/internal/model"
)

// --- auth ---

// Credentials is the register/login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse carries an access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToUserResponse hides the password digest.
func ToUserResponse(u model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// ToTokenResponse wraps an access token as a bearer token.
func ToTokenResponse(t model.Tokens) TokenResponse {
	return TokenResponse{AccessToken: t.AccessToken, TokenType: "bearer"}
}

// --- projects & tags ---

// ProjectRequest is the create/update body of a project. Absent fields are nil.
type ProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ProjectResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type TagRequest struct {
	Name string `json:"name"`
}

type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func ToProjectResponse(p model.Project) ProjectResponse {
	return ProjectResponse{ID: p.ID, UserID: p.UserID, Name: p.Name, Description: p.Description, CreatedAt: p.CreatedAt}
}

func ToProjectResponses(ps []model.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToProjectResponse(p))
	}
	return out
}

func ToTagResponses(ts []model.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, TagResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

// --- entries ---

// EntryCreateRequest is the body of POST /entries.
type EntryCreateRequest struct {
	Date         string   `json:"date"`
	Title        *string  `json:"title"`
	Body         *string  `json:"body"`
	LookingAhead *string  `json:"looking_ahead"`
	ProjectID    *int64   `json:"project_id"`
	Tags         []string `json:"tags"`
	Mood         int      `json:"mood"`
	FocusScore   *int     `json:"focus_score"`
}

// EntryUpdateRequest is the body of PUT /entries/{id}. Absent fields stay unchanged;
// project_id 0 detaches the project and tags replaces the whole set.
type EntryUpdateRequest struct {
	Date         *string   `json:"date"`
	Title        *string   `json:"title"`
	Body         *string   `json:"body"`
	LookingAhead *string   `json:"looking_ahead"`
	ProjectID    *int64    `json:"project_id"`
	Tags         *[]string `json:"tags"`
	Mood         *int      `json:"mood"`
	FocusScore   *int      `json:"focus_score"`
}

type ProjectRefResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type EntryResponse struct {
	ID           int64               `json:"id"`
	UserID       int64               `json:"user_id"`
	ProjectID    *int64              `json:"project_id"`
	Date         string              `json:"date"`
	Title        *string             `json:"title"`
	Body         *string             `json:"body"`
	LookingAhead *string             `json:"looking_ahead"`
	Mood         int                 `json:"mood"`
	FocusScore   *int                `json:"focus_score"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Tags         []TagResponse       `json:"tags"`
	Project      *ProjectRefResponse `json:"project"`
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, errs.Validationf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

// FromEntryCreate converts a create request into a domain intent.
func FromEntryCreate(in EntryCreateRequest) (model.NewEntry, error) {
	if in.Date == "" {
		return model.NewEntry{}, errs.Validationf("date is required")
	}
	d, err := ParseDate(in.Date)
	if err != nil {
		return model.NewEntry{}, err
	}
	return model.NewEntry{
		ProjectID:    in.ProjectID,
		Date:         d,
		Title:        in.Title,
		Body:         in.Body,
		LookingAhead: in.LookingAhead,
		Mood:         in.Mood,
		FocusScore:   in.FocusScore,
		TagNames:     in.Tags,
	}, nil
}

// FromEntryUpdate converts an update request into a patch.
func FromEntryUpdate(in EntryUpdateRequest) (model.EntryPatch, error) {
	p := model.EntryPatch{
		Title:        in.Title,
		Body:         in.Body,
		LookingAhead: in.LookingAhead,
		Mood:         in.Mood,
		FocusScore:   in.FocusScore,
	}
	if in.Date != nil {
		d, err := ParseDate(*in.Date)
		if err != nil {
			return model.EntryPatch{}, err
		}
		p.Date = &d
	}
	if in.ProjectID != nil {
		if *in.ProjectID == 0 {
			p.ClearProject = true
		} else {
			p.ProjectID = in.ProjectID
		}
	}
	if in.Tags != nil {
		p.TagNames = append([]string{}, (*in.Tags)...)
	}
	return p, nil
}

func ToEntryResponse(e model.Entry) EntryResponse {
	out := EntryResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		ProjectID:    e.ProjectID,
		Date:         e.Date.Format(model.DateLayout),
		Title:        e.Title,
		Body:         e.Body,
		LookingAhead: e.LookingAhead,
		Mood:         e.Mood,
		FocusScore:   e.FocusScore,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
		Tags:         ToTagResponses(e.Tags),
	}
	if e.Project != nil {
		out.Project = &ProjectRefResponse{ID: e.Project.ID, Name: e.Project.Name, Description: e.Project.Description}
	}
	return out
}

func ToEntryResponses(es []model.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(es))
	for _, e := range es {
		out = append(out, ToEntryResponse(e))
	}
	return out
}

// --- insights ---

type DayStatResponse struct {
	Date        string   `json:"date"`
	EntryCount  int64    `json:"entry_count"`
	AverageMood *float64 `json:"average_mood"`
}

type CalendarMonthResponse struct {
	Year  int               `json:"year"`
	Month int               `json:"month"`
	Days  []DayStatResponse `json:"days"`
}

type SummaryResponse struct {
	TotalEntries int64    `json:"total_entries"`
	AverageMood  *float64 `json:"average_mood"`
	Streak       int      `json:"streak"`
}

func ToDayStatResponses(ds []model.DayStat) []DayStatResponse {
	out := make([]DayStatResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, DayStatResponse{
			Date:        d.Date.Format(model.DateLayout),
			EntryCount:  d.EntryCount,
			AverageMood: d.AverageMood,
		})
	}
	return out
}

// ToCalendarMonthResponse expects days already filled for the whole month.
func ToCalendarMonthResponse(year, month int, days []model.DayStat) CalendarMonthResponse {
	return CalendarMonthResponse{Year: year, Month: month, Days: ToDayStatResponses(days)}
}

func ToSummaryResponse(s model.Summary) SummaryResponse {
	return SummaryResponse{TotalEntries: s.TotalEntries, AverageMood: s.AverageMood, Streak: s.Streak}
}

// ParseID parses a positive path id.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Validationf("invalid id %q", s)
	}
	return id, nil
}
