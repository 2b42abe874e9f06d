// Package model defines domain entities used by services and repositories.
package model

import "time"

// DateLayout is the wire and map-key format of calendar dates.
const DateLayout = "2006-01-02"

// Tokens collects issued access/refresh tokens.
type Tokens struct {
	AccessToken      string
	RefreshToken     string
	ExpiresAt        time.Time // access token expiry
	RefreshExpiresAt time.Time
}

// User represents an account stored on the server.
type User struct {
	ID           int64
	Email        string // unique
	PasswordHash string // encoded digest, see internal/crypto
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Project groups entries under a user-defined name.
type Project struct {
	ID          int64
	UserID      int64
	Name        string
	Description *string
	CreatedAt   time.Time
}

// ProjectPatch lists project fields to change; nil means unchanged.
type ProjectPatch struct {
	Name        *string
	Description *string
}

// Tag is a label unique per (user, name).
type Tag struct {
	ID     int64
	UserID int64
	Name   string
}

// ProjectRef is the project summary embedded into entries.
type ProjectRef struct {
	ID          int64
	Name        string
	Description *string
}

// Entry is a single dated journal record.
type Entry struct {
	ID           int64
	UserID       int64
	ProjectID    *int64
	Date         time.Time // calendar date, time part is zero (UTC)
	Title        *string
	Body         *string
	LookingAhead *string
	Mood         int  // 1..5
	FocusScore   *int // 1..10
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Project *ProjectRef // filled on reads when ProjectID != nil
	Tags    []Tag
}

// NewEntry is a create intent; tag names are get-or-created for the owner.
type NewEntry struct {
	ProjectID    *int64
	Date         time.Time
	Title        *string
	Body         *string
	LookingAhead *string
	Mood         int
	FocusScore   *int
	TagNames     []string
}

// EntryPatch lists entry fields to change; nil means unchanged.
// ClearProject removes the project link. Tags == nil keeps the current tag
// set, an empty non-nil slice clears it.
type EntryPatch struct {
	ProjectID    *int64
	ClearProject bool
	Date         *time.Time
	Title        *string
	Body         *string
	LookingAhead *string
	Mood         *int
	FocusScore   *int
	TagNames     []string
}

// EntryFilter narrows an entry listing. Zero values mean "no filter".
type EntryFilter struct {
	ProjectID *int64
	Tag       string
	Search    string
	DateFrom  *time.Time
	DateTo    *time.Time // inclusive
}

// DayStat is the per-day rollup used by calendar and trend views.
type DayStat struct {
	Date        time.Time
	EntryCount  int64
	AverageMood *float64 // nil when the day has no entries
}

// StatsQuery selects entries for a daily rollup. From and To are inclusive.
type StatsQuery struct {
	UserID    int64
	From      time.Time
	To        time.Time
	ProjectID *int64
	Tag       string
}

// Summary is the overall insight block of a user.
type Summary struct {
	TotalEntries int64
	AverageMood  *float64
	Streak       int
}
