package service

import (
	"context"
	"time"

	"github.com/and161185/dev-diary/internal/errs"
	"github.com/and161185/dev-diary/internal/model"
	"github.com/and161185/dev-diary/internal/repository"
	"github.com/and161185/dev-diary/internal/streak"
)

// Mood trend window bounds, in days.
const (
	DefaultTrendDays = 30
	MaxTrendDays     = 365
)

// InsightsService defines calendar and summary views over the caller's entries.
type InsightsService interface {
	// Summary returns totals, mean mood and the current streak.
	Summary(ctx context.Context, userID int64) (model.Summary, error)
	// MoodTrend returns per-day stats of the last days, oldest first.
	MoodTrend(ctx context.Context, userID int64, days int) ([]model.DayStat, error)
	// CalendarMonth returns the days of a month that have entries, keyed by ISO date.
	CalendarMonth(ctx context.Context, userID int64, year, month int, projectID *int64, tag string) (map[string]model.DayStat, error)
}

type InsightsServiceImpl struct {
	repo repository.InsightsRepository
	now  func() time.Time
}

// NewInsightsService constructs InsightsService. A nil now uses time.Now.
func NewInsightsService(repo repository.InsightsRepository, now func() time.Time) *InsightsServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &InsightsServiceImpl{repo: repo, now: now}
}

// Summary aggregates all entries of the user.
func (s *InsightsServiceImpl) Summary(ctx context.Context, userID int64) (model.Summary, error) {
	total, avg, err := s.repo.Totals(ctx, userID)
	if err != nil {
		return model.Summary{}, err
	}
	if total == 0 {
		avg = nil
	}
	dates, err := s.repo.EntryDates(ctx, userID)
	if err != nil {
		return model.Summary{}, err
	}
	return model.Summary{
		TotalEntries: total,
		AverageMood:  avg,
		Streak:       streak.Calculate(dates, s.now()),
	}, nil
}

// MoodTrend covers [today-days, today+1] inclusive.
func (s *InsightsServiceImpl) MoodTrend(ctx context.Context, userID int64, days int) ([]model.DayStat, error) {
	if days < 1 || days > MaxTrendDays {
		return nil, errs.Validationf("days must be between 1 and %d", MaxTrendDays)
	}
	today := streak.Day(s.now())
	return s.repo.DailyStats(ctx, model.StatsQuery{
		UserID: userID,
		From:   today.AddDate(0, 0, -days),
		To:     today.AddDate(0, 0, 1),
	})
}

// CalendarMonth rolls up a month. Days without entries are absent from the map.
func (s *InsightsServiceImpl) CalendarMonth(
	ctx context.Context, userID int64, year, month int, projectID *int64, tag string,
) (map[string]model.DayStat, error) {
	if month < 1 || month > 12 {
		return nil, errs.Validationf("month must be between 1 and 12")
	}
	if year < 1 || year > 9999 {
		return nil, errs.Validationf("year out of range")
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	stats, err := s.repo.DailyStats(ctx, model.StatsQuery{
		UserID:    userID,
		From:      first,
		To:        first.AddDate(0, 1, -1),
		ProjectID: projectID,
		Tag:       tag,
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.DayStat, len(stats))
	for _, st := range stats {
		out[st.Date.Format(model.DateLayout)] = st
	}
	return out, nil
}

// FillMonth materializes every day of the month in order. Days missing from
// stats get a zero count and no mood.
func FillMonth(year int, month time.Month, stats map[string]model.DayStat) []model.DayStat {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.DayStat, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		st := stats[d.Format(model.DateLayout)]
		st.Date = d
		out = append(out, st)
	}
	return out
}
