package repository

import (
	"context"
	"time"

	"github.com/and161185/dev-diary/internal/model"
)

// InsightsRepository runs the aggregation queries behind calendar and insight views.
type InsightsRepository interface {
	// EntryDates returns the owner's distinct entry dates, newest first.
	EntryDates(ctx context.Context, userID int64) ([]time.Time, error)
	// Totals returns the entry count and mean mood (nil without entries).
	Totals(ctx context.Context, userID int64) (int64, *float64, error)
	// DailyStats groups matching entries by date, ascending. Days without entries are absent.
	DailyStats(ctx context.Context, q model.StatsQuery) ([]model.DayStat, error)
}
