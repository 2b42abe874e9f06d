package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/and161185/dev-diary/internal/model"
)

// InsightsRepo implements InsightsRepository using PostgreSQL.
type InsightsRepo struct{ db *DB }

// NewInsightsRepo constructs an insights repository.
func NewInsightsRepo(db *DB) *InsightsRepo { return &InsightsRepo{db: db} }

// EntryDates returns the owner's distinct entry dates, newest first.
func (r *InsightsRepo) EntryDates(ctx context.Context, userID int64) ([]time.Time, error) {
	const q = `SELECT DISTINCT date FROM entries WHERE user_id = $1 ORDER BY date DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var d time.Time
		if err = rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Totals returns the entry count and the mean mood of the owner.
func (r *InsightsRepo) Totals(ctx context.Context, userID int64) (int64, *float64, error) {
	const q = `SELECT COUNT(*), AVG(mood)::float8 FROM entries WHERE user_id = $1`
	var (
		n   int64
		avg *float64
	)
	if err := r.db.Pool.QueryRow(ctx, q, userID).Scan(&n, &avg); err != nil {
		return 0, nil, err
	}
	return n, avg, nil
}

// DailyStats groups the entries selected by q by date, oldest first.
func (r *InsightsRepo) DailyStats(ctx context.Context, q model.StatsQuery) ([]model.DayStat, error) {
	w := &where{}
	w.add("e.user_id = $%d", q.UserID)
	w.add("e.date >= $%d", q.From)
	w.add("e.date <= $%d", q.To)
	if q.ProjectID != nil {
		w.add("e.project_id = $%d", *q.ProjectID)
	}
	if q.Tag != "" {
		w.add(tagClause, q.Tag)
	}
	stmt := `
SELECT e.date, COUNT(*), AVG(e.mood)::float8
FROM entries e
WHERE ` + strings.Join(w.clauses, " AND ") + `
GROUP BY e.date
ORDER BY e.date`

	rows, err := r.db.Pool.Query(ctx, stmt, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.DayStat{}
	for rows.Next() {
		var s model.DayStat
		if err = rows.Scan(&s.Date, &s.EntryCount, &s.AverageMood); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
