// Package streak derives the current run of consecutive journaling days.
package streak

import (
	"sort"
	"time"
)

// Day truncates t to its civil date in t's location, returned as UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Calculate returns the streak ending today or yesterday.
//
// A streak anchored at today counts today and every directly preceding day
// with an entry. When today is missing but yesterday is present the streak
// counts yesterday and the days before it. When neither is present the
// streak is zero regardless of older history.
func Calculate(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	days, present := normalize(dates)
	today = Day(today)
	yesterday := today.AddDate(0, 0, -1)

	var (
		streak int
		cursor time.Time
	)
	switch {
	case present[today]:
		cursor = today
	case present[yesterday]:
		streak = 1
		cursor = yesterday.AddDate(0, 0, -1)
	default:
		return 0
	}

	for _, d := range days {
		switch {
		case d.After(cursor):
			continue
		case d.Equal(cursor):
			streak++
			cursor = cursor.AddDate(0, 0, -1)
		default:
			return streak
		}
	}
	return streak
}

// normalize returns distinct civil dates sorted newest first and their set.
func normalize(dates []time.Time) ([]time.Time, map[time.Time]bool) {
	seen := make(map[time.Time]bool, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, t := range dates {
		d := Day(t)
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out, seen
}
