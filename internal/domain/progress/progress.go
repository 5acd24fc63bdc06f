// Package progress holds the goal arithmetic shared by competitions, guild
// challenges and personal statistics.
package progress

import (
	"math"

	"github.com/parnaso/backend/internal/entity"
	"github.com/parnaso/backend/pkg/dateutil"

	mathUtil "github.com/pkg/math"
)

type Totals struct {
	Words              int
	Minutes            int
	Sessions           int
	DaysStreak         int
	AvgWordsPerSession int
}

// Aggregate sums a slice of sessions. DaysStreak is the number of distinct
// calendar days with at least one session, regardless of gaps between them.
// AvgWordsPerSession is rounded to the nearest integer and reads as zero
// when there is no session at all.
func Aggregate(sessions []entity.WritingSession) Totals {
	totals := Totals{Sessions: len(sessions)}

	days := map[string]struct{}{}
	for _, s := range sessions {
		totals.Words += s.WordCount
		totals.Minutes += s.Duration
		days[dateutil.DayKey(s.StartedAt)] = struct{}{}
	}

	totals.DaysStreak = len(days)
	if totals.Sessions > 0 {
		totals.AvgWordsPerSession = int(math.Round(float64(totals.Words) / float64(totals.Sessions)))
	}

	return totals
}

// Current returns the value a participant has accumulated toward a goal of
// the given type over sessions inside the closed window [start, end].
func Current(
	goalType entity.CompetitionType,
	sessions []entity.WritingSession,
	window Window,
) int {
	var words int
	days := map[string]struct{}{}
	for _, s := range sessions {
		if !window.Contains(s.StartedAt) {
			continue
		}

		words += s.WordCount
		days[dateutil.DayKey(s.StartedAt)] = struct{}{}
	}

	if goalType == entity.CompetitionDaysStreak {
		return len(days)
	}

	return words
}

// Percent clamps to [0, 100]. A non-positive target always reads as zero
// rather than dividing by it.
func Percent(current, target int) int {
	if target <= 0 {
		return 0
	}

	if current < 0 {
		current = 0
	}

	percent := int(math.Round(float64(current) / float64(target) * 100))
	return mathUtil.MinInt(percent, 100)
}
