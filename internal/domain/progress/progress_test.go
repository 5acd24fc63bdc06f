package progress

import (
	"testing"
	"time"

	"github.com/parnaso/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func session(day string, hour int, words int, minutes int) entity.WritingSession {
	t, _ := time.Parse("2006-01-02", day)
	return entity.WritingSession{
		WordCount: words,
		Duration:  minutes,
		StartedAt: t.Add(time.Duration(hour) * time.Hour),
	}
}

func TestAggregate(t *testing.T) {
	totals := Aggregate([]entity.WritingSession{
		session("2024-03-01", 9, 500, 25),
		session("2024-03-01", 21, 300, 15),
		session("2024-03-05", 10, 1200, 50),
	})

	require.Equal(t, 2000, totals.Words)
	require.Equal(t, 90, totals.Minutes)
	require.Equal(t, 3, totals.Sessions)
	require.Equal(t, 2, totals.DaysStreak)
	require.Equal(t, 667, totals.AvgWordsPerSession) // 2000/3 rounded
}

func TestAggregateStreakIgnoresGaps(t *testing.T) {
	// Days with sessions are 1st, 5th and 20th. They are far apart but the
	// streak still counts every distinct day.
	totals := Aggregate([]entity.WritingSession{
		session("2024-03-01", 8, 100, 10),
		session("2024-03-05", 8, 100, 10),
		session("2024-03-20", 8, 100, 10),
	})

	require.Equal(t, 3, totals.DaysStreak)
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil)
	require.Equal(t, 0, totals.Words)
	require.Equal(t, 0, totals.Sessions)
	require.Equal(t, 0, totals.DaysStreak)

	// No sessions reads as a zero average, never a division by zero.
	require.Equal(t, 0, totals.AvgWordsPerSession)
}

func TestCurrentWindowInclusive(t *testing.T) {
	start, _ := time.Parse("2006-01-02", "2024-03-01")
	end, _ := time.Parse("2006-01-02", "2024-03-10")
	window := Window{Start: start, End: end}

	inside := []entity.WritingSession{
		{WordCount: 100, StartedAt: start},           // exactly at start
		{WordCount: 200, StartedAt: end},             // exactly at end
		{WordCount: 400, StartedAt: start.AddDate(0, 0, 5)},
	}
	outside := []entity.WritingSession{
		{WordCount: 1000, StartedAt: start.Add(-time.Millisecond)},
		{WordCount: 1000, StartedAt: end.Add(time.Millisecond)},
	}

	got := Current(entity.CompetitionWordCount, append(inside, outside...), window)
	require.Equal(t, 700, got)
}

func TestCurrentDaysStreak(t *testing.T) {
	start, _ := time.Parse("2006-01-02", "2024-03-01")
	end, _ := time.Parse("2006-01-02", "2024-03-31")
	window := Window{Start: start, End: end}

	sessions := []entity.WritingSession{
		session("2024-03-02", 9, 100, 10),
		session("2024-03-02", 23, 100, 10),
		session("2024-03-09", 9, 100, 10),
		session("2024-04-02", 9, 100, 10), // outside the window
	}

	got := Current(entity.CompetitionDaysStreak, sessions, window)
	require.Equal(t, 2, got)
}

func TestPercent(t *testing.T) {
	require.Equal(t, 0, Percent(100, 0))
	require.Equal(t, 0, Percent(100, -5))
	require.Equal(t, 0, Percent(0, 1000))
	require.Equal(t, 50, Percent(500, 1000))
	require.Equal(t, 33, Percent(1, 3))
	require.Equal(t, 67, Percent(2, 3))
	require.Equal(t, 100, Percent(1000, 1000))
	require.Equal(t, 100, Percent(5000, 1000))
}
