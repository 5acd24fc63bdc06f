package dateutil

import "time"

const DayLayout = "2006-01-02"

// DayKey normalizes a timestamp to its calendar date. Two sessions recorded on
// the same day map to the same key regardless of their time of day.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// WithinInclusive reports whether t falls in [start, end]. Bounds are compared
// at millisecond precision and both are inclusive.
func WithinInclusive(t, start, end time.Time) bool {
	ms := t.UnixMilli()
	return ms >= start.UnixMilli() && ms <= end.UnixMilli()
}

// CountDistinctDays returns the number of distinct calendar dates among the
// given timestamps.
func CountDistinctDays(times []time.Time) int {
	days := map[string]struct{}{}
	for _, t := range times {
		days[DayKey(t)] = struct{}{}
	}

	return len(days)
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
