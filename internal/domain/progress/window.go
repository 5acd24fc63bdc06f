package progress

import "time"

// Window is a closed interval compared at millisecond precision, matching
// how clients submit start and end dates.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	ms := t.UnixMilli()
	return ms >= w.Start.UnixMilli() && ms <= w.End.UnixMilli()
}
