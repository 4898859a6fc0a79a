package weight

import (
	"fmt"
	"time"

	"github.com/fitlife/fitlife-backend/internal/datekey"
)

// Entry is one body weight measurement. At most one entry per user per day
// is stored; logging again on the same day overwrites the previous value.
type Entry struct {
	ID     int         `json:"id"`
	UserID int         `json:"user_id"`
	Weight float64     `json:"weight"` // kilograms
	Date   datekey.Key `json:"date"`
}

// Window is a named lookback range for weight history queries.
type Window string

const (
	Window7Days   Window = "7d"
	Window30Days  Window = "30d"
	Window90Days  Window = "90d"
	Window180Days Window = "180d"
	Window1Year   Window = "1y"
	WindowAll     Window = "all"
)

var windowDays = map[Window]int{
	Window7Days:   7,
	Window30Days:  30,
	Window90Days:  90,
	Window180Days: 180,
}

func ParseWindow(s string) (Window, error) {
	if s == "" {
		return WindowAll, nil
	}
	w := Window(s)
	if w == WindowAll || w == Window1Year {
		return w, nil
	}
	if _, ok := windowDays[w]; !ok {
		return "", fmt.Errorf("unknown range %q", s)
	}
	return w, nil
}

// Cutoff returns the earliest day (inclusive) still inside the window, as
// seen from now. The second return is false for WindowAll, which has no
// cutoff. Window1Year is a calendar year, not 365 days, so the cutoff lands
// on the same month and day regardless of leap Februaries in between.
func (w Window) Cutoff(now time.Time) (datekey.Key, bool) {
	if w == Window1Year {
		return datekey.FromTime(now.AddDate(-1, 0, 0)), true
	}
	days, ok := windowDays[w]
	if !ok {
		return "", false
	}
	return datekey.FromTime(now.AddDate(0, 0, -days)), true
}

// Filter returns the entries whose date falls inside the window, preserving
// input order. Every cutoff is computed from the same now value, so
// filtering the same list with different windows yields consistent results.
func Filter(entries []Entry, w Window, now time.Time) []Entry {
	cutoff, bounded := w.Cutoff(now)
	if !bounded {
		out := make([]Entry, len(entries))
		copy(out, entries)
		return out
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Date.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}
