package datekey

import (
	"fmt"
	"time"
)

// Layout is the canonical calendar day format. It is fixed-width and
// lexicographically date-ordered, so plain string comparison on keys
// is also chronological comparison.
const Layout = "2006-01-02"

// Key is a calendar day in canonical YYYY-MM-DD form.
type Key string

func FromTime(t time.Time) Key {
	return Key(t.Format(Layout))
}

// Today returns the key for the current date in the local timezone.
func Today() Key {
	return FromTime(time.Now())
}

// Parse validates s and returns it as a canonical key.
func Parse(s string) (Key, error) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date key %q: %w", s, err)
	}
	return FromTime(t), nil
}

// Time returns the start of the day in the local timezone.
func (k Key) Time() (time.Time, error) {
	return time.ParseInLocation(Layout, string(k), time.Local)
}

// Shift steps the key forward or backward by deltaDays. Stepping past today
// clamps: the input key is returned unchanged, so day navigation can never
// reach a future date. An unparseable key is also returned unchanged.
func (k Key) Shift(deltaDays int) Key {
	return k.shiftFrom(deltaDays, time.Now())
}

func (k Key) shiftFrom(deltaDays int, now time.Time) Key {
	t, err := k.Time()
	if err != nil {
		return k
	}

	shifted := FromTime(t.AddDate(0, 0, deltaDays))
	if shifted > FromTime(now) {
		return k
	}
	return shifted
}

func (k Key) Before(other Key) bool {
	return k < other
}

func (k Key) After(other Key) bool {
	return k > other
}
