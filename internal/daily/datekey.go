// Package daily derives each calendar day's puzzles from the date alone.
package daily

import "time"

// DateKeyLayout renders a day the way browsers print Date.toDateString,
// e.g. "Thu Oct 15 2026".
const DateKeyLayout = "Mon Jan 02 2006"

// DateKey identifies one calendar day. It is the only entropy the
// challenge generators consume.
type DateKey string

// KeyFor returns the DateKey of t in t's own location.
func KeyFor(t time.Time) DateKey {
	return DateKey(t.Format(DateKeyLayout))
}

// ParseDay parses a YYYY-MM-DD day into its DateKey.
func ParseDay(s string) (DateKey, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return "", err
	}
	return KeyFor(t), nil
}

// Clock is the only source of "now" for sessions and ledger timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location (local time when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	now := time.Now()
	if c.Location != nil {
		return now.In(c.Location)
	}
	return now
}

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Today returns the DateKey for the clock's current day.
func Today(c Clock) DateKey {
	return KeyFor(c.Now())
}
