package model

import (
	"strings"
	"time"
)

const (
	dateLayout    = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

// Date is a calendar date with no time of day. The zero Date is unknown.
// Text that could not be parsed is kept in raw so storage round-trips it.
type Date struct {
	t     time.Time
	known bool
	raw   string
}

// NewDate builds a known date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), known: true}
}

// ParseDate never fails: anything it cannot read becomes an unknown date.
// It accepts YYYY-MM-DD and RFC 3339 timestamps; a timestamp is moved to UTC
// before its time part is dropped.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return NewDate(t.Year(), t.Month(), t.Day())
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return NewDate(t.Year(), t.Month(), t.Day())
	}
	return Date{raw: s}
}

// Today returns the current local calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

func (d Date) Known() bool { return d.known }

func (d Date) String() string {
	if !d.known {
		return d.raw
	}
	return d.t.Format(dateLayout)
}

// Display is the short form used in listings.
func (d Date) Display() string {
	if !d.known {
		return "unknown date"
	}
	return d.t.Format("Jan 2, 2006")
}

// DaysBetween returns |a - b| in whole days. ok is false when either date
// is unknown.
func DaysBetween(a, b Date) (days int, ok bool) {
	if !a.known || !b.known {
		return 0, false
	}
	// day numbers rather than Sub: a Duration saturates after ~292 years
	days = int(dayNumber(a.t) - dayNumber(b.t))
	if days < 0 {
		days = -days
	}
	return days, true
}

// dayNumber counts days since the Unix epoch for a UTC midnight.
func dayNumber(t time.Time) int64 {
	return t.Unix() / secondsPerDay
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	*d = ParseDate(string(b))
	return nil
}
