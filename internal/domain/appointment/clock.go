package appointment

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Clock is a wall-clock time of day in minutes since midnight.
type Clock int

func ParseClock(hm string) (Clock, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(hm))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", hm)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	return d, nil
}

// At resolves a calendar day and a wall-clock time into an instant in loc.
func At(date string, hm string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	c, err := ParseClock(hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), int(c)/60, int(c)%60, 0, 0, loc), nil
}

// interval is a half-open [start, end) window within one day.
type interval struct {
	start Clock
	end   Clock
}

func (i interval) overlaps(o interval) bool {
	return i.start < o.end && i.end > o.start
}
