package appointment

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/appointease/internal/models"
)

// WorkingHours is the parsed form of models.WorkingHours.
type WorkingHours struct {
	DayStart     Clock
	DayEnd       Clock
	BreakStart   Clock
	BreakEnd     Clock
	SlotDuration int
}

// DefaultWorkingHours is what a fresh installation starts with.
func DefaultWorkingHours() models.WorkingHours {
	return models.WorkingHours{
		StartTime:           "09:00",
		EndTime:             "17:00",
		BreakStartTime:      "12:00",
		BreakEndTime:        "13:00",
		SlotDurationMinutes: 60,
	}
}

// ParseWorkingHours converts the stored HH:MM strings. An empty break is
// read as a zero-length break at the start of the day.
func ParseWorkingHours(m *models.WorkingHours) (WorkingHours, error) {
	if m == nil {
		return WorkingHours{}, ErrInvalidConfiguration
	}

	var wh WorkingHours
	var err error

	if wh.DayStart, err = ParseClock(m.StartTime); err != nil {
		return WorkingHours{}, fmt.Errorf("%w: start_time: %v", ErrInvalidConfiguration, err)
	}
	if wh.DayEnd, err = ParseClock(m.EndTime); err != nil {
		return WorkingHours{}, fmt.Errorf("%w: end_time: %v", ErrInvalidConfiguration, err)
	}

	if strings.TrimSpace(m.BreakStartTime) == "" && strings.TrimSpace(m.BreakEndTime) == "" {
		wh.BreakStart, wh.BreakEnd = wh.DayStart, wh.DayStart
	} else {
		if wh.BreakStart, err = ParseClock(m.BreakStartTime); err != nil {
			return WorkingHours{}, fmt.Errorf("%w: break_start_time: %v", ErrInvalidConfiguration, err)
		}
		if wh.BreakEnd, err = ParseClock(m.BreakEndTime); err != nil {
			return WorkingHours{}, fmt.Errorf("%w: break_end_time: %v", ErrInvalidConfiguration, err)
		}
	}

	wh.SlotDuration = m.SlotDurationMinutes
	return wh, nil
}

// Malformed reports whether no slot can ever be produced.
func (w WorkingHours) Malformed() bool {
	return w.DayStart >= w.DayEnd || w.SlotDuration <= 0
}

func (w WorkingHours) hasBreak() bool {
	return w.BreakStart != w.BreakEnd
}

func (w WorkingHours) breakWindow() interval {
	return interval{start: w.BreakStart, end: w.BreakEnd}
}

// Validate enforces dayStart < breakStart <= breakEnd < dayEnd for admin
// updates. A zero-length break is accepted anywhere inside the day.
func (w WorkingHours) Validate() error {
	verr := &ValidationError{}

	if w.DayStart >= w.DayEnd {
		verr.Add("end_time", "must be after start_time")
	}
	if w.SlotDuration <= 0 {
		verr.Add("slot_duration", "must be a positive number of minutes")
	}
	if w.hasBreak() {
		if w.BreakStart <= w.DayStart {
			verr.Add("break_start_time", "must be after start_time")
		}
		if w.BreakEnd < w.BreakStart {
			verr.Add("break_end_time", "must not be before break_start_time")
		}
		if w.BreakEnd >= w.DayEnd {
			verr.Add("break_end_time", "must be before end_time")
		}
	}

	return verr.Err()
}

// Contains reports whether [start, end) lies inside the working day and
// clear of the break.
func (w WorkingHours) Contains(start, end Clock) bool {
	if start >= end || start < w.DayStart || end > w.DayEnd {
		return false
	}
	if w.hasBreak() && (interval{start: start, end: end}).overlaps(w.breakWindow()) {
		return false
	}
	return true
}
