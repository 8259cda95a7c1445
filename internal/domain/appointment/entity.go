package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/appointease/internal/models"
)

// ===============================
// Booking
// ===============================

// BookingCandidate is what a user submits when picking a slot.
type BookingCandidate struct {
	UserID      string
	Title       string
	Description string
	Date        string
	StartTime   string
	Mode        ModeDetails
}

func (c BookingCandidate) validate() (Clock, *ValidationError) {
	verr := &ValidationError{}

	if strings.TrimSpace(c.UserID) == "" {
		verr.Add("user_id", "is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		verr.Add("title", "is required")
	}

	if strings.TrimSpace(c.Date) == "" {
		verr.Add("appointment_date", "is required")
	} else if _, err := ParseDate(c.Date); err != nil {
		verr.Add("appointment_date", "must be YYYY-MM-DD")
	}

	var start Clock
	if strings.TrimSpace(c.StartTime) == "" {
		verr.Add("start_time", "is required")
	} else {
		var err error
		if start, err = ParseClock(c.StartTime); err != nil {
			verr.Add("start_time", "must be HH:MM")
		}
	}

	return start, verr
}

// Validate checks the candidate's own fields without looking at the
// schedule.
func (c BookingCandidate) Validate() error {
	_, verr := c.validate()
	c.mode(verr)
	return verr.Err()
}

func (c BookingCandidate) mode(verr *ValidationError) ModeDetails {
	mode := c.Mode
	if mode.Mode == "" {
		mode.Mode = ModeOnline
	}
	return mode.Normalize(verr, "appointment")
}

// SubmitBooking re-validates the chosen slot against current, the fresh
// appointments for the candidate's date, and returns a new pending
// appointment. The caller persists it.
func SubmitBooking(
	c BookingCandidate,
	wh WorkingHours,
	current []models.Appointment,
) (models.Appointment, error) {

	start, verr := c.validate()
	mode := c.mode(verr)
	if err := verr.Err(); err != nil {
		return models.Appointment{}, err
	}

	if wh.Malformed() {
		return models.Appointment{}, ErrInvalidConfiguration
	}

	date := strings.TrimSpace(c.Date)

	// a start the empty day never offers is a bad request, not a lost race
	if !containsStart(ComputeAvailableSlots(date, wh, nil), start) {
		verr.Add("start_time", "is not a bookable slot")
		return models.Appointment{}, verr
	}

	if !containsStart(ComputeAvailableSlots(date, wh, current), start) {
		return models.Appointment{}, ErrSlotTaken
	}

	return models.Appointment{
		UserID:      c.UserID,
		Title:       strings.TrimSpace(c.Title),
		Description: strings.TrimSpace(c.Description),
		Date:        date,
		StartTime:   start.String(),
		EndTime:     start.Add(wh.SlotDuration).String(),
		Status:      string(InitialStatus()),
		Mode:        string(mode.Mode),
		URL:         mode.URL,
		Password:    mode.Password,
	}, nil
}

// ===============================
// Domain Actions
// ===============================

// Decide approves or rejects a pending appointment. Only the status changes.
func Decide(ap *models.Appointment, d Decision) error {
	if !d.Valid() {
		verr := &ValidationError{}
		verr.Add("decision", "must be approve or reject")
		return verr
	}

	to := StatusRejected
	if d == DecisionApprove {
		to = StatusApproved
	}

	from := Status(ap.Status)
	if from != StatusPending || !CanTransition(from, to) {
		return fmt.Errorf("%w: cannot %s a %s appointment", ErrInvalidTransition, d, from)
	}

	ap.Status = string(to)
	return nil
}

// StartsAt is the instant the appointment begins in loc.
func StartsAt(ap models.Appointment, loc *time.Location) (time.Time, error) {
	return At(ap.Date, ap.StartTime, loc)
}

// EndsAt is the instant the appointment ends in loc.
func EndsAt(ap models.Appointment, loc *time.Location) (time.Time, error) {
	return At(ap.Date, ap.EndTime, loc)
}

// PromoteElapsed returns a copy of aps where every approved appointment
// whose end lies before now is completed. Wall-clock fields are read in
// now's location. Records with unparseable times are left as they are.
func PromoteElapsed(aps []models.Appointment, now time.Time) []models.Appointment {
	out := make([]models.Appointment, len(aps))
	copy(out, aps)

	for i := range out {
		if Status(out[i].Status) != StatusApproved {
			continue
		}
		end, err := EndsAt(out[i], now.Location())
		if err != nil {
			continue
		}
		if end.Before(now) {
			out[i].Status = string(StatusCompleted)
		}
	}
	return out
}

// Elapsed lists the ids PromoteElapsed would complete.
func Elapsed(aps []models.Appointment, now time.Time) []string {
	promoted := PromoteElapsed(aps, now)

	var ids []string
	for i := range promoted {
		if promoted[i].Status != aps[i].Status {
			ids = append(ids, promoted[i].ID)
		}
	}
	return ids
}
