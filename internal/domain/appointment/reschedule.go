package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/appointease/internal/models"
)

// RescheduleProposal is a user's suggested new window for an approved
// appointment.
type RescheduleProposal struct {
	RequestedBy string
	Date        string
	StartTime   string
	EndTime     string
	Reason      string
}

// Window is a parsed date plus [Start, End) on that date.
type Window struct {
	Date  string
	Start Clock
	End   Clock
}

func parseWindow(date, start, end string, verr *ValidationError, prefix string) Window {
	var w Window

	w.Date = strings.TrimSpace(date)
	if w.Date == "" {
		verr.Add(prefix+"date", "is required")
	} else if _, err := ParseDate(w.Date); err != nil {
		verr.Add(prefix+"date", "must be YYYY-MM-DD")
	}

	var err error
	if w.Start, err = ParseClock(start); err != nil {
		verr.Add(prefix+"start_time", "must be HH:MM")
	}
	if w.End, err = ParseClock(end); err != nil {
		verr.Add(prefix+"end_time", "must be HH:MM")
	}

	if !verr.HasErrors() && w.End <= w.Start {
		verr.Add(prefix+"end_time", "must be after start_time")
	}
	return w
}

// RequestReschedule opens a pending request against an approved appointment
// that has not started yet. The appointment itself is not modified.
func RequestReschedule(
	ap models.Appointment,
	p RescheduleProposal,
	wh WorkingHours,
	now time.Time,
) (models.RescheduleRequest, error) {

	if Status(ap.Status) != StatusApproved {
		return models.RescheduleRequest{}, fmt.Errorf("%w: only approved appointments can be rescheduled", ErrInvalidTransition)
	}

	startsAt, err := StartsAt(ap, now.Location())
	if err != nil || !startsAt.After(now) {
		return models.RescheduleRequest{}, fmt.Errorf("%w: appointment has already started", ErrInvalidTransition)
	}

	verr := &ValidationError{}
	if strings.TrimSpace(p.RequestedBy) == "" {
		verr.Add("requested_by", "is required")
	}
	w := parseWindow(p.Date, p.StartTime, p.EndTime, verr, "requested_")
	if err := verr.Err(); err != nil {
		return models.RescheduleRequest{}, err
	}

	if !wh.Malformed() && !wh.Contains(w.Start, w.End) {
		verr.Add("requested_start_time", "must fall within working hours")
	}
	if !startsAfter(w.Date, w.Start.String(), now) {
		verr.Add("requested_date", "must be in the future")
	}
	if err := verr.Err(); err != nil {
		return models.RescheduleRequest{}, err
	}

	return models.RescheduleRequest{
		AppointmentID:      ap.ID,
		RequestedByUserID:  p.RequestedBy,
		RequestedDate:      w.Date,
		RequestedStartTime: w.Start.String(),
		RequestedEndTime:   w.End.String(),
		Reason:             strings.TrimSpace(p.Reason),
		Status:             string(RequestPending),
	}, nil
}

// ResolveReschedule settles a pending request. Approval moves the
// appointment to the requested window and, when override is given, replaces
// its mode details. The appointment keeps its status. Rejection returns a
// nil appointment.
//
// The appointment is read as of now: one that has already ended counts as
// completed and cannot be moved, and a requested window that has started
// since the request was made is refused.
func ResolveReschedule(
	req models.RescheduleRequest,
	ap models.Appointment,
	d Decision,
	override *ModeDetails,
	now time.Time,
) (models.RescheduleRequest, *models.Appointment, error) {

	if !d.Valid() {
		verr := &ValidationError{}
		verr.Add("decision", "must be approve or reject")
		return req, nil, verr
	}
	if RequestStatus(req.Status) != RequestPending {
		return req, nil, fmt.Errorf("%w: reschedule request is already %s", ErrInvalidTransition, req.Status)
	}
	if req.AppointmentID != ap.ID {
		verr := &ValidationError{}
		verr.Add("appointment_id", "does not match the request")
		return req, nil, verr
	}

	if d == DecisionReject {
		req.Status = string(RequestRejected)
		return req, nil, nil
	}

	ap = promoteOne(ap, now)
	if Status(ap.Status) != StatusApproved {
		return req, nil, fmt.Errorf("%w: appointment is %s", ErrInvalidTransition, ap.Status)
	}

	verr := &ValidationError{}
	if !startsAfter(req.RequestedDate, req.RequestedStartTime, now) {
		verr.Add("requested_date", "must be in the future")
	}
	var mode ModeDetails
	if override != nil {
		mode = override.Normalize(verr, "appointment")
	}
	if err := verr.Err(); err != nil {
		return req, nil, err
	}
	if override != nil {
		applyMode(&ap, mode)
	}

	ap.Date = req.RequestedDate
	ap.StartTime = req.RequestedStartTime
	ap.EndTime = req.RequestedEndTime

	req.Status = string(RequestApproved)
	return req, &ap, nil
}

// AdminReschedule moves a pending or approved appointment without a
// request and returns it with the parsed target window. Status is
// untouched. An approved appointment that ended before now is completed
// and cannot be moved.
func AdminReschedule(
	ap models.Appointment,
	date string,
	startTime string,
	endTime string,
	override *ModeDetails,
	now time.Time,
) (models.Appointment, Window, error) {

	ap = promoteOne(ap, now)
	if !Status(ap.Status).Blocking() {
		return ap, Window{}, fmt.Errorf("%w: cannot reschedule a %s appointment", ErrInvalidTransition, ap.Status)
	}

	verr := &ValidationError{}
	w := parseWindow(date, startTime, endTime, verr, "")
	var mode ModeDetails
	if override != nil {
		mode = override.Normalize(verr, "appointment")
	}
	if err := verr.Err(); err != nil {
		return ap, Window{}, err
	}

	if override != nil {
		applyMode(&ap, mode)
	}
	ap.Date = w.Date
	ap.StartTime = w.Start.String()
	ap.EndTime = w.End.String()
	return ap, w, nil
}

// RequestedWindow parses the window a request asks for.
func RequestedWindow(req models.RescheduleRequest) (start, end Clock, err error) {
	if start, err = ParseClock(req.RequestedStartTime); err != nil {
		return 0, 0, err
	}
	if end, err = ParseClock(req.RequestedEndTime); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func promoteOne(ap models.Appointment, now time.Time) models.Appointment {
	return PromoteElapsed([]models.Appointment{ap}, now)[0]
}

// startsAfter reports whether date+clock lies strictly after now, read in
// now's location. Unparseable input counts as not after.
func startsAfter(date, clock string, now time.Time) bool {
	at, err := At(date, clock, now.Location())
	return err == nil && at.After(now)
}

func applyMode(ap *models.Appointment, m ModeDetails) {
	if m.Mode == "" {
		return
	}
	ap.Mode = string(m.Mode)
	ap.URL = m.URL
	ap.Password = m.Password
}
