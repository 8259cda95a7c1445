package meeting

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/models"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
)

// StatusAt derives a meeting's status. It is never stored.
func StatusAt(m models.Meeting, now time.Time) Status {
	start, err := appointment.At(m.Date, m.StartTime, now.Location())
	if err != nil || start.After(now) {
		return StatusUpcoming
	}
	return StatusCompleted
}

// View is a meeting as returned to callers.
type View struct {
	models.Meeting
	Status Status `json:"status"`
}

func Annotate(ms []models.Meeting, now time.Time) []View {
	out := make([]View, 0, len(ms))
	for _, m := range ms {
		out = append(out, View{Meeting: m, Status: StatusAt(m, now)})
	}
	return out
}

// Draft is the editable part of a meeting.
type Draft struct {
	Title          string
	Description    string
	Date           string
	StartTime      string
	EndTime        string
	Mode           appointment.ModeDetails
	ParticipantIDs []string
}

// Apply validates d and writes it onto m.
func (d Draft) Apply(m *models.Meeting) error {
	verr := &appointment.ValidationError{}

	title := strings.TrimSpace(d.Title)
	if title == "" {
		verr.Add("title", "is required")
	}

	date := strings.TrimSpace(d.Date)
	if date == "" {
		verr.Add("meeting_date", "is required")
	} else if _, err := appointment.ParseDate(date); err != nil {
		verr.Add("meeting_date", "must be YYYY-MM-DD")
	}

	start, errStart := appointment.ParseClock(d.StartTime)
	if errStart != nil {
		verr.Add("start_time", "must be HH:MM")
	}
	end, errEnd := appointment.ParseClock(d.EndTime)
	if errEnd != nil {
		verr.Add("end_time", "must be HH:MM")
	}
	if errStart == nil && errEnd == nil && end <= start {
		verr.Add("end_time", "must be after start_time")
	}

	mode := d.Mode
	if mode.Mode == "" {
		mode.Mode = appointment.ModeOnline
	}
	mode = mode.Normalize(verr, "meeting")

	if err := verr.Err(); err != nil {
		return err
	}

	m.Title = title
	m.Description = strings.TrimSpace(d.Description)
	m.Date = date
	m.StartTime = start.String()
	m.EndTime = end.String()
	m.Mode = string(mode.Mode)
	m.URL = mode.URL
	m.Password = mode.Password
	return nil
}

// UniqueIDs drops blanks and duplicates, keeping first-seen order.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
