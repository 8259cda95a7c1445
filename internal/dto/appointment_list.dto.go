package dto

import (
	"time"

	"github.com/BruksfildServices01/appointease/internal/models"
)

// AppointmentListDTO is an appointment row as the admin list shows it,
// flattened with its owner.
type AppointmentListDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"appointment_date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
	Mode        string    `json:"appointment_mode,omitempty"`
	URL         string    `json:"appointment_url,omitempty"`
	Password    string    `json:"appointment_password,omitempty"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_full_name,omitempty"`
	Username    string    `json:"username,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:          ap.ID,
		Title:       ap.Title,
		Description: ap.Description,
		Date:        ap.Date,
		StartTime:   ap.StartTime,
		EndTime:     ap.EndTime,
		Status:      ap.Status,
		Mode:        ap.Mode,
		URL:         ap.URL,
		Password:    ap.Password,
		UserID:      ap.UserID,
		CreatedAt:   ap.CreatedAt,
	}
	if ap.User != nil {
		out.UserName = ap.User.FullName
		out.Username = ap.User.Username
	}
	return out
}

func FromAppointments(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, FromAppointment(ap))
	}
	return out
}

// RescheduleRequestDTO pairs a request with the window it would replace.
type RescheduleRequestDTO struct {
	ID                 string    `json:"id"`
	AppointmentID      string    `json:"appointment_id"`
	RequestedByUserID  string    `json:"requested_by_user_id"`
	RequestedBy        string    `json:"requested_by,omitempty"`
	RequestedDate      string    `json:"requested_date"`
	RequestedStartTime string    `json:"requested_start_time"`
	RequestedEndTime   string    `json:"requested_end_time"`
	Reason             string    `json:"reason,omitempty"`
	Status             string    `json:"status"`
	CurrentDate        string    `json:"current_date,omitempty"`
	CurrentStartTime   string    `json:"current_start_time,omitempty"`
	CurrentEndTime     string    `json:"current_end_time,omitempty"`
	Title              string    `json:"title,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func FromRescheduleRequests(reqs []models.RescheduleRequest) []RescheduleRequestDTO {
	out := make([]RescheduleRequestDTO, 0, len(reqs))
	for _, r := range reqs {
		d := RescheduleRequestDTO{
			ID:                 r.ID,
			AppointmentID:      r.AppointmentID,
			RequestedByUserID:  r.RequestedByUserID,
			RequestedDate:      r.RequestedDate,
			RequestedStartTime: r.RequestedStartTime,
			RequestedEndTime:   r.RequestedEndTime,
			Reason:             r.Reason,
			Status:             r.Status,
			CreatedAt:          r.CreatedAt,
		}
		if r.RequestedBy != nil {
			d.RequestedBy = r.RequestedBy.FullName
		}
		if r.Appointment != nil {
			d.Title = r.Appointment.Title
			d.CurrentDate = r.Appointment.Date
			d.CurrentStartTime = r.Appointment.StartTime
			d.CurrentEndTime = r.Appointment.EndTime
		}
		out = append(out, d)
	}
	return out
}
