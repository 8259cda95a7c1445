package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/appointease/internal/models"
)

// ListFilter narrows ListAppointments. Zero values match everything.
type ListFilter struct {
	UserID string
	Date   string
	Status Status
}

type Repository interface {
	// -------- Settings --------
	GetWorkingHours(
		ctx context.Context,
	) (*models.WorkingHours, error)

	SaveWorkingHours(
		ctx context.Context,
		wh *models.WorkingHours,
	) error

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// ListAppointmentsForDate returns pending and approved appointments on
	// date. Inside Transaction the rows are locked for update.
	ListAppointmentsForDate(
		ctx context.Context,
		date string,
	) ([]models.Appointment, error)

	// -------- Appointment (write) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// MarkCompleted moves the given approved appointments to completed and
	// stamps the settings row's last cleanup time.
	MarkCompleted(
		ctx context.Context,
		ids []string,
		at time.Time,
	) error

	// -------- Reschedule requests --------
	CreateRescheduleRequest(
		ctx context.Context,
		req *models.RescheduleRequest,
	) error

	GetRescheduleRequest(
		ctx context.Context,
		id string,
	) (*models.RescheduleRequest, error)

	UpdateRescheduleRequest(
		ctx context.Context,
		req *models.RescheduleRequest,
	) error

	ListRescheduleRequests(
		ctx context.Context,
		status RequestStatus,
	) ([]models.RescheduleRequest, error)

	// -------- Unit of work --------
	Transaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error
}
