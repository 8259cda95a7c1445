package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/models"
	"github.com/BruksfildServices01/appointease/internal/notify"
)

type AdminRescheduleInput struct {
	Date      string
	StartTime string
	EndTime   string
	Override  *domain.ModeDetails
}

type AdminReschedule struct {
	Deps
}

func NewAdminReschedule(deps Deps) *AdminReschedule {
	return &AdminReschedule{Deps: deps}
}

// Execute moves a pending or approved appointment without a request. An
// approved appointment that has already ended is completed and stays put.
func (uc *AdminReschedule) Execute(
	ctx context.Context,
	adminID string,
	appointmentID string,
	in AdminRescheduleInput,
) (*models.Appointment, error) {

	var moved models.Appointment

	err := uc.Repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.GetAppointment(ctx, appointmentID)
		if err != nil {
			return notFound(err, "appointment_not_found")
		}

		next, w, err := domain.AdminReschedule(*ap, in.Date, in.StartTime, in.EndTime, in.Override, uc.now())
		if err != nil {
			return err
		}

		if _, err := tx.GetWorkingHours(ctx); err != nil {
			return fmt.Errorf("load working hours: %w", err)
		}

		current, err := tx.ListAppointmentsForDate(ctx, next.Date)
		if err != nil {
			return err
		}

		if err := domain.CheckWindowFree(w.Date, w.Start, w.End, current, next.ID); err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, &next); err != nil {
			return err
		}
		moved = next
		return nil
	})
	if err != nil {
		return nil, storeFailure("admin reschedule", err)
	}

	uc.dispatch(event(adminID, "appointment_rescheduled", "appointment", moved.ID, map[string]string{
		"date":  moved.Date,
		"start": moved.StartTime,
		"end":   moved.EndTime,
	}))
	uc.publish(ctx, notify.TopicAppointments, "rescheduled", moved.ID, moved.UserID)

	return &moved, nil
}
