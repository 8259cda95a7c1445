package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/models"
	"github.com/BruksfildServices01/appointease/internal/notify"
)

type ResolveReschedule struct {
	Deps
}

func NewResolveReschedule(deps Deps) *ResolveReschedule {
	return &ResolveReschedule{Deps: deps}
}

// ResolveResult carries the settled request and, on approval, the moved
// appointment.
type ResolveResult struct {
	Request     models.RescheduleRequest `json:"request"`
	Appointment *models.Appointment      `json:"appointment,omitempty"`
}

// Execute approves or rejects a pending reschedule request. Approval
// re-checks the requested window against every other blocking appointment
// on the requested date, and refuses appointments that have already ended.
func (uc *ResolveReschedule) Execute(
	ctx context.Context,
	adminID string,
	requestID string,
	decision domain.Decision,
	override *domain.ModeDetails,
) (*ResolveResult, error) {

	var res ResolveResult
	now := uc.now()

	err := uc.Repo.Transaction(ctx, func(tx domain.Repository) error {
		req, err := tx.GetRescheduleRequest(ctx, requestID)
		if err != nil {
			return notFound(err, "reschedule_request_not_found")
		}

		ap, err := tx.GetAppointment(ctx, req.AppointmentID)
		if err != nil {
			return notFound(err, "appointment_not_found")
		}

		settled, moved, err := domain.ResolveReschedule(*req, *ap, decision, override, now)
		if err != nil {
			return err
		}

		if moved != nil {
			// takes the schedule lock
			if _, err := tx.GetWorkingHours(ctx); err != nil {
				return fmt.Errorf("load working hours: %w", err)
			}

			current, err := tx.ListAppointmentsForDate(ctx, settled.RequestedDate)
			if err != nil {
				return err
			}

			start, end, err := domain.RequestedWindow(settled)
			if err != nil {
				return err
			}
			if err := domain.CheckWindowFree(settled.RequestedDate, start, end, current, moved.ID); err != nil {
				return err
			}

			if err := tx.UpdateAppointment(ctx, moved); err != nil {
				return err
			}
			res.Appointment = moved
		}

		if err := tx.UpdateRescheduleRequest(ctx, &settled); err != nil {
			return err
		}
		res.Request = settled
		return nil
	})
	if err != nil {
		return nil, storeFailure("resolve reschedule", err)
	}

	owner := res.Request.RequestedByUserID
	uc.dispatch(event(adminID, "reschedule_"+res.Request.Status, "reschedule_request", res.Request.ID, map[string]string{
		"appointment_id": res.Request.AppointmentID,
	}))
	uc.publish(ctx, notify.TopicRescheduleRequests, res.Request.Status, res.Request.ID, owner)
	if res.Appointment != nil {
		uc.publish(ctx, notify.TopicAppointments, "rescheduled", res.Appointment.ID, res.Appointment.UserID)
	}

	return &res, nil
}
