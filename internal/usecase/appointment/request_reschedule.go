package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/models"
	"github.com/BruksfildServices01/appointease/internal/notify"
)

type RequestReschedule struct {
	Deps
}

func NewRequestReschedule(deps Deps) *RequestReschedule {
	return &RequestReschedule{Deps: deps}
}

// Execute opens a reschedule request for one of userID's approved
// appointments. Only one pending request per appointment is allowed.
func (uc *RequestReschedule) Execute(
	ctx context.Context,
	userID string,
	appointmentID string,
	p domain.RescheduleProposal,
) (*models.RescheduleRequest, error) {

	p.RequestedBy = userID
	now := uc.now()

	var created models.RescheduleRequest

	err := uc.Repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.GetAppointment(ctx, appointmentID)
		if err != nil {
			return notFound(err, "appointment_not_found")
		}
		if err := mustBeOwner(ap, userID); err != nil {
			return err
		}

		pending, err := tx.ListRescheduleRequests(ctx, domain.RequestPending)
		if err != nil {
			return err
		}
		for _, r := range pending {
			if r.AppointmentID == ap.ID {
				return httperr.ErrBusiness("reschedule_already_pending")
			}
		}

		// a broken schedule must not block the request; the admin
		// re-checks the window when resolving it
		wh, err := loadHours(ctx, tx)
		if err != nil && !errors.Is(err, domain.ErrInvalidConfiguration) {
			return err
		}

		req, err := domain.RequestReschedule(*ap, p, wh, now)
		if err != nil {
			return err
		}

		if err := tx.CreateRescheduleRequest(ctx, &req); err != nil {
			return err
		}

		created = req
		return nil
	})
	if err != nil {
		return nil, storeFailure("request reschedule", err)
	}

	uc.dispatch(event(userID, "reschedule_requested", "reschedule_request", created.ID, map[string]string{
		"appointment_id": created.AppointmentID,
		"date":           created.RequestedDate,
		"start":          created.RequestedStartTime,
		"end":            created.RequestedEndTime,
	}))
	uc.publish(ctx, notify.TopicRescheduleRequests, "created", created.ID, userID)

	return &created, nil
}
