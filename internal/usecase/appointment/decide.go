package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/models"
	"github.com/BruksfildServices01/appointease/internal/notify"
)

type DecideAppointment struct {
	Deps
}

func NewDecideAppointment(deps Deps) *DecideAppointment {
	return &DecideAppointment{Deps: deps}
}

// Execute approves or rejects a pending appointment on behalf of adminID.
func (uc *DecideAppointment) Execute(
	ctx context.Context,
	adminID string,
	appointmentID string,
	decision domain.Decision,
) (*models.Appointment, error) {

	var decided models.Appointment

	err := uc.Repo.Transaction(ctx, func(tx domain.Repository) error {
		ap, err := tx.GetAppointment(ctx, appointmentID)
		if err != nil {
			return notFound(err, "appointment_not_found")
		}

		if err := domain.Decide(ap, decision); err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		decided = *ap
		return nil
	})
	if err != nil {
		return nil, storeFailure("decide appointment", err)
	}

	action := "appointment_" + decided.Status
	uc.dispatch(event(adminID, action, "appointment", decided.ID, map[string]string{
		"decision": string(decision),
	}))
	uc.publish(ctx, notify.TopicAppointments, decided.Status, decided.ID, decided.UserID)

	return &decided, nil
}
