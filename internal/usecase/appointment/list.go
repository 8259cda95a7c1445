package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/models"
	"github.com/BruksfildServices01/appointease/internal/notify"
)

type ListAppointments struct {
	Deps
}

func NewListAppointments(deps Deps) *ListAppointments {
	return &ListAppointments{Deps: deps}
}

// Execute loads appointments, completes the elapsed approved ones (persisting
// the promotion) and then applies the status filter, so a stale approved
// appointment is reported as completed.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	if filter.Status != "" && !filter.Status.Valid() {
		verr := &domain.ValidationError{}
		verr.Add("status", "must be pending, approved, rejected or completed")
		return nil, verr
	}

	status := filter.Status
	filter.Status = ""

	aps, err := uc.Repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if ids := domain.Elapsed(aps, now); len(ids) > 0 {
		if err := uc.Repo.MarkCompleted(ctx, ids, now.UTC()); err != nil {
			return nil, storeFailure("promote elapsed", err)
		}
		uc.publish(ctx, notify.TopicAppointments, "completed", "", "")
	}
	aps = domain.PromoteElapsed(aps, now)

	if status != "" {
		aps = domain.ListByStatus(aps, status)
	}
	return aps, nil
}
