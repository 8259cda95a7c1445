package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/notify"
)

type SweepElapsed struct {
	Deps
}

func NewSweepElapsed(deps Deps) *SweepElapsed {
	return &SweepElapsed{Deps: deps}
}

// Execute completes every elapsed approved appointment and stamps the
// cleanup time. It returns how many were completed.
func (uc *SweepElapsed) Execute(ctx context.Context) (int, error) {
	aps, err := uc.Repo.ListAppointments(ctx, domain.ListFilter{Status: domain.StatusApproved})
	if err != nil {
		return 0, err
	}

	now := uc.now()
	ids := domain.Elapsed(aps, now)

	// make sure the settings row exists so the cleanup stamp lands
	if _, err := uc.Repo.GetWorkingHours(ctx); err != nil {
		return 0, err
	}

	if err := uc.Repo.MarkCompleted(ctx, ids, now.UTC()); err != nil {
		return 0, storeFailure("sweep elapsed", err)
	}

	if len(ids) > 0 {
		uc.dispatch(event("", "appointments_swept", "appointment", "", map[string]int{"completed": len(ids)}))
		uc.publish(ctx, notify.TopicAppointments, "completed", "", "")
	}
	return len(ids), nil
}
