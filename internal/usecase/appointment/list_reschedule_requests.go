package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/models"
)

type ListRescheduleRequests struct {
	Deps
}

func NewListRescheduleRequests(deps Deps) *ListRescheduleRequests {
	return &ListRescheduleRequests{Deps: deps}
}

func (uc *ListRescheduleRequests) Execute(
	ctx context.Context,
	status domain.RequestStatus,
) ([]models.RescheduleRequest, error) {

	if status != "" && !status.Valid() {
		verr := &domain.ValidationError{}
		verr.Add("status", "must be pending, approved or rejected")
		return nil, verr
	}
	return uc.Repo.ListRescheduleRequests(ctx, status)
}
