package appointment

import (
	"context"
	"errors"
	"strings"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
)

type GetAvailability struct {
	Deps
}

func NewGetAvailability(deps Deps) *GetAvailability {
	return &GetAvailability{Deps: deps}
}

// Execute computes the free slots for date from a fresh read of the store.
// Slots that already started are dropped. Unusable working hours give an
// empty list.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
) ([]domain.TimeSlot, error) {

	date = strings.TrimSpace(date)
	if _, err := domain.ParseDate(date); err != nil {
		verr := &domain.ValidationError{}
		verr.Add("date", "must be YYYY-MM-DD")
		return nil, verr
	}

	wh, err := loadHours(ctx, uc.Repo)
	if errors.Is(err, domain.ErrInvalidConfiguration) {
		return []domain.TimeSlot{}, nil
	}
	if err != nil {
		return nil, err
	}

	current, err := uc.Repo.ListAppointmentsForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	slots := domain.ComputeAvailableSlots(date, wh, current)

	out := make([]domain.TimeSlot, 0, len(slots))
	for _, s := range slots {
		start, err := domain.At(date, s.Start, now.Location())
		if err != nil || !start.After(now) {
			continue
		}
		out = append(out, s)
	}

	return out, nil
}
