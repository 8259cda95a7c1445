package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/models"
	"github.com/BruksfildServices01/appointease/internal/notify"
)

// Deps are shared by every appointment use case.
type Deps struct {
	Repo   domain.Repository
	Audit  auditDispatcher
	Events notify.Publisher
	Now    func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) publish(ctx context.Context, topic, action, id, audience string) {
	if d.Events == nil {
		return
	}
	d.Events.Publish(ctx, notify.Change{
		Topic:    topic,
		Action:   action,
		ID:       id,
		At:       d.now().UTC(),
		Audience: audience,
	})
}

// notFound turns a missing row into a business error.
func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

// storeFailure passes lifecycle and business errors through and marks
// everything else as not committed. A unique or exclusion violation from
// the database means another booking won the race.
func storeFailure(op string, err error) error {
	var verr *domain.ValidationError
	var be httperr.BusinessError

	switch {
	case errors.As(err, &verr), errors.As(err, &be),
		errors.Is(err, domain.ErrSlotTaken),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInvalidConfiguration):
		return err
	case httperr.IsExclusionConflict(err):
		return domain.ErrSlotTaken
	}
	return fmt.Errorf("%s: operation did not commit: %w", op, err)
}

// loadHours reads and parses the schedule. Unusable rows are
// ErrInvalidConfiguration.
func loadHours(ctx context.Context, repo domain.Repository) (domain.WorkingHours, error) {
	row, err := repo.GetWorkingHours(ctx)
	if err != nil {
		return domain.WorkingHours{}, fmt.Errorf("load working hours: %w", err)
	}
	return domain.ParseWorkingHours(row)
}

func mustBeOwner(ap *models.Appointment, userID string) error {
	if ap.UserID != userID {
		return httperr.ErrBusiness("appointment_not_found")
	}
	return nil
}
