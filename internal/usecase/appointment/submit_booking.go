package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/models"
	"github.com/BruksfildServices01/appointease/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type SubmitBookingInput struct {
	UserID      string
	Title       string
	Description string
	Date        string
	StartTime   string
	Mode        string
	URL         string
	Password    string
}

func (in SubmitBookingInput) candidate() domain.BookingCandidate {
	return domain.BookingCandidate{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		StartTime:   in.StartTime,
		Mode: domain.ModeDetails{
			Mode:     domain.Mode(in.Mode),
			URL:      in.URL,
			Password: in.Password,
		},
	}
}

// ======================================================
// USE CASE
// ======================================================

type SubmitBooking struct {
	Deps
}

func NewSubmitBooking(deps Deps) *SubmitBooking {
	return &SubmitBooking{Deps: deps}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SubmitBooking) Execute(
	ctx context.Context,
	in SubmitBookingInput,
) (*models.Appointment, error) {

	c := in.candidate()

	// --------------------------------------------------
	// 1. Field checks before touching the store
	// --------------------------------------------------
	if err := c.Validate(); err != nil {
		return nil, err
	}

	now := uc.now()
	if start, err := domain.At(c.Date, c.StartTime, now.Location()); err == nil && !start.After(now) {
		verr := &domain.ValidationError{}
		verr.Add("start_time", "must be in the future")
		return nil, verr
	}

	// --------------------------------------------------
	// 2. Re-check the slot against fresh data and write,
	//    with the schedule locked
	// --------------------------------------------------
	var created models.Appointment

	err := uc.Repo.Transaction(ctx, func(tx domain.Repository) error {
		wh, err := loadHours(ctx, tx)
		if err != nil {
			return err
		}

		current, err := tx.ListAppointmentsForDate(ctx, c.Date)
		if err != nil {
			return err
		}

		ap, err := domain.SubmitBooking(c, wh, current)
		if err != nil {
			return err
		}

		if err := tx.CreateAppointment(ctx, &ap); err != nil {
			return err
		}

		created = ap
		return nil
	})

	if err != nil {
		err = storeFailure("submit booking", err)
		if errors.Is(err, domain.ErrSlotTaken) {
			uc.dispatch(event(in.UserID, "appointment_conflict", "appointment", "", map[string]string{
				"date":  in.Date,
				"start": in.StartTime,
			}))
		}
		return nil, err
	}

	// --------------------------------------------------
	// 3. Audit + notify
	// --------------------------------------------------
	uc.dispatch(event(in.UserID, "appointment_created", "appointment", created.ID, nil))
	uc.publish(ctx, notify.TopicAppointments, "created", created.ID, created.UserID)

	return &created, nil
}
