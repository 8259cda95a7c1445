package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/audit"
	"github.com/BruksfildServices01/appointease/internal/models"
	"github.com/BruksfildServices01/appointease/internal/notify"
)

type auditDispatcher interface {
	Dispatch(ev audit.Event)
}

type WorkingHoursInput struct {
	StartTime           string
	EndTime             string
	BreakStartTime      string
	BreakEndTime        string
	SlotDurationMinutes int
}

// ======================================================
// GET
// ======================================================

type GetWorkingHours struct {
	Repo domain.Repository
}

func NewGetWorkingHours(repo domain.Repository) *GetWorkingHours {
	return &GetWorkingHours{Repo: repo}
}

// Execute returns the schedule, creating it with defaults on first use.
func (uc *GetWorkingHours) Execute(ctx context.Context) (*models.WorkingHours, error) {
	return uc.Repo.GetWorkingHours(ctx)
}

// ======================================================
// UPDATE
// ======================================================

type UpdateWorkingHours struct {
	Repo   domain.Repository
	Audit  auditDispatcher
	Events notify.Publisher
	Now    func() time.Time
}

func NewUpdateWorkingHours(
	repo domain.Repository,
	dispatcher auditDispatcher,
	events notify.Publisher,
) *UpdateWorkingHours {
	return &UpdateWorkingHours{Repo: repo, Audit: dispatcher, Events: events, Now: time.Now}
}

func (in WorkingHoursInput) validate() (models.WorkingHours, error) {
	verr := &domain.ValidationError{}

	clock := func(field, v string, optional bool) string {
		v = strings.TrimSpace(v)
		if v == "" && optional {
			return ""
		}
		c, err := domain.ParseClock(v)
		if err != nil {
			verr.Add(field, "must be HH:MM")
			return ""
		}
		return c.String()
	}

	row := models.WorkingHours{
		StartTime:           clock("start_time", in.StartTime, false),
		EndTime:             clock("end_time", in.EndTime, false),
		BreakStartTime:      clock("break_start_time", in.BreakStartTime, true),
		BreakEndTime:        clock("break_end_time", in.BreakEndTime, true),
		SlotDurationMinutes: in.SlotDurationMinutes,
	}

	if (row.BreakStartTime == "") != (row.BreakEndTime == "") && !verr.HasErrors() {
		verr.Add("break_end_time", "break start and end must be set together")
	}
	if err := verr.Err(); err != nil {
		return row, err
	}

	wh, err := domain.ParseWorkingHours(&row)
	if err != nil {
		return row, err
	}
	return row, wh.Validate()
}

func (uc *UpdateWorkingHours) Execute(
	ctx context.Context,
	adminID string,
	in WorkingHoursInput,
) (*models.WorkingHours, error) {

	next, err := in.validate()
	if err != nil {
		return nil, err
	}

	var saved models.WorkingHours

	err = uc.Repo.Transaction(ctx, func(tx domain.Repository) error {
		current, err := tx.GetWorkingHours(ctx)
		if err != nil {
			return err
		}

		current.StartTime = next.StartTime
		current.EndTime = next.EndTime
		current.BreakStartTime = next.BreakStartTime
		current.BreakEndTime = next.BreakEndTime
		current.SlotDurationMinutes = next.SlotDurationMinutes

		if err := tx.SaveWorkingHours(ctx, current); err != nil {
			return err
		}
		saved = *current
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update working hours: operation did not commit: %w", err)
	}

	if uc.Audit != nil {
		uc.Audit.Dispatch(audit.Event{
			UserID:   audit.Str(adminID),
			Action:   "working_hours_updated",
			Entity:   "working_hours",
			Metadata: next,
		})
	}
	if uc.Events != nil {
		uc.Events.Publish(ctx, notify.Change{
			Topic:  notify.TopicSettings,
			Action: "updated",
			At:     uc.Now().UTC(),
		})
	}

	return &saved, nil
}
