package meeting

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/appointease/internal/domain/meeting"
	"github.com/BruksfildServices01/appointease/internal/models"
)

// ======================================================
// CREATE
// ======================================================

type CreateMeeting struct {
	Deps
}

func NewCreateMeeting(deps Deps) *CreateMeeting {
	return &CreateMeeting{Deps: deps}
}

func (uc *CreateMeeting) Execute(
	ctx context.Context,
	adminID string,
	draft domain.Draft,
) (*domain.View, error) {

	var m models.Meeting
	if err := draft.Apply(&m); err != nil {
		return nil, err
	}

	ids, err := uc.participants(ctx, draft.ParticipantIDs)
	if err != nil {
		return nil, err
	}

	if adminID != "" {
		m.CreatedByUserID = &adminID
	}

	if err := uc.Repo.Create(ctx, &m, ids); err != nil {
		return nil, fmt.Errorf("create meeting: operation did not commit: %w", err)
	}

	uc.record(ctx, adminID, "created", m.ID)
	return uc.view(ctx, m.ID)
}

// ======================================================
// UPDATE
// ======================================================

type UpdateMeeting struct {
	Deps
}

func NewUpdateMeeting(deps Deps) *UpdateMeeting {
	return &UpdateMeeting{Deps: deps}
}

// Execute replaces the meeting's fields and participant set.
func (uc *UpdateMeeting) Execute(
	ctx context.Context,
	adminID string,
	meetingID string,
	draft domain.Draft,
) (*domain.View, error) {

	m, err := uc.Repo.Get(ctx, meetingID)
	if err != nil {
		return nil, notFound(err)
	}

	if err := draft.Apply(m); err != nil {
		return nil, err
	}

	ids, err := uc.participants(ctx, draft.ParticipantIDs)
	if err != nil {
		return nil, err
	}

	if err := uc.Repo.Update(ctx, m, ids); err != nil {
		return nil, fmt.Errorf("update meeting: operation did not commit: %w", err)
	}

	uc.record(ctx, adminID, "updated", m.ID)
	return uc.view(ctx, m.ID)
}

// ======================================================
// DELETE
// ======================================================

type DeleteMeeting struct {
	Deps
}

func NewDeleteMeeting(deps Deps) *DeleteMeeting {
	return &DeleteMeeting{Deps: deps}
}

func (uc *DeleteMeeting) Execute(ctx context.Context, adminID, meetingID string) error {
	if err := uc.Repo.Delete(ctx, meetingID); err != nil {
		return notFound(err)
	}
	uc.record(ctx, adminID, "deleted", meetingID)
	return nil
}

// ======================================================
// LIST
// ======================================================

type ListMeetings struct {
	Deps
}

func NewListMeetings(deps Deps) *ListMeetings {
	return &ListMeetings{Deps: deps}
}

// Execute lists every meeting, or the ones participantID attends, each with
// its derived status.
func (uc *ListMeetings) Execute(ctx context.Context, participantID string) ([]domain.View, error) {
	ms, err := uc.Repo.List(ctx, participantID)
	if err != nil {
		return nil, err
	}
	return domain.Annotate(ms, uc.now()), nil
}

func (d Deps) view(ctx context.Context, id string) (*domain.View, error) {
	m, err := d.Repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	v := domain.View{Meeting: *m, Status: domain.StatusAt(*m, d.now())}
	return &v, nil
}
