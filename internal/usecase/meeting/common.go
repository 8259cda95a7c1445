package meeting

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointease/internal/audit"
	"github.com/BruksfildServices01/appointease/internal/domain/appointment"
	domain "github.com/BruksfildServices01/appointease/internal/domain/meeting"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/notify"
)

type auditDispatcher interface {
	Dispatch(ev audit.Event)
}

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

func (d Deps) record(ctx context.Context, adminID, action, meetingID string) {
	if d.Audit != nil {
		d.Audit.Dispatch(audit.Event{
			UserID:   audit.Str(adminID),
			Action:   "meeting_" + action,
			Entity:   "meeting",
			EntityID: audit.Str(meetingID),
		})
	}
	if d.Events != nil {
		d.Events.Publish(ctx, notify.Change{
			Topic:  notify.TopicMeetings,
			Action: action,
			ID:     meetingID,
			At:     d.now().UTC(),
		})
	}
}

// participants dedupes ids and rejects any that is not a known user.
func (d Deps) participants(ctx context.Context, ids []string) ([]string, error) {
	ids = domain.UniqueIDs(ids)
	if len(ids) == 0 {
		return ids, nil
	}

	n, err := d.Repo.CountUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	if int(n) != len(ids) {
		verr := &appointment.ValidationError{}
		verr.Add("participant_ids", "contains unknown users")
		return nil, verr
	}
	return ids, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("meeting_not_found")
	}
	return err
}
