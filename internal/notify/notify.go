package notify

import (
	"context"
	"time"
)

const (
	TopicAppointments       = "appointments"
	TopicRescheduleRequests = "reschedule_requests"
	TopicMeetings           = "meetings"
	TopicSettings           = "settings"
	TopicMessages           = "messages"
	TopicUsers              = "users"
)

// Change tells clients that something they may be showing is stale. It
// carries no payload; receivers reload.
type Change struct {
	Topic  string    `json:"topic"`
	Action string    `json:"action"`
	ID     string    `json:"id,omitempty"`
	At     time.Time `json:"at"`

	// Audience restricts delivery to one user plus admins. Empty means
	// everyone.
	Audience string `json:"audience,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, c Change)
}

// Bus is a Publisher whose changes can be consumed again.
type Bus interface {
	Publisher
	Subscribe(ctx context.Context) <-chan Change
	Close() error
}

// Discard drops every change.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(context.Context, Change) {}
