package message

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/appointease/internal/models"
)

// AdminInbox is the receiver of every message a user sends. Any admin can
// read and answer it.
const AdminInbox = "admin"

type Repository interface {
	Create(ctx context.Context, m *models.Message) error

	// ListWith returns every message sent by or to userID, oldest first.
	ListWith(ctx context.Context, userID string) ([]models.Message, error)

	// ListAll returns every message, oldest first.
	ListAll(ctx context.Context) ([]models.Message, error)

	// MarkSeen flags unseen messages to receiver as seen, limited to
	// sender when it is non-empty.
	MarkSeen(ctx context.Context, senderID, receiverID string) (int64, error)
}

// Counterpart is the non-admin side of a message.
func Counterpart(m models.Message) string {
	if m.ReceiverID == AdminInbox {
		return m.SenderID
	}
	return m.ReceiverID
}

type Conversation struct {
	UserID        string         `json:"user_id"`
	User          *models.User   `json:"user,omitempty"`
	LastMessage   models.Message `json:"last_message"`
	Unseen        int            `json:"unseen"`
	LastMessageAt time.Time      `json:"last_message_at"`
}

// GroupByUser folds the admin inbox into one conversation per user, most
// recent first. Unseen counts messages waiting for an admin.
func GroupByUser(msgs []models.Message) []Conversation {
	byUser := map[string]*Conversation{}

	for _, m := range msgs {
		uid := Counterpart(m)
		conv, ok := byUser[uid]
		if !ok {
			conv = &Conversation{UserID: uid}
			byUser[uid] = conv
		}
		if !m.CreatedAt.Before(conv.LastMessageAt) {
			conv.LastMessage = m
			conv.LastMessageAt = m.CreatedAt
		}
		if m.ReceiverID == AdminInbox && !m.Seen {
			conv.Unseen++
		}
	}

	out := make([]Conversation, 0, len(byUser))
	for _, c := range byUser {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastMessageAt.Equal(out[j].LastMessageAt) {
			return out[i].UserID < out[j].UserID
		}
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out
}
