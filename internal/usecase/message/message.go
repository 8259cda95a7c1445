package message

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointease/internal/domain/appointment"
	domain "github.com/BruksfildServices01/appointease/internal/domain/message"
	"github.com/BruksfildServices01/appointease/internal/domain/user"
	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/models"
	"github.com/BruksfildServices01/appointease/internal/notify"
)

const maxContentLength = 2000

type Deps struct {
	Repo   domain.Repository
	Users  user.Repository
	Events notify.Publisher
	Now    func() time.Time
}

func (d Deps) publish(ctx context.Context, action, id, audience string) {
	if d.Events == nil {
		return
	}
	at := time.Now()
	if d.Now != nil {
		at = d.Now()
	}
	d.Events.Publish(ctx, notify.Change{
		Topic:    notify.TopicMessages,
		Action:   action,
		ID:       id,
		At:       at.UTC(),
		Audience: audience,
	})
}

func validContent(content string) (string, error) {
	content = strings.TrimSpace(content)

	verr := &appointment.ValidationError{}
	switch {
	case content == "":
		verr.Add("content", "is required")
	case utf8.RuneCountInString(content) > maxContentLength:
		verr.Add("content", fmt.Sprintf("must be at most %d characters", maxContentLength))
	}
	return content, verr.Err()
}

// ======================================================
// SEND
// ======================================================

type SendMessage struct {
	Deps
}

func NewSendMessage(deps Deps) *SendMessage {
	return &SendMessage{Deps: deps}
}

// FromUser drops a message into the shared admin inbox.
func (uc *SendMessage) FromUser(ctx context.Context, userID, content string) (*models.Message, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}

	m := models.Message{SenderID: userID, ReceiverID: domain.AdminInbox, Content: content}
	if err := uc.Repo.Create(ctx, &m); err != nil {
		return nil, fmt.Errorf("send message: operation did not commit: %w", err)
	}

	uc.publish(ctx, "created", m.ID, userID)
	return &m, nil
}

// FromAdmin answers userID.
func (uc *SendMessage) FromAdmin(ctx context.Context, adminID, userID, content string) (*models.Message, error) {
	content, err := validContent(content)
	if err != nil {
		return nil, err
	}

	if _, err := uc.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}

	m := models.Message{SenderID: adminID, ReceiverID: userID, Content: content}
	if err := uc.Repo.Create(ctx, &m); err != nil {
		return nil, fmt.Errorf("send message: operation did not commit: %w", err)
	}

	uc.publish(ctx, "created", m.ID, userID)
	return &m, nil
}

// ======================================================
// READ
// ======================================================

type ListMessages struct {
	Deps
}

func NewListMessages(deps Deps) *ListMessages {
	return &ListMessages{Deps: deps}
}

// Thread is userID's conversation with the admins, oldest first.
func (uc *ListMessages) Thread(ctx context.Context, userID string) ([]models.Message, error) {
	return uc.Repo.ListWith(ctx, userID)
}

// Conversations groups the admin inbox by user.
func (uc *ListMessages) Conversations(ctx context.Context) ([]domain.Conversation, error) {
	msgs, err := uc.Repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	users, err := uc.Users.List(ctx, "")
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	convs := domain.GroupByUser(msgs)
	for i := range convs {
		if u, ok := byID[convs[i].UserID]; ok {
			convs[i].User = &u
		}
	}
	return convs, nil
}

// ======================================================
// SEEN
// ======================================================

type MarkSeen struct {
	Deps
}

func NewMarkSeen(deps Deps) *MarkSeen {
	return &MarkSeen{Deps: deps}
}

// ByUser flags every admin reply to userID as seen.
func (uc *MarkSeen) ByUser(ctx context.Context, userID string) (int64, error) {
	n, err := uc.Repo.MarkSeen(ctx, "", userID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.publish(ctx, "seen", "", userID)
	}
	return n, nil
}

// ByAdmin flags userID's messages in the admin inbox as seen.
func (uc *MarkSeen) ByAdmin(ctx context.Context, userID string) (int64, error) {
	n, err := uc.Repo.MarkSeen(ctx, userID, domain.AdminInbox)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.publish(ctx, "seen", "", userID)
	}
	return n, nil
}
