package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	SenderID   string `gorm:"type:varchar(36);index;not null" json:"sender_id"`
	ReceiverID string `gorm:"type:varchar(36);index;not null" json:"receiver_id"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Seen       bool   `gorm:"default:false" json:"seen"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
