package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Meeting struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Date      string `gorm:"size:10;index;not null" json:"meeting_date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	CreatedByUserID *string `gorm:"type:varchar(36)" json:"created_by_user_id"`
	CreatedBy       *User   `gorm:"foreignKey:CreatedByUserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"created_by,omitempty"`

	Mode     string `gorm:"size:20" json:"meeting_mode,omitempty"`
	URL      string `gorm:"size:500" json:"meeting_url,omitempty"`
	Password string `gorm:"size:100" json:"meeting_password,omitempty"`

	Participants []User `gorm:"many2many:meeting_participants;" json:"participants"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
