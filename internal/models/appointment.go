package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	UserID string `gorm:"type:varchar(36);index;not null" json:"user_id"`
	User   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Date is YYYY-MM-DD, StartTime/EndTime are HH:MM in the tenant timezone.
	Date      string `gorm:"size:10;index;not null" json:"appointment_date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	Status string `gorm:"size:20;index;default:'pending'" json:"status"`

	Mode     string `gorm:"size:20" json:"appointment_mode,omitempty"`
	URL      string `gorm:"size:500" json:"appointment_url,omitempty"`
	Password string `gorm:"size:100" json:"appointment_password,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
