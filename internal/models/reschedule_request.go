package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RescheduleRequest struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	AppointmentID string       `gorm:"type:varchar(36);index;not null" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointment,omitempty"`

	RequestedByUserID string `gorm:"type:varchar(36);index;not null" json:"requested_by_user_id"`
	RequestedBy       *User  `gorm:"foreignKey:RequestedByUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"requested_by,omitempty"`

	RequestedDate      string `gorm:"size:10;not null" json:"requested_date"`
	RequestedStartTime string `gorm:"size:5;not null" json:"requested_start_time"`
	RequestedEndTime   string `gorm:"size:5;not null" json:"requested_end_time"`
	Reason             string `gorm:"type:text" json:"reason,omitempty"`

	Status string `gorm:"size:20;index;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *RescheduleRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
