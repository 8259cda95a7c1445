package models

import "time"

// WorkingHours is the single admin-configured schedule every slot
// computation reads.
type WorkingHours struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StartTime           string `gorm:"size:5;not null" json:"start_time"`
	EndTime             string `gorm:"size:5;not null" json:"end_time"`
	BreakStartTime      string `gorm:"size:5" json:"break_start_time"`
	BreakEndTime        string `gorm:"size:5" json:"break_end_time"`
	SlotDurationMinutes int    `gorm:"not null;default:60" json:"slot_duration"`

	LastCleanup *time.Time `json:"last_cleanup,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
