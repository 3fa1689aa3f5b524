package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeSlot is a fixed calendar block bookable for one practice session.
// ReservedCount always equals the number of live reservations referencing
// the slot and never exceeds MaxCapacity.
type TimeSlot struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date          time.Time `gorm:"not null;index:idx_slot_schedule,unique" json:"date"`
	StartTime     time.Time `gorm:"not null;index:idx_slot_schedule,unique" json:"start_time"`
	EndTime       time.Time `gorm:"not null;index:idx_slot_schedule,unique" json:"end_time"`
	MaxCapacity   int       `gorm:"not null;default:5" json:"max_capacity"`
	ReservedCount int       `gorm:"not null;default:0" json:"reserved_count"`

	CreatedAt time.Time `json:"created_at"`
}

func (t *TimeSlot) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
