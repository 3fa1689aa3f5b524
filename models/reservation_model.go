package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation claims one TimeSlot against an Enrollment's remaining hour
// budget. It exists only for hours not yet attended.
type Reservation struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TimeSlotID   uuid.UUID `gorm:"type:uuid;not null" json:"time_slot_id"`
	EnrollmentID uuid.UUID `gorm:"type:uuid;not null" json:"enrollment_id"`

	TimeSlot   TimeSlot   `gorm:"foreignkey:TimeSlotID" json:"time_slot,omitempty"`
	Enrollment Enrollment `gorm:"foreignkey:EnrollmentID" json:"enrollment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
