package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance is immutable once created: one row per reservation, inserted
// exactly once, never updated.
type Attendance struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReservationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"reservation_id"`
	Attended      bool      `gorm:"not null" json:"attended"`
	RecordedAt    time.Time `gorm:"not null" json:"recorded_at"`

	Reservation Reservation `gorm:"foreignkey:ReservationID" json:"reservation,omitempty"`
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
