package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment rows are append-only: they are created and queried, never updated
// or deleted. Total paid for an enrollment is the sum of its payments.
type Payment struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EnrollmentID uuid.UUID `gorm:"type:uuid;not null" json:"enrollment_id"`
	Amount       float64   `gorm:"type:numeric(10,2);not null" json:"amount"`

	Enrollment Enrollment `gorm:"foreignkey:EnrollmentID" json:"enrollment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
