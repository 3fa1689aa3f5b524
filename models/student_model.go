package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category values follow the licensing tiers: "A-I" students may book
// same-day, "A-II" students must book one day in advance.
type Student struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	DNI       string    `gorm:"size:20;not null;unique" json:"dni"`
	Phone     string    `gorm:"size:20;not null" json:"phone"`
	Email     string    `gorm:"size:100" json:"email"`
	Category  string    `gorm:"size:10;not null" json:"category"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
