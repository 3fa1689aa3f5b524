package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserID links the instructor to an optional login account, so instructors
// can consult the classes they served.
type Instructor struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID        *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	FirstName     string     `gorm:"size:100;not null" json:"first_name"`
	LastName      string     `gorm:"size:100;not null" json:"last_name"`
	DNI           string     `gorm:"size:20;not null;unique" json:"dni"`
	Phone         string     `gorm:"size:20" json:"phone"`
	LicenseNumber string     `gorm:"size:30;not null" json:"license_number"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`

	User *User `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Instructor) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
