package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vehicle struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	VehicleTypeID uuid.UUID `gorm:"type:uuid;not null" json:"vehicle_type_id"`
	Plate         string    `gorm:"size:10;not null;unique" json:"plate"`
	Brand         string    `gorm:"size:50" json:"brand"`
	Model         string    `gorm:"size:50" json:"model"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`

	VehicleType VehicleType `gorm:"foreignkey:VehicleTypeID" json:"vehicle_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
