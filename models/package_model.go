package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Package is immutable reference data: a named bundle of hours at a fixed
// price for one vehicle-transmission type.
type Package struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"size:50;not null" json:"name"`
	VehicleTypeID uuid.UUID `gorm:"type:uuid;not null" json:"vehicle_type_id"`
	TotalHours    int       `gorm:"not null" json:"total_hours"`
	TotalCost     float64   `gorm:"type:numeric(10,2);not null" json:"total_cost"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`

	VehicleType VehicleType `gorm:"foreignkey:VehicleTypeID" json:"vehicle_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *Package) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
