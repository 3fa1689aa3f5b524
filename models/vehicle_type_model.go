package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleType struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"size:50;not null" json:"name"`
	Transmission string    `gorm:"size:20;not null" json:"transmission"`
}

func (v *VehicleType) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
