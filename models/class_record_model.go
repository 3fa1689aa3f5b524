package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassRecord is the proof-of-service ticket issued for an attended class,
// pairing the sequential class number with the instructor and vehicle that
// served it. It exists 1:1 with an attended Attendance.
type ClassRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AttendanceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"attendance_id"`
	ClassNumber  int       `gorm:"not null" json:"class_number"`
	InstructorID uuid.UUID `gorm:"type:uuid;not null" json:"instructor_id"`
	VehicleID    uuid.UUID `gorm:"type:uuid;not null" json:"vehicle_id"`

	Attendance Attendance `gorm:"foreignkey:AttendanceID" json:"attendance,omitempty"`
	Instructor Instructor `gorm:"foreignkey:InstructorID" json:"instructor,omitempty"`
	Vehicle    Vehicle    `gorm:"foreignkey:VehicleID" json:"vehicle,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (c *ClassRecord) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
