package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FinancingPackage = "package"
	FinancingPerHour = "per_hour"

	PaymentPending  = "pending"
	PaymentComplete = "complete"

	ClassesPending    = "pending"
	ClassesInProgress = "in_progress"
	ClassesCompleted  = "completed"
)

// Enrollment is a student's contracted block of driving instruction, financed
// either through a fixed Package or as contracted hours at an hourly rate.
// HoursCompleted only moves forward, and only through attendance recording.
type Enrollment struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	StudentID       uuid.UUID  `gorm:"type:uuid;not null" json:"student_id"`
	PackageID       *uuid.UUID `gorm:"type:uuid" json:"package_id"`
	FinancingMode   string     `gorm:"size:20;not null" json:"financing_mode"`
	HoursContracted int        `json:"hours_contracted"`
	HourlyRate      float64    `gorm:"type:numeric(10,2)" json:"hourly_rate"`
	TotalCost       float64    `gorm:"type:numeric(10,2);not null" json:"total_cost"`

	HoursCompleted int    `gorm:"not null;default:0" json:"hours_completed"`
	PaymentStatus  string `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	ClassStatus    string `gorm:"size:20;not null;default:'pending'" json:"class_status"`

	EnrolledAt            time.Time  `gorm:"not null" json:"enrolled_at"`
	Deadline              time.Time  `gorm:"not null" json:"deadline"`
	LastReservationChange *time.Time `json:"last_reservation_change"`

	Student Student  `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Package *Package `gorm:"foreignkey:PackageID" json:"package,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TotalHours requires Package to be preloaded for package-financed
// enrollments.
func (e *Enrollment) TotalHours() int {
	if e.FinancingMode == FinancingPackage && e.Package != nil {
		return e.Package.TotalHours
	}
	return e.HoursContracted
}
