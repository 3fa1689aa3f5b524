package services

import (
	"time"

	"github.com/escuelamanejo/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const enrollmentValidityDays = 30

type CreateEnrollmentInput struct {
	StudentID       uuid.UUID
	FinancingMode   string
	PackageID       *uuid.UUID
	HoursContracted int
	HourlyRate      float64
}

// CreateEnrollment opens a new contracted block of classes for a student.
// A student may hold at most one enrollment whose classes are pending or in
// progress; the check and the insert run in one transaction.
func CreateEnrollment(db *gorm.DB, in CreateEnrollmentInput) (*models.Enrollment, error) {
	var enrollment models.Enrollment

	err := db.Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.First(&student, "id = ?", in.StudentID).Error; err != nil {
			return err
		}
		if !student.IsActive {
			return ErrStudentInactive
		}

		var active int64
		if err := tx.Model(&models.Enrollment{}).
			Where("student_id = ? AND class_status IN ?", student.ID,
				[]string{models.ClassesPending, models.ClassesInProgress}).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrEnrollmentActive
		}

		now := nowFunc()
		enrollment = models.Enrollment{
			StudentID:     student.ID,
			FinancingMode: in.FinancingMode,
			PaymentStatus: models.PaymentPending,
			ClassStatus:   models.ClassesPending,
			EnrolledAt:    now,
			Deadline:      now.AddDate(0, 0, enrollmentValidityDays),
		}

		switch in.FinancingMode {
		case models.FinancingPackage:
			if in.PackageID == nil {
				return ErrPackageRequired
			}
			var pkg models.Package
			if err := tx.First(&pkg, "id = ? AND is_active = ?", *in.PackageID, true).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return ErrPackageRequired
				}
				return err
			}
			enrollment.PackageID = &pkg.ID
			enrollment.TotalCost = pkg.TotalCost
		case models.FinancingPerHour:
			if in.HoursContracted <= 0 || in.HourlyRate <= 0 {
				return ErrInvalidHourlyTerms
			}
			enrollment.HoursContracted = in.HoursContracted
			enrollment.HourlyRate = in.HourlyRate
			enrollment.TotalCost = float64(in.HoursContracted) * in.HourlyRate
		default:
			return ErrInvalidHourlyTerms
		}

		return tx.Create(&enrollment).Error
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Student").Preload("Package").First(&enrollment, "id = ?", enrollment.ID).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// AccountState is the read model behind GET /enrollments/{id}/account-state.
// Derived fields live here instead of being bolted onto the entity at
// serialization time.
type AccountState struct {
	EnrollmentID   uuid.UUID  `json:"enrollment_id"`
	TotalCost      float64    `json:"total_cost"`
	TotalPaid      float64    `json:"total_paid"`
	PendingBalance float64    `json:"pending_balance"`
	PaymentStatus  string     `json:"payment_status"`
	ClassStatus    string     `json:"class_status"`
	TotalHours     int        `json:"total_hours"`
	HoursCompleted int        `json:"hours_completed"`
	HoursReserved  int        `json:"hours_reserved"`
	Deadline       time.Time  `json:"deadline"`
	LastChange     *time.Time `json:"last_reservation_change"`
}

func GetAccountState(db *gorm.DB, enrollmentID uuid.UUID) (*AccountState, error) {
	var enrollment models.Enrollment
	if err := db.Preload("Package").First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
		return nil, err
	}

	var paid float64
	if err := db.Model(&models.Payment{}).
		Where("enrollment_id = ?", enrollment.ID).
		Select("COALESCE(SUM(amount), 0)").Scan(&paid).Error; err != nil {
		return nil, err
	}

	reserved, err := countPendingReservations(db, enrollment.ID)
	if err != nil {
		return nil, err
	}

	return &AccountState{
		EnrollmentID:   enrollment.ID,
		TotalCost:      enrollment.TotalCost,
		TotalPaid:      paid,
		PendingBalance: enrollment.TotalCost - paid,
		PaymentStatus:  enrollment.PaymentStatus,
		ClassStatus:    enrollment.ClassStatus,
		TotalHours:     enrollment.TotalHours(),
		HoursCompleted: enrollment.HoursCompleted,
		HoursReserved:  int(reserved),
		Deadline:       enrollment.Deadline,
		LastChange:     enrollment.LastReservationChange,
	}, nil
}

// countPendingReservations counts live reservations that have not been
// converted into an attendance yet; those still hold budget hours.
func countPendingReservations(db *gorm.DB, enrollmentID uuid.UUID) (int64, error) {
	var n int64
	err := db.Model(&models.Reservation{}).
		Joins("LEFT JOIN attendances ON attendances.reservation_id = reservations.id").
		Where("reservations.enrollment_id = ? AND attendances.id IS NULL", enrollmentID).
		Count(&n).Error
	return n, err
}
