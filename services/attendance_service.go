package services

import (
	"time"

	"github.com/escuelamanejo/backend/models"
	"github.com/escuelamanejo/backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// attendanceGraceMinutes is how long after slot start an attendance may
// still be recorded.
const attendanceGraceMinutes = 15

// paymentGateClass is the class number from which full payment is required.
const paymentGateClass = 5

// paymentReminderHours is the completed-hour count that triggers the
// payment-reminder email when the balance is still open.
const paymentReminderHours = 3

type RecordAttendanceInput struct {
	ReservationID uuid.UUID
	Attended      bool
	InstructorID  *uuid.UUID
	VehicleID     *uuid.UUID
}

// AttendanceResult carries what the handler needs for the response and for
// the best-effort notifications dispatched after commit.
type AttendanceResult struct {
	Attendance   models.Attendance
	ClassRecord  *models.ClassRecord
	Enrollment   models.Enrollment
	PaymentDue   float64
	RemindPay    bool
	JustFinished bool
}

// RecordAttendance converts a reservation into its permanent attendance
// record and, for attended classes, issues the class ticket. A no-show still
// consumes one contracted hour. All checks and writes run in one
// transaction; any rule violation leaves the store untouched.
func RecordAttendance(db *gorm.DB, in RecordAttendanceInput) (*AttendanceResult, error) {
	var result AttendanceResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Preload("TimeSlot").
			Preload("Enrollment.Student").Preload("Enrollment.Package").
			First(&reservation, "id = ?", in.ReservationID).Error; err != nil {
			return err
		}
		enrollment := reservation.Enrollment
		slot := reservation.TimeSlot

		var existing int64
		if err := tx.Model(&models.Attendance{}).
			Where("reservation_id = ?", reservation.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateAttendance
		}

		now := nowFunc()
		if !utils.SameDay(now, slot.Date) || now.After(slot.StartTime.Add(attendanceGraceMinutes*time.Minute)) {
			return ErrOutsideToleranceWindow
		}

		if now.After(enrollment.Deadline) {
			return ErrEnrollmentExpired
		}

		if in.Attended {
			if in.InstructorID == nil || in.VehicleID == nil {
				return ErrResourceRequired
			}
			busy, err := resourceBusy(tx, "class_records.instructor_id", *in.InstructorID, slot)
			if err != nil {
				return err
			}
			if busy {
				return ErrInstructorConflict
			}
			busy, err = resourceBusy(tx, "class_records.vehicle_id", *in.VehicleID, slot)
			if err != nil {
				return err
			}
			if busy {
				return ErrVehicleConflict
			}
		}

		newClassNumber := enrollment.HoursCompleted + 1
		totalHours := enrollment.TotalHours()
		if newClassNumber > totalHours {
			return ErrHoursExceeded
		}
		if newClassNumber >= paymentGateClass && enrollment.PaymentStatus != models.PaymentComplete {
			return ErrPaymentRequired
		}

		attendance := models.Attendance{
			ReservationID: reservation.ID,
			Attended:      in.Attended,
			RecordedAt:    now,
		}
		if err := tx.Create(&attendance).Error; err != nil {
			return err
		}

		enrollment.HoursCompleted = newClassNumber

		if in.Attended {
			record := models.ClassRecord{
				AttendanceID: attendance.ID,
				ClassNumber:  newClassNumber,
				InstructorID: *in.InstructorID,
				VehicleID:    *in.VehicleID,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			result.ClassRecord = &record

			if enrollment.ClassStatus == models.ClassesPending {
				enrollment.ClassStatus = models.ClassesInProgress
			}
			if newClassNumber >= totalHours {
				enrollment.ClassStatus = models.ClassesCompleted
				result.JustFinished = true
			}
		}

		if err := tx.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).
			Updates(map[string]interface{}{
				"hours_completed": enrollment.HoursCompleted,
				"class_status":    enrollment.ClassStatus,
			}).Error; err != nil {
			return err
		}

		if newClassNumber == paymentReminderHours && enrollment.PaymentStatus == models.PaymentPending {
			var paid float64
			if err := tx.Model(&models.Payment{}).
				Where("enrollment_id = ?", enrollment.ID).
				Select("COALESCE(SUM(amount), 0)").Scan(&paid).Error; err != nil {
				return err
			}
			if balance := enrollment.TotalCost - paid; balance > 0 {
				result.RemindPay = true
				result.PaymentDue = balance
			}
		}

		result.Attendance = attendance
		result.Enrollment = enrollment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// resourceBusy reports whether the instructor or vehicle column already has
// a ticket on the slot's date whose time range overlaps the slot (half-open:
// existing.start < new.end AND existing.end > new.start).
func resourceBusy(tx *gorm.DB, column string, id uuid.UUID, slot models.TimeSlot) (bool, error) {
	var n int64
	err := tx.Model(&models.ClassRecord{}).
		Joins("JOIN attendances ON attendances.id = class_records.attendance_id").
		Joins("JOIN reservations ON reservations.id = attendances.reservation_id").
		Joins("JOIN time_slots ON time_slots.id = reservations.time_slot_id").
		Where(column+" = ?", id).
		Where("time_slots.date = ?", slot.Date).
		Where("time_slots.start_time < ? AND time_slots.end_time > ?", slot.EndTime, slot.StartTime).
		Count(&n).Error
	return n > 0, err
}

// ListClassRecords returns issued tickets with the student, instructor and
// vehicle that served each class. Passing an instructor ID narrows the view
// to that instructor's classes.
func ListClassRecords(db *gorm.DB, instructorID *uuid.UUID) ([]models.ClassRecord, error) {
	query := db.Preload("Instructor").Preload("Vehicle.VehicleType").
		Preload("Attendance.Reservation.TimeSlot").
		Preload("Attendance.Reservation.Enrollment.Student")
	if instructorID != nil {
		query = query.Where("instructor_id = ?", *instructorID)
	}
	var records []models.ClassRecord
	err := query.Order("created_at desc").Find(&records).Error
	return records, err
}

func ListAttendance(db *gorm.DB, enrollmentID *uuid.UUID) ([]models.Attendance, error) {
	query := db.Preload("Reservation.TimeSlot")
	if enrollmentID != nil {
		query = query.
			Joins("JOIN reservations ON reservations.id = attendances.reservation_id").
			Where("reservations.enrollment_id = ?", *enrollmentID)
	}
	var attendances []models.Attendance
	err := query.Order("attendances.recorded_at desc").Find(&attendances).Error
	return attendances, err
}
