package services

import (
	"fmt"
	"time"

	"github.com/escuelamanejo/backend/models"
	"github.com/escuelamanejo/backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const reservationCooldown = 24 * time.Hour

// BookReservations claims one slot per requested ID against the enrollment's
// remaining hour budget. All requested slots book together or none do.
//
// Capacity is enforced with a guarded counter update (reserved_count <
// max_capacity in the WHERE clause), so two concurrent bookings against a
// nearly-full slot cannot both succeed.
func BookReservations(db *gorm.DB, enrollmentID uuid.UUID, slotIDs []uuid.UUID, requesterUserID uuid.UUID, isAdmin bool) ([]models.Reservation, error) {
	slotIDs = dedupeIDs(slotIDs)

	var created []models.Reservation

	err := db.Transaction(func(tx *gorm.DB) error {
		var enrollment models.Enrollment
		if err := tx.Preload("Student").Preload("Package").First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
			return err
		}

		if !isAdmin && enrollment.Student.UserID != requesterUserID {
			return ErrNotOwner
		}

		now := nowFunc()
		if now.After(enrollment.Deadline) {
			return ErrEnrollmentExpired
		}
		if enrollment.ClassStatus == models.ClassesCompleted {
			return ErrEnrollmentCompleted
		}

		pending, err := countPendingReservations(tx, enrollment.ID)
		if err != nil {
			return err
		}
		remaining := enrollment.TotalHours() - enrollment.HoursCompleted - int(pending)
		if len(slotIDs) > remaining {
			return fmt.Errorf("%w: tiene %d hora(s) restante(s)", ErrInsufficientHours, remaining)
		}

		today := utils.DateOf(now)
		deadlineDate := utils.DateOf(enrollment.Deadline)

		for _, slotID := range slotIDs {
			var slot models.TimeSlot
			if err := tx.First(&slot, "id = ?", slotID).Error; err != nil {
				return err
			}

			if slot.Date.After(deadlineDate) {
				return fmt.Errorf("%w: %s", ErrSlotPastDeadline, slot.Date.Format("02/01/2006"))
			}
			if !isAdmin && enrollment.Student.Category == "A-II" && !slot.Date.After(today) {
				return ErrAdvanceRequired
			}

			claimed := tx.Model(&models.TimeSlot{}).
				Where("id = ? AND reserved_count < max_capacity", slot.ID).
				Update("reserved_count", gorm.Expr("reserved_count + 1"))
			if claimed.Error != nil {
				return claimed.Error
			}
			if claimed.RowsAffected == 0 {
				return fmt.Errorf("%w: %s %s", ErrSlotFull,
					slot.Date.Format("02/01/2006"), slot.StartTime.Format("15:04"))
			}

			reservation := models.Reservation{
				TimeSlotID:   slot.ID,
				EnrollmentID: enrollment.ID,
			}
			if err := tx.Create(&reservation).Error; err != nil {
				return err
			}
			created = append(created, reservation)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// dedupeIDs drops repeated IDs so a slot requested twice in one booking
// claims a single seat and a single budget hour.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// CancelReservations releases slots back to the pool. Students may modify
// reservations at most once per 24 hours; the cooldown is per enrollment and
// never applies to admins. Reservations that already have an attendance are
// consumed hours and cannot be released.
func CancelReservations(db *gorm.DB, enrollmentID uuid.UUID, reservationIDs []uuid.UUID, requesterUserID uuid.UUID, isAdmin bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var enrollment models.Enrollment
		if err := tx.Preload("Student").First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
			return err
		}

		if !isAdmin && enrollment.Student.UserID != requesterUserID {
			return ErrNotOwner
		}

		now := nowFunc()
		if !isAdmin && enrollment.LastReservationChange != nil {
			elapsed := now.Sub(*enrollment.LastReservationChange)
			if elapsed < reservationCooldown {
				wait := (reservationCooldown - elapsed).Round(time.Minute)
				return fmt.Errorf("%w (faltan %s)", ErrCooldownActive, wait)
			}
		}

		var reservations []models.Reservation
		if err := tx.Where("id IN ? AND enrollment_id = ?", reservationIDs, enrollment.ID).
			Find(&reservations).Error; err != nil {
			return err
		}
		if len(reservations) != len(reservationIDs) {
			return ErrReservationMissing
		}

		for _, reservation := range reservations {
			var attended int64
			if err := tx.Model(&models.Attendance{}).
				Where("reservation_id = ?", reservation.ID).
				Count(&attended).Error; err != nil {
				return err
			}
			if attended > 0 {
				return ErrReservationAttended
			}

			if err := tx.Delete(&models.Reservation{}, "id = ?", reservation.ID).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.TimeSlot{}).
				Where("id = ? AND reserved_count > 0", reservation.TimeSlotID).
				Update("reserved_count", gorm.Expr("reserved_count - 1")).Error; err != nil {
				return err
			}
		}

		if !isAdmin {
			enrollment.LastReservationChange = &now
			if err := tx.Save(&enrollment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func ListOwnReservations(db *gorm.DB, userID uuid.UUID) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := db.Preload("TimeSlot").Preload("Enrollment").
		Joins("JOIN enrollments ON enrollments.id = reservations.enrollment_id").
		Joins("JOIN students ON students.id = enrollments.student_id").
		Where("students.user_id = ?", userID).
		Order("reservations.created_at desc").
		Find(&reservations).Error
	return reservations, err
}

func ListReservationsByStudent(db *gorm.DB, studentID uuid.UUID) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := db.Preload("TimeSlot").Preload("Enrollment.Student").
		Joins("JOIN enrollments ON enrollments.id = reservations.enrollment_id").
		Where("enrollments.student_id = ?", studentID).
		Order("reservations.created_at desc").
		Find(&reservations).Error
	return reservations, err
}

// ListUpcomingReservations is the admin default: everything from today on.
func ListUpcomingReservations(db *gorm.DB) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := db.Preload("TimeSlot").Preload("Enrollment.Student").
		Joins("JOIN time_slots ON time_slots.id = reservations.time_slot_id").
		Where("time_slots.date >= ?", utils.Today()).
		Order("time_slots.date, time_slots.start_time").
		Find(&reservations).Error
	return reservations, err
}

func ListTodayReservations(db *gorm.DB) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := db.Preload("TimeSlot").Preload("Enrollment.Student").
		Joins("JOIN time_slots ON time_slots.id = reservations.time_slot_id").
		Where("time_slots.date = ?", utils.Today()).
		Order("time_slots.start_time").
		Find(&reservations).Error
	return reservations, err
}

// ListWeekReservations returns the reservations for the Monday-based week at
// the given offset from the current one (0 = this week, 1 = next, -1 = last).
func ListWeekReservations(db *gorm.DB, weekOffset int) ([]models.Reservation, error) {
	today := utils.Today()
	weekday := int(today.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	weekStart := today.AddDate(0, 0, -(weekday-1)+7*weekOffset)
	weekEnd := weekStart.AddDate(0, 0, 7)

	var reservations []models.Reservation
	err := db.Preload("TimeSlot").Preload("Enrollment.Student").
		Joins("JOIN time_slots ON time_slots.id = reservations.time_slot_id").
		Where("time_slots.date >= ? AND time_slots.date < ?", weekStart, weekEnd).
		Order("time_slots.date, time_slots.start_time").
		Find(&reservations).Error
	return reservations, err
}
