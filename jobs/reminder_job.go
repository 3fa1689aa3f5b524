package jobs

import (
	"fmt"
	"log"

	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/models"
	"github.com/escuelamanejo/backend/notifications"
	"github.com/escuelamanejo/backend/utils"
)

// SendPaymentReminders nudges students who started classes but still owe a
// balance. Returns the number of reminders dispatched.
func SendPaymentReminders() int {
	log.Println("Running job: SendPaymentReminders...")

	var enrollments []models.Enrollment
	err := database.DB.Preload("Student").
		Where("hours_completed >= ? AND payment_status = ?", 3, models.PaymentPending).
		Where("class_status <> ?", models.ClassesCompleted).
		Find(&enrollments).Error
	if err != nil {
		log.Printf("Error loading enrollments with pending payments: %v", err)
		return 0
	}

	sent := 0
	for _, enrollment := range enrollments {
		if enrollment.Student.Email == "" {
			continue
		}

		var paid float64
		database.DB.Model(&models.Payment{}).
			Where("enrollment_id = ?", enrollment.ID).
			Select("COALESCE(SUM(amount), 0)").Scan(&paid)

		balance := enrollment.TotalCost - paid
		if balance <= 0 {
			continue
		}

		subject, body := notifications.PaymentReminder(enrollment.Student.FirstName, balance)
		notifications.SendEmail(enrollment.Student.FirstName, enrollment.Student.Email, subject, body)
		sent++
	}
	return sent
}

// SendReservationReminders mails every student with a class tomorrow.
func SendReservationReminders() int {
	log.Println("Running job: SendReservationReminders...")

	tomorrow := utils.Today().AddDate(0, 0, 1)

	var reservations []models.Reservation
	err := database.DB.Preload("TimeSlot").Preload("Enrollment.Student").
		Joins("JOIN time_slots ON time_slots.id = reservations.time_slot_id").
		Where("time_slots.date = ?", tomorrow).
		Find(&reservations).Error
	if err != nil {
		log.Printf("Error loading tomorrow's reservations: %v", err)
		return 0
	}

	sent := 0
	for _, reservation := range reservations {
		student := reservation.Enrollment.Student
		if student.Email == "" {
			continue
		}

		timeRange := fmt.Sprintf("%s - %s",
			reservation.TimeSlot.StartTime.In(utils.Location()).Format("15:04"),
			reservation.TimeSlot.EndTime.In(utils.Location()).Format("15:04"))
		subject, body := notifications.ReservationReminder(
			student.FirstName, tomorrow.Format("02/01/2006"), timeRange)
		notifications.SendEmail(student.FirstName, student.Email, subject, body)
		sent++
	}
	return sent
}
