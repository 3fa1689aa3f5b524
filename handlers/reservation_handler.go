package handlers

import (
	"strconv"

	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/models"
	"github.com/escuelamanejo/backend/services"
	"github.com/escuelamanejo/backend/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BookReservationsRequest struct {
	EnrollmentID string   `json:"enrollment_id" validate:"required,uuid"`
	TimeSlotIDs  []string `json:"time_slot_ids" validate:"required,min=1,dive,uuid"`
}

func BookReservations(c *fiber.Ctx) error {
	userID, role := currentUser(c)

	var req BookReservationsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "No se pudo leer el JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	enrollmentID, _ := uuid.Parse(req.EnrollmentID)
	slotIDs := make([]uuid.UUID, 0, len(req.TimeSlotIDs))
	for _, raw := range req.TimeSlotIDs {
		id, _ := uuid.Parse(raw)
		slotIDs = append(slotIDs, id)
	}

	reservations, err := services.BookReservations(database.DB, enrollmentID, slotIDs, userID, role == "admin")
	if err != nil {
		return failFromError(c, err)
	}

	for _, reservation := range reservations {
		var slot models.TimeSlot
		if database.DB.First(&slot, "id = ?", reservation.TimeSlotID).Error == nil {
			websocket.Publish(websocket.ScheduleEvent{
				Type:          "booked",
				TimeSlotID:    slot.ID,
				EnrollmentID:  reservation.EnrollmentID,
				SlotDate:      slot.Date,
				SlotStartTime: slot.StartTime,
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"mensaje":  "Reservas registradas correctamente",
		"reservas": reservations,
	})
}

type CancelReservationsRequest struct {
	EnrollmentID   string   `json:"enrollment_id" validate:"required,uuid"`
	ReservationIDs []string `json:"reservation_ids" validate:"required,min=1,dive,uuid"`
}

func CancelReservations(c *fiber.Ctx) error {
	userID, role := currentUser(c)

	var req CancelReservationsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "No se pudo leer el JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	enrollmentID, _ := uuid.Parse(req.EnrollmentID)
	reservationIDs := make([]uuid.UUID, 0, len(req.ReservationIDs))
	for _, raw := range req.ReservationIDs {
		id, _ := uuid.Parse(raw)
		reservationIDs = append(reservationIDs, id)
	}

	// Capture slot info before the rows disappear.
	var affected []models.Reservation
	database.DB.Preload("TimeSlot").Where("id IN ?", reservationIDs).Find(&affected)

	err := services.CancelReservations(database.DB, enrollmentID, reservationIDs, userID, role == "admin")
	if err != nil {
		return failFromError(c, err)
	}

	for _, reservation := range affected {
		websocket.Publish(websocket.ScheduleEvent{
			Type:          "cancelled",
			TimeSlotID:    reservation.TimeSlotID,
			EnrollmentID:  reservation.EnrollmentID,
			SlotDate:      reservation.TimeSlot.Date,
			SlotStartTime: reservation.TimeSlot.StartTime,
		})
	}

	return c.JSON(fiber.Map{"success": true, "mensaje": "Reservas canceladas correctamente"})
}

// ListReservations resolves the caller's view: students always see their own
// bookings; admins choose between all upcoming, one student, today, or a
// week window.
func ListReservations(c *fiber.Ctx) error {
	userID, role := currentUser(c)

	if role != "admin" {
		reservations, err := services.ListOwnReservations(database.DB, userID)
		if err != nil {
			return failFromError(c, err)
		}
		return c.JSON(reservations)
	}

	if studentID := c.Query("student_id"); studentID != "" {
		id, err := uuid.Parse(studentID)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "ID de alumno inválido")
		}
		reservations, err := services.ListReservationsByStudent(database.DB, id)
		if err != nil {
			return failFromError(c, err)
		}
		return c.JSON(reservations)
	}

	if c.Query("today") == "true" {
		reservations, err := services.ListTodayReservations(database.DB)
		if err != nil {
			return failFromError(c, err)
		}
		return c.JSON(reservations)
	}

	if offset := c.Query("week_offset"); offset != "" {
		weekOffset, err := strconv.Atoi(offset)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "week_offset inválido")
		}
		reservations, err := services.ListWeekReservations(database.DB, weekOffset)
		if err != nil {
			return failFromError(c, err)
		}
		return c.JSON(reservations)
	}

	reservations, err := services.ListUpcomingReservations(database.DB)
	if err != nil {
		return failFromError(c, err)
	}
	return c.JSON(reservations)
}

// ListTimeSlots shows the bookable calendar; from/to are day offsets
// relative to today.
func ListTimeSlots(c *fiber.Ctx) error {
	var from, to *int
	if raw := c.Query("from"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			from = &v
		}
	}
	if raw := c.Query("to"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			to = &v
		}
	}

	slots, err := services.ListTimeSlots(database.DB, from, to)
	if err != nil {
		return failFromError(c, err)
	}
	return c.JSON(slots)
}
