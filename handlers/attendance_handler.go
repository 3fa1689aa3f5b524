package handlers

import (
	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/notifications"
	"github.com/escuelamanejo/backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RecordAttendanceRequest struct {
	ReservationID string `json:"reservation_id" validate:"required,uuid"`
	Attended      *bool  `json:"attended" validate:"required"`
	InstructorID  string `json:"instructor_id" validate:"omitempty,uuid"`
	VehicleID     string `json:"vehicle_id" validate:"omitempty,uuid"`
}

// RecordAttendance writes the permanent attendance row and, for attended
// classes, the ticket. Notifications go out only after the transaction has
// committed; their outcome never reaches the caller.
func RecordAttendance(c *fiber.Ctx) error {
	var req RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "No se pudo leer el JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if *req.Attended && (req.InstructorID == "" || req.VehicleID == "") {
		return fail(c, fiber.StatusBadRequest, "Se requiere instructor y auto para registrar una asistencia")
	}

	reservationID, _ := uuid.Parse(req.ReservationID)
	input := services.RecordAttendanceInput{
		ReservationID: reservationID,
		Attended:      *req.Attended,
	}
	if req.InstructorID != "" {
		id, _ := uuid.Parse(req.InstructorID)
		input.InstructorID = &id
	}
	if req.VehicleID != "" {
		id, _ := uuid.Parse(req.VehicleID)
		input.VehicleID = &id
	}

	result, err := services.RecordAttendance(database.DB, input)
	if err != nil {
		return failFromError(c, err)
	}

	student := result.Enrollment.Student
	if student.Email != "" {
		if result.RemindPay {
			subject, body := notifications.PaymentReminder(student.FirstName, result.PaymentDue)
			notifications.SendEmail(student.FirstName, student.Email, subject, body)
		}
		if result.JustFinished {
			subject, body := notifications.CourseCompleted(student.FirstName)
			notifications.SendEmail(student.FirstName, student.Email, subject, body)
		}
	}
	if result.JustFinished {
		go services.GenerateCompletionCertificate(result.Enrollment)
	}

	response := fiber.Map{
		"success":    true,
		"asistencia": result.Attendance,
	}
	if result.ClassRecord != nil {
		response["ticket"] = result.ClassRecord
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

func ListAttendance(c *fiber.Ctx) error {
	var enrollmentID *uuid.UUID
	if raw := c.Query("enrollment_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "ID de matrícula inválido")
		}
		enrollmentID = &id
	}

	attendances, err := services.ListAttendance(database.DB, enrollmentID)
	if err != nil {
		return failFromError(c, err)
	}
	return c.JSON(attendances)
}
