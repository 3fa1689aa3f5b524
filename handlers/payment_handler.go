package handlers

import (
	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/models"
	"github.com/escuelamanejo/backend/notifications"
	"github.com/escuelamanejo/backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RecordPaymentRequest struct {
	EnrollmentID string  `json:"enrollment_id" validate:"required,uuid"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
}

func RecordPayment(c *fiber.Ctx) error {
	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "No se pudo leer el JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	enrollmentID, _ := uuid.Parse(req.EnrollmentID)
	payment, enrollment, err := services.RecordPayment(database.DB, enrollmentID, req.Amount)
	if err != nil {
		return failFromError(c, err)
	}

	if enrollment.Student.Email != "" {
		state, stateErr := services.GetAccountState(database.DB, enrollment.ID)
		if stateErr == nil {
			subject, body := notifications.PaymentReceived(
				enrollment.Student.FirstName, payment.Amount, state.PendingBalance)
			notifications.SendEmail(enrollment.Student.FirstName, enrollment.Student.Email, subject, body)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"pago":        payment,
		"estado_pago": enrollment.PaymentStatus,
	})
}

func ListPayments(c *fiber.Ctx) error {
	var enrollmentID *uuid.UUID
	if raw := c.Query("enrollment_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "ID de matrícula inválido")
		}
		enrollmentID = &id
	}

	payments, err := services.ListPayments(database.DB, enrollmentID)
	if err != nil {
		return failFromError(c, err)
	}
	return c.JSON(payments)
}

func GetPayment(c *fiber.Ctx) error {
	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", c.Params("paymentId")).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Pago no encontrado")
	}
	return c.JSON(payment)
}
