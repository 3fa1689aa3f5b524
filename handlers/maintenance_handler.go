package handlers

import (
	"fmt"

	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/jobs"
	"github.com/escuelamanejo/backend/services"
	"github.com/gofiber/fiber/v2"
)

// Maintenance endpoints are called by the external scheduler with the static
// cron token; they mirror what the in-process cron jobs do so operators can
// trigger a run by hand.

type GenerateSlotsRequest struct {
	Weeks int `json:"weeks"`
}

func GenerateSlots(c *fiber.Ctx) error {
	req := GenerateSlotsRequest{Weeks: 2}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "No se pudo leer el JSON")
		}
	}
	if req.Weeks < 1 || req.Weeks > 12 {
		req.Weeks = 2
	}

	created, err := services.GenerateTimeSlots(database.DB, req.Weeks)
	if err != nil {
		return failFromError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"mensaje":         fmt.Sprintf("Se crearon %d bloques para %d semanas", created, req.Weeks),
		"bloques_creados": created,
	})
}

func PruneSlots(c *fiber.Ctx) error {
	pruned, err := services.PruneEmptySlots(database.DB)
	if err != nil {
		return failFromError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"mensaje":            fmt.Sprintf("Se eliminaron %d bloques vacíos", pruned),
		"bloques_eliminados": pruned,
	})
}

func SendPaymentReminders(c *fiber.Ctx) error {
	sent := jobs.SendPaymentReminders()
	return c.JSON(fiber.Map{
		"success":             true,
		"mensaje":             fmt.Sprintf("Se enviaron %d recordatorios de pago", sent),
		"recordatorios_pagos": sent,
	})
}

func SendReservationReminders(c *fiber.Ctx) error {
	sent := jobs.SendReservationReminders()
	return c.JSON(fiber.Map{
		"success":               true,
		"mensaje":               fmt.Sprintf("Se enviaron %d recordatorios de reserva", sent),
		"recordatorios_reserva": sent,
	})
}
