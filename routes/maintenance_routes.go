package routes

import (
	"github.com/escuelamanejo/backend/handlers"
	"github.com/escuelamanejo/backend/middleware"
	"github.com/gofiber/fiber/v2"
)

// MaintenanceRoutes are hit by the external scheduler with the static cron
// token, not by interactive users.
func MaintenanceRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	maintenance := api.Group("/maintenance", middleware.CronTokenRequired())
	maintenance.Post("/generate-slots", handlers.GenerateSlots)
	maintenance.Post("/prune-slots", handlers.PruneSlots)
	maintenance.Post("/payment-reminders", handlers.SendPaymentReminders)
	maintenance.Post("/reservation-reminders", handlers.SendReservationReminders)
}
