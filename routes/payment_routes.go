package routes

import (
	"github.com/escuelamanejo/backend/handlers"
	"github.com/escuelamanejo/backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments", middleware.Protected(), middleware.TokenNotRevoked(), middleware.RequireRoles("admin"))
	payments.Post("", handlers.RecordPayment)
	payments.Get("", handlers.ListPayments)
	payments.Get("/:paymentId", handlers.GetPayment)
}
