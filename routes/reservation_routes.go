package routes

import (
	"github.com/escuelamanejo/backend/handlers"
	"github.com/escuelamanejo/backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReservationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	slots := api.Group("/time-slots", middleware.Protected(), middleware.TokenNotRevoked())
	slots.Get("", handlers.ListTimeSlots)

	reservations := api.Group("/reservations", middleware.Protected(), middleware.TokenNotRevoked())
	reservations.Post("", handlers.BookReservations)
	reservations.Delete("", handlers.CancelReservations)
	reservations.Get("", handlers.ListReservations)
}
