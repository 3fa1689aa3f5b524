package routes

import (
	"github.com/escuelamanejo/backend/handlers"
	"github.com/escuelamanejo/backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AttendanceRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	attendances := api.Group("/attendances", middleware.Protected(), middleware.TokenNotRevoked(), middleware.RequireRoles("admin"))
	attendances.Post("", handlers.RecordAttendance)
	attendances.Get("", handlers.ListAttendance)

	tickets := api.Group("/tickets", middleware.Protected(), middleware.TokenNotRevoked(), middleware.RequireRoles("admin", "instructor"))
	tickets.Get("", handlers.ListTickets)
}
