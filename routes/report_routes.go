package routes

import (
	"github.com/escuelamanejo/backend/handlers"
	"github.com/escuelamanejo/backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReportRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reports := api.Group("/reports", middleware.Protected(), middleware.TokenNotRevoked(), middleware.RequireRoles("admin"))
	reports.Get("/dashboard", handlers.GetDashboard)
	reports.Get("/attendance", handlers.GetAttendanceReport)
	reports.Get("/income", handlers.GetIncomeReport)
}
