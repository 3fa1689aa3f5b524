package routes

import (
	"github.com/escuelamanejo/backend/handlers"
	"github.com/escuelamanejo/backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func EnrollmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	enrollments := api.Group("/enrollments", middleware.Protected(), middleware.TokenNotRevoked())
	enrollments.Post("", middleware.RequireRoles("admin"), handlers.CreateEnrollment)
	enrollments.Get("", handlers.ListEnrollments)
	enrollments.Get("/:enrollmentId/account", handlers.GetAccountState)
}
