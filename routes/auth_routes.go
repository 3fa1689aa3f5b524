package routes

import (
	"github.com/escuelamanejo/backend/handlers"
	"github.com/escuelamanejo/backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", handlers.Login)

	me := api.Group("/auth", middleware.Protected(), middleware.TokenNotRevoked())
	me.Get("/me", handlers.Me)
	me.Post("/logout", handlers.Logout)
}
