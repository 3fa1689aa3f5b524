package routes

import (
	"github.com/escuelamanejo/backend/handlers"
	"github.com/escuelamanejo/backend/middleware"
	"github.com/gofiber/fiber/v2"
)

// CatalogRoutes covers the administrative catalogs the front desk manages:
// instructors, the vehicle fleet and hour packages.
func CatalogRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected(), middleware.TokenNotRevoked())

	instructors := api.Group("/instructors")
	instructors.Get("", handlers.ListInstructors)
	instructors.Post("", middleware.RequireRoles("admin"), handlers.CreateInstructor)
	instructors.Put("/:instructorId", middleware.RequireRoles("admin"), handlers.UpdateInstructor)
	instructors.Delete("/:instructorId", middleware.RequireRoles("admin"), handlers.DeactivateInstructor)

	vehicleTypes := api.Group("/vehicle-types")
	vehicleTypes.Get("", handlers.ListVehicleTypes)
	vehicleTypes.Post("", middleware.RequireRoles("admin"), handlers.CreateVehicleType)

	vehicles := api.Group("/vehicles")
	vehicles.Get("", handlers.ListVehicles)
	vehicles.Post("", middleware.RequireRoles("admin"), handlers.CreateVehicle)
	vehicles.Delete("/:vehicleId", middleware.RequireRoles("admin"), handlers.DeactivateVehicle)

	packages := api.Group("/packages")
	packages.Get("", handlers.ListPackages)
	packages.Post("", middleware.RequireRoles("admin"), handlers.CreatePackage)
	packages.Delete("/:packageId", middleware.RequireRoles("admin"), handlers.DeactivatePackage)
}
