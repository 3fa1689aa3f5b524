package handlers

import (
	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PackageRequest struct {
	Name          string  `json:"name" validate:"required"`
	VehicleTypeID string  `json:"vehicle_type_id" validate:"required,uuid"`
	TotalHours    int     `json:"total_hours" validate:"required,gt=0"`
	TotalCost     float64 `json:"total_cost" validate:"required,gt=0"`
}

func CreatePackage(c *fiber.Ctx) error {
	var req PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "No se pudo leer el JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	typeID, _ := uuid.Parse(req.VehicleTypeID)
	var vehicleType models.VehicleType
	if err := database.DB.First(&vehicleType, "id = ?", typeID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Tipo de auto no encontrado")
	}

	pkg := models.Package{
		Name:          req.Name,
		VehicleTypeID: vehicleType.ID,
		TotalHours:    req.TotalHours,
		TotalCost:     req.TotalCost,
	}
	if err := database.DB.Create(&pkg).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "No se pudo registrar el paquete")
	}
	return c.Status(fiber.StatusCreated).JSON(pkg)
}

func ListPackages(c *fiber.Ctx) error {
	query := database.DB.Preload("VehicleType").Order("total_hours")
	if c.Query("active", "true") == "true" {
		query = query.Where("is_active = ?", true)
	}
	var packages []models.Package
	query.Find(&packages)
	return c.JSON(packages)
}

// Packages are immutable reference data: the only write after creation is
// retiring one from the catalog.
func DeactivatePackage(c *fiber.Ctx) error {
	result := database.DB.Model(&models.Package{}).
		Where("id = ?", c.Params("packageId")).
		Update("is_active", false)
	if result.Error != nil {
		return fail(c, fiber.StatusInternalServerError, "No se pudo desactivar el paquete")
	}
	if result.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Paquete no encontrado")
	}
	return c.JSON(fiber.Map{"success": true, "mensaje": "Paquete desactivado"})
}
