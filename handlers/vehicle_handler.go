package handlers

import (
	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type VehicleTypeRequest struct {
	Name         string `json:"name" validate:"required"`
	Transmission string `json:"transmission" validate:"required,oneof=manual automatic"`
}

func CreateVehicleType(c *fiber.Ctx) error {
	var req VehicleTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "No se pudo leer el JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	vehicleType := models.VehicleType{Name: req.Name, Transmission: req.Transmission}
	if err := database.DB.Create(&vehicleType).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "No se pudo registrar el tipo de auto")
	}
	return c.Status(fiber.StatusCreated).JSON(vehicleType)
}

func ListVehicleTypes(c *fiber.Ctx) error {
	var types []models.VehicleType
	database.DB.Order("name").Find(&types)
	return c.JSON(types)
}

type VehicleRequest struct {
	VehicleTypeID string `json:"vehicle_type_id" validate:"required,uuid"`
	Plate         string `json:"plate" validate:"required"`
	Brand         string `json:"brand"`
	Model         string `json:"model"`
}

func CreateVehicle(c *fiber.Ctx) error {
	var req VehicleRequest
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

	vehicle := models.Vehicle{
		VehicleTypeID: vehicleType.ID,
		Plate:         req.Plate,
		Brand:         req.Brand,
		Model:         req.Model,
	}
	if err := database.DB.Create(&vehicle).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "No se pudo registrar el auto")
	}
	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

func ListVehicles(c *fiber.Ctx) error {
	query := database.DB.Preload("VehicleType").Order("plate")
	if c.Query("active", "true") == "true" {
		query = query.Where("is_active = ?", true)
	}
	var vehicles []models.Vehicle
	query.Find(&vehicles)
	return c.JSON(vehicles)
}

func DeactivateVehicle(c *fiber.Ctx) error {
	result := database.DB.Model(&models.Vehicle{}).
		Where("id = ?", c.Params("vehicleId")).
		Update("is_active", false)
	if result.Error != nil {
		return fail(c, fiber.StatusInternalServerError, "No se pudo desactivar el auto")
	}
	if result.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Auto no encontrado")
	}
	return c.JSON(fiber.Map{"success": true, "mensaje": "Auto desactivado"})
}
