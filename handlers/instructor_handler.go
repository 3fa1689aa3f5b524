package handlers

import (
	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/models"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type InstructorRequest struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	DNI           string `json:"dni" validate:"required,min=8"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number" validate:"required"`
	Username      string `json:"username" validate:"omitempty,min=4"`
	Password      string `json:"password" validate:"omitempty,min=6"`
}

// CreateInstructor registers an instructor and, when credentials come in the
// request, a login account so they can consult their served classes.
func CreateInstructor(c *fiber.Ctx) error {
	var req InstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "No se pudo leer el JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if (req.Username == "") != (req.Password == "") {
		return fail(c, fiber.StatusBadRequest, "Usuario y contraseña deben enviarse juntos")
	}

	var instructor models.Instructor
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		instructor = models.Instructor{
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			DNI:           req.DNI,
			Phone:         req.Phone,
			LicenseNumber: req.LicenseNumber,
		}

		if req.Username != "" {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user := models.User{
				Username: req.Username,
				Password: string(hashedPassword),
				Role:     "instructor",
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			instructor.UserID = &user.ID
		}

		return tx.Create(&instructor).Error
	})
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "No se pudo registrar el instructor")
	}
	return c.Status(fiber.StatusCreated).JSON(instructor)
}

func ListInstructors(c *fiber.Ctx) error {
	query := database.DB.Order("last_name, first_name")
	if c.Query("active", "true") == "true" {
		query = query.Where("is_active = ?", true)
	}
	var instructors []models.Instructor
	query.Find(&instructors)
	return c.JSON(instructors)
}

func UpdateInstructor(c *fiber.Ctx) error {
	var instructor models.Instructor
	if err := database.DB.First(&instructor, "id = ?", c.Params("instructorId")).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Instructor no encontrado")
	}

	var req InstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "No se pudo leer el JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	instructor.FirstName = req.FirstName
	instructor.LastName = req.LastName
	instructor.DNI = req.DNI
	instructor.Phone = req.Phone
	instructor.LicenseNumber = req.LicenseNumber
	if err := database.DB.Save(&instructor).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "No se pudo actualizar el instructor")
	}
	return c.JSON(instructor)
}

func DeactivateInstructor(c *fiber.Ctx) error {
	result := database.DB.Model(&models.Instructor{}).
		Where("id = ?", c.Params("instructorId")).
		Update("is_active", false)
	if result.Error != nil {
		return fail(c, fiber.StatusInternalServerError, "No se pudo desactivar el instructor")
	}
	if result.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Instructor no encontrado")
	}
	return c.JSON(fiber.Map{"success": true, "mensaje": "Instructor desactivado"})
}
