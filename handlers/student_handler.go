package handlers

import (
	"errors"
	"math"
	"strconv"

	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/models"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateStudentRequest struct {
	Username  string `json:"username" validate:"required,min=4"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	DNI       string `json:"dni" validate:"required,min=8"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Category  string `json:"category" validate:"required,oneof=A-I A-II"`
}

func CreateStudent(c *fiber.Ctx) error {
	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "No se pudo leer el JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "No se pudo procesar la contraseña")
	}

	var student models.Student
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Username: req.Username,
			Password: string(hashedPassword),
			Role:     "student",
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.New("el nombre de usuario ya existe")
			}
			return err
		}

		student = models.Student{
			UserID:    user.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			DNI:       req.DNI,
			Phone:     req.Phone,
			Email:     req.Email,
			Category:  req.Category,
		}
		return tx.Create(&student).Error
	})
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

func ListStudents(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	perPage, _ := strconv.Atoi(c.Query("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	query := database.DB.Model(&models.Student{})
	if c.Query("active", "true") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if dni := c.Query("dni"); dni != "" {
		query = query.Where("dni = ?", dni)
	}

	var total int64
	query.Count(&total)

	var students []models.Student
	query.Order("last_name, first_name").Offset(offset).Limit(perPage).Find(&students)

	return c.JSON(fiber.Map{
		"data": students,
		"meta": fiber.Map{
			"total":     total,
			"page":      page,
			"last_page": int(math.Ceil(float64(total) / float64(perPage))),
		},
	})
}

func GetStudent(c *fiber.Ctx) error {
	var student models.Student
	if err := database.DB.First(&student, "id = ?", c.Params("studentId")).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Alumno no encontrado")
	}
	return c.JSON(student)
}

type UpdateStudentRequest struct {
	FirstName string `json:"first_name" validate:"omitempty"`
	LastName  string `json:"last_name" validate:"omitempty"`
	Phone     string `json:"phone" validate:"omitempty"`
	Email     string `json:"email" validate:"omitempty,email"`
	Category  string `json:"category" validate:"omitempty,oneof=A-I A-II"`
}

func UpdateStudent(c *fiber.Ctx) error {
	var student models.Student
	if err := database.DB.First(&student, "id = ?", c.Params("studentId")).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Alumno no encontrado")
	}

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "No se pudo leer el JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if req.FirstName != "" {
		student.FirstName = req.FirstName
	}
	if req.LastName != "" {
		student.LastName = req.LastName
	}
	if req.Phone != "" {
		student.Phone = req.Phone
	}
	if req.Email != "" {
		student.Email = req.Email
	}
	if req.Category != "" {
		student.Category = req.Category
	}

	if err := database.DB.Save(&student).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "No se pudo actualizar el alumno")
	}
	return c.JSON(student)
}

// DeactivateStudent flips the active flag instead of deleting: historical
// reservations and payments keep their references.
func DeactivateStudent(c *fiber.Ctx) error {
	result := database.DB.Model(&models.Student{}).
		Where("id = ?", c.Params("studentId")).
		Update("is_active", false)
	if result.Error != nil {
		return fail(c, fiber.StatusInternalServerError, "No se pudo desactivar el alumno")
	}
	if result.RowsAffected == 0 {
		return fail(c, fiber.StatusNotFound, "Alumno no encontrado")
	}
	return c.JSON(fiber.Map{"success": true, "mensaje": "Alumno desactivado"})
}
