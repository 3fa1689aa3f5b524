package handlers

import (
	"math"
	"strconv"

	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/models"
	"github.com/escuelamanejo/backend/notifications"
	"github.com/escuelamanejo/backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateEnrollmentRequest struct {
	StudentID       string  `json:"student_id" validate:"required,uuid"`
	FinancingMode   string  `json:"financing_mode" validate:"required,oneof=package per_hour"`
	PackageID       string  `json:"package_id" validate:"omitempty,uuid"`
	HoursContracted int     `json:"hours_contracted" validate:"omitempty,gt=0"`
	HourlyRate      float64 `json:"hourly_rate" validate:"omitempty,gt=0"`
}

func CreateEnrollment(c *fiber.Ctx) error {
	var req CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "No se pudo leer el JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	studentID, _ := uuid.Parse(req.StudentID)
	input := services.CreateEnrollmentInput{
		StudentID:       studentID,
		FinancingMode:   req.FinancingMode,
		HoursContracted: req.HoursContracted,
		HourlyRate:      req.HourlyRate,
	}
	if req.PackageID != "" {
		packageID, _ := uuid.Parse(req.PackageID)
		input.PackageID = &packageID
	}

	enrollment, err := services.CreateEnrollment(database.DB, input)
	if err != nil {
		return failFromError(c, err)
	}

	if enrollment.Student.Email != "" {
		subject, body := notifications.EnrollmentWelcome(
			enrollment.Student.FirstName, enrollment.TotalHours(), enrollment.TotalCost)
		notifications.SendEmail(enrollment.Student.FirstName, enrollment.Student.Email, subject, body)
	}

	return c.Status(fiber.StatusCreated).JSON(enrollment)
}

func ListEnrollments(c *fiber.Ctx) error {
	userID, role := currentUser(c)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	perPage, _ := strconv.Atoi(c.Query("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	query := database.DB.Model(&models.Enrollment{}).Preload("Student").Preload("Package")

	if role != "admin" {
		query = query.
			Joins("JOIN students ON students.id = enrollments.student_id").
			Where("students.user_id = ?", userID)
	} else if studentID := c.Query("student_id"); studentID != "" {
		query = query.Where("enrollments.student_id = ?", studentID)
	}
	if status := c.Query("class_status"); status != "" {
		query = query.Where("enrollments.class_status = ?", status)
	}

	var total int64
	query.Count(&total)

	var enrollments []models.Enrollment
	query.Order("enrollments.created_at desc").Offset(offset).Limit(perPage).Find(&enrollments)

	return c.JSON(fiber.Map{
		"data": enrollments,
		"meta": fiber.Map{
			"total":     total,
			"page":      page,
			"last_page": int(math.Ceil(float64(total) / float64(perPage))),
		},
	})
}

// GetAccountState exposes the balance and hour summary for one enrollment.
// Students can only see their own.
func GetAccountState(c *fiber.Ctx) error {
	userID, role := currentUser(c)

	enrollmentID, err := uuid.Parse(c.Params("enrollmentId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID de matrícula inválido")
	}

	if role != "admin" {
		var owned int64
		database.DB.Model(&models.Enrollment{}).
			Joins("JOIN students ON students.id = enrollments.student_id").
			Where("enrollments.id = ? AND students.user_id = ?", enrollmentID, userID).
			Count(&owned)
		if owned == 0 {
			return fail(c, fiber.StatusForbidden, "La matrícula no pertenece al usuario")
		}
	}

	state, err := services.GetAccountState(database.DB, enrollmentID)
	if err != nil {
		return failFromError(c, err)
	}
	return c.JSON(state)
}
