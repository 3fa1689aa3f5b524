package handlers

import (
	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/models"
	"github.com/escuelamanejo/backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ListTickets shows issued class tickets. Admins see everything and may
// filter by instructor; instructors only ever see the classes they served.
func ListTickets(c *fiber.Ctx) error {
	userID, role := currentUser(c)

	var instructorID *uuid.UUID
	if role == "instructor" {
		var instructor models.Instructor
		if err := database.DB.First(&instructor, "user_id = ?", userID).Error; err != nil {
			return fail(c, fiber.StatusForbidden, "El usuario no está vinculado a un instructor")
		}
		instructorID = &instructor.ID
	} else if raw := c.Query("instructor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "ID de instructor inválido")
		}
		instructorID = &id
	}

	records, err := services.ListClassRecords(database.DB, instructorID)
	if err != nil {
		return failFromError(c, err)
	}
	return c.JSON(records)
}
