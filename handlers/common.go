package handlers

import (
	"errors"

	"github.com/escuelamanejo/backend/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

func currentUser(c *fiber.Ctx) (uuid.UUID, string) {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	role, _ := claims["role"].(string)
	return userID, role
}

func fail(c *fiber.Ctx, status int, mensaje string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "mensaje": mensaje})
}

// failFromError translates service errors to the response envelope: missing
// rows become 404, ownership violations 403, rule violations 400, anything
// else a generic 500 without leaking internals.
func failFromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fail(c, fiber.StatusNotFound, "Recurso no encontrado")
	case errors.Is(err, services.ErrNotOwner):
		return fail(c, fiber.StatusForbidden, err.Error())
	case services.IsBusinessError(err):
		return fail(c, fiber.StatusBadRequest, err.Error())
	default:
		return fail(c, fiber.StatusInternalServerError, "Error interno del servidor")
	}
}
