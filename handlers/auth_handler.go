package handlers

import (
	"time"

	config "github.com/escuelamanejo/backend/configs"
	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/models"
	"github.com/escuelamanejo/backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "No se pudo leer el JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	var user models.User
	result := database.DB.Where("username = ? AND is_active = ?", req.Username, true).First(&user)
	if result.Error != nil {
		return fail(c, fiber.StatusUnauthorized, "Usuario o contraseña incorrectos")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return fail(c, fiber.StatusUnauthorized, "Usuario o contraseña incorrectos")
	}

	expiresAt := time.Now().Add(time.Hour * 72)
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"jti":     uuid.New().String(),
		"exp":     expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "No se pudo crear el token")
	}

	return c.JSON(fiber.Map{
		"access_token": t,
		"usuario_id":   user.ID,
		"rol":          user.Role,
	})
}

func Me(c *fiber.Ctx) error {
	userID, role := currentUser(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Usuario no encontrado")
	}

	response := fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"rol":      role,
	}

	if role == "student" {
		var student models.Student
		if err := database.DB.First(&student, "user_id = ?", user.ID).Error; err == nil {
			response["student"] = student
		}
	}
	return c.JSON(response)
}

// Logout blacklists the current token's jti until the token would have
// expired anyway.
func Logout(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return fail(c, fiber.StatusBadRequest, "El token no admite revocación")
	}

	expiresAt := time.Now().Add(time.Hour * 72)
	if exp, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0)
	}

	if err := services.RevokeToken(database.DB, jti, expiresAt); err != nil {
		return fail(c, fiber.StatusInternalServerError, "No se pudo cerrar la sesión")
	}

	return c.JSON(fiber.Map{"success": true, "mensaje": "Sesión cerrada correctamente"})
}
