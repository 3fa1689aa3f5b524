package middleware

import (
	"strings"
	"time"

	config "github.com/escuelamanejo/backend/configs"
	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"success": false, "mensaje": "Token faltante o malformado"})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"success": false, "mensaje": "Token inválido o expirado"})
}

// TokenNotRevoked rejects tokens blacklisted by logout. The blacklist lives
// in the shared store so revocation holds across restarts and replicas.
func TokenNotRevoked() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Locals("user").(*jwt.Token)
		claims := token.Claims.(jwt.MapClaims)

		jti, _ := claims["jti"].(string)
		if jti == "" {
			return c.Next()
		}

		var revoked models.RevokedToken
		err := database.DB.First(&revoked, "jti = ?", jti).Error
		if err == nil {
			if revoked.ExpiresAt.Before(time.Now()) {
				// Lazy cleanup; the cron sweep handles the rest.
				database.DB.Delete(&models.RevokedToken{}, "jti = ?", jti)
				return c.Next()
			}
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"success": false, "mensaje": "La sesión fue cerrada, inicia sesión nuevamente"})
		}
		return c.Next()
	}
}

// RequireRoles is the single role gate: every endpoint states the roles it
// accepts instead of comparing strings inline.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Locals("user").(*jwt.Token)
		claims := token.Claims.(jwt.MapClaims)
		role, _ := claims["role"].(string)

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"success": false, "mensaje": "No tienes permisos para esta operación"})
	}
}

// CronTokenRequired gates the maintenance endpoints behind the static
// shared-secret bearer used by the scheduler, distinct from user tokens.
func CronTokenRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusForbidden).
				JSON(fiber.Map{"success": false, "mensaje": "Token requerido"})
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token != config.Config("CRON_API_TOKEN") {
			return c.Status(fiber.StatusForbidden).
				JSON(fiber.Map{"success": false, "mensaje": "Token inválido"})
		}
		return c.Next()
	}
}
