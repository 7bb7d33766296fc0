package handlers

import (
	"errors"
	"net/http"

	"album-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware verifies the bearer token and attaches the caller identity.
// Missing and expired tokens answer 401; a malformed or badly signed token
// answers 403.
func AuthMiddleware(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token = authHeader[7:]
		}

		if token == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Access denied, missing token"})
		}

		identity, err := users.ValidateToken(token)
		if err != nil {
			if errors.Is(err, services.ErrTokenExpired) {
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Token expired"})
			}
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "Invalid token"})
		}

		c.Locals("user_id", identity.UserID)
		c.Locals("email", identity.Email)
		return c.Next()
	}
}
