package handlers

import (
	"errors"
	"log"
	"net/http"

	"album-backend/internal/models"
	"album-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RegisterHandler creates a new user account
func RegisterHandler(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}
		if req.Email == "" || req.Password == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
		}

		user, err := users.Register(c.Context(), req)
		if err != nil {
			if errors.Is(err, services.ErrUserExists) {
				return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "User with this email already exists"})
			}
			log.Printf("Error [Register]: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating user"})
		}
		return c.Status(http.StatusCreated).JSON(user)
	}
}

// LoginHandler verifies credentials and returns a bearer token
func LoginHandler(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}
		if req.Email == "" || req.Password == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
		}

		token, err := users.Login(c.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
			case errors.Is(err, services.ErrInvalidPassword):
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid password"})
			}
			log.Printf("Error [Login]: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to log in"})
		}
		return c.JSON(models.AuthResponse{Token: token})
	}
}
