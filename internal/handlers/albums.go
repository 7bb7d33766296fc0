package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"album-backend/internal/models"
	"album-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// parseAlbumID rejects non-integer path ids before any store access
func parseAlbumID(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("albumId"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// CreateAlbumHandler creates an album for the user named in the body
func CreateAlbumHandler(albums *services.AlbumService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateAlbumRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}
		if req.Title == "" || req.UserID == nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": `"title" and "userId" are required`})
		}

		album, err := albums.Create(c.Context(), *req.UserID, req.Title, req.Description)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
			case errors.Is(err, services.ErrDuplicateAlbum):
				return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "Album with this title already exists"})
			}
			log.Printf("Error [CreateAlbum]: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create album"})
		}
		return c.Status(http.StatusCreated).JSON(album)
	}
}

// ListAlbumsHandler lists the authenticated caller's albums
func ListAlbumsHandler(albums *services.AlbumService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)

		items, err := albums.ListByOwner(c.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
			}
			log.Printf("Error [ListAlbums]: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Error retrieving albums"})
		}
		return c.JSON(items)
	}
}

// GetAlbumHandler returns the full album record
func GetAlbumHandler(albums *services.AlbumService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		albumID, ok := parseAlbumID(c)
		if !ok {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": `Invalid "albumId" format`})
		}

		album, err := albums.Get(c.Context(), albumID)
		if err != nil {
			if errors.Is(err, services.ErrAlbumNotFound) {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Album not found"})
			}
			log.Printf("Error [GetAlbum]: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get album"})
		}
		return c.JSON(album)
	}
}

// UpdateAlbumHandler applies a partial update of title and/or description
func UpdateAlbumHandler(albums *services.AlbumService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		albumID, ok := parseAlbumID(c)
		if !ok {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": `Invalid "albumId" format`})
		}

		var req models.UpdateAlbumRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}
		if req.Title == nil && req.Description == nil {
			return c.Status(http.StatusBadRequest).
				JSON(fiber.Map{"error": `At least one of "title" or "description" is required to update an album`})
		}

		album, err := albums.Update(c.Context(), albumID, req.Title, req.Description)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAlbumNotFound):
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Album not found"})
			case errors.Is(err, services.ErrDuplicateAlbum):
				return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "Album with this title already exists"})
			}
			log.Printf("Error [UpdateAlbum]: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update album"})
		}
		return c.JSON(album)
	}
}

// DeleteAlbumHandler deletes an empty album
func DeleteAlbumHandler(albums *services.AlbumService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		albumID, ok := parseAlbumID(c)
		if !ok {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": `Invalid "albumId" format`})
		}

		if err := albums.Delete(c.Context(), albumID); err != nil {
			switch {
			case errors.Is(err, services.ErrAlbumNotFound):
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Album not found"})
			case errors.Is(err, services.ErrAlbumNotEmpty):
				return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "Album still contains photos"})
			}
			log.Printf("Error [DeleteAlbum]: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete album"})
		}
		return c.JSON(fiber.Map{"message": "Album successfully deleted"})
	}
}
