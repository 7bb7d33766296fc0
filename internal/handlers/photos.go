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

func parsePhotoPath(c *fiber.Ctx) (albumID, photoID int, ok bool) {
	albumID, err := strconv.Atoi(c.Params("albumId"))
	if err != nil {
		return 0, 0, false
	}
	photoID, err = strconv.Atoi(c.Params("photoId"))
	if err != nil {
		return 0, 0, false
	}
	return albumID, photoID, true
}

func photoCreateError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNoFile):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "No file uploaded or invalid file type"})
	case errors.Is(err, services.ErrFileTooLarge):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "File too large - max 5 MB"})
	case errors.Is(err, services.ErrMissingFields):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": `Missing required fields: "title" and "date"`})
	case errors.Is(err, services.ErrInvalidDate):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": `Invalid "date" format, must be ISO 8601`})
	case errors.Is(err, services.ErrInvalidColor):
		return c.Status(http.StatusBadRequest).
			JSON(fiber.Map{"error": `Invalid "color" format, must be a HEX code (e.g., #FFF or #FFFFFF)`})
	case errors.Is(err, services.ErrAlbumNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Album not found"})
	}
	log.Printf("Error [CreatePhoto]: %v", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add photo"})
}

// CreatePhotoHandler accepts a multipart form with a "photo" file plus
// title/description/date/color fields
func CreatePhotoHandler(photos *services.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		albumID, err := strconv.Atoi(c.Params("albumId"))
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": `Invalid "albumId" format`})
		}

		// A missing or filtered-out file is reported by the service
		fileHeader, _ := c.FormFile("photo")

		in := services.CreatePhotoInput{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Date:        c.FormValue("date"),
			Color:       c.FormValue("color"),
			File:        fileHeader,
		}

		photo, err := photos.Create(c.Context(), albumID, in)
		if err != nil {
			return photoCreateError(c, err)
		}
		return c.Status(http.StatusCreated).JSON(photo)
	}
}

// ListPhotosHandler lists an album's photos as projections
func ListPhotosHandler(photos *services.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		albumID, err := strconv.Atoi(c.Params("albumId"))
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": `Invalid "albumId" format`})
		}

		views, err := photos.ListByAlbum(c.Context(), albumID)
		if err != nil {
			if errors.Is(err, services.ErrAlbumNotFound) {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Album not found"})
			}
			log.Printf("Error [ListPhotos]: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Error retrieving photos"})
		}
		return c.JSON(views)
	}
}

// GetPhotoHandler returns one photo scoped to its album
func GetPhotoHandler(photos *services.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		albumID, photoID, ok := parsePhotoPath(c)
		if !ok {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": `Invalid "albumId" or "photoId" format`})
		}

		view, err := photos.Get(c.Context(), albumID, photoID)
		if err != nil {
			if errors.Is(err, services.ErrPhotoNotFound) {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Photo not found"})
			}
			log.Printf("Error [GetPhoto]: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Error retrieving photo"})
		}
		return c.JSON(view)
	}
}

// UpdatePhotoHandler applies a partial update of title/description/date/color
func UpdatePhotoHandler(photos *services.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		albumID, photoID, ok := parsePhotoPath(c)
		if !ok {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": `Invalid "albumId" or "photoId" format`})
		}

		var req models.UpdatePhotoRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}

		view, err := photos.Update(c.Context(), albumID, photoID, req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidDate):
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": `Invalid "date" format, must be ISO 8601`})
			case errors.Is(err, services.ErrInvalidColor):
				return c.Status(http.StatusBadRequest).
					JSON(fiber.Map{"error": `Invalid "color" format, must be a HEX code (e.g., #FFF or #FFFFFF)`})
			case errors.Is(err, services.ErrPhotoNotFound):
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Photo not found"})
			}
			log.Printf("Error [UpdatePhoto]: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update photo"})
		}
		return c.JSON(view)
	}
}

// DeletePhotoHandler deletes the record and best-effort removes the file
func DeletePhotoHandler(photos *services.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		albumID, photoID, ok := parsePhotoPath(c)
		if !ok {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": `Invalid "albumId" or "photoId" format`})
		}

		if err := photos.Delete(c.Context(), albumID, photoID); err != nil {
			if errors.Is(err, services.ErrPhotoNotFound) {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Photo not found"})
			}
			log.Printf("Error [DeletePhoto]: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete photo"})
		}
		return c.JSON(fiber.Map{"message": "Photo successfully deleted"})
	}
}
