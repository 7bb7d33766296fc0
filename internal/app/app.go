package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"album-backend/internal/config"
	"album-backend/internal/db"
	"album-backend/internal/handlers"
	"album-backend/internal/repository"
	"album-backend/internal/services"
	"album-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func Run() {
	// Load Env
	if err := config.LoadEnv(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// A missing signing secret is a fatal misconfiguration, never defaulted
	jwtSecret := config.MustEnv("JWT_SECRET")

	// Init DB
	connString := config.GetEnv("DATABASE_URL", "")
	if connString == "" {
		// Fallback to individual vars
		connString = "postgres://" + config.GetEnv("POSTGRES_USER", "postgres") + ":" +
			config.GetEnv("POSTGRES_PASSWORD", "postgres") + "@" +
			config.GetEnv("POSTGRES_HOST", "localhost") + ":" +
			config.GetEnv("POSTGRES_PORT", "5432") + "/" +
			config.GetEnv("POSTGRES_DB", "albumdb") + "?sslmode=disable"
	}

	if err := db.InitDB(connString); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.CloseDB()

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Uploads directory, served statically below
	uploadDir := config.GetEnv("UPLOAD_DIR", "uploads")
	fileStore, err := storage.NewStore(uploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload dir: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepo(db.Pool)
	albumRepo := repository.NewAlbumRepo(db.Pool)
	photoRepo := repository.NewPhotoRepo(db.Pool)

	// Services
	userService := services.NewUserService(userRepo, jwtSecret)
	albumService := services.NewAlbumService(userRepo, albumRepo)
	photoService := services.NewPhotoService(albumRepo, photoRepo, fileStore)

	// Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit: storage.MaxFileSize + 1024*1024, // headroom over the per-file cap
	})

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Static("/uploads", uploadDir)

	// Public Routes
	app.Post("/users", handlers.RegisterHandler(userService))
	app.Post("/login", handlers.LoginHandler(userService))

	// Album and photo routes share one auth gate
	albums := app.Group("/albums", handlers.AuthMiddleware(userService))
	albums.Post("/", handlers.CreateAlbumHandler(albumService))
	albums.Get("/", handlers.ListAlbumsHandler(albumService))
	albums.Get("/:albumId", handlers.GetAlbumHandler(albumService))
	albums.Patch("/:albumId", handlers.UpdateAlbumHandler(albumService))
	albums.Delete("/:albumId", handlers.DeleteAlbumHandler(albumService))

	albums.Post("/:albumId/photos", handlers.CreatePhotoHandler(photoService))
	albums.Get("/:albumId/photos", handlers.ListPhotosHandler(photoService))
	albums.Get("/:albumId/photos/:photoId", handlers.GetPhotoHandler(photoService))
	albums.Patch("/:albumId/photos/:photoId", handlers.UpdatePhotoHandler(photoService))
	albums.Delete("/:albumId/photos/:photoId", handlers.DeletePhotoHandler(photoService))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Start Server
	port := config.GetEnv("PORT", "3001")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Block until signal
	log.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	log.Println("Server shutdown complete")
}
