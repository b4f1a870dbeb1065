package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/neuronstudy/backend/config"
	"github.com/neuronstudy/backend/middleware"
	"github.com/neuronstudy/backend/routes"
	"github.com/neuronstudy/backend/services"
	"github.com/neuronstudy/backend/store"
	"github.com/neuronstudy/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := store.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Image storage is optional: without a bucket the upload endpoint
	// reports itself unavailable.
	var uploader services.ImageUploader
	if cfg.GCSBucket != "" {
		gcs, err := services.NewGCSUploader(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Error initializing image storage: %v", err)
		}
		uploader = gcs
	} else {
		logger.Println("GCS_BUCKET not set, image uploads disabled")
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	saver := routes.SetupRoutes(app, db, cfg, uploader, logger)

	// Flush pending scroll writes on shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		saver.Close()
		_ = app.Shutdown()
	}()

	// Start server
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
