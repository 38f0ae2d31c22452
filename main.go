package main

import (
	"log"
	"os"

	"gomart/config"
	"gomart/db"
	"gomart/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()

	// Initialize database
	db.InitDatabase(cfg.DBPath)
	if err := db.EnsureAdmin(db.DB, cfg.AdminName, cfg.AdminLogin, cfg.AdminPassword); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	// Create uploads directory if it doesn't exist
	if _, err := os.Stat(cfg.UploadDir); os.IsNotExist(err) {
		os.Mkdir(cfg.UploadDir, 0755)
	}
	routes.UploadDir = cfg.UploadDir

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Serve static files
	app.Static("/uploads", cfg.UploadDir)

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	log.Fatal(app.Listen(cfg.Addr))
}
