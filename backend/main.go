package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"ieltscheck/backend/config"
	"ieltscheck/backend/database"
	"ieltscheck/backend/evaluation"
	"ieltscheck/backend/middleware"
	"ieltscheck/backend/routes"
	"ieltscheck/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger("ieltscheck-api")

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Error initializing database: %v", err)
	}
	if err := utils.Migrate(db); err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}
	if cfg.SeedData {
		if err := database.Seed(db, logger); err != nil {
			logger.Fatalf("Error seeding database: %v", err)
		}
	}

	evaluator := evaluation.New(cfg, logger)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:   "IELTS Check API",
		BodyLimit: 15 * 1024 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow))

	// Uploaded speaking recordings are served back for playback.
	app.Static("/uploads", cfg.UploadDir)

	// Setup routes
	routes.SetupRoutes(app, db, cfg, evaluator, logger)

	// Shut down cleanly on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatalf("Error starting server: %v", err)
	}

	if err := utils.CloseDB(db); err != nil {
		logger.Errorf("Error closing database: %v", err)
	}
}
