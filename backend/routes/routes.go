package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ieltscheck/backend/config"
	"ieltscheck/backend/controllers"
	"ieltscheck/backend/evaluation"
	"ieltscheck/backend/middleware"
	"ieltscheck/backend/models"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, evaluator evaluation.Evaluator, log *logrus.Logger) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "IELTS Check API",
			"version": "1.0",
			"status":  "running",
		})
	})
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authMiddleware := middleware.AuthMiddleware(db, cfg)
	adminMiddleware := middleware.RequireAdmin()
	superAdminMiddleware := middleware.RequireRole(models.RoleSuperAdmin)

	// Auth routes get a stricter limit to slow down credential guessing.
	authController := controllers.NewAuthController(db, cfg)
	auth := app.Group("/api/auth", middleware.RateLimiter(cfg.AuthRateLimitMax, cfg.RateLimitWindow))
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Get("/profile", authMiddleware, authController.Profile)
	auth.Post("/logout", authMiddleware, authController.Logout)

	// Test-taking routes
	testsController := controllers.NewTestsController(db, cfg, evaluator, log)
	tests := app.Group("/api/tests", authMiddleware)
	tests.Post("/sessions", testsController.StartSession)
	tests.Get("/questions/:testType", testsController.GetQuestions)
	tests.Get("/writing-prompts", testsController.GetWritingPrompts)
	tests.Get("/speaking-topics", testsController.GetSpeakingTopics)
	tests.Post("/submit", testsController.SubmitListeningReading)
	tests.Post("/submit/writing", testsController.SubmitWriting)
	tests.Post("/submit/speaking", testsController.SubmitSpeaking)
	tests.Post("/upload-audio", testsController.UploadAudio)

	// Results routes
	resultsController := controllers.NewResultsController(db, cfg)
	results := app.Group("/api/results", authMiddleware)
	results.Get("/", resultsController.GetMyResults)
	results.Get("/stats", resultsController.GetMyStats)
	results.Get("/stats/global", resultsController.GetGlobalStats)
	results.Get("/type/:testType", resultsController.GetMyResultsByType)
	results.Get("/:id", resultsController.GetResult)
	results.Delete("/:id", resultsController.DeleteResult)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	users := app.Group("/api/users", authMiddleware)
	users.Get("/me", userController.Me)
	users.Put("/me", userController.UpdateMe)
	users.Get("/me/stats", userController.MyStats)
	users.Get("/", adminMiddleware, userController.ListUsers)
	users.Post("/", adminMiddleware, userController.CreateUser)
	users.Get("/:id", userController.GetUser)
	users.Get("/:id/stats", userController.GetUserStats)
	users.Put("/:id", userController.UpdateUser)
	users.Delete("/:id", userController.DeleteUser)

	// Admin routes
	adminController := controllers.NewAdminController(db, cfg)
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)
	admin.Get("/dashboard", adminController.Dashboard)

	admin.Get("/test-questions", adminController.ListQuestions)
	admin.Post("/test-questions", adminController.CreateQuestion)
	admin.Put("/test-questions/:id", adminController.UpdateQuestion)
	admin.Delete("/test-questions/:id", adminController.DeleteQuestion)

	admin.Get("/writing-prompts", adminController.ListPrompts)
	admin.Post("/writing-prompts", adminController.CreatePrompt)
	admin.Put("/writing-prompts/:id", adminController.UpdatePrompt)
	admin.Delete("/writing-prompts/:id", adminController.DeletePrompt)

	admin.Get("/speaking-topics", adminController.ListTopics)
	admin.Post("/speaking-topics", adminController.CreateTopic)
	admin.Put("/speaking-topics/:id", adminController.UpdateTopic)
	admin.Delete("/speaking-topics/:id", adminController.DeleteTopic)

	admin.Get("/users", adminController.ListUsers)
	admin.Get("/users/:id", adminController.GetUserDetails)
	admin.Put("/users/:id/role", superAdminMiddleware, adminController.UpdateUserRole)
	admin.Delete("/users/:id", superAdminMiddleware, adminController.DeleteUser)

	admin.Get("/test-results", adminController.ListResults)
	admin.Delete("/test-results/:id", adminController.DeleteResult)

	admin.Post("/admins", superAdminMiddleware, adminController.CreateAdmin)
	admin.Delete("/admins/:id", superAdminMiddleware, adminController.DeleteAdmin)
}
