package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ieltscheck/backend/config"
	"ieltscheck/backend/middleware"
	"ieltscheck/backend/models"
	"ieltscheck/backend/utils"
)

type ResultsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewResultsController(db *gorm.DB, cfg *config.Config) *ResultsController {
	return &ResultsController{DB: db, Cfg: cfg}
}

// GetMyResults returns all of the caller's results, newest first.
func (rc *ResultsController) GetMyResults(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var results []models.TestResult
	if err := rc.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(results)
}

// GetMyResultsByType returns the caller's results for one test type.
func (rc *ResultsController) GetMyResultsByType(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	testType, err := models.ParseTestType(c.Params("testType"))
	if err != nil {
		return utils.BadRequest(c, "Invalid test type")
	}

	var results []models.TestResult
	if err := rc.DB.Where("user_id = ? AND test_type = ?", user.ID, testType).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(results)
}

/// GetMyStats aggregates the caller's progress: totals, per-type averages,
// best and most recent results.
func (rc *ResultsController) GetMyStats(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var totalTests int64
	if err := rc.DB.Model(&models.TestResult{}).
		Where("user_id = ?", user.ID).
		Count(&totalTests).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	stats, err := testTypeStats(rc.DB, user.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var averageBand float64
	rc.DB.Model(&models.TestResult{}).
		Where("user_id = ?", user.ID).
		Select("COALESCE(AVG(band_score), 0)").
		Scan(&averageBand)

	var bestResults []models.TestResult
	rc.DB.Where("user_id = ?", user.ID).
		Order("band_score DESC").
		Limit(5).
		Find(&bestResults)

	var recentResults []models.TestResult
	rc.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(10).
		Find(&recentResults)

	return c.JSON(fiber.Map{
		"totalTests":         totalTests,
		"averageBandScore":   averageBand,
		"testTypeStatistics": stats,
		"bestResults":        bestResults,
		"recentResults":      recentResults,
	})
}

// GetGlobalStats is the platform-wide statistics view for administrators.
func (rc *ResultsController) GetGlobalStats(c *fiber.Ctx) error {
	var totalUsers, totalTests int64
	rc.DB.Model(&models.User{}).Count(&totalUsers)
	rc.DB.Model(&models.TestResult{}).Count(&totalTests)

	stats, err := testTypeStats(rc.DB, "")
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	type activeUser struct {
		UserID     string `json:"userId"`
		Username   string `json:"username"`
		Email      string `json:"email"`
		TotalTests int64  `json:"totalTests"`
	}
	var mostActive []activeUser
	rc.DB.Model(&models.TestResult{}).
		Select("test_results.user_id, users.username, users.email, COUNT(*) AS total_tests").
		Joins("JOIN users ON users.id = test_results.user_id").
		Group("test_results.user_id, users.username, users.email").
		Order("total_tests DESC").
		Limit(10).
		Scan(&mostActive)

	type dailyCount struct {
		Day   string `json:"day"`
		Count int64  `json:"count"`
	}
	var dailyActivity []dailyCount
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	rc.DB.Model(&models.TestResult{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", thirtyDaysAgo).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&dailyActivity)

	return c.JSON(fiber.Map{
		"totalUsers":         totalUsers,
		"totalTests":         totalTests,
		"testTypeStatistics": stats,
		"mostActiveUsers":    mostActive,
		"dailyActivity":      dailyActivity,
	})
}

// GetResult returns one of the caller's results, including its session.
func (rc *ResultsController) GetResult(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var result models.TestResult
	err := rc.DB.Preload("Session").
		Where("id = ? AND user_id = ?", c.Params("id"), user.ID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Test result not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(result)
}

// DeleteResult removes one of the caller's own results.
func (rc *ResultsController) DeleteResult(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var result models.TestResult
	err := rc.DB.Where("id = ? AND user_id = ?", c.Params("id"), user.ID).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Test result not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := rc.DB.Delete(&result).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete test result")
	}
	return c.JSON(fiber.Map{"message": "Test result deleted successfully"})
}
