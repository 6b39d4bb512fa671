package controllers

import (
	"gorm.io/gorm"

	"ieltscheck/backend/models"
)

// testTypeStat is one aggregate row of the per-test-type statistics queries.
type testTypeStat struct {
	TestType    models.TestType `json:"testType"`
	TotalTests  int64           `json:"totalTests"`
	AverageBand float64         `json:"averageBand"`
	HighestBand float64         `json:"highestBand"`
}

func testTypeStats(db *gorm.DB, userID string) ([]testTypeStat, error) {
	query := db.Model(&models.TestResult{}).
		Select("test_type, COUNT(*) AS total_tests, AVG(band_score) AS average_band, MAX(band_score) AS highest_band").
		Group("test_type")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var stats []testTypeStat
	if err := query.Scan(&stats).Error; err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []testTypeStat{}
	}
	return stats, nil
}
