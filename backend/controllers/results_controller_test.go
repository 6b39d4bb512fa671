package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ieltscheck/backend/models"
)

func submitListening(t *testing.T, token string, responses map[string]any) map[string]any {
	t.Helper()

	resp := doRequest(t, "POST", "/api/tests/submit", token, map[string]any{
		"testType":  "LISTENING",
		"responses": responses,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decodeBody(t, resp)["data"].(map[string]any)
}

func TestGetMyResults(t *testing.T) {
	_, token := createUser(t, models.RoleUser)
	submitListening(t, token, listeningAnswers)
	submitListening(t, token, map[string]any{"listening-1": "Doctor"})

	resp := doRequest(t, "GET", "/api/results/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var results []map[string]any
	decodeInto(t, resp, &results)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "LISTENING", r["testType"])
	}
}

func TestGetMyResultsByType(t *testing.T) {
	_, token := createUser(t, models.RoleUser)
	submitListening(t, token, listeningAnswers)

	resp := doRequest(t, "GET", "/api/results/type/READING", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var results []map[string]any
	decodeInto(t, resp, &results)
	assert.Empty(t, results)

	resp = doRequest(t, "GET", "/api/results/type/LISTENING", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &results)
	assert.Len(t, results, 1)
}

func TestGetMyResultsByType_Invalid(t *testing.T) {
	_, token := createUser(t, models.RoleUser)

	resp := doRequest(t, "GET", "/api/results/type/GRAMMAR", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetMyStats(t *testing.T) {
	_, token := createUser(t, models.RoleUser)
	submitListening(t, token, listeningAnswers)

	resp := doRequest(t, "GET", "/api/results/stats", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stats := decodeBody(t, resp)
	assert.Equal(t, float64(1), stats["totalTests"])
	assert.Equal(t, float64(9), stats["averageBandScore"])
	assert.NotEmpty(t, stats["testTypeStatistics"])
	assert.NotEmpty(t, stats["recentResults"])
}

func TestGetGlobalStats(t *testing.T) {
	_, token := createUser(t, models.RoleUser)
	submitListening(t, token, listeningAnswers)

	resp := doRequest(t, "GET", "/api/results/stats/global", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stats := decodeBody(t, resp)
	assert.Greater(t, stats["totalUsers"], float64(0))
	assert.Greater(t, stats["totalTests"], float64(0))
}

func TestGetResult_OwnerOnly(t *testing.T) {
	_, ownerToken := createUser(t, models.RoleUser)
	_, otherToken := createUser(t, models.RoleUser)
	result := submitListening(t, ownerToken, listeningAnswers)
	id := result["id"].(string)

	resp := doRequest(t, "GET", "/api/results/"+id, ownerToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// another user cannot read it
	resp = doRequest(t, "GET", "/api/results/"+id, otherToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteResult(t *testing.T) {
	user, token := createUser(t, models.RoleUser)
	result := submitListening(t, token, listeningAnswers)
	id := result["id"].(string)

	resp := doRequest(t, "DELETE", "/api/results/"+id, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.TestResult{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteResult_NotOwner(t *testing.T) {
	_, ownerToken := createUser(t, models.RoleUser)
	_, otherToken := createUser(t, models.RoleUser)
	result := submitListening(t, ownerToken, listeningAnswers)

	resp := doRequest(t, "DELETE", "/api/results/"+result["id"].(string), otherToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
