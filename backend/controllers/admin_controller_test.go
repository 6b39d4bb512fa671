package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ieltscheck/backend/models"
)

func TestAdminRoutes_ForbiddenForRegularUser(t *testing.T) {
	_, token := createUser(t, models.RoleUser)

	resp := doRequest(t, "GET", "/api/admin/dashboard", token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminDashboard(t *testing.T) {
	_, token := createUser(t, models.RoleAdmin)

	resp := doRequest(t, "GET", "/api/admin/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	overview, ok := result["overview"].(map[string]any)
	require.True(t, ok)
	assert.Greater(t, overview["totalUsers"], float64(0))
	assert.Greater(t, overview["totalQuestions"], float64(0))
}

func TestCreateQuestion(t *testing.T) {
	_, token := createUser(t, models.RoleAdmin)

	resp := doRequest(t, "POST", "/api/admin/test-questions", token, map[string]any{
		"testType":      "READING",
		"questionText":  "Which city is described in the passage?",
		"options":       []string{"Paris", "Lyon", "Nice", "Toulouse"},
		"correctAnswer": "Lyon",
		"passageText":   "The city on the Rhone has long been the gastronomic capital...",
		"difficulty":    "INTERMEDIATE",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	question := decodeBody(t, resp)["data"].(map[string]any)
	assert.NotEmpty(t, question["id"])
	assert.Equal(t, "Lyon", question["correctAnswer"])
}

func TestCreateQuestion_InvalidType(t *testing.T) {
	_, token := createUser(t, models.RoleAdmin)

	resp := doRequest(t, "POST", "/api/admin/test-questions", token, map[string]any{
		"testType":     "GRAMMAR",
		"questionText": "Choose the correct form.",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateQuestion(t *testing.T) {
	_, token := createUser(t, models.RoleAdmin)

	question := models.TestQuestion{
		TestType:      models.TestTypeReading,
		QuestionText:  "Original text",
		CorrectAnswer: "A",
	}
	require.NoError(t, db.Create(&question).Error)

	resp := doRequest(t, "PUT", "/api/admin/test-questions/"+question.ID, token, map[string]any{
		"questionText": "Updated text",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.TestQuestion
	require.NoError(t, db.First(&updated, "id = ?", question.ID).Error)
	assert.Equal(t, "Updated text", updated.QuestionText)
	assert.Equal(t, "A", updated.CorrectAnswer)
}

func TestUpdateQuestion_FrozenWhenReferenced(t *testing.T) {
	user, token := createUser(t, models.RoleAdmin)

	question := models.TestQuestion{
		TestType:      models.TestTypeReading,
		QuestionText:  "Referenced question",
		CorrectAnswer: "B",
	}
	require.NoError(t, db.Create(&question).Error)

	result := models.TestResult{
		UserID:         user.ID,
		TestType:       models.TestTypeReading,
		CorrectAnswers: []byte(`{"` + question.ID + `":"B"}`),
	}
	require.NoError(t, db.Create(&result).Error)

	resp := doRequest(t, "PUT", "/api/admin/test-questions/"+question.ID, token, map[string]any{
		"questionText": "Should not apply",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestDeleteQuestion_NotFound(t *testing.T) {
	_, token := createUser(t, models.RoleAdmin)

	resp := doRequest(t, "DELETE", "/api/admin/test-questions/no-such-id", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreatePromptAndTopic(t *testing.T) {
	_, token := createUser(t, models.RoleAdmin)

	resp := doRequest(t, "POST", "/api/admin/writing-prompts", token, map[string]any{
		"taskType":  "TASK_2",
		"prompt":    "Some people believe museums should be free. Discuss.",
		"wordLimit": 250,
		"timeLimit": 40,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, "POST", "/api/admin/speaking-topics", token, map[string]any{
		"part":      "PART_2",
		"topic":     "A useful skill",
		"questions": []string{"Describe a skill you learned recently."},
		"timeLimit": 3,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestAdminListUsers_Paginated(t *testing.T) {
	_, token := createUser(t, models.RoleAdmin)
	createUser(t, models.RoleUser)
	createUser(t, models.RoleUser)

	resp := doRequest(t, "GET", "/api/admin/users?page=1&limit=2", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	users, ok := result["data"].([]any)
	require.True(t, ok)
	assert.Len(t, users, 2)
	assert.Greater(t, result["total"], float64(2))
}

func TestUpdateUserRole_RequiresSuperAdmin(t *testing.T) {
	_, adminToken := createUser(t, models.RoleAdmin)
	target, _ := createUser(t, models.RoleUser)

	resp := doRequest(t, "PUT", "/api/admin/users/"+target.ID+"/role", adminToken, map[string]string{
		"role": "ADMIN",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateUserRole(t *testing.T) {
	_, superToken := createUser(t, models.RoleSuperAdmin)
	target, _ := createUser(t, models.RoleUser)

	resp := doRequest(t, "PUT", "/api/admin/users/"+target.ID+"/role", superToken, map[string]string{
		"role": "ADMIN",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", target.ID).Error)
	assert.Equal(t, models.RoleAdmin, updated.Role)
}

func TestCreateAdmin(t *testing.T) {
	_, superToken := createUser(t, models.RoleSuperAdmin)

	resp := doRequest(t, "POST", "/api/admin/admins", superToken, map[string]any{
		"username": "new_admin",
		"email":    "new_admin@example.com",
		"password": "password123",
		"role":     "ADMIN",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	admin := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "ADMIN", admin["role"])
}

func TestCreateAdmin_RejectsUserRole(t *testing.T) {
	_, superToken := createUser(t, models.RoleSuperAdmin)

	resp := doRequest(t, "POST", "/api/admin/admins", superToken, map[string]any{
		"username": "sneaky",
		"email":    "sneaky@example.com",
		"password": "password123",
		"role":     "USER",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteAdmin_TargetNotAdmin(t *testing.T) {
	_, superToken := createUser(t, models.RoleSuperAdmin)
	target, _ := createUser(t, models.RoleUser)

	resp := doRequest(t, "DELETE", "/api/admin/admins/"+target.ID, superToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminListResults_FilterByType(t *testing.T) {
	_, token := createUser(t, models.RoleAdmin)

	resp := doRequest(t, "GET", "/api/admin/test-results?testType=LISTENING", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decodeBody(t, resp)
	assert.Equal(t, true, result["success"])
}
