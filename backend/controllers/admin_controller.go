package controllers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ieltscheck/backend/config"
	"ieltscheck/backend/models"
	"ieltscheck/backend/utils"
)

type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

type TestQuestionInput struct {
	TestType      models.TestType   `json:"testType" validate:"required"`
	QuestionText  string            `json:"questionText" validate:"required"`
	Options       []string          `json:"options"`
	CorrectAnswer string            `json:"correctAnswer"`
	AudioURL      string            `json:"audioUrl"`
	PassageText   string            `json:"passageText"`
	Difficulty    models.Difficulty `json:"difficulty"`
}

type WritingPromptInput struct {
	TaskType     models.TaskType   `json:"taskType" validate:"required"`
	Prompt       string            `json:"prompt" validate:"required"`
	Instructions string            `json:"instructions"`
	WordLimit    int               `json:"wordLimit" validate:"gte=0"`
	TimeLimit    int               `json:"timeLimit" validate:"gte=0"`
	Difficulty   models.Difficulty `json:"difficulty"`
}

type SpeakingTopicInput struct {
	Part       models.SpeakingPart `json:"part" validate:"required"`
	Topic      string              `json:"topic" validate:"required"`
	Questions  []string            `json:"questions"`
	TimeLimit  int                 `json:"timeLimit" validate:"gte=0"`
	Difficulty models.Difficulty   `json:"difficulty"`
}

type CreateAdminInput struct {
	Username  string      `json:"username" validate:"required,min=3,max=30"`
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=6"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      models.Role `json:"role" validate:"required"`
}

type UpdateRoleInput struct {
	Role models.Role `json:"role" validate:"required"`
}

func pagination(c *fiber.Ctx) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}

// Dashboard returns the system-wide overview for the admin console.
func (ad *AdminController) Dashboard(c *fiber.Ctx) error {
	var totalUsers, totalResults, totalQuestions, totalPrompts, totalTopics int64
	ad.DB.Model(&models.User{}).Count(&totalUsers)
	ad.DB.Model(&models.TestResult{}).Count(&totalResults)
	ad.DB.Model(&models.TestQuestion{}).Count(&totalQuestions)
	ad.DB.Model(&models.WritingPrompt{}).Count(&totalPrompts)
	ad.DB.Model(&models.SpeakingTopic{}).Count(&totalTopics)

	stats, err := testTypeStats(ad.DB, "")
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var recent []models.TestResult
	ad.DB.Preload("User").Order("created_at DESC").Limit(10).Find(&recent)

	return c.JSON(fiber.Map{
		"overview": fiber.Map{
			"totalUsers":       totalUsers,
			"totalTestResults": totalResults,
			"totalQuestions":   totalQuestions,
			"totalPrompts":     totalPrompts,
			"totalTopics":      totalTopics,
		},
		"testTypeStatistics": stats,
		"recentActivity":     recent,
	})
}

// ----- test questions -----

func (ad *AdminController) ListQuestions(c *fiber.Ctx) error {
	query := ad.DB.Model(&models.TestQuestion{}).Order("created_at DESC")
	if testType := c.Query("testType"); testType != "" {
		if !models.TestType(testType).Valid() {
			return utils.BadRequest(c, "Invalid test type")
		}
		query = query.Where("test_type = ?", testType)
	}

	var questions []models.TestQuestion
	if err := query.Find(&questions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(questions)
}

func (ad *AdminController) CreateQuestion(c *fiber.Ctx) error {
	var input TestQuestionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	if !input.TestType.Valid() {
		return utils.BadRequest(c, "Invalid test type")
	}
	if input.Difficulty != "" && !input.Difficulty.Valid() {
		return utils.BadRequest(c, "Invalid difficulty")
	}

	options, _ := json.Marshal(input.Options)
	question := models.TestQuestion{
		TestType:      input.TestType,
		QuestionText:  input.QuestionText,
		Options:       options,
		CorrectAnswer: input.CorrectAnswer,
		AudioURL:      input.AudioURL,
		PassageText:   input.PassageText,
		Difficulty:    input.Difficulty,
	}
	if err := ad.DB.Create(&question).Error; err != nil {
		return utils.InternalServerError(c, "Could not create test question")
	}
	return utils.Created(c, question)
}

func (ad *AdminController) UpdateQuestion(c *fiber.Ctx) error {
	var question models.TestQuestion
	if err := ad.DB.First(&question, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Test question not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	// Questions already referenced by a result are frozen to keep stored
	// answer snapshots meaningful.
	var used int64
	ad.DB.Model(&models.TestResult{}).
		Where("CAST(correct_answers AS TEXT) LIKE ?", "%\""+question.ID+"\"%").
		Count(&used)
	if used > 0 {
		return utils.Conflict(c, "Question is referenced by submitted results and cannot be changed")
	}

	var input TestQuestionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.TestType != "" && !input.TestType.Valid() {
		return utils.BadRequest(c, "Invalid test type")
	}
	if input.Difficulty != "" && !input.Difficulty.Valid() {
		return utils.BadRequest(c, "Invalid difficulty")
	}

	if input.TestType != "" {
		question.TestType = input.TestType
	}
	if input.QuestionText != "" {
		question.QuestionText = input.QuestionText
	}
	if input.Options != nil {
		options, _ := json.Marshal(input.Options)
		question.Options = options
	}
	if input.CorrectAnswer != "" {
		question.CorrectAnswer = input.CorrectAnswer
	}
	if input.AudioURL != "" {
		question.AudioURL = input.AudioURL
	}
	if input.PassageText != "" {
		question.PassageText = input.PassageText
	}
	if input.Difficulty != "" {
		question.Difficulty = input.Difficulty
	}

	if err := ad.DB.Save(&question).Error; err != nil {
		return utils.InternalServerError(c, "Could not update test question")
	}
	return c.JSON(question)
}

func (ad *AdminController) DeleteQuestion(c *fiber.Ctx) error {
	return ad.deleteByID(c, &models.TestQuestion{}, "Test question not found")
}

// ----- writing prompts -----

func (ad *AdminController) ListPrompts(c *fiber.Ctx) error {
	query := ad.DB.Model(&models.WritingPrompt{}).Order("created_at DESC")
	if taskType := c.Query("taskType"); taskType != "" {
		if !models.TaskType(taskType).Valid() {
			return utils.BadRequest(c, "Invalid task type")
		}
		query = query.Where("task_type = ?", taskType)
	}

	var prompts []models.WritingPrompt
	if err := query.Find(&prompts).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(prompts)
}

func (ad *AdminController) CreatePrompt(c *fiber.Ctx) error {
	var input WritingPromptInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	if !input.TaskType.Valid() {
		return utils.BadRequest(c, "Invalid task type")
	}

	prompt := models.WritingPrompt{
		TaskType:     input.TaskType,
		Prompt:       input.Prompt,
		Instructions: input.Instructions,
		WordLimit:    input.WordLimit,
		TimeLimit:    input.TimeLimit,
		Difficulty:   input.Difficulty,
	}
	if err := ad.DB.Create(&prompt).Error; err != nil {
		return utils.InternalServerError(c, "Could not create writing prompt")
	}
	return utils.Created(c, prompt)
}

func (ad *AdminController) UpdatePrompt(c *fiber.Ctx) error {
	var prompt models.WritingPrompt
	if err := ad.DB.First(&prompt, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Writing prompt not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input WritingPromptInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.TaskType != "" && !input.TaskType.Valid() {
		return utils.BadRequest(c, "Invalid task type")
	}

	if input.TaskType != "" {
		prompt.TaskType = input.TaskType
	}
	if input.Prompt != "" {
		prompt.Prompt = input.Prompt
	}
	if input.Instructions != "" {
		prompt.Instructions = input.Instructions
	}
	if input.WordLimit > 0 {
		prompt.WordLimit = input.WordLimit
	}
	if input.TimeLimit > 0 {
		prompt.TimeLimit = input.TimeLimit
	}
	if input.Difficulty != "" {
		prompt.Difficulty = input.Difficulty
	}

	if err := ad.DB.Save(&prompt).Error; err != nil {
		return utils.InternalServerError(c, "Could not update writing prompt")
	}
	return c.JSON(prompt)
}

func (ad *AdminController) DeletePrompt(c *fiber.Ctx) error {
	return ad.deleteByID(c, &models.WritingPrompt{}, "Writing prompt not found")
}

// ----- speaking topics -----

func (ad *AdminController) ListTopics(c *fiber.Ctx) error {
	query := ad.DB.Model(&models.SpeakingTopic{}).Order("created_at DESC")
	if part := c.Query("part"); part != "" {
		if !models.SpeakingPart(part).Valid() {
			return utils.BadRequest(c, "Invalid speaking part")
		}
		query = query.Where("part = ?", part)
	}

	var topics []models.SpeakingTopic
	if err := query.Find(&topics).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(topics)
}

func (ad *AdminController) CreateTopic(c *fiber.Ctx) error {
	var input SpeakingTopicInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	if !input.Part.Valid() {
		return utils.BadRequest(c, "Invalid speaking part")
	}

	questions, _ := json.Marshal(input.Questions)
	topic := models.SpeakingTopic{
		Part:       input.Part,
		Topic:      input.Topic,
		Questions:  questions,
		TimeLimit:  input.TimeLimit,
		Difficulty: input.Difficulty,
	}
	if err := ad.DB.Create(&topic).Error; err != nil {
		return utils.InternalServerError(c, "Could not create speaking topic")
	}
	return utils.Created(c, topic)
}

func (ad *AdminController) UpdateTopic(c *fiber.Ctx) error {
	var topic models.SpeakingTopic
	if err := ad.DB.First(&topic, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Speaking topic not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input SpeakingTopicInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Part != "" && !input.Part.Valid() {
		return utils.BadRequest(c, "Invalid speaking part")
	}

	if input.Part != "" {
		topic.Part = input.Part
	}
	if input.Topic != "" {
		topic.Topic = input.Topic
	}
	if input.Questions != nil {
		questions, _ := json.Marshal(input.Questions)
		topic.Questions = questions
	}
	if input.TimeLimit > 0 {
		topic.TimeLimit = input.TimeLimit
	}
	if input.Difficulty != "" {
		topic.Difficulty = input.Difficulty
	}

	if err := ad.DB.Save(&topic).Error; err != nil {
		return utils.InternalServerError(c, "Could not update speaking topic")
	}
	return c.JSON(topic)
}

func (ad *AdminController) DeleteTopic(c *fiber.Ctx) error {
	return ad.deleteByID(c, &models.SpeakingTopic{}, "Speaking topic not found")
}

// ----- users -----

func (ad *AdminController) ListUsers(c *fiber.Ctx) error {
	page, limit, offset := pagination(c)

	var total int64
	ad.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	if err := ad.DB.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Paginate(c, users, total, page, limit)
}

func (ad *AdminController) GetUserDetails(c *fiber.Ctx) error {
	var user models.User
	err := ad.DB.Preload("Results", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Limit(20)
	}).First(&user, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var resultCount int64
	ad.DB.Model(&models.TestResult{}).Where("user_id = ?", user.ID).Count(&resultCount)

	return c.JSON(fiber.Map{
		"user":        user,
		"results":     user.Results,
		"resultCount": resultCount,
	})
}

func (ad *AdminController) UpdateUserRole(c *fiber.Ctx) error {
	var input UpdateRoleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if !input.Role.Valid() {
		return utils.BadRequest(c, "Invalid role")
	}

	var user models.User
	if err := ad.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	user.Role = input.Role
	if err := ad.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user role")
	}
	return c.JSON(user)
}

func (ad *AdminController) DeleteUser(c *fiber.Ctx) error {
	var user models.User
	if err := ad.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := ad.DB.Select("Results", "Sessions").Delete(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete user")
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// ----- test results -----

func (ad *AdminController) ListResults(c *fiber.Ctx) error {
	page, limit, offset := pagination(c)

	query := ad.DB.Model(&models.TestResult{})
	if testType := c.Query("testType"); testType != "" {
		if !models.TestType(testType).Valid() {
			return utils.BadRequest(c, "Invalid test type")
		}
		query = query.Where("test_type = ?", testType)
	}

	var total int64
	query.Count(&total)

	var results []models.TestResult
	if err := query.Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&results).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Paginate(c, results, total, page, limit)
}

func (ad *AdminController) DeleteResult(c *fiber.Ctx) error {
	return ad.deleteByID(c, &models.TestResult{}, "Test result not found")
}

// ----- admin management (super admin only) -----

func (ad *AdminController) CreateAdmin(c *fiber.Ctx) error {
	var input CreateAdminInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	if !input.Role.Valid() || !input.Role.IsAdmin() {
		return utils.BadRequest(c, "Role must be ADMIN or SUPER_ADMIN")
	}

	var existing models.User
	err := ad.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "Username or email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	admin := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashed),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
	}
	if err := ad.DB.Create(&admin).Error; err != nil {
		return utils.InternalServerError(c, "Could not create admin")
	}
	return utils.Created(c, admin)
}

func (ad *AdminController) DeleteAdmin(c *fiber.Ctx) error {
	var admin models.User
	if err := ad.DB.First(&admin, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Admin not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if !admin.Role.IsAdmin() {
		return utils.BadRequest(c, "This user is not an admin")
	}

	if err := ad.DB.Select("Results", "Sessions").Delete(&admin).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete admin")
	}
	return c.JSON(fiber.Map{"message": "Admin deleted successfully"})
}

func (ad *AdminController) deleteByID(c *fiber.Ctx, model any, notFoundMsg string) error {
	err := ad.DB.First(model, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, notFoundMsg)
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := ad.DB.Delete(model).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete record")
	}
	return c.JSON(fiber.Map{"message": "Deleted successfully"})
}
