package controllers

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ieltscheck/backend/config"
	"ieltscheck/backend/evaluation"
	"ieltscheck/backend/middleware"
	"ieltscheck/backend/models"
	"ieltscheck/backend/scoring"
	"ieltscheck/backend/utils"
)

const maxAudioSize = 10 * 1024 * 1024 // 10MB

type TestsController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Evaluator evaluation.Evaluator
	Log       *logrus.Logger
}

func NewTestsController(db *gorm.DB, cfg *config.Config, evaluator evaluation.Evaluator, log *logrus.Logger) *TestsController {
	return &TestsController{DB: db, Cfg: cfg, Evaluator: evaluator, Log: log}
}

type StartSessionInput struct {
	TestType models.TestType `json:"testType" validate:"required"`
}

type SubmitTestInput struct {
	TestType  models.TestType `json:"testType" validate:"required"`
	Responses map[string]any  `json:"responses" validate:"required"`
	SessionID string          `json:"sessionId"`
}

type WritingSubmissionInput struct {
	PromptID string          `json:"promptId" validate:"required"`
	TaskType models.TaskType `json:"taskType" validate:"required"`
	Text     string          `json:"text" validate:"required"`
}

type SpeakingSubmissionInput struct {
	TopicID    string              `json:"topicId" validate:"required"`
	Part       models.SpeakingPart `json:"part" validate:"required"`
	Transcript string              `json:"transcript" validate:"required"`
}

// questionView is the question payload served to test takers: everything
// except the correct answer.
type questionView struct {
	ID           string            `json:"id"`
	TestType     models.TestType   `json:"testType"`
	QuestionText string            `json:"questionText"`
	Options      datatypes.JSON    `json:"options"`
	AudioURL     string            `json:"audioUrl,omitempty"`
	PassageText  string            `json:"passageText,omitempty"`
	Difficulty   models.Difficulty `json:"difficulty"`
}

// StartSession godoc
// @Summary Start a test session
// @Tags tests
// @Accept json
// @Produce json
// @Success 201 {object} models.TestSession
// @Router /tests/sessions/start [post]
func (tc *TestsController) StartSession(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input StartSessionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if !input.TestType.Valid() {
		return utils.BadRequest(c, "Invalid test type")
	}

	session := models.TestSession{
		UserID:   user.ID,
		TestType: input.TestType,
		Status:   models.SessionInProgress,
	}
	if err := tc.DB.Create(&session).Error; err != nil {
		return utils.InternalServerError(c, "Could not create test session")
	}

	return utils.Created(c, session)
}

// GetQuestions returns the ordered question set for a test type with correct
// answers stripped out.
func (tc *TestsController) GetQuestions(c *fiber.Ctx) error {
	testType, err := models.ParseTestType(c.Params("testType"))
	if err != nil {
		return utils.BadRequest(c, "Invalid test type")
	}

	var questions []models.TestQuestion
	if err := tc.DB.Where("test_type = ?", testType).
		Order("created_at ASC").
		Find(&questions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, questionView{
			ID:           q.ID,
			TestType:     q.TestType,
			QuestionText: q.QuestionText,
			Options:      q.Options,
			AudioURL:     q.AudioURL,
			PassageText:  q.PassageText,
			Difficulty:   q.Difficulty,
		})
	}
	return c.JSON(views)
}

func (tc *TestsController) GetWritingPrompts(c *fiber.Ctx) error {
	query := tc.DB.Model(&models.WritingPrompt{}).Order("created_at DESC")
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

func (tc *TestsController) GetSpeakingTopics(c *fiber.Ctx) error {
	query := tc.DB.Model(&models.SpeakingTopic{}).Order("created_at DESC")
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

// SubmitListeningReading godoc
// @Summary Submit a Listening or Reading test for grading
// @Tags tests
// @Accept json
// @Produce json
// @Success 201 {object} models.TestResult
// @Failure 404 {object} utils.ErrorResponse
// @Router /tests/submit/listening-reading [post]
func (tc *TestsController) SubmitListeningReading(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input SubmitTestInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	if !input.TestType.Objective() {
		return utils.BadRequest(c, "This endpoint only grades Listening and Reading tests")
	}

	// When a session is referenced it must exist, belong to the caller and
	// carry the same test type as the submission.
	var session *models.TestSession
	if input.SessionID != "" {
		session = &models.TestSession{}
		err := tc.DB.Where("id = ? AND user_id = ?", input.SessionID, user.ID).First(session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound(c, "Test session not found")
			}
			return utils.InternalServerError(c, "Could not query database")
		}
		if session.TestType != input.TestType {
			return utils.BadRequest(c, "Session test type does not match the submission")
		}
	}

	var questions []models.TestQuestion
	if err := tc.DB.Where("test_type = ?", input.TestType).
		Order("created_at ASC").
		Find(&questions).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	summary, err := scoring.Grade(input.TestType, questions, input.Responses)
	if err != nil {
		if errors.Is(err, scoring.ErrNoQuestions) {
			return utils.NotFound(c, "No questions available for this test type")
		}
		return utils.InternalServerError(c, "Could not grade submission")
	}

	responsesJSON, err := json.Marshal(input.Responses)
	if err != nil {
		return utils.BadRequest(c, "Responses are not serializable")
	}
	answersJSON, _ := json.Marshal(summary.AnswerKey)

	result := models.TestResult{
		UserID:         user.ID,
		TestType:       input.TestType,
		Score:          float64(summary.Correct),
		BandScore:      summary.Band,
		MaxScore:       float64(summary.Total),
		Responses:      responsesJSON,
		CorrectAnswers: answersJSON,
		Feedback:       summary.Feedback,
	}
	if session != nil {
		result.SessionID = &session.ID
	}

	if err := tc.DB.Create(&result).Error; err != nil {
		return utils.InternalServerError(c, "Could not save test result")
	}

	if session != nil {
		now := time.Now()
		if err := tc.DB.Model(session).Updates(map[string]any{
			"status":       models.SessionCompleted,
			"completed_at": &now,
		}).Error; err != nil {
			return utils.InternalServerError(c, "Could not complete test session")
		}
	}

	tc.Log.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"test_type": input.TestType,
		"band":      summary.Band,
	}).Info("objective test graded")

	return utils.Created(c, result)
}

// SubmitWriting godoc
// @Summary Submit a Writing task for AI evaluation
// @Tags tests
// @Accept json
// @Produce json
// @Success 201 {object} models.TestResult
// @Failure 404 {object} utils.ErrorResponse
// @Router /tests/submit/writing [post]
func (tc *TestsController) SubmitWriting(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input WritingSubmissionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	if !input.TaskType.Valid() {
		return utils.BadRequest(c, "Invalid task type")
	}

	var prompt models.WritingPrompt
	if err := tc.DB.First(&prompt, "id = ?", input.PromptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Writing prompt not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	eval, err := tc.Evaluator.EvaluateWriting(c.Context(), input.TaskType, prompt.Prompt, input.Text, prompt.WordLimit)
	if err != nil {
		tc.Log.WithError(err).Error("writing evaluation failed")
		return utils.BadRequest(c, "Writing evaluation failed: "+err.Error())
	}

	responsesJSON, _ := json.Marshal(fiber.Map{"text": input.Text})
	answersJSON, _ := json.Marshal(fiber.Map{"prompt": prompt.Prompt})
	analysisJSON, _ := json.Marshal(fiber.Map{
		"taskResponse":      eval.TaskResponse,
		"coherenceCohesion": eval.CoherenceCohesion,
		"lexicalResource":   eval.LexicalResource,
		"grammaticalRange":  eval.GrammaticalRange,
		"strengths":         eval.Strengths,
		"improvements":      eval.Improvements,
	})

	result := models.TestResult{
		UserID:         user.ID,
		TestType:       models.TestTypeWriting,
		Score:          eval.OverallBand,
		BandScore:      eval.OverallBand,
		MaxScore:       9,
		Responses:      responsesJSON,
		CorrectAnswers: answersJSON,
		Feedback:       eval.Feedback,
		AIAnalysis:     analysisJSON,
	}
	if err := tc.DB.Create(&result).Error; err != nil {
		return utils.InternalServerError(c, "Could not save test result")
	}

	return utils.Created(c, result)
}

// SubmitSpeaking godoc
// @Summary Submit a Speaking transcript for AI evaluation
// @Tags tests
// @Accept json
// @Produce json
// @Success 201 {object} models.TestResult
// @Failure 404 {object} utils.ErrorResponse
// @Router /tests/submit/speaking [post]
func (tc *TestsController) SubmitSpeaking(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input SpeakingSubmissionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := utils.ValidateStruct(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	if !input.Part.Valid() {
		return utils.BadRequest(c, "Invalid speaking part")
	}

	var topic models.SpeakingTopic
	if err := tc.DB.First(&topic, "id = ?", input.TopicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Speaking topic not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	eval, err := tc.Evaluator.EvaluateSpeaking(c.Context(), input.Transcript, topic.Topic, input.Part)
	if err != nil {
		tc.Log.WithError(err).Error("speaking evaluation failed")
		return utils.BadRequest(c, "Speaking evaluation failed: "+err.Error())
	}

	responsesJSON, _ := json.Marshal(fiber.Map{"transcript": input.Transcript})
	answersJSON, _ := json.Marshal(fiber.Map{"topic": topic.Topic})
	analysisJSON, _ := json.Marshal(fiber.Map{
		"fluencyCoherence": eval.FluencyCoherence,
		"lexicalResource":  eval.LexicalResource,
		"grammaticalRange": eval.GrammaticalRange,
		"pronunciation":    eval.Pronunciation,
		"strengths":        eval.Strengths,
		"improvements":     eval.Improvements,
	})

	result := models.TestResult{
		UserID:         user.ID,
		TestType:       models.TestTypeSpeaking,
		Score:          eval.OverallBand,
		BandScore:      eval.OverallBand,
		MaxScore:       9,
		Responses:      responsesJSON,
		CorrectAnswers: answersJSON,
		Feedback:       eval.Feedback,
		AIAnalysis:     analysisJSON,
	}
	if err := tc.DB.Create(&result).Error; err != nil {
		return utils.InternalServerError(c, "Could not save test result")
	}

	return utils.Created(c, result)
}

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".ogg":  true,
	".aac":  true,
	".flac": true,
}

// UploadAudio stores an audio file for a Listening or Speaking attempt and
// returns its public URL.
func (tc *TestsController) UploadAudio(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	file, err := c.FormFile("audio")
	if err != nil {
		return utils.BadRequest(c, "No audio file uploaded")
	}
	if file.Size > maxAudioSize {
		return utils.BadRequest(c, "Audio file exceeds the 10MB limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !audioExtensions[ext] {
		return utils.BadRequest(c, "Only audio files can be uploaded")
	}

	filename := uuid.NewString() + ext
	if err := c.SaveFile(file, filepath.Join(tc.Cfg.UploadDir, filename)); err != nil {
		tc.Log.WithError(err).Error("audio upload failed")
		return utils.InternalServerError(c, "Could not store audio file")
	}

	return utils.Created(c, fiber.Map{
		"message":    "Audio file uploaded successfully",
		"filename":   file.Filename,
		"url":        "/uploads/" + filename,
		"size":       file.Size,
		"uploadedBy": user.ID,
		"uploadedAt": time.Now().UTC(),
	})
}
