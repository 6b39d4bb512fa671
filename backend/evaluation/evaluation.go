// Package evaluation obtains subjective band scores for Writing and Speaking
// submissions, either from the OpenAI chat-completions API or, when no API
// key is configured, from a randomized mock that keeps the platform usable
// in demo environments.
package evaluation

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"ieltscheck/backend/config"
	"ieltscheck/backend/models"
)

// ErrEvaluationFailed wraps any external-call failure so callers can map it
// to a single EvaluationFailure category.
var ErrEvaluationFailed = errors.New("evaluation failed")

// WritingEvaluation holds the four writing sub-scores plus the overall band
// as reported by the evaluator. The overall band is never recomputed here.
type WritingEvaluation struct {
	TaskResponse      float64  `json:"taskResponse"`
	CoherenceCohesion float64  `json:"coherenceCohesion"`
	LexicalResource   float64  `json:"lexicalResource"`
	GrammaticalRange  float64  `json:"grammaticalRange"`
	OverallBand       float64  `json:"overallBand"`
	Feedback          string   `json:"feedback"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"improvements"`
}

type SpeakingEvaluation struct {
	FluencyCoherence float64  `json:"fluencyCoherence"`
	LexicalResource  float64  `json:"lexicalResource"`
	GrammaticalRange float64  `json:"grammaticalRange"`
	Pronunciation    float64  `json:"pronunciation"`
	OverallBand      float64  `json:"overallBand"`
	Feedback         string   `json:"feedback"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
}

// Evaluator scores free-text work. Implementations must either return a full
// evaluation or an error; partial results are never surfaced.
type Evaluator interface {
	EvaluateWriting(ctx context.Context, taskType models.TaskType, prompt, text string, wordLimit int) (*WritingEvaluation, error)
	EvaluateSpeaking(ctx context.Context, transcript, topic string, part models.SpeakingPart) (*SpeakingEvaluation, error)
}

// New picks the real OpenAI evaluator when a plausible API key is configured
// and the mock otherwise. A missing key is a supported configuration, not an
// error.
func New(cfg *config.Config, log *logrus.Logger) Evaluator {
	if cfg.OpenAIKey == "" || !strings.HasPrefix(cfg.OpenAIKey, "sk-") {
		log.Warn("OpenAI API key not found or invalid, using mock evaluation mode")
		return NewMockEvaluator()
	}
	log.Info("OpenAI evaluator initialized")
	return NewOpenAIEvaluator(cfg.OpenAIKey, cfg.OpenAIModel, log)
}
