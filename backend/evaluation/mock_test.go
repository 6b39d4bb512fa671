package evaluation

import (
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ieltscheck/backend/config"
	"ieltscheck/backend/models"
)

func seededMock(seed int64) *MockEvaluator {
	return &MockEvaluator{rng: rand.New(rand.NewSource(seed))}
}

func wordsOf(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestMockWriting_ScoresBounded(t *testing.T) {
	mock := NewMockEvaluator()
	for i := 0; i < 50; i++ {
		eval, err := mock.EvaluateWriting(context.Background(), models.TaskType2, "prompt", wordsOf(200), 250)
		require.NoError(t, err)

		for name, score := range map[string]float64{
			"taskResponse":      eval.TaskResponse,
			"coherenceCohesion": eval.CoherenceCohesion,
			"lexicalResource":   eval.LexicalResource,
			"grammaticalRange":  eval.GrammaticalRange,
			"overallBand":       eval.OverallBand,
		} {
			assert.GreaterOrEqual(t, score, 0.0, name)
			assert.LessOrEqual(t, score, 9.0, name)
		}
	}
}

// The word-limit-adherence component must grow with the completion ratio and
// stop contributing once the limit is reached. Identical seeds pin the random
// base so only the length component varies.
func TestMockWriting_LengthAdherenceMonotonic(t *testing.T) {
	const seed = 42
	counts := []int{50, 125, 250, 400}

	var prev float64 = -1
	for _, n := range counts {
		eval, err := seededMock(seed).EvaluateWriting(context.Background(), models.TaskType2, "prompt", wordsOf(n), 250)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, eval.TaskResponse, prev, "%d words", n)
		prev = eval.TaskResponse
	}

	// At and beyond the limit the contribution is identical.
	atLimit, err := seededMock(seed).EvaluateWriting(context.Background(), models.TaskType2, "prompt", wordsOf(250), 250)
	require.NoError(t, err)
	overLimit, err := seededMock(seed).EvaluateWriting(context.Background(), models.TaskType2, "prompt", wordsOf(500), 250)
	require.NoError(t, err)
	assert.Equal(t, atLimit.TaskResponse, overLimit.TaskResponse)
}

func TestMockWriting_FeedbackStatesSynthetic(t *testing.T) {
	eval, err := NewMockEvaluator().EvaluateWriting(context.Background(), models.TaskType1, "prompt", wordsOf(120), 150)
	require.NoError(t, err)
	assert.Contains(t, eval.Feedback, "Mock evaluation")
	assert.Contains(t, eval.Feedback, "demo mode")
	assert.NotEmpty(t, eval.Strengths)
	assert.NotEmpty(t, eval.Improvements)
}

func TestMockSpeaking_ScoresBounded(t *testing.T) {
	mock := NewMockEvaluator()
	for i := 0; i < 50; i++ {
		eval, err := mock.EvaluateSpeaking(context.Background(), "transcript", "topic", models.SpeakingPart2)
		require.NoError(t, err)

		for name, score := range map[string]float64{
			"fluencyCoherence": eval.FluencyCoherence,
			"lexicalResource":  eval.LexicalResource,
			"grammaticalRange": eval.GrammaticalRange,
			"pronunciation":    eval.Pronunciation,
			"overallBand":      eval.OverallBand,
		} {
			assert.GreaterOrEqual(t, score, 0.0, name)
			assert.LessOrEqual(t, score, 9.0, name)
		}
		assert.Contains(t, eval.Feedback, "Mock evaluation")
	}
}

func TestNew_EvaluatorSelection(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	_, isMock := New(&config.Config{}, log).(*MockEvaluator)
	assert.True(t, isMock, "no key must select mock mode")

	_, isMock = New(&config.Config{OpenAIKey: "not-a-key"}, log).(*MockEvaluator)
	assert.True(t, isMock, "implausible key must select mock mode")

	_, isReal := New(&config.Config{OpenAIKey: "sk-test123"}, log).(*OpenAIEvaluator)
	assert.True(t, isReal, "sk- prefixed key must select the OpenAI client")
}
