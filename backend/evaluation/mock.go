package evaluation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"

	"ieltscheck/backend/models"
)

// MockEvaluator synthesizes plausible band scores when no OpenAI key is
// configured. Scores stay in a believable range; the feedback says outright
// that the evaluation is synthetic.
type MockEvaluator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewMockEvaluator() *MockEvaluator {
	return &MockEvaluator{rng: rand.New(rand.NewSource(rand.Int63()))}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (m *MockEvaluator) base() float64 {
	// Uniform in [5,7].
	return m.rng.Float64()*2 + 5
}

func (m *MockEvaluator) jitter() float64 {
	// Independent offset in [0,0.5] per criterion.
	return m.rng.Float64() * 0.5
}

func (m *MockEvaluator) EvaluateWriting(_ context.Context, taskType models.TaskType, _ string, text string, wordLimit int) (*WritingEvaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wordCount := len(strings.Fields(text))
	completion := 1.0
	if wordLimit > 0 {
		completion = math.Min(float64(wordCount)/float64(wordLimit), 1)
	}
	lengthScore := completion*2 + 5 // 5-7 range, capped at the word limit
	base := m.base()

	return &WritingEvaluation{
		TaskResponse:      round1(math.Min(base+lengthScore*0.3, 9)),
		CoherenceCohesion: round1(base + m.jitter()),
		LexicalResource:   round1(base + m.jitter()),
		GrammaticalRange:  round1(base + m.jitter()),
		OverallBand:       round1(base),
		Feedback: fmt.Sprintf("Mock evaluation: %d-word response for %s. This is demo mode; configure a real OpenAI API key for genuine feedback.",
			wordCount, taskType),
		Strengths: []string{
			"Written work was submitted",
			"The text has a structure",
			"The task was understood",
		},
		Improvements: []string{
			"Configure a real OpenAI API key",
			"Reduce grammatical errors",
			"Expand vocabulary range",
		},
	}, nil
}

func (m *MockEvaluator) EvaluateSpeaking(_ context.Context, _, _ string, _ models.SpeakingPart) (*SpeakingEvaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	base := m.base()
	return &SpeakingEvaluation{
		FluencyCoherence: round1(base + m.jitter()),
		LexicalResource:  round1(base + m.jitter()),
		GrammaticalRange: round1(base + m.jitter()),
		Pronunciation:    round1(base + m.jitter()),
		OverallBand:      round1(base),
		Feedback:         "Mock evaluation: transcript received. This is demo mode; configure a real OpenAI API key for genuine feedback.",
		Strengths: []string{
			"Audio was uploaded",
			"The speaking task was completed",
			"Time was used effectively",
		},
		Improvements: []string{
			"Configure a real OpenAI API key",
			"Improve pronunciation",
			"Adjust speaking pace",
		},
	}, nil
}
