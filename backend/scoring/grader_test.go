package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ieltscheck/backend/models"
)

func TestCompareAnswers(t *testing.T) {
	tests := []struct {
		name     string
		user     any
		correct  string
		expected bool
	}{
		{"exact match", "Doctor", "Doctor", true},
		{"case insensitive", "doctor", "Doctor", true},
		{"whitespace trimmed", " doctor ", "Doctor", true},
		{"both padded", "  85", " 85 ", true},
		{"wrong answer", "Teacher", "Doctor", false},
		{"empty user answer", "", "Doctor", false},
		{"number vs string", 85, "85", false},
		{"nil answer", nil, "Doctor", false},
		{"bool answer", true, "true", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CompareAnswers(tc.user, tc.correct))
		})
	}
}

// listeningFixture builds the eight-question listening set with five keyed
// answers used throughout the grading tests.
func listeningFixture() []models.TestQuestion {
	keyed := map[string]string{
		"q1": "Booking a hotel",
		"q2": "three",
		"q3": "Single room with private bathroom",
		"q4": "85",
		"q5": "10 AM",
	}
	questions := make([]models.TestQuestion, 0, 8)
	for _, id := range []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8"} {
		questions = append(questions, models.TestQuestion{
			ID:            id,
			TestType:      models.TestTypeListening,
			QuestionText:  "question " + id,
			CorrectAnswer: keyed[id],
		})
	}
	return questions
}

func TestGrade_EndToEndScenario(t *testing.T) {
	// Two correct answers out of an eight-question set: 25% -> band 2.0.
	responses := map[string]any{
		"q1": "Booking a hotel",
		"q4": "85",
	}

	summary, err := Grade(models.TestTypeListening, listeningFixture(), responses)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Correct)
	assert.Equal(t, 8, summary.Total)
	assert.Equal(t, 25.0, summary.Percentage)
	assert.Equal(t, 2.0, summary.Band)
	assert.Contains(t, summary.Feedback, "more preparation")
}

func TestGrade_Idempotent(t *testing.T) {
	responses := map[string]any{
		"q1": "booking a hotel",
		"q2": "Three",
		"q5": "10 am",
	}

	first, err := Grade(models.TestTypeListening, listeningFixture(), responses)
	require.NoError(t, err)
	second, err := Grade(models.TestTypeListening, listeningFixture(), responses)
	require.NoError(t, err)

	assert.Equal(t, first.Correct, second.Correct)
	assert.Equal(t, first.Band, second.Band)
	assert.Equal(t, first.Feedback, second.Feedback)
}

// Partial submissions are scored against the full question-set size, not the
// number of submitted responses. Answering only the five keyed questions
// correctly still yields 5/8, not 5/5.
func TestGrade_PartialSubmissionPenalized(t *testing.T) {
	responses := map[string]any{
		"q1": "Booking a hotel",
		"q2": "three",
		"q3": "Single room with private bathroom",
		"q4": "85",
		"q5": "10 AM",
	}

	summary, err := Grade(models.TestTypeListening, listeningFixture(), responses)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Correct)
	assert.Equal(t, 8, summary.Total)
	assert.InDelta(t, 62.5, summary.Percentage, 0.001)
	assert.Equal(t, 6.0, summary.Band)
}

func TestGrade_UnkeyedQuestionNeverCorrect(t *testing.T) {
	// q6 has no stored correct answer; matching its empty key by sending an
	// empty string must not count.
	responses := map[string]any{"q6": ""}

	summary, err := Grade(models.TestTypeListening, listeningFixture(), responses)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Correct)
}

func TestGrade_SnapshotsOnlyAnsweredQuestions(t *testing.T) {
	responses := map[string]any{"q1": "wrong", "q4": "85"}

	summary, err := Grade(models.TestTypeListening, listeningFixture(), responses)
	require.NoError(t, err)

	assert.Len(t, summary.AnswerKey, 2)
	assert.Equal(t, "Booking a hotel", summary.AnswerKey["q1"])
	assert.Equal(t, "85", summary.AnswerKey["q4"])
}

func TestGrade_NoQuestions(t *testing.T) {
	_, err := Grade(models.TestTypeReading, nil, map[string]any{"r1": "x"})
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestAnswerKey_SkipsEmptyAnswers(t *testing.T) {
	key := AnswerKey(listeningFixture())
	assert.Len(t, key, 5)
	_, ok := key["q6"]
	assert.False(t, ok)
}
