package scoring

import (
	"errors"
	"strings"

	"ieltscheck/backend/models"
)

// ErrNoQuestions is returned when the question bank holds nothing for the
// requested test type.
var ErrNoQuestions = errors.New("no questions available for this test type")

// Summary is the outcome of grading one objective submission.
type Summary struct {
	Correct    int
	Total      int
	Percentage float64
	Band       float64
	Feedback   string
	// AnswerKey snapshots the correct answer used for every question the
	// user actually answered, keyed by question id.
	AnswerKey map[string]string
}

// CompareAnswers checks a user-supplied answer against the expected one.
// Strings compare case-insensitively with surrounding whitespace ignored;
// anything else must be strictly equal.
func CompareAnswers(userAnswer any, correctAnswer string) bool {
	if s, ok := userAnswer.(string); ok {
		return strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(correctAnswer))
	}
	return userAnswer == any(correctAnswer)
}

// AnswerKey builds the grading key from the question bank rows themselves.
// Questions without a stored correct answer get no entry and therefore can
// never grade as correct.
func AnswerKey(questions []models.TestQuestion) map[string]string {
	key := make(map[string]string, len(questions))
	for _, q := range questions {
		if q.CorrectAnswer != "" {
			key[q.ID] = q.CorrectAnswer
		}
	}
	return key
}

// Grade scores a LISTENING or READING submission against the fetched
// question set. The percentage denominator is the size of the question set,
// not the number of submitted responses, so partial submissions are
// implicitly penalized rather than rejected.
func Grade(testType models.TestType, questions []models.TestQuestion, responses map[string]any) (*Summary, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	key := AnswerKey(questions)
	correct := 0
	snapshot := make(map[string]string, len(responses))

	for questionID, answer := range responses {
		expected, ok := key[questionID]
		snapshot[questionID] = expected
		if ok && CompareAnswers(answer, expected) {
			correct++
		}
	}

	total := len(questions)
	percentage := float64(correct) / float64(total) * 100
	band := BandScore(percentage)

	return &Summary{
		Correct:    correct,
		Total:      total,
		Percentage: percentage,
		Band:       band,
		Feedback:   Feedback(band, testType),
		AnswerKey:  snapshot,
	}, nil
}
