package evaluation

import (
	"fmt"

	"ieltscheck/backend/models"
)

func writingSystemPrompt(taskType models.TaskType) string {
	base := `You are an expert IELTS Writing examiner. Evaluate the response according to IELTS Writing ` + string(taskType) + ` criteria:

1. Task Response (TR) - Band 1-9
2. Coherence and Cohesion (CC) - Band 1-9
3. Lexical Resource (LR) - Band 1-9
4. Grammatical Range and Accuracy (GRA) - Band 1-9

Provide scores for each criterion and calculate the overall band score (average of 4 criteria, rounded to nearest 0.5).

Response format (JSON):
{
  "taskResponse": 7.0,
  "coherenceCohesion": 6.5,
  "lexicalResource": 7.0,
  "grammaticalRange": 6.0,
  "overallBand": 6.5,
  "feedback": "Overall feedback",
  "strengths": ["Strength 1", "Strength 2"],
  "improvements": ["Improvement 1", "Improvement 2"]
}`

	if taskType == models.TaskType1 {
		return base + "\n\nFor Task 1: Focus on data description, overview, key features, and accuracy."
	}
	return base + "\n\nFor Task 2: Focus on position, argument development, examples, and conclusion."
}

func speakingSystemPrompt(part models.SpeakingPart) string {
	var focus string
	switch part {
	case models.SpeakingPart1:
		focus = "Part 1: Personal questions, familiar topics, basic responses expected."
	case models.SpeakingPart2:
		focus = "Part 2: Individual long turn, 2-minute speech on given topic."
	default:
		focus = "Part 3: Discussion, abstract ideas, detailed responses expected."
	}

	return `You are an expert IELTS Speaking examiner. Evaluate the response according to IELTS Speaking criteria:

1. Fluency and Coherence (FC) - Band 1-9
2. Lexical Resource (LR) - Band 1-9
3. Grammatical Range and Accuracy (GRA) - Band 1-9
4. Pronunciation (P) - Band 1-9

Provide scores for each criterion and calculate the overall band score (average of 4 criteria, rounded to nearest 0.5).

Part ` + string(part) + ` specific considerations:
` + focus + `

Response format (JSON):
{
  "fluencyCoherence": 7.0,
  "lexicalResource": 6.5,
  "grammaticalRange": 7.0,
  "pronunciation": 6.0,
  "overallBand": 6.5,
  "feedback": "Overall feedback",
  "strengths": ["Strength 1", "Strength 2"],
  "improvements": ["Improvement 1", "Improvement 2"]
}`
}

func writingUserPrompt(prompt, text string, wordLimit int) string {
	return fmt.Sprintf(`Task: %s

Word limit: %d words
Student response: %s

Please evaluate this IELTS Writing response and provide detailed feedback in the specified JSON format.`, prompt, wordLimit, text)
}

func speakingUserPrompt(topic, transcript string) string {
	return fmt.Sprintf(`Topic/Question: %s

Student response transcript: %s

Please evaluate this IELTS Speaking response and provide detailed feedback in the specified JSON format.`, topic, transcript)
}
