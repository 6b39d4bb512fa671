package database

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ieltscheck/backend/models"
)

func jsonList(items ...string) datatypes.JSON {
	data, _ := json.Marshal(items)
	return data
}

// Seed inserts the starter question bank, writing prompts and speaking
// topics. Records are keyed by fixed IDs so rerunning is a no-op.
func Seed(db *gorm.DB, log *logrus.Logger) error {
	questions := []models.TestQuestion{
		{
			ID:            "listening-1",
			TestType:      models.TestTypeListening,
			QuestionText:  "What is the man's occupation?",
			Options:       jsonList("Teacher", "Doctor", "Engineer", "Lawyer"),
			CorrectAnswer: "Doctor",
			AudioURL:      "/audio/listening-1.mp3",
			Difficulty:    models.DifficultyBeginner,
		},
		{
			ID:            "listening-2",
			TestType:      models.TestTypeListening,
			QuestionText:  "Where did the conversation take place?",
			Options:       jsonList("Hospital", "School", "Office", "Home"),
			CorrectAnswer: "Hospital",
			AudioURL:      "/audio/listening-2.mp3",
			Difficulty:    models.DifficultyIntermediate,
		},
		{
			ID:            "listening-3",
			TestType:      models.TestTypeListening,
			QuestionText:  "What time does the meeting start?",
			Options:       jsonList("9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM"),
			CorrectAnswer: "10:00 AM",
			AudioURL:      "/audio/listening-3.mp3",
			Difficulty:    models.DifficultyAdvanced,
		},
		{
			ID:            "listening-4",
			TestType:      models.TestTypeListening,
			QuestionText:  "How many people attended the conference?",
			Options:       jsonList("50", "100", "150", "200"),
			CorrectAnswer: "150",
			AudioURL:      "/audio/listening-4.mp3",
			Difficulty:    models.DifficultyIntermediate,
		},
		{
			ID:            "reading-1",
			TestType:      models.TestTypeReading,
			QuestionText:  "What is the main idea of the passage?",
			Options:       jsonList("Climate change effects", "Economic growth", "Educational reform", "Healthcare improvement"),
			CorrectAnswer: "Climate change effects",
			PassageText:   "Climate change is one of the most pressing issues of our time. Rising temperatures and changing weather patterns affect ecosystems worldwide...",
			Difficulty:    models.DifficultyBeginner,
		},
		{
			ID:            "reading-2",
			TestType:      models.TestTypeReading,
			QuestionText:  "According to the text, what percentage of species are endangered?",
			Options:       jsonList("15%", "25%", "35%", "45%"),
			CorrectAnswer: "25%",
			PassageText:   "Recent studies show that approximately 25% of plant and animal species are facing extinction due to human activities and climate change...",
			Difficulty:    models.DifficultyIntermediate,
		},
		{
			ID:            "reading-3",
			TestType:      models.TestTypeReading,
			QuestionText:  "What does the author suggest as a solution?",
			Options:       jsonList("Government intervention", "International cooperation", "Individual action", "Technological advancement"),
			CorrectAnswer: "International cooperation",
			PassageText:   "The complexity of environmental challenges requires coordinated efforts from nations worldwide. Only through international cooperation...",
			Difficulty:    models.DifficultyAdvanced,
		},
		{
			ID:            "reading-4",
			TestType:      models.TestTypeReading,
			QuestionText:  "Which year was the research conducted?",
			Options:       jsonList("2020", "2021", "2022", "2023"),
			CorrectAnswer: "2022",
			PassageText:   "The comprehensive study was conducted in 2022 by leading environmental scientists from multiple universities...",
			Difficulty:    models.DifficultyIntermediate,
		},
	}

	prompts := []models.WritingPrompt{
		{
			ID:           "writing-task1-1",
			TaskType:     models.TaskType1,
			Instructions: "Chart Description",
			Prompt:       "The chart below shows the percentage of households in owned and rented accommodation in England and Wales between 1918 and 2011. Summarize the information by selecting and reporting the main features and make comparisons where relevant.",
			WordLimit:    150,
			TimeLimit:    20,
		},
		{
			ID:           "writing-task1-2",
			TaskType:     models.TaskType1,
			Instructions: "Process Diagram",
			Prompt:       "The diagram below shows the process of recycling plastic bottles. Summarize the information by selecting and reporting the main features.",
			WordLimit:    150,
			TimeLimit:    20,
		},
		{
			ID:           "writing-task2-1",
			TaskType:     models.TaskType2,
			Instructions: "Education Technology",
			Prompt:       "Some people think that computers and the Internet are more important for a child's education than going to school. However, others believe that schools and teachers are essential for children to learn effectively. Discuss both views and give your opinion.",
			WordLimit:    250,
			TimeLimit:    40,
		},
		{
			ID:           "writing-task2-2",
			TaskType:     models.TaskType2,
			Instructions: "Work-Life Balance",
			Prompt:       "In many countries, people are working longer hours. What are the reasons for this? What effects does this trend have on individuals and society?",
			WordLimit:    250,
			TimeLimit:    40,
		},
	}

	topics := []models.SpeakingTopic{
		{
			ID:    "speaking-part1-1",
			Part:  models.SpeakingPart1,
			Topic: "Hometown",
			Questions: jsonList(
				"Where are you from?",
				"Do you like your hometown?",
				"What is famous about your hometown?",
				"Would you like to live somewhere else?",
			),
			TimeLimit: 5,
		},
		{
			ID:    "speaking-part1-2",
			Part:  models.SpeakingPart1,
			Topic: "Hobbies",
			Questions: jsonList(
				"What are your hobbies?",
				"How did you become interested in your hobbies?",
				"What hobbies are popular in your country?",
				"Do you think hobbies should be shared with other people?",
			),
			TimeLimit: 5,
		},
		{
			ID:    "speaking-part2-1",
			Part:  models.SpeakingPart2,
			Topic: "Memorable Trip",
			Questions: jsonList(
				"Describe a memorable trip you have taken. You should say: where you went, who you went with, what you did there, and explain why it was memorable.",
			),
			TimeLimit: 3,
		},
		{
			ID:    "speaking-part2-2",
			Part:  models.SpeakingPart2,
			Topic: "Favorite Book",
			Questions: jsonList(
				"Describe a book you enjoyed reading. You should say: what the book was about, when you read it, why you chose to read it, and explain why you enjoyed it.",
			),
			TimeLimit: 3,
		},
		{
			ID:    "speaking-part3-1",
			Part:  models.SpeakingPart3,
			Topic: "Travel and Tourism",
			Questions: jsonList(
				"How has tourism changed in your country?",
				"What are the advantages and disadvantages of tourism?",
				"How do you think tourism will change in the future?",
			),
			TimeLimit: 5,
		},
		{
			ID:    "speaking-part3-2",
			Part:  models.SpeakingPart3,
			Topic: "Reading Habits",
			Questions: jsonList(
				"Do people in your country like to read?",
				"What kinds of books are popular?",
				"How has technology changed reading habits?",
			),
			TimeLimit: 5,
		},
	}

	for i := range questions {
		if err := db.FirstOrCreate(&questions[i], models.TestQuestion{ID: questions[i].ID}).Error; err != nil {
			return err
		}
	}
	for i := range prompts {
		if err := db.FirstOrCreate(&prompts[i], models.WritingPrompt{ID: prompts[i].ID}).Error; err != nil {
			return err
		}
	}
	for i := range topics {
		if err := db.FirstOrCreate(&topics[i], models.SpeakingTopic{ID: topics[i].ID}).Error; err != nil {
			return err
		}
	}

	log.WithFields(logrus.Fields{
		"questions": len(questions),
		"prompts":   len(prompts),
		"topics":    len(topics),
	}).Info("database seed complete")
	return nil
}
