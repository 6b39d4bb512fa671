package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestQuestion is one listening or reading question. CorrectAnswer is the
// single source of truth for objective grading; a question left without an
// answer never grades as correct.
type TestQuestion struct {
	ID            string         `gorm:"primaryKey" json:"id"`
	TestType      TestType       `gorm:"type:varchar(20);index;not null" json:"testType"`
	QuestionText  string         `gorm:"not null" json:"questionText"`
	Options       datatypes.JSON `json:"options"` // JSON array of option strings
	CorrectAnswer string         `json:"correctAnswer,omitempty"`
	AudioURL      string         `json:"audioUrl,omitempty"`
	PassageText   string         `json:"passageText,omitempty"`
	Difficulty    Difficulty     `gorm:"type:varchar(20)" json:"difficulty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (q *TestQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

type WritingPrompt struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	TaskType     TaskType   `gorm:"type:varchar(10);index;not null" json:"taskType"`
	Prompt       string     `gorm:"not null" json:"prompt"`
	Instructions string     `json:"instructions"`
	WordLimit    int        `json:"wordLimit"`
	TimeLimit    int        `json:"timeLimit"` // minutes
	Difficulty   Difficulty `gorm:"type:varchar(20)" json:"difficulty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (p *WritingPrompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type SpeakingTopic struct {
	ID         string         `gorm:"primaryKey" json:"id"`
	Part       SpeakingPart   `gorm:"type:varchar(10);index;not null" json:"part"`
	Topic      string         `gorm:"not null" json:"topic"`
	Questions  datatypes.JSON `json:"questions"` // JSON array of guiding questions
	TimeLimit  int            `json:"timeLimit"` // minutes
	Difficulty Difficulty     `gorm:"type:varchar(20)" json:"difficulty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func (t *SpeakingTopic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
