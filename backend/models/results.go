package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestSession is a user's attempt window for an objective test. It is created
// when the user starts a test and becomes COMPLETED when the submission that
// references it is graded. COMPLETED is terminal.
type TestSession struct {
	ID          string        `gorm:"primaryKey" json:"id"`
	UserID      string        `gorm:"index;not null" json:"userId"`
	TestType    TestType      `gorm:"type:varchar(20);not null" json:"testType"`
	Status      SessionStatus `gorm:"type:varchar(20);default:IN_PROGRESS" json:"status"`
	StartedAt   time.Time     `json:"startedAt"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
}

func (s *TestSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = SessionInProgress
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}
	return nil
}

// TestResult is written exactly once per submission and never mutated
// afterwards. Responses and CorrectAnswers snapshot what was graded so the
// result stays meaningful even if the question bank changes later.
type TestResult struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	UserID         string         `gorm:"index;not null" json:"userId"`
	SessionID      *string        `json:"sessionId,omitempty"`
	TestType       TestType       `gorm:"type:varchar(20);index;not null" json:"testType"`
	Score          float64        `json:"score"`
	BandScore      float64        `json:"bandScore"`
	MaxScore       float64        `json:"maxScore"`
	Responses      datatypes.JSON `json:"responses,omitempty"`
	CorrectAnswers datatypes.JSON `json:"correctAnswers,omitempty"`
	Feedback       string         `json:"feedback"`
	AIAnalysis     datatypes.JSON `json:"aiAnalysis,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`

	User    *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Session *TestSession `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

func (r *TestResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
