package models

import "fmt"

// TestType discriminates the four IELTS test sections.
type TestType string

const (
	TestTypeListening TestType = "LISTENING"
	TestTypeReading   TestType = "READING"
	TestTypeWriting   TestType = "WRITING"
	TestTypeSpeaking  TestType = "SPEAKING"
)

func (t TestType) Valid() bool {
	switch t {
	case TestTypeListening, TestTypeReading, TestTypeWriting, TestTypeSpeaking:
		return true
	}
	return false
}

// Objective reports whether the test type is graded by answer comparison
// rather than by the AI evaluator.
func (t TestType) Objective() bool {
	return t == TestTypeListening || t == TestTypeReading
}

// DisplayName is used when rendering feedback sentences.
func (t TestType) DisplayName() string {
	switch t {
	case TestTypeListening:
		return "Listening"
	case TestTypeReading:
		return "Reading"
	case TestTypeWriting:
		return "Writing"
	case TestTypeSpeaking:
		return "Speaking"
	default:
		return string(t)
	}
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// TaskType discriminates the two IELTS writing tasks.
type TaskType string

const (
	TaskType1 TaskType = "TASK_1"
	TaskType2 TaskType = "TASK_2"
)

func (t TaskType) Valid() bool {
	return t == TaskType1 || t == TaskType2
}

// SpeakingPart discriminates the three parts of the speaking test.
type SpeakingPart string

const (
	SpeakingPart1 SpeakingPart = "PART_1"
	SpeakingPart2 SpeakingPart = "PART_2"
	SpeakingPart3 SpeakingPart = "PART_3"
)

func (p SpeakingPart) Valid() bool {
	switch p {
	case SpeakingPart1, SpeakingPart2, SpeakingPart3:
		return true
	}
	return false
}

type SessionStatus string

const (
	SessionInProgress SessionStatus = "IN_PROGRESS"
	SessionCompleted  SessionStatus = "COMPLETED"
)

type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin covers both admin tiers; super admins can do everything admins can.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// ParseTestType validates a test type coming from a path or query parameter.
func ParseTestType(s string) (TestType, error) {
	t := TestType(s)
	if !t.Valid() {
		return "", fmt.Errorf("invalid test type %q", s)
	}
	return t, nil
}
