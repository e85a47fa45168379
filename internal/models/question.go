package models

import (
	"time"

	"gorm.io/datatypes"
)

type DifficultyLevel string

const (
	DifficultyEasy     DifficultyLevel = "easy"
	DifficultyModerate DifficultyLevel = "moderate"
	DifficultyHard     DifficultyLevel = "hard"
)

// AllDifficulties lists the difficulty buckets in assembly order.
var AllDifficulties = []DifficultyLevel{DifficultyEasy, DifficultyModerate, DifficultyHard}

type Coverage string

const (
	CoverageMidterm Coverage = "midterm"
	CoverageFinals  Coverage = "finals"
)

type QuestionStatus string

const (
	QuestionPending     QuestionStatus = "pending"
	QuestionApproved    QuestionStatus = "approved"
	QuestionDisapproved QuestionStatus = "disapproved"
)

type Question struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	SubjectID uint    `json:"subject_id" gorm:"not null;index"`
	Text      string  `json:"text" gorm:"type:text;not null" validate:"required"`
	ImageURL  *string `json:"image_url" gorm:"size:500"`
	Score     int     `json:"score" gorm:"default:1" validate:"min=1,max=100"`

	// Categorization
	Difficulty DifficultyLevel `json:"difficulty" gorm:"not null;index" validate:"required,oneof=easy moderate hard"`
	Coverage   Coverage        `json:"coverage" gorm:"not null;index" validate:"required,oneof=midterm finals"`
	Status     QuestionStatus  `json:"status" gorm:"default:pending;index"`
	Tags       datatypes.JSON  `json:"tags" gorm:"type:jsonb"` // []string, purpose tags

	// Metadata
	CreatedBy string    `json:"created_by" gorm:"not null;index;size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Subject Subject  `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Choices []Choice `json:"choices,omitempty" gorm:"foreignKey:QuestionID"`
}

type Choice struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	QuestionID uint    `json:"question_id" gorm:"not null;index"`
	Text       string  `json:"text" gorm:"type:text;not null" validate:"required"`
	ImageURL   *string `json:"image_url" gorm:"size:500"`
	IsCorrect  bool    `json:"is_correct" gorm:"not null;default:false"`
	Position   int     `json:"position" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}

func (Choice) TableName() string {
	return "choices"
}

// CorrectChoiceID returns the id of the choice marked correct, or 0 when the
// question has no correct choice loaded.
func (q *Question) CorrectChoiceID() uint {
	for _, c := range q.Choices {
		if c.IsCorrect {
			return c.ID
		}
	}
	return 0
}
