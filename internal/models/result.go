package models

import "time"

// PracticeExamResult records one completed attempt. Rows are append-only:
// resubmitting the same exam produces a new row, never an update.
type PracticeExamResult struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ExamID    uint   `json:"exam_id" gorm:"not null;index"`
	UserID    string `json:"user_id" gorm:"not null;index;size:255"`
	SubjectID uint   `json:"subject_id" gorm:"not null;index"`

	TotalPoints  int     `json:"total_points" gorm:"not null"`
	EarnedPoints int     `json:"earned_points" gorm:"not null"`
	Percentage   float64 `json:"percentage" gorm:"not null"` // [0,100], two decimals

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Exam    PracticeExam `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	Subject Subject      `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
}

func (PracticeExamResult) TableName() string {
	return "practice_exam_results"
}
