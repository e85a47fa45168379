package models

import "time"

type ExamStatus string

const (
	ExamActive   ExamStatus = "active"
	ExamArchived ExamStatus = "archived"
)

// DifficultyDistribution is a named easy/moderate/hard percentage triple.
// The producer guarantees the three percentages sum to 100; the schema does
// not enforce it.
type DifficultyDistribution struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	EasyPercent     int    `json:"easy_percent" gorm:"not null" validate:"min=0,max=100"`
	ModeratePercent int    `json:"moderate_percent" gorm:"not null" validate:"min=0,max=100"`
	HardPercent     int    `json:"hard_percent" gorm:"not null" validate:"min=0,max=100"`

	CreatedBy string    `json:"created_by" gorm:"not null;index;size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PracticeExam struct {
	ID             uint     `json:"id" gorm:"primaryKey"`
	SubjectID      uint     `json:"subject_id" gorm:"not null;index"`
	CreatedBy      string   `json:"created_by" gorm:"not null;index;size:255"`
	Coverage       Coverage `json:"coverage" gorm:"not null"`
	RequestedCount int      `json:"requested_count" gorm:"not null"`
	DistributionID *uint    `json:"distribution_id" gorm:"index"`

	// Resolved percentages, denormalized at creation time so later edits to
	// the distribution record do not change what this exam was built from.
	EasyPercent     int `json:"easy_percent" gorm:"not null"`
	ModeratePercent int `json:"moderate_percent" gorm:"not null"`
	HardPercent     int `json:"hard_percent" gorm:"not null"`

	Status           ExamStatus `json:"status" gorm:"default:active;index"`
	TimerEnabled     bool       `json:"timer_enabled" gorm:"not null;default:false"`
	TimeLimitMinutes int        `json:"time_limit_minutes" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Subject      Subject                `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Distribution DifficultyDistribution `json:"distribution,omitempty" gorm:"foreignKey:DistributionID"`
	Questions    []PracticeExamQuestion `json:"questions,omitempty" gorm:"foreignKey:ExamID"`
}

// PracticeExamQuestion links an exam to a question. Order is unique and
// contiguous within one exam, starting at 1, and drives on-screen numbering.
type PracticeExamQuestion struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	ExamID     uint            `json:"exam_id" gorm:"not null;index;uniqueIndex:idx_exam_question_order"`
	QuestionID uint            `json:"question_id" gorm:"not null;index"`
	Order      int             `json:"order" gorm:"not null;uniqueIndex:idx_exam_question_order"`
	Difficulty DifficultyLevel `json:"difficulty" gorm:"not null"` // snapshot of the bucket the question was drawn for

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Question Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
}

// PracticeExamSetting holds per-user, per-subject defaults consulted when a
// generation request omits explicit parameters. (user, subject) is unique.
type PracticeExamSetting struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserID    string `json:"user_id" gorm:"not null;size:255;uniqueIndex:idx_setting_user_subject"`
	SubjectID uint   `json:"subject_id" gorm:"not null;uniqueIndex:idx_setting_user_subject"`

	Enabled          bool     `json:"enabled" gorm:"not null;default:true"`
	TimerEnabled     bool     `json:"timer_enabled" gorm:"not null;default:false"`
	TimeLimitMinutes int      `json:"time_limit_minutes" gorm:"not null;default:0"`
	Coverage         Coverage `json:"coverage" gorm:"not null;default:midterm"`
	EasyPercent      int      `json:"easy_percent" gorm:"not null;default:0"`
	ModeratePercent  int      `json:"moderate_percent" gorm:"not null;default:0"`
	HardPercent      int      `json:"hard_percent" gorm:"not null;default:100"`
	ItemCount        int      `json:"item_count" gorm:"not null;default:10"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DifficultyDistribution) TableName() string {
	return "difficulty_distributions"
}

func (PracticeExam) TableName() string {
	return "practice_exams"
}

func (PracticeExamQuestion) TableName() string {
	return "practice_exam_questions"
}

func (PracticeExamSetting) TableName() string {
	return "practice_exam_settings"
}
