package validator

import (
	"github.com/kylo18/practice-exam-service/internal/models"
)

// PracticeExamCreateRequest represents the request structure for generating a
// practice exam. Omitted fields fall back to the caller's saved setting for
// the subject, then to service defaults.
type PracticeExamCreateRequest struct {
	SubjectID      uint             `json:"subject_id" validate:"required"`
	Coverage       *models.Coverage `json:"coverage" validate:"omitempty,coverage_period"`
	RequestedCount *int             `json:"requested_count" validate:"omitempty,item_count"`

	// Either a saved distribution or an inline percentage trio.
	DistributionID  *uint `json:"distribution_id"`
	EasyPercent     *int  `json:"easy_percent" validate:"omitempty,min=0,max=100"`
	ModeratePercent *int  `json:"moderate_percent" validate:"omitempty,min=0,max=100"`
	HardPercent     *int  `json:"hard_percent" validate:"omitempty,min=0,max=100"`

	TimerEnabled     *bool `json:"timer_enabled"`
	TimeLimitMinutes *int  `json:"time_limit_minutes" validate:"omitempty,min=1,max=480"`
}

// PracticeExamSubmitRequest carries the answers for one exam sitting, keyed
// by question id. Unanswered questions are simply absent.
type PracticeExamSubmitRequest struct {
	Answers map[uint]uint `json:"answers" validate:"required"`
}

// DistributionCreateRequest represents a reusable difficulty distribution.
type DistributionCreateRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=100"`
	EasyPercent     int    `json:"easy_percent" validate:"min=0,max=100"`
	ModeratePercent int    `json:"moderate_percent" validate:"min=0,max=100"`
	HardPercent     int    `json:"hard_percent" validate:"min=0,max=100"`
}

// SettingUpsertRequest represents per-user practice exam defaults for a
// subject.
type SettingUpsertRequest struct {
	SubjectID        uint             `json:"subject_id" validate:"required"`
	Enabled          *bool            `json:"enabled"`
	TimerEnabled     *bool            `json:"timer_enabled"`
	TimeLimitMinutes *int             `json:"time_limit_minutes" validate:"omitempty,min=1,max=480"`
	Coverage         *models.Coverage `json:"coverage" validate:"omitempty,coverage_period"`
	EasyPercent      *int             `json:"easy_percent" validate:"omitempty,min=0,max=100"`
	ModeratePercent  *int             `json:"moderate_percent" validate:"omitempty,min=0,max=100"`
	HardPercent      *int             `json:"hard_percent" validate:"omitempty,min=0,max=100"`
	ItemCount        *int             `json:"item_count" validate:"omitempty,item_count"`
}
