package services

import (
	"context"
	"time"

	"github.com/kylo18/practice-exam-service/internal/models"
	"github.com/kylo18/practice-exam-service/internal/repositories"
	"github.com/kylo18/practice-exam-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use validator request types
type CreatePracticeExamRequest = validator.PracticeExamCreateRequest
type SubmitPracticeExamRequest = validator.PracticeExamSubmitRequest
type CreateDistributionRequest = validator.DistributionCreateRequest
type UpsertSettingRequest = validator.SettingUpsertRequest

// ChoiceResponse is a choice with the correct flag stripped.
type ChoiceResponse struct {
	ID       uint    `json:"id"`
	Text     string  `json:"text"`
	ImageURL *string `json:"image_url,omitempty"`
	Position int     `json:"position"`
}

// ExamQuestionResponse is one exam item in presentation order.
type ExamQuestionResponse struct {
	Order      int                    `json:"order"`
	QuestionID uint                   `json:"question_id"`
	Difficulty models.DifficultyLevel `json:"difficulty"`
	Text       string                 `json:"text"`
	ImageURL   *string                `json:"image_url,omitempty"`
	Score      int                    `json:"score"`
	Choices    []ChoiceResponse       `json:"choices"`
}

type PracticeExamResponse struct {
	*models.PracticeExam
	Counts    BucketCounts           `json:"counts"`
	Questions []ExamQuestionResponse `json:"questions,omitempty"`
}

type PracticeExamListResponse struct {
	Exams []*models.PracticeExam `json:"exams"`
	Total int                    `json:"total"`
}

type ResultResponse struct {
	*models.PracticeExamResult
}

type ResultListResponse struct {
	Results []*models.PracticeExamResult `json:"results"`
	Total   int                          `json:"total"`
}

type PoolAvailabilityResponse struct {
	SubjectID uint                          `json:"subject_id"`
	Coverage  models.Coverage               `json:"coverage"`
	Buckets   *repositories.PoolAvailability `json:"buckets"`
}

type SettingResponse struct {
	*models.PracticeExamSetting
}

type DistributionListResponse struct {
	Distributions []*models.DifficultyDistribution `json:"distributions"`
}

// ExportFilters narrows the result export.
type ExportFilters struct {
	SubjectID *uint
	DateFrom  *time.Time
	DateTo    *time.Time
}

// ===== SERVICE INTERFACES =====

// PracticeExamService assembles, persists and retrieves practice exams.
type PracticeExamService interface {
	Create(ctx context.Context, req *CreatePracticeExamRequest, requesterID string) (*PracticeExamResponse, error)
	GetByID(ctx context.Context, examID uint, requesterID string) (*PracticeExamResponse, error)
	List(ctx context.Context, requesterID string, filters repositories.ExamFilters) (*PracticeExamListResponse, error)
	Availability(ctx context.Context, subjectID uint, coverage models.Coverage) (*PoolAvailabilityResponse, error)
}

// ResultService scores submissions and reads result history.
type ResultService interface {
	Submit(ctx context.Context, examID uint, req *SubmitPracticeExamRequest, submitterID string) (*ResultResponse, error)
	GetByExam(ctx context.Context, examID uint, requesterID string) (*ResultListResponse, error)
	GetByUser(ctx context.Context, userID string, filters repositories.ResultFilters) (*ResultListResponse, error)
}

// DistributionService manages reusable difficulty distributions.
type DistributionService interface {
	Create(ctx context.Context, req *CreateDistributionRequest, creatorID string) (*models.DifficultyDistribution, error)
	GetByID(ctx context.Context, id uint) (*models.DifficultyDistribution, error)
	List(ctx context.Context) (*DistributionListResponse, error)
}

// SettingService manages per-user practice exam defaults.
type SettingService interface {
	Get(ctx context.Context, userID string, subjectID uint) (*SettingResponse, error)
	Upsert(ctx context.Context, req *UpsertSettingRequest, userID string) (*SettingResponse, error)
}

// ExportService renders result history as a spreadsheet.
type ExportService interface {
	ExportResults(ctx context.Context, requesterID string, filters ExportFilters) ([]byte, string, error)
}

// ServiceManager wires all services and manages their lifecycle.
type ServiceManager interface {
	PracticeExam() PracticeExamService
	Result() ResultService
	Distribution() DistributionService
	Setting() SettingService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
