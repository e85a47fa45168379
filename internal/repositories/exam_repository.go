package repositories

import (
	"context"

	"github.com/kylo18/practice-exam-service/internal/models"
	"gorm.io/gorm"
)

// SubjectRepository exposes read-only subject lookups. Subject CRUD lives in
// another service; this one only needs identity checks.
type SubjectRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Subject, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

// QuestionRepository is the question-pool boundary. All reads are restricted
// to approved questions; callers never see pending or disapproved ones.
type QuestionRepository interface {
	// ApprovedCandidates returns the unordered candidate set of eligible
	// question ids for one subject/coverage/difficulty triple. An empty
	// pool yields an empty slice, not an error.
	ApprovedCandidates(ctx context.Context, tx *gorm.DB, subjectID uint, coverage models.Coverage, difficulty models.DifficultyLevel) ([]uint, error)

	// Availability counts approved candidates per difficulty bucket.
	Availability(ctx context.Context, tx *gorm.DB, subjectID uint, coverage models.Coverage) (*PoolAvailability, error)

	// GetByIDs loads questions with their choices, for scoring and display.
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Question, error)
}

type DistributionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, distribution *models.DifficultyDistribution) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.DifficultyDistribution, error)
	List(ctx context.Context, tx *gorm.DB) ([]*models.DifficultyDistribution, error)
}

type ExamRepository interface {
	Create(ctx context.Context, tx *gorm.DB, exam *models.PracticeExam) error
	AddQuestions(ctx context.Context, tx *gorm.DB, links []*models.PracticeExamQuestion) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.PracticeExam, error)
	// GetByIDWithQuestions loads the exam with its question links ordered by
	// Order ascending, each link preloading the question and its choices.
	GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.PracticeExam, error)
	GetByCreator(ctx context.Context, tx *gorm.DB, creatorID string, filters ExamFilters) ([]*models.PracticeExam, error)
}

type SettingRepository interface {
	// Get returns the setting row for (userID, subjectID) or a not-found error.
	Get(ctx context.Context, tx *gorm.DB, userID string, subjectID uint) (*models.PracticeExamSetting, error)
	// Upsert creates or replaces the single (userID, subjectID) row. The
	// unique index on the pair is what prevents duplicates under concurrency.
	Upsert(ctx context.Context, tx *gorm.DB, setting *models.PracticeExamSetting) error
	Create(ctx context.Context, tx *gorm.DB, setting *models.PracticeExamSetting) error
}

type ResultRepository interface {
	Create(ctx context.Context, tx *gorm.DB, result *models.PracticeExamResult) error
	GetByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]*models.PracticeExamResult, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID string, filters ResultFilters) ([]*models.PracticeExamResult, error)
	// List returns results across users, for faculty-facing reporting.
	List(ctx context.Context, tx *gorm.DB, filters ResultFilters) ([]*models.PracticeExamResult, error)
}

// UserRepository resolves requester identity from the identity provider.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}
