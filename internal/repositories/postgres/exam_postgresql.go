package postgres

import (
	"context"
	"fmt"

	"github.com/kylo18/practice-exam-service/internal/cache"
	"github.com/kylo18/practice-exam-service/internal/models"
	"github.com/kylo18/practice-exam-service/internal/repositories"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ExamPostgreSQL struct {
	db            *gorm.DB
	cacheManager  *cache.CacheManager
	sharedHelpers *SharedHelpers
}

func NewExamPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ExamRepository {
	return &ExamPostgreSQL{
		db:            db,
		cacheManager:  cache.NewCacheManager(redisClient),
		sharedHelpers: NewSharedHelpers(db),
	}
}

func (e *ExamPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return e.db
}

func (e *ExamPostgreSQL) Create(ctx context.Context, tx *gorm.DB, exam *models.PracticeExam) error {
	db := e.getDB(tx)
	if err := db.WithContext(ctx).Create(exam).Error; err != nil {
		return fmt.Errorf("failed to create practice exam: %w", err)
	}
	return nil
}

// AddQuestions inserts the ordered exam-question links in a single batch.
func (e *ExamPostgreSQL) AddQuestions(ctx context.Context, tx *gorm.DB, links []*models.PracticeExamQuestion) error {
	if len(links) == 0 {
		return nil
	}

	db := e.getDB(tx)
	if err := db.WithContext(ctx).Create(links).Error; err != nil {
		return fmt.Errorf("failed to add exam questions: %w", err)
	}

	cache.InvalidateExamCache(ctx, e.cacheManager, links[0].ExamID)
	return nil
}

func (e *ExamPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.PracticeExam, error) {
	db := e.getDB(tx)

	var exam models.PracticeExam
	if err := db.WithContext(ctx).First(&exam, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("practice exam %d: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get practice exam: %w", err)
	}

	return &exam, nil
}

// GetByIDWithQuestions loads an exam with its question links in presentation
// order and each question's choices. The aggregate is immutable after commit,
// so non-transactional reads go through the exam cache.
func (e *ExamPostgreSQL) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.PracticeExam, error) {
	if tx != nil {
		return e.loadAggregate(ctx, tx, id)
	}

	var exam models.PracticeExam
	cacheKey := fmt.Sprintf("details:%d", id)
	err := e.cacheManager.Exam.CacheOrExecute(ctx, cacheKey, &exam, cache.ExamCacheConfig.TTL, func() (interface{}, error) {
		return e.loadAggregate(ctx, nil, id)
	})
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (e *ExamPostgreSQL) loadAggregate(ctx context.Context, tx *gorm.DB, id uint) (*models.PracticeExam, error) {
	db := e.getDB(tx)

	var exam models.PracticeExam
	if err := db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" ASC")
		}).
		Preload("Questions.Question").
		Preload("Questions.Question.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&exam, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("practice exam %d: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get practice exam with questions: %w", err)
	}

	return &exam, nil
}

func (e *ExamPostgreSQL) GetByCreator(ctx context.Context, tx *gorm.DB, createdBy string, filters repositories.ExamFilters) ([]*models.PracticeExam, error) {
	db := e.getDB(tx)

	query := db.WithContext(ctx).Model(&models.PracticeExam{}).Where("created_by = ?", createdBy)

	if filters.SubjectID != nil {
		query = query.Where("subject_id = ?", *filters.SubjectID)
	}
	if filters.Coverage != nil {
		query = query.Where("coverage = ?", *filters.Coverage)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	query = e.sharedHelpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var exams []*models.PracticeExam
	if err := query.Find(&exams).Error; err != nil {
		return nil, fmt.Errorf("failed to list practice exams: %w", err)
	}

	return exams, nil
}
