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

type QuestionPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewQuestionPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.QuestionRepository {
	return &QuestionPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (q *QuestionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return q.db
}

// ApprovedCandidates returns approved question ids for one
// subject/coverage/difficulty triple, with caching. An empty pool is a
// normal outcome, not an error.
func (q *QuestionPostgreSQL) ApprovedCandidates(ctx context.Context, tx *gorm.DB, subjectID uint, coverage models.Coverage, difficulty models.DifficultyLevel) ([]uint, error) {
	db := q.getDB(tx)

	cacheKey := fmt.Sprintf("subject:%d:%s:%s", subjectID, coverage, difficulty)
	var ids []uint

	err := q.cacheManager.Pool.CacheOrExecute(ctx, cacheKey, &ids, cache.PoolCacheConfig.TTL, func() (interface{}, error) {
		var dbIDs []uint
		if err := db.WithContext(ctx).
			Model(&models.Question{}).
			Where("subject_id = ? AND coverage = ? AND difficulty = ? AND status = ?",
				subjectID, coverage, difficulty, models.QuestionApproved).
			Pluck("id", &dbIDs).Error; err != nil {
			return nil, fmt.Errorf("failed to get approved candidates: %w", err)
		}
		return dbIDs, nil
	})
	if err != nil {
		return nil, err
	}

	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

// Availability counts approved candidates per difficulty bucket.
func (q *QuestionPostgreSQL) Availability(ctx context.Context, tx *gorm.DB, subjectID uint, coverage models.Coverage) (*repositories.PoolAvailability, error) {
	db := q.getDB(tx)

	type bucketCount struct {
		Difficulty models.DifficultyLevel
		Count      int64
	}
	var rows []bucketCount
	if err := db.WithContext(ctx).
		Model(&models.Question{}).
		Select("difficulty, count(*) as count").
		Where("subject_id = ? AND coverage = ? AND status = ?", subjectID, coverage, models.QuestionApproved).
		Group("difficulty").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count approved questions: %w", err)
	}

	availability := &repositories.PoolAvailability{}
	for _, row := range rows {
		switch row.Difficulty {
		case models.DifficultyEasy:
			availability.Easy = row.Count
		case models.DifficultyModerate:
			availability.Moderate = row.Count
		case models.DifficultyHard:
			availability.Hard = row.Count
		}
		availability.Total += row.Count
	}

	return availability, nil
}

// GetByIDs retrieves questions with their choices.
func (q *QuestionPostgreSQL) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Question, error) {
	if len(ids) == 0 {
		return []*models.Question{}, nil
	}

	db := q.getDB(tx)
	var questions []*models.Question
	if err := db.WithContext(ctx).
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id IN ?", ids).
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to get questions by IDs: %w", err)
	}

	return questions, nil
}
