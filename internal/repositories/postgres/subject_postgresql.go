package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/kylo18/practice-exam-service/internal/cache"
	"github.com/kylo18/practice-exam-service/internal/models"
	"github.com/kylo18/practice-exam-service/internal/repositories"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type SubjectPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewSubjectPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.SubjectRepository {
	return &SubjectPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (s *SubjectPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}

func (s *SubjectPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Subject, error) {
	db := s.getDB(tx)
	var subject models.Subject
	if err := db.WithContext(ctx).First(&subject, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("subject %d: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return &subject, nil
}

// Exists answers the existence check from a short-lived cache. Transactional
// callers read the database directly.
func (s *SubjectPostgreSQL) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	if tx != nil {
		return s.countByID(ctx, tx, id)
	}

	var exists bool
	cacheKey := fmt.Sprintf("subject:%d", id)
	err := s.cacheManager.Exists.CacheOrExecute(ctx, cacheKey, &exists, cache.ExistsCacheConfig.TTL, func() (interface{}, error) {
		found, err := s.countByID(ctx, nil, id)
		if err != nil {
			return nil, err
		}
		return found, nil
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (s *SubjectPostgreSQL) countByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	db := s.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.Subject{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check subject existence: %w", err)
	}
	return count > 0, nil
}
