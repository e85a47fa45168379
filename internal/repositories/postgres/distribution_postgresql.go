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

type DistributionPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewDistributionPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.DistributionRepository {
	return &DistributionPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (d *DistributionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return d.db
}

func (d *DistributionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, distribution *models.DifficultyDistribution) error {
	db := d.getDB(tx)
	if err := db.WithContext(ctx).Create(distribution).Error; err != nil {
		return fmt.Errorf("failed to create distribution: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, d.cacheManager.Distribution, "list:*")
	return nil
}

func (d *DistributionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.DifficultyDistribution, error) {
	db := d.getDB(tx)

	cacheKey := fmt.Sprintf("id:%d", id)
	var distribution models.DifficultyDistribution

	err := d.cacheManager.Distribution.CacheOrExecute(ctx, cacheKey, &distribution, cache.DistributionCacheConfig.TTL, func() (interface{}, error) {
		var dbDistribution models.DifficultyDistribution
		if err := db.WithContext(ctx).First(&dbDistribution, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("distribution %d: %w", id, gorm.ErrRecordNotFound)
			}
			return nil, fmt.Errorf("failed to get distribution: %w", err)
		}
		return &dbDistribution, nil
	})
	if err != nil {
		return nil, err
	}

	return &distribution, nil
}

func (d *DistributionPostgreSQL) List(ctx context.Context, tx *gorm.DB) ([]*models.DifficultyDistribution, error) {
	db := d.getDB(tx)

	var distributions []*models.DifficultyDistribution
	err := d.cacheManager.Distribution.CacheOrExecute(ctx, "list:all", &distributions, cache.DistributionCacheConfig.TTL, func() (interface{}, error) {
		var dbDistributions []*models.DifficultyDistribution
		if err := db.WithContext(ctx).Order("created_at DESC").Find(&dbDistributions).Error; err != nil {
			return nil, fmt.Errorf("failed to list distributions: %w", err)
		}
		return dbDistributions, nil
	})
	if err != nil {
		return nil, err
	}

	return distributions, nil
}
