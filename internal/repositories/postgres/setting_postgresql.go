package postgres

import (
	"context"
	"fmt"

	"github.com/kylo18/practice-exam-service/internal/models"
	"github.com/kylo18/practice-exam-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingPostgreSQL struct {
	db *gorm.DB
}

func NewSettingPostgreSQL(db *gorm.DB) repositories.SettingRepository {
	return &SettingPostgreSQL{db: db}
}

func (s *SettingPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}

func (s *SettingPostgreSQL) Get(ctx context.Context, tx *gorm.DB, userID string, subjectID uint) (*models.PracticeExamSetting, error) {
	db := s.getDB(tx)

	var setting models.PracticeExamSetting
	if err := db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		First(&setting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("practice exam setting for user %s subject %d: %w", userID, subjectID, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get practice exam setting: %w", err)
	}

	return &setting, nil
}

func (s *SettingPostgreSQL) Create(ctx context.Context, tx *gorm.DB, setting *models.PracticeExamSetting) error {
	db := s.getDB(tx)
	if err := db.WithContext(ctx).Create(setting).Error; err != nil {
		return fmt.Errorf("failed to create practice exam setting: %w", err)
	}
	return nil
}

// Upsert inserts or refreshes the per-user-per-subject setting row.
func (s *SettingPostgreSQL) Upsert(ctx context.Context, tx *gorm.DB, setting *models.PracticeExamSetting) error {
	db := s.getDB(tx)
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "subject_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"enabled", "timer_enabled", "time_limit_minutes", "coverage",
				"easy_percent", "moderate_percent", "hard_percent", "item_count", "updated_at",
			}),
		}).
		Create(setting).Error; err != nil {
		return fmt.Errorf("failed to upsert practice exam setting: %w", err)
	}
	return nil
}
