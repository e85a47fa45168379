package postgres

import (
	"context"
	"fmt"

	"github.com/kylo18/practice-exam-service/internal/models"
	"github.com/kylo18/practice-exam-service/internal/repositories"
	"gorm.io/gorm"
)

type ResultPostgreSQL struct {
	db            *gorm.DB
	sharedHelpers *SharedHelpers
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{
		db:            db,
		sharedHelpers: NewSharedHelpers(db),
	}
}

func (r *ResultPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create appends a result row. Results are never updated in place, so a
// repeated submission for the same exam yields a new row.
func (r *ResultPostgreSQL) Create(ctx context.Context, tx *gorm.DB, result *models.PracticeExamResult) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to create practice exam result: %w", err)
	}
	return nil
}

func (r *ResultPostgreSQL) GetByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]*models.PracticeExamResult, error) {
	db := r.getDB(tx)

	var results []*models.PracticeExamResult
	if err := db.WithContext(ctx).
		Where("exam_id = ?", examID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to get results by exam: %w", err)
	}

	return results, nil
}

func (r *ResultPostgreSQL) GetByUser(ctx context.Context, tx *gorm.DB, userID string, filters repositories.ResultFilters) ([]*models.PracticeExamResult, error) {
	query := r.getDB(tx).WithContext(ctx).
		Model(&models.PracticeExamResult{}).
		Where("user_id = ?", userID)

	var results []*models.PracticeExamResult
	if err := r.applyFilters(query, filters).Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to get results by user: %w", err)
	}

	return results, nil
}

func (r *ResultPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.ResultFilters) ([]*models.PracticeExamResult, error) {
	query := r.getDB(tx).WithContext(ctx).Model(&models.PracticeExamResult{})

	var results []*models.PracticeExamResult
	if err := r.applyFilters(query, filters).Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}

func (r *ResultPostgreSQL) applyFilters(query *gorm.DB, filters repositories.ResultFilters) *gorm.DB {
	if filters.SubjectID != nil {
		query = query.Where("subject_id = ?", *filters.SubjectID)
	}
	if filters.ExamID != nil {
		query = query.Where("exam_id = ?", *filters.ExamID)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	return r.sharedHelpers.ApplyPaginationAndSort(query, "created_at", "desc", filters.Limit, filters.Offset)
}
