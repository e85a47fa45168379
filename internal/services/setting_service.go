package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/kylo18/practice-exam-service/internal/models"
	"github.com/kylo18/practice-exam-service/internal/repositories"
	"github.com/kylo18/practice-exam-service/internal/validator"
)

type settingService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSettingService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.Validator) SettingService {
	return &settingService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *settingService) Get(ctx context.Context, userID string, subjectID uint) (*SettingResponse, error) {
	setting, err := s.repo.Setting().Get(ctx, nil, userID, subjectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: subject %d", ErrSettingNotFound, subjectID)
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return &SettingResponse{PracticeExamSetting: setting}, nil
}

// Upsert merges the request over the existing setting, or over defaults when
// none exists yet. The (user, subject) pair stays unique via the schema.
func (s *settingService) Upsert(ctx context.Context, req *UpsertSettingRequest, userID string) (*SettingResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	if _, err := s.repo.Subject().GetByID(ctx, nil, req.SubjectID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: subject %d", ErrSubjectNotFound, req.SubjectID)
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	setting := &models.PracticeExamSetting{
		UserID:          userID,
		SubjectID:       req.SubjectID,
		Enabled:         true,
		Coverage:        models.CoverageMidterm,
		EasyPercent:     defaultEasyPercent,
		ModeratePercent: defaultModeratePercent,
		HardPercent:     defaultHardPercent,
		ItemCount:       defaultItemCount,
	}

	existing, err := s.repo.Setting().Get(ctx, nil, userID, req.SubjectID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	if existing != nil {
		setting = existing
	}

	if req.Enabled != nil {
		setting.Enabled = *req.Enabled
	}
	if req.TimerEnabled != nil {
		setting.TimerEnabled = *req.TimerEnabled
	}
	if req.TimeLimitMinutes != nil {
		setting.TimeLimitMinutes = *req.TimeLimitMinutes
	}
	if req.Coverage != nil {
		setting.Coverage = *req.Coverage
	}
	if req.EasyPercent != nil {
		// Validator guarantees the trio is complete and sums to 100.
		setting.EasyPercent = *req.EasyPercent
		setting.ModeratePercent = *req.ModeratePercent
		setting.HardPercent = *req.HardPercent
	}
	if req.ItemCount != nil {
		setting.ItemCount = *req.ItemCount
	}

	if err := s.repo.Setting().Upsert(ctx, nil, setting); err != nil {
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}

	s.logger.Info("Practice exam setting saved", "user_id", userID, "subject_id", req.SubjectID)
	return &SettingResponse{PracticeExamSetting: setting}, nil
}
