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

type distributionService struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewDistributionService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.Validator) DistributionService {
	return &distributionService{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *distributionService) Create(ctx context.Context, req *CreateDistributionRequest, creatorID string) (*models.DifficultyDistribution, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDistribution, errs.Error())
	}

	distribution := &models.DifficultyDistribution{
		Name:            req.Name,
		EasyPercent:     req.EasyPercent,
		ModeratePercent: req.ModeratePercent,
		HardPercent:     req.HardPercent,
		CreatedBy:       creatorID,
	}

	if err := s.repo.Distribution().Create(ctx, nil, distribution); err != nil {
		return nil, fmt.Errorf("failed to create distribution: %w", err)
	}

	s.logger.Info("Distribution created", "distribution_id", distribution.ID, "name", distribution.Name)
	return distribution, nil
}

func (s *distributionService) GetByID(ctx context.Context, id uint) (*models.DifficultyDistribution, error) {
	distribution, err := s.repo.Distribution().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %d", ErrDistributionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get distribution: %w", err)
	}
	return distribution, nil
}

func (s *distributionService) List(ctx context.Context) (*DistributionListResponse, error) {
	distributions, err := s.repo.Distribution().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list distributions: %w", err)
	}
	return &DistributionListResponse{Distributions: distributions}, nil
}
