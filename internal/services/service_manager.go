package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/kylo18/practice-exam-service/internal/events"
	"github.com/kylo18/practice-exam-service/internal/repositories"
	"github.com/kylo18/practice-exam-service/internal/validator"
)

// serviceManager implements ServiceManager
type serviceManager struct {
	db             *gorm.DB
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher

	practiceExamService PracticeExamService
	resultService       ResultService
	distributionService DistributionService
	settingService      SettingService
	exportService       ExportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with an explicit event
// publisher.
func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ServiceManager {
	return &serviceManager{
		db:             db,
		repo:           repo,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// NewDefaultServiceManager creates a service manager with an in-memory event
// publisher, for local runs and tests without a broker.
func NewDefaultServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.Validator) ServiceManager {
	return NewServiceManager(db, repo, logger, v, events.NewMockEventPublisher(logger))
}

// Initialize sets up all services
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.repo == nil {
		return fmt.Errorf("repository is required")
	}

	sm.practiceExamService = NewPracticeExamService(sm.db, sm.repo, sm.logger, sm.validator, sm.eventPublisher)
	sm.resultService = NewResultService(sm.db, sm.repo, sm.logger, sm.validator, sm.eventPublisher)
	sm.distributionService = NewDistributionService(sm.db, sm.repo, sm.logger, sm.validator)
	sm.settingService = NewSettingService(sm.db, sm.repo, sm.logger, sm.validator)
	sm.exportService = NewExportService(sm.db, sm.repo, sm.logger)

	sm.initialized = true
	sm.logger.Info("Services initialized")
	return nil
}

func (sm *serviceManager) PracticeExam() PracticeExamService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.practiceExamService
}

func (sm *serviceManager) Result() ResultService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.resultService
}

func (sm *serviceManager) Distribution() DistributionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.distributionService
}

func (sm *serviceManager) Setting() SettingService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.settingService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.exportService
}

// HealthCheck verifies the repository connections behind the services.
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("services not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("services are shut down")
	}

	return sm.repo.Ping(ctx)
}

// Shutdown releases the event publisher; database and cache connections are
// owned by main.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}
	sm.shutdown = true

	if sm.eventPublisher != nil {
		if err := sm.eventPublisher.Close(); err != nil {
			sm.logger.Warn("Failed to close event publisher", "error", err)
		}
	}

	sm.logger.Info("Services shut down")
	return nil
}
