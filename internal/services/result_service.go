package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/kylo18/practice-exam-service/internal/events"
	"github.com/kylo18/practice-exam-service/internal/models"
	"github.com/kylo18/practice-exam-service/internal/repositories"
	"github.com/kylo18/practice-exam-service/internal/validator"
)

type resultService struct {
	db             *gorm.DB
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewResultService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ResultService {
	return &resultService{
		db:             db,
		repo:           repo,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// Submit scores a sitting against the exam's questions and records an
// append-only result row. Resubmission yields a new row; deduplication by
// exam and user is deliberately not done here.
func (s *resultService) Submit(ctx context.Context, examID uint, req *SubmitPracticeExamRequest, submitterID string) (*ResultResponse, error) {
	s.logger.Info("Scoring practice exam submission", "exam_id", examID, "submitter_id", submitterID)

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, errs
	}

	exam, err := s.repo.Exam().GetByIDWithQuestions(ctx, nil, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %d", ErrExamNotFound, examID)
		}
		return nil, fmt.Errorf("failed to get practice exam: %w", err)
	}

	earned, total := scoreAnswers(exam.Questions, req.Answers)

	result := &models.PracticeExamResult{
		ExamID:       exam.ID,
		UserID:       submitterID,
		SubjectID:    exam.SubjectID,
		TotalPoints:  total,
		EarnedPoints: earned,
		Percentage:   percentage(earned, total),
	}

	if err := s.repo.Result().Create(ctx, nil, result); err != nil {
		return nil, fmt.Errorf("failed to record result: %w", err)
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventResultRecorded,
		Data: events.ResultRecordedEvent{
			ResultID:     result.ID,
			ExamID:       result.ExamID,
			UserID:       result.UserID,
			SubjectID:    result.SubjectID,
			TotalPoints:  result.TotalPoints,
			EarnedPoints: result.EarnedPoints,
			Percentage:   result.Percentage,
		},
	})

	s.logger.Info("Practice exam result recorded",
		"result_id", result.ID,
		"exam_id", examID,
		"earned", earned,
		"total", total,
		"percentage", result.Percentage)

	return &ResultResponse{PracticeExamResult: result}, nil
}

// scoreAnswers walks the exam's questions in order. Unanswered questions and
// answer keys that reference questions outside the exam score zero; they are
// never an error.
func scoreAnswers(links []models.PracticeExamQuestion, answers map[uint]uint) (earned, total int) {
	for _, link := range links {
		question := link.Question
		if question.ID == 0 {
			continue
		}

		total += question.Score

		choiceID, answered := answers[question.ID]
		if !answered {
			continue
		}

		if correct := question.CorrectChoiceID(); correct != 0 && choiceID == correct {
			earned += question.Score
		}
	}
	return earned, total
}

// percentage computes earned/total as a percentage rounded to two decimals,
// clamped to [0,100]. A zero-point exam scores 0 rather than dividing.
func percentage(earned, total int) float64 {
	if total <= 0 {
		return 0
	}

	pct := float64(earned) / float64(total) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return math.Round(pct*100) / 100
}

// GetByExam returns the result history for one exam.
func (s *resultService) GetByExam(ctx context.Context, examID uint, requesterID string) (*ResultListResponse, error) {
	if _, err := s.repo.Exam().GetByID(ctx, nil, examID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %d", ErrExamNotFound, examID)
		}
		return nil, fmt.Errorf("failed to get practice exam: %w", err)
	}

	results, err := s.repo.Result().GetByExam(ctx, nil, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}

	return &ResultListResponse{Results: results, Total: len(results)}, nil
}

// GetByUser returns the requester's result history.
func (s *resultService) GetByUser(ctx context.Context, userID string, filters repositories.ResultFilters) (*ResultListResponse, error) {
	results, err := s.repo.Result().GetByUser(ctx, nil, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}

	return &ResultListResponse{Results: results, Total: len(results)}, nil
}

func (s *resultService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.eventPublisher.Publish(publishCtx, event); err != nil {
		s.logger.Warn("Failed to publish event", "type", event.Type, "error", err)
	}
}
