package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"gorm.io/gorm"

	"github.com/kylo18/practice-exam-service/internal/events"
	"github.com/kylo18/practice-exam-service/internal/models"
	"github.com/kylo18/practice-exam-service/internal/repositories"
	"github.com/kylo18/practice-exam-service/internal/validator"
)

// Assembly defaults when neither the request nor a saved setting supplies a
// value.
const (
	defaultItemCount       = 10
	defaultEasyPercent     = 30
	defaultModeratePercent = 40
	defaultHardPercent     = 30
	defaultCoverage        = models.CoverageMidterm
)

type practiceExamService struct {
	db             *gorm.DB
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher

	// Injectable randomness source for deterministic tests.
	newRand func() *rand.Rand
}

func NewPracticeExamService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) PracticeExamService {
	return &practiceExamService{
		db:             db,
		repo:           repo,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// examPlan is the fully resolved set of assembly parameters after applying
// request overrides, the caller's saved setting and service defaults.
type examPlan struct {
	coverage         models.Coverage
	itemCount        int
	easyPercent      int
	moderatePercent  int
	hardPercent      int
	distributionID   *uint
	timerEnabled     bool
	timeLimitMinutes int
}

// Create assembles a practice exam and commits it atomically.
func (s *practiceExamService) Create(ctx context.Context, req *CreatePracticeExamRequest, requesterID string) (*PracticeExamResponse, error) {
	s.logger.Info("Creating practice exam", "subject_id", req.SubjectID, "requester_id", requesterID)

	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDistribution, errs.Error())
	}

	if _, err := s.repo.Subject().GetByID(ctx, nil, req.SubjectID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: subject %d", ErrSubjectNotFound, req.SubjectID)
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	plan, err := s.resolvePlan(ctx, req, requesterID)
	if err != nil {
		return nil, err
	}

	counts := ResolveCounts(plan.itemCount, plan.easyPercent, plan.moderatePercent, plan.hardPercent)

	picked, pickedCounts, err := s.assembleQuestions(ctx, req.SubjectID, plan.coverage, counts)
	if err != nil {
		return nil, err
	}

	exam := &models.PracticeExam{
		SubjectID:        req.SubjectID,
		CreatedBy:        requesterID,
		Coverage:         plan.coverage,
		RequestedCount:   plan.itemCount,
		DistributionID:   plan.distributionID,
		EasyPercent:      plan.easyPercent,
		ModeratePercent:  plan.moderatePercent,
		HardPercent:      plan.hardPercent,
		Status:           models.ExamActive,
		TimerEnabled:     plan.timerEnabled,
		TimeLimitMinutes: plan.timeLimitMinutes,
	}

	if err := s.commit(ctx, exam, picked, plan, requesterID); err != nil {
		s.logger.Error("Failed to commit practice exam", "subject_id", req.SubjectID, "error", err)
		return nil, fmt.Errorf("%w: %s", ErrPersistenceFailed, err)
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventExamCreated,
		Data: events.ExamCreatedEvent{
			ExamID:         exam.ID,
			SubjectID:      exam.SubjectID,
			CreatedBy:      requesterID,
			Coverage:       string(exam.Coverage),
			QuestionCount:  len(picked),
			RequestedCount: exam.RequestedCount,
		},
	})

	s.logger.Info("Practice exam created", "exam_id", exam.ID, "question_count", len(picked))

	return s.buildResponse(ctx, exam.ID, pickedCounts)
}

// resolvePlan layers the request over the caller's saved setting and the
// service defaults.
func (s *practiceExamService) resolvePlan(ctx context.Context, req *CreatePracticeExamRequest, requesterID string) (*examPlan, error) {
	plan := &examPlan{
		coverage:        defaultCoverage,
		itemCount:       defaultItemCount,
		easyPercent:     defaultEasyPercent,
		moderatePercent: defaultModeratePercent,
		hardPercent:     defaultHardPercent,
	}

	setting, err := s.repo.Setting().Get(ctx, nil, requesterID, req.SubjectID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get practice exam setting: %w", err)
	}

	if setting != nil {
		if !setting.Enabled {
			return nil, ErrPracticeExamDisabled
		}
		plan.coverage = setting.Coverage
		plan.itemCount = setting.ItemCount
		plan.easyPercent = setting.EasyPercent
		plan.moderatePercent = setting.ModeratePercent
		plan.hardPercent = setting.HardPercent
		plan.timerEnabled = setting.TimerEnabled
		plan.timeLimitMinutes = setting.TimeLimitMinutes
	}

	if req.Coverage != nil {
		plan.coverage = *req.Coverage
	}
	if req.RequestedCount != nil {
		plan.itemCount = *req.RequestedCount
	}
	if req.TimerEnabled != nil {
		plan.timerEnabled = *req.TimerEnabled
	}
	if req.TimeLimitMinutes != nil {
		plan.timeLimitMinutes = *req.TimeLimitMinutes
	}

	switch {
	case req.DistributionID != nil:
		distribution, err := s.repo.Distribution().GetByID(ctx, nil, *req.DistributionID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, fmt.Errorf("%w: distribution %d", ErrDistributionNotFound, *req.DistributionID)
			}
			return nil, fmt.Errorf("failed to get distribution: %w", err)
		}
		plan.distributionID = req.DistributionID
		plan.easyPercent = distribution.EasyPercent
		plan.moderatePercent = distribution.ModeratePercent
		plan.hardPercent = distribution.HardPercent

	case req.EasyPercent != nil:
		// Validator guarantees the trio is complete and sums to 100.
		plan.easyPercent = *req.EasyPercent
		plan.moderatePercent = *req.ModeratePercent
		plan.hardPercent = *req.HardPercent
	}

	return plan, nil
}

// assembleQuestions samples each bucket uniformly without replacement and
// concatenates easy, moderate, hard. Under-supplied buckets are filled with
// everything available; only a fully empty pool is an error.
func (s *practiceExamService) assembleQuestions(ctx context.Context, subjectID uint, coverage models.Coverage, counts BucketCounts) ([]pickedQuestion, BucketCounts, error) {
	wanted := map[models.DifficultyLevel]int{
		models.DifficultyEasy:     counts.Easy,
		models.DifficultyModerate: counts.Moderate,
		models.DifficultyHard:     counts.Hard,
	}

	rng := s.newRand()
	var picked []pickedQuestion
	var pickedCounts BucketCounts

	for _, difficulty := range models.AllDifficulties {
		want := wanted[difficulty]
		if want == 0 {
			continue
		}

		candidates, err := s.repo.Question().ApprovedCandidates(ctx, nil, subjectID, coverage, difficulty)
		if err != nil {
			return nil, BucketCounts{}, fmt.Errorf("failed to get candidates for %s: %w", difficulty, err)
		}

		ids := sampleWithoutReplacement(rng, candidates, want)
		for _, id := range ids {
			picked = append(picked, pickedQuestion{QuestionID: id, Difficulty: difficulty})
		}

		switch difficulty {
		case models.DifficultyEasy:
			pickedCounts.Easy = len(ids)
		case models.DifficultyModerate:
			pickedCounts.Moderate = len(ids)
		case models.DifficultyHard:
			pickedCounts.Hard = len(ids)
		}
	}

	if len(picked) == 0 {
		return nil, BucketCounts{}, fmt.Errorf("%w: subject %d %s has no approved questions", ErrInsufficientQuestionPool, subjectID, coverage)
	}

	return picked, pickedCounts, nil
}

type pickedQuestion struct {
	QuestionID uint
	Difficulty models.DifficultyLevel
}

// sampleWithoutReplacement shuffles a copy of the candidate ids and takes the
// first k. When the pool is smaller than k, everything is returned.
func sampleWithoutReplacement(rng *rand.Rand, candidates []uint, k int) []uint {
	if k >= len(candidates) {
		k = len(candidates)
	}
	if k == 0 {
		return nil
	}

	pool := make([]uint, len(candidates))
	copy(pool, candidates)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	return pool[:k]
}

// commit writes the exam row, its ordered question links and the caller's
// exam setting as one transaction.
func (s *practiceExamService) commit(ctx context.Context, exam *models.PracticeExam, picked []pickedQuestion, plan *examPlan, requesterID string) error {
	return s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Exam().Create(ctx, nil, exam); err != nil {
			return err
		}

		links := make([]*models.PracticeExamQuestion, 0, len(picked))
		for i, p := range picked {
			links = append(links, &models.PracticeExamQuestion{
				ExamID:     exam.ID,
				QuestionID: p.QuestionID,
				Order:      i + 1,
				Difficulty: p.Difficulty,
			})
		}
		if err := txRepo.Exam().AddQuestions(ctx, nil, links); err != nil {
			return err
		}

		setting := &models.PracticeExamSetting{
			UserID:           requesterID,
			SubjectID:        exam.SubjectID,
			Enabled:          true,
			TimerEnabled:     plan.timerEnabled,
			TimeLimitMinutes: plan.timeLimitMinutes,
			Coverage:         plan.coverage,
			EasyPercent:      plan.easyPercent,
			ModeratePercent:  plan.moderatePercent,
			HardPercent:      plan.hardPercent,
			ItemCount:        plan.itemCount,
		}
		return txRepo.Setting().Upsert(ctx, nil, setting)
	})
}

// GetByID returns the exam aggregate with ordered questions, correct flags
// stripped.
func (s *practiceExamService) GetByID(ctx context.Context, examID uint, requesterID string) (*PracticeExamResponse, error) {
	exam, err := s.repo.Exam().GetByIDWithQuestions(ctx, nil, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %d", ErrExamNotFound, examID)
		}
		return nil, fmt.Errorf("failed to get practice exam: %w", err)
	}

	return buildExamResponse(exam), nil
}

// List returns exams created by the requester.
func (s *practiceExamService) List(ctx context.Context, requesterID string, filters repositories.ExamFilters) (*PracticeExamListResponse, error) {
	exams, err := s.repo.Exam().GetByCreator(ctx, nil, requesterID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list practice exams: %w", err)
	}

	return &PracticeExamListResponse{
		Exams: exams,
		Total: len(exams),
	}, nil
}

// Availability probes the per-bucket approved question counts.
func (s *practiceExamService) Availability(ctx context.Context, subjectID uint, coverage models.Coverage) (*PoolAvailabilityResponse, error) {
	if _, err := s.repo.Subject().GetByID(ctx, nil, subjectID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: subject %d", ErrSubjectNotFound, subjectID)
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	buckets, err := s.repo.Question().Availability(ctx, nil, subjectID, coverage)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool availability: %w", err)
	}

	return &PoolAvailabilityResponse{
		SubjectID: subjectID,
		Coverage:  coverage,
		Buckets:   buckets,
	}, nil
}

func (s *practiceExamService) buildResponse(ctx context.Context, examID uint, counts BucketCounts) (*PracticeExamResponse, error) {
	exam, err := s.repo.Exam().GetByIDWithQuestions(ctx, nil, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload practice exam: %w", err)
	}

	resp := buildExamResponse(exam)
	resp.Counts = counts
	return resp, nil
}

func buildExamResponse(exam *models.PracticeExam) *PracticeExamResponse {
	questions := make([]ExamQuestionResponse, 0, len(exam.Questions))
	var counts BucketCounts

	for _, link := range exam.Questions {
		switch link.Difficulty {
		case models.DifficultyEasy:
			counts.Easy++
		case models.DifficultyModerate:
			counts.Moderate++
		case models.DifficultyHard:
			counts.Hard++
		}

		q := ExamQuestionResponse{
			Order:      link.Order,
			QuestionID: link.QuestionID,
			Difficulty: link.Difficulty,
		}
		if link.Question.ID != 0 {
			q.Text = link.Question.Text
			q.ImageURL = link.Question.ImageURL
			q.Score = link.Question.Score
			q.Choices = make([]ChoiceResponse, 0, len(link.Question.Choices))
			for _, c := range link.Question.Choices {
				q.Choices = append(q.Choices, ChoiceResponse{
					ID:       c.ID,
					Text:     c.Text,
					ImageURL: c.ImageURL,
					Position: c.Position,
				})
			}
		}
		questions = append(questions, q)
	}

	return &PracticeExamResponse{
		PracticeExam: exam,
		Counts:       counts,
		Questions:    questions,
	}
}

func (s *practiceExamService) publishEvent(ctx context.Context, event events.Event) {
	if s.eventPublisher == nil {
		return
	}

	// Event delivery is best-effort; the exam is already committed.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.eventPublisher.Publish(publishCtx, event); err != nil {
		s.logger.Warn("Failed to publish event", "type", event.Type, "error", err)
	}
}
