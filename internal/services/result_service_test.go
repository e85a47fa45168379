package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kylo18/practice-exam-service/internal/events"
	"github.com/kylo18/practice-exam-service/internal/models"
	"github.com/kylo18/practice-exam-service/internal/repositories"
	"github.com/kylo18/practice-exam-service/internal/validator"
)

func newTestResultService(repo *fakeRepository, publisher events.EventPublisher) *resultService {
	return &resultService{
		repo:           repo,
		logger:         testLogger(),
		validator:      validator.New(),
		eventPublisher: publisher,
	}
}

// seedExam builds an exam whose questions have the given scores. Question ids
// are sequential from 1 and the correct choice of question id is id*10+1.
func seedExam(repo *fakeRepository, subjectID uint, scores []int) *models.PracticeExam {
	exam := &models.PracticeExam{
		SubjectID:      subjectID,
		CreatedBy:      "faculty-1",
		Coverage:       models.CoverageMidterm,
		RequestedCount: len(scores),
		Status:         models.ExamActive,
	}
	repo.exams.Create(context.Background(), nil, exam)

	for i, score := range scores {
		id := uint(i + 1)
		repo.questions.addQuestion(&models.Question{
			ID:         id,
			SubjectID:  subjectID,
			Text:       "q",
			Score:      score,
			Difficulty: models.DifficultyEasy,
			Coverage:   models.CoverageMidterm,
			Status:     models.QuestionApproved,
			Choices: []models.Choice{
				{ID: id*10 + 1, QuestionID: id, Text: "right", IsCorrect: true, Position: 1},
				{ID: id*10 + 2, QuestionID: id, Text: "wrong", Position: 2},
			},
		})
		repo.exams.links = append(repo.exams.links, &models.PracticeExamQuestion{
			ExamID:     exam.ID,
			QuestionID: id,
			Order:      i + 1,
			Difficulty: models.DifficultyEasy,
		})
	}
	return exam
}

func TestResultSubmit_Scoring(t *testing.T) {
	repo := newFakeRepository()
	exam := seedExam(repo, 1, []int{5, 5, 10})

	publisher := events.NewMockEventPublisher(testLogger())
	svc := newTestResultService(repo, publisher)

	// Correct on questions 1 and 3, wrong choice on question 2.
	resp, err := svc.Submit(context.Background(), exam.ID, &SubmitPracticeExamRequest{
		Answers: map[uint]uint{1: 11, 2: 22, 3: 31},
	}, "student-1")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if resp.EarnedPoints != 15 || resp.TotalPoints != 20 {
		t.Errorf("earned/total = %d/%d, want 15/20", resp.EarnedPoints, resp.TotalPoints)
	}
	if resp.Percentage != 75.00 {
		t.Errorf("percentage = %v, want 75.00", resp.Percentage)
	}
	if resp.SubjectID != 1 || resp.UserID != "student-1" {
		t.Errorf("result row = %+v", resp.PracticeExamResult)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 {
		t.Fatalf("got %d events, want 1", len(published))
	}
	if published[0].Type != events.EventResultRecorded {
		t.Errorf("event type = %s, want %s", published[0].Type, events.EventResultRecorded)
	}
	payload, ok := published[0].Data.(events.ResultRecordedEvent)
	if !ok {
		t.Fatalf("event data is %T, want events.ResultRecordedEvent", published[0].Data)
	}
	if payload.ResultID != resp.ID || payload.Percentage != 75.00 {
		t.Errorf("event payload = %+v", payload)
	}
}

func TestResultSubmit_UnansweredAndForeignQuestions(t *testing.T) {
	repo := newFakeRepository()
	exam := seedExam(repo, 1, []int{5, 5, 10})

	svc := newTestResultService(repo, events.NewMockEventPublisher(testLogger()))

	// Only question 1 answered; the 999 entry does not belong to this exam.
	resp, err := svc.Submit(context.Background(), exam.ID, &SubmitPracticeExamRequest{
		Answers: map[uint]uint{1: 11, 999: 1},
	}, "student-1")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if resp.EarnedPoints != 5 || resp.TotalPoints != 20 {
		t.Errorf("earned/total = %d/%d, want 5/20", resp.EarnedPoints, resp.TotalPoints)
	}
	if resp.Percentage != 25.00 {
		t.Errorf("percentage = %v, want 25.00", resp.Percentage)
	}
}

func TestResultSubmit_EmptyExam(t *testing.T) {
	repo := newFakeRepository()
	exam := seedExam(repo, 1, nil)

	svc := newTestResultService(repo, events.NewMockEventPublisher(testLogger()))

	resp, err := svc.Submit(context.Background(), exam.ID, &SubmitPracticeExamRequest{
		Answers: map[uint]uint{},
	}, "student-1")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if resp.TotalPoints != 0 || resp.EarnedPoints != 0 || resp.Percentage != 0 {
		t.Errorf("zero-question exam scored %+v, want all zero", resp.PracticeExamResult)
	}
}

func TestResultSubmit_AppendsOnResubmission(t *testing.T) {
	repo := newFakeRepository()
	exam := seedExam(repo, 1, []int{5, 5})

	svc := newTestResultService(repo, events.NewMockEventPublisher(testLogger()))

	first, err := svc.Submit(context.Background(), exam.ID, &SubmitPracticeExamRequest{
		Answers: map[uint]uint{1: 11, 2: 21},
	}, "student-1")
	if err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}
	second, err := svc.Submit(context.Background(), exam.ID, &SubmitPracticeExamRequest{
		Answers: map[uint]uint{1: 12},
	}, "student-1")
	if err != nil {
		t.Fatalf("second Submit failed: %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("resubmission reused result id %d", first.ID)
	}
	if len(repo.results.results) != 2 {
		t.Errorf("got %d result rows, want 2", len(repo.results.results))
	}
	if first.Percentage != 100.00 || second.Percentage != 0 {
		t.Errorf("percentages = %v and %v, want 100.00 and 0", first.Percentage, second.Percentage)
	}
}

func TestResultSubmit_ExamNotFound(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestResultService(repo, events.NewMockEventPublisher(testLogger()))

	_, err := svc.Submit(context.Background(), 9999, &SubmitPracticeExamRequest{
		Answers: map[uint]uint{1: 1},
	}, "student-1")
	if !errors.Is(err, ErrExamNotFound) {
		t.Fatalf("err = %v, want ErrExamNotFound", err)
	}
}

func TestResultSubmit_MissingAnswers(t *testing.T) {
	repo := newFakeRepository()
	exam := seedExam(repo, 1, []int{5})

	svc := newTestResultService(repo, events.NewMockEventPublisher(testLogger()))

	_, err := svc.Submit(context.Background(), exam.ID, &SubmitPracticeExamRequest{}, "student-1")
	if err == nil {
		t.Fatal("expected validation error for missing answers")
	}
	if !IsValidationError(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestResultGetByExamAndUser(t *testing.T) {
	repo := newFakeRepository()
	exam := seedExam(repo, 1, []int{5})

	svc := newTestResultService(repo, events.NewMockEventPublisher(testLogger()))

	for _, user := range []string{"student-1", "student-1", "student-2"} {
		if _, err := svc.Submit(context.Background(), exam.ID, &SubmitPracticeExamRequest{
			Answers: map[uint]uint{1: 11},
		}, user); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	byExam, err := svc.GetByExam(context.Background(), exam.ID, "faculty-1")
	if err != nil {
		t.Fatalf("GetByExam failed: %v", err)
	}
	if byExam.Total != 3 {
		t.Errorf("exam has %d results, want 3", byExam.Total)
	}

	byUser, err := svc.GetByUser(context.Background(), "student-1", repositories.ResultFilters{})
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if byUser.Total != 2 {
		t.Errorf("student-1 has %d results, want 2", byUser.Total)
	}

	if _, err := svc.GetByExam(context.Background(), 9999, "faculty-1"); !errors.Is(err, ErrExamNotFound) {
		t.Errorf("err = %v, want ErrExamNotFound", err)
	}
}

func TestPercentageRounding(t *testing.T) {
	tests := []struct {
		name   string
		earned int
		total  int
		want   float64
	}{
		{name: "three quarters", earned: 15, total: 20, want: 75.00},
		{name: "two decimals", earned: 1, total: 3, want: 33.33},
		{name: "rounds up", earned: 2, total: 3, want: 66.67},
		{name: "full marks", earned: 20, total: 20, want: 100.00},
		{name: "zero total", earned: 0, total: 0, want: 0},
		{name: "negative total", earned: 5, total: -1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentage(tt.earned, tt.total); got != tt.want {
				t.Errorf("percentage(%d, %d) = %v, want %v", tt.earned, tt.total, got, tt.want)
			}
		})
	}
}
