package postgres

import (
	"context"
	"testing"

	"github.com/kylo18/practice-exam-service/internal/cache"
	"github.com/kylo18/practice-exam-service/internal/models"
)

func TestExamAggregateServedFromCache(t *testing.T) {
	client := newTestRedis(t)
	repo := &ExamPostgreSQL{cacheManager: cache.NewCacheManager(client)}

	warm := &models.PracticeExam{
		ID:        7,
		SubjectID: 3,
		CreatedBy: "student-1",
		Questions: []models.PracticeExamQuestion{
			{ID: 1, ExamID: 7, QuestionID: 11, Order: 1, Difficulty: models.DifficultyEasy},
			{ID: 2, ExamID: 7, QuestionID: 12, Order: 2, Difficulty: models.DifficultyHard},
		},
	}
	// db stays nil, so a cache miss would panic instead of answering.
	if err := repo.cacheManager.Exam.Set(context.Background(), "details:7", warm, cache.ExamCacheConfig.TTL); err != nil {
		t.Fatalf("warming cache failed: %v", err)
	}

	exam, err := repo.GetByIDWithQuestions(context.Background(), nil, 7)
	if err != nil {
		t.Fatalf("GetByIDWithQuestions returned error: %v", err)
	}
	if exam.ID != 7 || len(exam.Questions) != 2 {
		t.Fatalf("unexpected aggregate: id=%d questions=%d", exam.ID, len(exam.Questions))
	}
	if exam.Questions[0].Order != 1 || exam.Questions[1].Order != 2 {
		t.Errorf("question order not preserved through cache: %d, %d",
			exam.Questions[0].Order, exam.Questions[1].Order)
	}
}

func TestInvalidateExamCacheDropsAggregate(t *testing.T) {
	client := newTestRedis(t)
	cm := cache.NewCacheManager(client)

	if err := cm.Exam.Set(context.Background(), "details:9", &models.PracticeExam{ID: 9}, cache.ExamCacheConfig.TTL); err != nil {
		t.Fatalf("warming cache failed: %v", err)
	}

	cache.InvalidateExamCache(context.Background(), cm, 9)

	var exam models.PracticeExam
	if err := cm.Exam.Get(context.Background(), "details:9", &exam); err != cache.ErrCacheNotFound {
		t.Errorf("expected ErrCacheNotFound after invalidation, got %v", err)
	}
}
