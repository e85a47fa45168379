package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kylo18/practice-exam-service/internal/models"
	"github.com/kylo18/practice-exam-service/internal/validator"
)

func newTestSettingService(repo *fakeRepository) *settingService {
	return &settingService{
		repo:      repo,
		logger:    testLogger(),
		validator: validator.New(),
	}
}

func TestSettingUpsert_DefaultsThenMerge(t *testing.T) {
	repo := newFakeRepository()
	seedSubject(repo, 1)

	svc := newTestSettingService(repo)

	// First write fills in defaults for everything the request omits.
	enabled := true
	resp, err := svc.Upsert(context.Background(), &UpsertSettingRequest{
		SubjectID: 1,
		Enabled:   &enabled,
	}, "user-1")
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if resp.ItemCount != 10 || resp.EasyPercent != 30 || resp.Coverage != models.CoverageMidterm {
		t.Errorf("defaults not applied: %+v", resp.PracticeExamSetting)
	}

	// Second write merges over the saved setting, leaving untouched fields.
	count := 25
	resp, err = svc.Upsert(context.Background(), &UpsertSettingRequest{
		SubjectID: 1,
		ItemCount: &count,
	}, "user-1")
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if resp.ItemCount != 25 {
		t.Errorf("item count = %d, want 25", resp.ItemCount)
	}
	if resp.EasyPercent != 30 || !resp.Enabled {
		t.Errorf("merge clobbered existing fields: %+v", resp.PracticeExamSetting)
	}

	if len(repo.settings.settings) != 1 {
		t.Errorf("upsert created %d rows for one (user, subject) pair", len(repo.settings.settings))
	}
}

func TestSettingUpsert_SubjectNotFound(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestSettingService(repo)

	_, err := svc.Upsert(context.Background(), &UpsertSettingRequest{SubjectID: 42}, "user-1")
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Fatalf("err = %v, want ErrSubjectNotFound", err)
	}
}

func TestSettingUpsert_InvalidTrio(t *testing.T) {
	repo := newFakeRepository()
	seedSubject(repo, 1)
	svc := newTestSettingService(repo)

	easy := 60
	_, err := svc.Upsert(context.Background(), &UpsertSettingRequest{
		SubjectID:   1,
		EasyPercent: &easy,
	}, "user-1")
	if err == nil || !IsValidationError(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestSettingGet(t *testing.T) {
	repo := newFakeRepository()
	repo.settings.settings[settingKey("user-1", 1)] = &models.PracticeExamSetting{
		UserID:    "user-1",
		SubjectID: 1,
		Enabled:   true,
		ItemCount: 15,
	}

	svc := newTestSettingService(repo)

	resp, err := svc.Get(context.Background(), "user-1", 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if resp.ItemCount != 15 {
		t.Errorf("item count = %d, want 15", resp.ItemCount)
	}

	if _, err := svc.Get(context.Background(), "user-1", 99); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("err = %v, want ErrSettingNotFound", err)
	}
}
