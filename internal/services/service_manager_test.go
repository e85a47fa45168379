package services

import (
	"context"
	"testing"

	"github.com/kylo18/practice-exam-service/internal/validator"
)

func TestServiceManagerLifecycle(t *testing.T) {
	repo := newFakeRepository()
	manager := NewDefaultServiceManager(nil, repo, testLogger(), validator.New())

	ctx := context.Background()

	if err := manager.HealthCheck(ctx); err == nil {
		t.Error("HealthCheck before Initialize should fail")
	}

	if err := manager.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := manager.Initialize(ctx); err != nil {
		t.Errorf("repeated Initialize failed: %v", err)
	}

	if manager.PracticeExam() == nil || manager.Result() == nil ||
		manager.Distribution() == nil || manager.Setting() == nil || manager.Export() == nil {
		t.Error("services missing after Initialize")
	}

	if err := manager.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}

	if err := manager.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if err := manager.Shutdown(ctx); err != nil {
		t.Errorf("repeated Shutdown failed: %v", err)
	}
	if err := manager.HealthCheck(ctx); err == nil {
		t.Error("HealthCheck after Shutdown should fail")
	}
}

func TestNewServiceManagerMissingRepo(t *testing.T) {
	manager := NewDefaultServiceManager(nil, nil, testLogger(), validator.New())
	if err := manager.Initialize(context.Background()); err == nil {
		t.Error("Initialize without repository should fail")
	}
}
