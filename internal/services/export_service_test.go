package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kylo18/practice-exam-service/internal/models"
)

func TestExportResults(t *testing.T) {
	repo := newFakeRepository()
	repo.users.users["student-1"] = &models.User{ID: "student-1", FullName: "Alex Reyes"}
	repo.results.results = []*models.PracticeExamResult{
		{ID: 1, ExamID: 10, UserID: "student-1", SubjectID: 1, EarnedPoints: 15, TotalPoints: 20, Percentage: 75.00},
		{ID: 2, ExamID: 10, UserID: "student-2", SubjectID: 1, EarnedPoints: 20, TotalPoints: 20, Percentage: 100.00},
	}

	svc := &exportService{repo: repo, logger: testLogger()}

	data, filename, err := svc.ExportResults(context.Background(), "faculty-1", ExportFilters{})
	if err != nil {
		t.Fatalf("ExportResults failed: %v", err)
	}
	if !strings.HasPrefix(filename, "practice_exam_results_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported bytes are not a workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2 results", len(rows))
	}
	if rows[0][0] != "Result ID" {
		t.Errorf("header row = %v", rows[0])
	}

	// Known users export their display name; unknown ones fall back to the id.
	if rows[1][2] != "Alex Reyes" {
		t.Errorf("row 1 user = %q, want Alex Reyes", rows[1][2])
	}
	if rows[2][2] != "student-2" {
		t.Errorf("row 2 user = %q, want student-2", rows[2][2])
	}
}

func TestExportResultsEmpty(t *testing.T) {
	svc := &exportService{repo: newFakeRepository(), logger: testLogger()}

	data, _, err := svc.ExportResults(context.Background(), "faculty-1", ExportFilters{})
	if err != nil {
		t.Fatalf("ExportResults failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported bytes are not a workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Results")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want header only", len(rows))
	}
}
