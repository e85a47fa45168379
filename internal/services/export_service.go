package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/kylo18/practice-exam-service/internal/repositories"
)

type exportService struct {
	db     *gorm.DB
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(db *gorm.DB, repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		db:     db,
		repo:   repo,
		logger: logger,
	}
}

const exportSheet = "Results"

// ExportResults renders the filtered result history as an xlsx workbook.
// Returns the file bytes and a suggested filename.
func (s *exportService) ExportResults(ctx context.Context, requesterID string, filters ExportFilters) ([]byte, string, error) {
	resultFilters := repositories.ResultFilters{
		SubjectID: filters.SubjectID,
		DateFrom:  filters.DateFrom,
		DateTo:    filters.DateTo,
	}

	results, err := s.repo.Result().List(ctx, nil, resultFilters)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load results for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Result ID", "Exam ID", "User", "Subject ID", "Earned Points", "Total Points", "Percentage", "Taken At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}

	// Resolve display names once per user; lookups are best-effort.
	names := make(map[string]string)
	for row, result := range results {
		name, cached := names[result.UserID]
		if !cached {
			name = result.UserID
			if user, err := s.repo.User().GetByID(ctx, result.UserID); err == nil {
				name = user.FullName
			}
			names[result.UserID] = name
		}

		values := []interface{}{
			result.ID,
			result.ExamID,
			name,
			result.SubjectID,
			result.EarnedPoints,
			result.TotalPoints,
			result.Percentage,
			result.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(exportSheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("practice_exam_results_%s.xlsx", time.Now().Format("20060102"))

	s.logger.Info("Results exported", "requester_id", requesterID, "rows", len(results))
	return buf.Bytes(), filename, nil
}
