package repositories

import (
	"time"

	"github.com/kylo18/practice-exam-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type ExamFilters struct {
	SubjectID *uint              `json:"subject_id"`
	Coverage  *models.Coverage   `json:"coverage"`
	Status    *models.ExamStatus `json:"status"`
	DateFrom  *time.Time         `json:"date_from"`
	DateTo    *time.Time         `json:"date_to"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	SortBy    string             `json:"sort_by"`    // "created_at", "requested_count"
	SortOrder string             `json:"sort_order"` // "asc", "desc"
}

type ResultFilters struct {
	SubjectID *uint      `json:"subject_id"`
	ExamID    *uint      `json:"exam_id"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

// ===== SHARED HELPER STRUCTS =====

// PoolAvailability reports how many approved questions exist per difficulty
// bucket for one subject/coverage pair.
type PoolAvailability struct {
	Easy     int64 `json:"easy"`
	Moderate int64 `json:"moderate"`
	Hard     int64 `json:"hard"`
	Total    int64 `json:"total"`
}
