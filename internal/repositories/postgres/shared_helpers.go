package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// SharedHelpers contains common database operations.
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// allowedSortColumns guards against ordering by arbitrary user input.
var allowedSortColumns = map[string]bool{
	"created_at":      true,
	"updated_at":      true,
	"requested_count": true,
	"percentage":      true,
}

// ApplyPaginationAndSort applies sorting and pagination to a query.
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}
	if strings.ToLower(sortOrder) != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}
