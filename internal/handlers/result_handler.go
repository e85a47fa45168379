package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kylo18/practice-exam-service/internal/repositories"
	"github.com/kylo18/practice-exam-service/internal/services"
	"github.com/kylo18/practice-exam-service/internal/utils"
	"github.com/kylo18/practice-exam-service/internal/validator"
)

type ResultHandler struct {
	BaseHandler
	resultService services.ResultService
	exportService services.ExportService
	validator     *validator.Validator
}

func NewResultHandler(
	resultService services.ResultService,
	exportService services.ExportService,
	validator *validator.Validator,
	logger utils.Logger,
) *ResultHandler {
	return &ResultHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
		exportService: exportService,
		validator:     validator,
	}
}

// SubmitExam scores a submission and records a result
// @Summary Submit practice exam answers
// @Description Scores submitted answers against the exam and records an immutable result
// @Tags results
// @Accept json
// @Produce json
// @Param id path uint true "Exam ID"
// @Param submission body services.SubmitPracticeExamRequest true "Answers keyed by question id"
// @Success 201 {object} services.ResultResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /practice-exams/{id}/submit [post]
func (h *ResultHandler) SubmitExam(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Submitting practice exam", "exam_id", id)

	var req services.SubmitPracticeExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	result, err := h.resultService.Submit(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetExamResults lists the result history of one exam
// @Summary Exam result history
// @Tags results
// @Produce json
// @Param id path uint true "Exam ID"
// @Success 200 {object} services.ResultListResponse
// @Failure 404 {object} ErrorResponse
// @Router /practice-exams/{id}/results [get]
func (h *ResultHandler) GetExamResults(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	results, err := h.resultService.GetByExam(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// GetMyResults lists the requester's result history
// @Summary Requester result history
// @Tags results
// @Produce json
// @Param subject_id query uint false "Filter by subject"
// @Param exam_id query uint false "Filter by exam"
// @Success 200 {object} services.ResultListResponse
// @Router /results [get]
func (h *ResultHandler) GetMyResults(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	results, err := h.resultService.GetByUser(c.Request.Context(), userID, parseResultFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// ExportResults downloads the filtered result history as xlsx
// @Summary Export results
// @Description Renders result history as a spreadsheet; faculty-facing
// @Tags results
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param subject_id query uint false "Filter by subject"
// @Success 200 {file} binary
// @Router /results/export [get]
func (h *ResultHandler) ExportResults(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting results")

	filters := services.ExportFilters{}
	if raw := c.Query("subject_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			subjectID := uint(id)
			filters.SubjectID = &subjectID
		}
	}
	if raw := c.Query("date_from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filters.DateFrom = &t
		}
	}
	if raw := c.Query("date_to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filters.DateTo = &t
		}
	}

	data, filename, err := h.exportService.ExportResults(c.Request.Context(), userID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func parseResultFilters(c *gin.Context) repositories.ResultFilters {
	filters := repositories.ResultFilters{}

	if raw := c.Query("subject_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			subjectID := uint(id)
			filters.SubjectID = &subjectID
		}
	}
	if raw := c.Query("exam_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			examID := uint(id)
			filters.ExamID = &examID
		}
	}
	if raw := c.Query("date_from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filters.DateFrom = &t
		}
	}
	if raw := c.Query("date_to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filters.DateTo = &t
		}
	}
	filters.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	filters.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	return filters
}
