package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kylo18/practice-exam-service/internal/models"
	"github.com/kylo18/practice-exam-service/internal/repositories"
	"github.com/kylo18/practice-exam-service/internal/services"
	"github.com/kylo18/practice-exam-service/internal/utils"
	"github.com/kylo18/practice-exam-service/internal/validator"
)

type PracticeExamHandler struct {
	BaseHandler
	examService services.PracticeExamService
	validator   *validator.Validator
}

func NewPracticeExamHandler(
	examService services.PracticeExamService,
	validator *validator.Validator,
	logger utils.Logger,
) *PracticeExamHandler {
	return &PracticeExamHandler{
		BaseHandler: NewBaseHandler(logger),
		examService: examService,
		validator:   validator,
	}
}

// CreateExam generates a new practice exam
// @Summary Generate practice exam
// @Description Assembles a randomized practice exam for a subject and commits it
// @Tags practice-exams
// @Accept json
// @Produce json
// @Param exam body services.CreatePracticeExamRequest true "Generation parameters"
// @Success 201 {object} services.PracticeExamResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /practice-exams [post]
func (h *PracticeExamHandler) CreateExam(c *gin.Context) {
	h.LogRequest(c, "Creating practice exam")

	var req services.CreatePracticeExamRequest
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

	exam, err := h.examService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, exam)
}

// GetExam returns one exam with its ordered questions
// @Summary Get practice exam
// @Description Returns the exam aggregate with questions in presentation order
// @Tags practice-exams
// @Produce json
// @Param id path uint true "Exam ID"
// @Success 200 {object} services.PracticeExamResponse
// @Failure 404 {object} ErrorResponse
// @Router /practice-exams/{id} [get]
func (h *PracticeExamHandler) GetExam(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	exam, err := h.examService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, exam)
}

// ListExams lists the requester's practice exams
// @Summary List practice exams
// @Description Lists exams created by the requester, newest first
// @Tags practice-exams
// @Produce json
// @Param subject_id query uint false "Filter by subject"
// @Param coverage query string false "Filter by coverage (midterm|finals)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} services.PracticeExamListResponse
// @Router /practice-exams [get]
func (h *PracticeExamHandler) ListExams(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	exams, err := h.examService.List(c.Request.Context(), userID, parseExamFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, exams)
}

// GetPoolAvailability probes approved question counts per difficulty
// @Summary Question pool availability
// @Description Per-difficulty approved question counts for a subject and coverage
// @Tags practice-exams
// @Produce json
// @Param id path uint true "Subject ID"
// @Param coverage query string false "Coverage period (default midterm)"
// @Success 200 {object} services.PoolAvailabilityResponse
// @Failure 404 {object} ErrorResponse
// @Router /subjects/{id}/pool [get]
func (h *PracticeExamHandler) GetPoolAvailability(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	coverage := models.Coverage(c.DefaultQuery("coverage", string(models.CoverageMidterm)))
	if coverage != models.CoverageMidterm && coverage != models.CoverageFinals {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid coverage parameter",
			Details: "must be midterm or finals",
		})
		return
	}

	availability, err := h.examService.Availability(c.Request.Context(), id, coverage)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, availability)
}

func parseExamFilters(c *gin.Context) repositories.ExamFilters {
	filters := repositories.ExamFilters{
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if raw := c.Query("subject_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			subjectID := uint(id)
			filters.SubjectID = &subjectID
		}
	}
	if raw := c.Query("coverage"); raw != "" {
		coverage := models.Coverage(raw)
		filters.Coverage = &coverage
	}
	if raw := c.Query("status"); raw != "" {
		status := models.ExamStatus(raw)
		filters.Status = &status
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
