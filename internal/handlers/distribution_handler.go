package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kylo18/practice-exam-service/internal/services"
	"github.com/kylo18/practice-exam-service/internal/utils"
	"github.com/kylo18/practice-exam-service/internal/validator"
)

type DistributionHandler struct {
	BaseHandler
	distributionService services.DistributionService
	validator           *validator.Validator
}

func NewDistributionHandler(
	distributionService services.DistributionService,
	validator *validator.Validator,
	logger utils.Logger,
) *DistributionHandler {
	return &DistributionHandler{
		BaseHandler:         NewBaseHandler(logger),
		distributionService: distributionService,
		validator:           validator,
	}
}

// CreateDistribution creates a reusable difficulty distribution
// @Summary Create difficulty distribution
// @Tags distributions
// @Accept json
// @Produce json
// @Param distribution body services.CreateDistributionRequest true "Distribution data"
// @Success 201 {object} models.DifficultyDistribution
// @Failure 400 {object} ErrorResponse
// @Router /distributions [post]
func (h *DistributionHandler) CreateDistribution(c *gin.Context) {
	h.LogRequest(c, "Creating difficulty distribution")

	var req services.CreateDistributionRequest
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

	distribution, err := h.distributionService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, distribution)
}

// GetDistribution returns one distribution
// @Summary Get difficulty distribution
// @Tags distributions
// @Produce json
// @Param id path uint true "Distribution ID"
// @Success 200 {object} models.DifficultyDistribution
// @Failure 404 {object} ErrorResponse
// @Router /distributions/{id} [get]
func (h *DistributionHandler) GetDistribution(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	distribution, err := h.distributionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, distribution)
}

// ListDistributions lists all distributions
// @Summary List difficulty distributions
// @Tags distributions
// @Produce json
// @Success 200 {object} services.DistributionListResponse
// @Router /distributions [get]
func (h *DistributionHandler) ListDistributions(c *gin.Context) {
	distributions, err := h.distributionService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, distributions)
}
