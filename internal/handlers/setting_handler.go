package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kylo18/practice-exam-service/internal/services"
	"github.com/kylo18/practice-exam-service/internal/utils"
	"github.com/kylo18/practice-exam-service/internal/validator"
)

type SettingHandler struct {
	BaseHandler
	settingService services.SettingService
	validator      *validator.Validator
}

func NewSettingHandler(
	settingService services.SettingService,
	validator *validator.Validator,
	logger utils.Logger,
) *SettingHandler {
	return &SettingHandler{
		BaseHandler:    NewBaseHandler(logger),
		settingService: settingService,
		validator:      validator,
	}
}

// GetSetting returns the requester's setting for a subject
// @Summary Get practice exam setting
// @Tags settings
// @Produce json
// @Param subject_id path uint true "Subject ID"
// @Success 200 {object} services.SettingResponse
// @Failure 404 {object} ErrorResponse
// @Router /settings/{subject_id} [get]
func (h *SettingHandler) GetSetting(c *gin.Context) {
	subjectID := h.parseIDParam(c, "subject_id")
	if subjectID == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	setting, err := h.settingService.Get(c.Request.Context(), userID, subjectID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, setting)
}

// UpsertSetting creates or updates the requester's setting for a subject
// @Summary Save practice exam setting
// @Tags settings
// @Accept json
// @Produce json
// @Param subject_id path uint true "Subject ID"
// @Param setting body services.UpsertSettingRequest true "Setting data"
// @Success 200 {object} services.SettingResponse
// @Failure 400 {object} ErrorResponse
// @Router /settings/{subject_id} [put]
func (h *SettingHandler) UpsertSetting(c *gin.Context) {
	subjectID := h.parseIDParam(c, "subject_id")
	if subjectID == 0 {
		return
	}

	h.LogRequest(c, "Saving practice exam setting", "subject_id", subjectID)

	var req services.UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	req.SubjectID = subjectID

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	setting, err := h.settingService.Upsert(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, setting)
}
