package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolsuite/reportcard-api/internal/dto"
	"github.com/schoolsuite/reportcard-api/internal/models"
	appErrors "github.com/schoolsuite/reportcard-api/pkg/errors"
	"github.com/schoolsuite/reportcard-api/pkg/response"
)

type subjectConfigService interface {
	List(ctx context.Context, gradeLevel string) ([]models.SubjectConfig, error)
	Add(ctx context.Context, req dto.CreateSubjectConfigRequest) (*models.SubjectConfig, error)
	Remove(ctx context.Context, id, gradeLevel string) error
	Detect(ctx context.Context, req dto.DetectSubjectsRequest) (*dto.DetectSubjectsResponse, error)
}

// SubjectConfigHandler exposes subject configuration endpoints.
type SubjectConfigHandler struct {
	service subjectConfigService
}

// NewSubjectConfigHandler builds a new handler.
func NewSubjectConfigHandler(service subjectConfigService) *SubjectConfigHandler {
	return &SubjectConfigHandler{service: service}
}

// List godoc
// @Summary List subject configurations for a grade level
// @Tags SubjectConfigs
// @Produce json
// @Param grade_level query string true "Grade level, e.g. JSS 2"
// @Success 200 {object} response.Envelope
// @Router /subject-configs [get]
func (h *SubjectConfigHandler) List(c *gin.Context) {
	configs, err := h.service.List(c.Request.Context(), c.Query("grade_level"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, configs, nil)
}

// Create godoc
// @Summary Add a subject configuration
// @Tags SubjectConfigs
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubjectConfigRequest true "Subject configuration payload"
// @Success 201 {object} response.Envelope
// @Router /subject-configs [post]
func (h *SubjectConfigHandler) Create(c *gin.Context) {
	var req dto.CreateSubjectConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject configuration payload"))
		return
	}
	cfg, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cfg)
}

// Delete godoc
// @Summary Deactivate a subject configuration
// @Tags SubjectConfigs
// @Produce json
// @Param id path string true "Configuration ID"
// @Param grade_level query string false "Grade level owning the configuration"
// @Success 204
// @Router /subject-configs/{id} [delete]
func (h *SubjectConfigHandler) Delete(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id"), c.Query("grade_level")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Detect godoc
// @Summary Detect subjects present in spreadsheet headers
// @Tags SubjectConfigs
// @Accept json
// @Produce json
// @Param payload body dto.DetectSubjectsRequest true "Detection payload"
// @Success 200 {object} response.Envelope
// @Router /subject-configs/detect [post]
func (h *SubjectConfigHandler) Detect(c *gin.Context) {
	var req dto.DetectSubjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid detection payload"))
		return
	}
	result, err := h.service.Detect(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
