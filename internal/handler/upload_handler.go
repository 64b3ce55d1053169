package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolsuite/reportcard-api/internal/dto"
	appErrors "github.com/schoolsuite/reportcard-api/pkg/errors"
	"github.com/schoolsuite/reportcard-api/pkg/response"
)

type uploadService interface {
	Process(ctx context.Context, className string, file io.Reader) (*dto.UploadSummary, error)
}

// UploadHandler accepts result spreadsheet uploads.
type UploadHandler struct {
	service      uploadService
	maxFileBytes int64
}

// NewUploadHandler builds a new handler.
func NewUploadHandler(service uploadService, maxFileBytes int64) *UploadHandler {
	if maxFileBytes <= 0 {
		maxFileBytes = 10 * 1024 * 1024
	}
	return &UploadHandler{service: service, maxFileBytes: maxFileBytes}
}

// Upload godoc
// @Summary Upload a class result spreadsheet
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param class_name formData string true "Class label, e.g. JSS 2A"
// @Param file formData file true "Result spreadsheet (.xlsx)"
// @Success 200 {object} response.Envelope
// @Router /upload/report-cards [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	className := c.PostForm("class_name")
	if className == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "class_name form field is required"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file form field is required"))
		return
	}
	if fileHeader.Size > h.maxFileBytes {
		response.Error(c, appErrors.Clone(appErrors.ErrFileTooLarge, ""))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open uploaded file"))
		return
	}
	defer file.Close() //nolint:errcheck

	summary, err := h.service.Process(c.Request.Context(), className, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
