package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/schoolsuite/reportcard-api/internal/dto"
	"github.com/schoolsuite/reportcard-api/internal/models"
	appErrors "github.com/schoolsuite/reportcard-api/pkg/errors"
	"github.com/schoolsuite/reportcard-api/pkg/response"
	"github.com/schoolsuite/reportcard-api/pkg/storage"
)

type reportService interface {
	List(ctx context.Context, filter models.ArchiveFilter) ([]models.ReportArchive, int, error)
	SignDownload(ctx context.Context, archiveID string) (*dto.ArchiveDownloadResponse, error)
	ResolveDownload(token string) (string, error)
	IndexCSV(ctx context.Context, filter models.ArchiveFilter) ([]byte, error)
}

// ArchiveHandler exposes archived report card endpoints.
type ArchiveHandler struct {
	service reportService
	files   *storage.LocalStorage
}

// NewArchiveHandler builds a new handler.
func NewArchiveHandler(service reportService, files *storage.LocalStorage) *ArchiveHandler {
	return &ArchiveHandler{service: service, files: files}
}

func archiveFilterFromQuery(c *gin.Context) models.ArchiveFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	return models.ArchiveFilter{
		ClassTag: c.Query("class"),
		GradeTag: c.Query("grade_level"),
		Page:     page,
		PageSize: pageSize,
	}
}

// List godoc
// @Summary List archived report cards
// @Tags Archives
// @Produce json
// @Param class query string false "Class label filter"
// @Param grade_level query string false "Grade level filter"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /archives [get]
func (h *ArchiveHandler) List(c *gin.Context) {
	filter := archiveFilterFromQuery(c)
	records, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	response.JSON(c, http.StatusOK, records, pagination)
}

// Export godoc
// @Summary Export the archive index as CSV
// @Tags Archives
// @Produce text/csv
// @Param class query string false "Class label filter"
// @Param grade_level query string false "Grade level filter"
// @Success 200 {string} string "CSV document"
// @Router /archives/export [get]
func (h *ArchiveHandler) Export(c *gin.Context) {
	data, err := h.service.IndexCSV(c.Request.Context(), archiveFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="report-archives.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// Sign godoc
// @Summary Issue a signed download link for an archive
// @Tags Archives
// @Produce json
// @Param id path string true "Archive ID"
// @Success 200 {object} response.Envelope
// @Router /archives/{id}/download [post]
func (h *ArchiveHandler) Sign(c *gin.Context) {
	result, err := h.service.SignDownload(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Download godoc
// @Summary Download an archived report card by signed token
// @Tags Archives
// @Produce application/pdf
// @Param token path string true "Signed download token"
// @Success 200 {file} file "PDF document"
// @Router /archives/download/{token} [get]
func (h *ArchiveHandler) Download(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "download token is required"))
		return
	}
	relPath, err := h.service.ResolveDownload(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.File(h.files.Path(relPath))
}
