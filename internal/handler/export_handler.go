package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/checklist-epi-api/internal/dto"
	appErrors "github.com/noah-isme/checklist-epi-api/pkg/errors"
	"github.com/noah-isme/checklist-epi-api/pkg/response"
)

type exportService interface {
	RenderPayload(ctx context.Context, format string, req dto.ChecklistExportRequest) (*dto.ExportFile, error)
	RenderSession(ctx context.Context, id, format string) (*dto.ExportFile, error)
	Store(ctx context.Context, file *dto.ExportFile) (*dto.StoredExport, error)
	Download(ctx context.Context, token string) (*dto.ExportFile, error)
}

// ExportHandler serves checklist documents.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Excel godoc
// @Summary Render a checklist as an Excel workbook
// @Tags Export
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param payload body dto.ChecklistExportRequest true "Checklist"
// @Success 200 {file} file
// @Failure 500 {object} response.Envelope
// @Router /excel/checklist [post]
func (h *ExportHandler) Excel(c *gin.Context) {
	h.renderPayload(c, dto.ExportFormatXLSX)
}

// PDF godoc
// @Summary Render a checklist as a PDF
// @Tags Export
// @Accept json
// @Produce application/pdf
// @Param payload body dto.ChecklistExportRequest true "Checklist"
// @Success 200 {file} file
// @Failure 500 {object} response.Envelope
// @Router /pdf/checklist [post]
func (h *ExportHandler) PDF(c *gin.Context) {
	h.renderPayload(c, dto.ExportFormatPDF)
}

// CSV godoc
// @Summary Render a checklist as CSV
// @Tags Export
// @Accept json
// @Produce text/csv
// @Param payload body dto.ChecklistExportRequest true "Checklist"
// @Success 200 {file} file
// @Router /csv/checklist [post]
func (h *ExportHandler) CSV(c *gin.Context) {
	h.renderPayload(c, dto.ExportFormatCSV)
}

// Session godoc
// @Summary Export the filtered items of a session
// @Tags Export
// @Produce application/octet-stream
// @Param id path string true "Session ID"
// @Param format query string false "xlsx (default), pdf or csv"
// @Param store query bool false "Archive the file and return a signed link"
// @Success 200 {file} file
// @Success 201 {object} response.Envelope
// @Router /sessions/{id}/export [get]
func (h *ExportHandler) Session(c *gin.Context) {
	var query dto.SessionExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query"))
		return
	}
	file, err := h.service.RenderSession(c.Request.Context(), c.Param("id"), strings.ToLower(query.Format))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !query.Store {
		response.Attachment(c, file.Filename, file.ContentType, file.Payload)
		return
	}
	stored, err := h.service.Store(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, stored)
}

// Download godoc
// @Summary Download an archived export
// @Tags Export
// @Produce application/octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, err := h.service.Download(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

func (h *ExportHandler) renderPayload(c *gin.Context, format string) {
	var req dto.ChecklistExportRequest
	if !bindJSON(c, &req) {
		return
	}
	file, err := h.service.RenderPayload(c.Request.Context(), format, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
