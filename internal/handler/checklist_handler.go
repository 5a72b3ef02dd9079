package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/checklist-epi-api/internal/dto"
	"github.com/noah-isme/checklist-epi-api/internal/models"
	appErrors "github.com/noah-isme/checklist-epi-api/pkg/errors"
	"github.com/noah-isme/checklist-epi-api/pkg/response"
)

// multipartOverhead is the room left for multipart framing around an upload.
const multipartOverhead = 1 << 20

type checklistService interface {
	Create(ctx context.Context) models.Session
	Get(ctx context.Context, id string) (models.Session, error)
	Delete(ctx context.Context, id string) error
	Reset(ctx context.Context, id string) (models.Session, error)
	SelectSector(ctx context.Context, id string, req dto.SelectSectorRequest) (models.Session, error)
	SelectModality(ctx context.Context, id string, req dto.SelectModalityRequest) (models.Session, error)
	SelectMode(ctx context.Context, id string, req dto.SelectModeRequest) (models.Session, error)
	SelectTeam(ctx context.Context, id string, req dto.SelectTeamRequest) (models.Session, error)
	SetNames(ctx context.Context, id string, req dto.SetNamesRequest) (models.Session, error)
	SetFilter(ctx context.Context, id string, req dto.SetFilterRequest) (models.Session, error)
	UpdateItem(ctx context.Context, id string, itemID int, req dto.UpdateItemRequest) (models.Session, error)
	SetConfirmation(ctx context.Context, id string, req dto.SetConfirmationRequest) (models.Session, error)
	Finalize(ctx context.Context, id string) (models.Session, models.Snapshot, error)
	Teams(ctx context.Context, query dto.TeamsQuery) ([]models.Team, error)
	Categories(ctx context.Context, query dto.CategoriesQuery) ([]string, error)
}

type evidenceService interface {
	Submit(ctx context.Context, sessionID string, itemID int, r io.Reader) (*dto.EvidenceAccepted, error)
	MaxFileSize() int64
}

// ChecklistHandler exposes checklist session endpoints.
type ChecklistHandler struct {
	service  checklistService
	evidence evidenceService
}

// NewChecklistHandler constructs the handler.
func NewChecklistHandler(service checklistService, evidence evidenceService) *ChecklistHandler {
	return &ChecklistHandler{service: service, evidence: evidence}
}

// Create godoc
// @Summary Start a checklist session
// @Tags Checklist
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /sessions [post]
func (h *ChecklistHandler) Create(c *gin.Context) {
	session := h.service.Create(c.Request.Context())
	response.Created(c, dto.NewSessionView(session))
}

// Get godoc
// @Summary Get a checklist session
// @Tags Checklist
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *ChecklistHandler) Get(c *gin.Context) {
	session, err := h.service.Get(c.Request.Context(), c.Param("id"))
	h.respond(c, session, err)
}

// Delete godoc
// @Summary Discard a checklist session
// @Tags Checklist
// @Param id path string true "Session ID"
// @Success 204
// @Router /sessions/{id} [delete]
func (h *ChecklistHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Reset godoc
// @Summary Start a new checklist in the session
// @Tags Checklist
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/reset [post]
func (h *ChecklistHandler) Reset(c *gin.Context) {
	session, err := h.service.Reset(c.Request.Context(), c.Param("id"))
	h.respond(c, session, err)
}

// SelectSector godoc
// @Summary Select the sector
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SelectSectorRequest true "Sector"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/sector [put]
func (h *ChecklistHandler) SelectSector(c *gin.Context) {
	var req dto.SelectSectorRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.service.SelectSector(c.Request.Context(), c.Param("id"), req)
	h.respond(c, session, err)
}

// SelectModality godoc
// @Summary Select the OBRAS modality
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SelectModalityRequest true "Modality"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/modality [put]
func (h *ChecklistHandler) SelectModality(c *gin.Context) {
	var req dto.SelectModalityRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.service.SelectModality(c.Request.Context(), c.Param("id"), req)
	h.respond(c, session, err)
}

// SelectMode godoc
// @Summary Select the checklist mode
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SelectModeRequest true "Mode"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/mode [put]
func (h *ChecklistHandler) SelectMode(c *gin.Context) {
	var req dto.SelectModeRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.service.SelectMode(c.Request.Context(), c.Param("id"), req)
	h.respond(c, session, err)
}

// SelectTeam godoc
// @Summary Select the team
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SelectTeamRequest true "Team"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/team [put]
func (h *ChecklistHandler) SelectTeam(c *gin.Context) {
	var req dto.SelectTeamRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.service.SelectTeam(c.Request.Context(), c.Param("id"), req)
	h.respond(c, session, err)
}

// SetNames godoc
// @Summary Update the header names
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SetNamesRequest true "Names"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/names [patch]
func (h *ChecklistHandler) SetNames(c *gin.Context) {
	var req dto.SetNamesRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.service.SetNames(c.Request.Context(), c.Param("id"), req)
	h.respond(c, session, err)
}

// SetFilter godoc
// @Summary Set the category filter
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SetFilterRequest true "Filter"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/filter [put]
func (h *ChecklistHandler) SetFilter(c *gin.Context) {
	var req dto.SetFilterRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.service.SetFilter(c.Request.Context(), c.Param("id"), req)
	h.respond(c, session, err)
}

// UpdateItem godoc
// @Summary Edit the found quantity or note of an item
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param itemId path int true "Item ID"
// @Param payload body dto.UpdateItemRequest true "Edit"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id}/items/{itemId} [patch]
func (h *ChecklistHandler) UpdateItem(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.service.UpdateItem(c.Request.Context(), c.Param("id"), itemID, req)
	h.respond(c, session, err)
}

// UploadEvidence godoc
// @Summary Attach a photo to an item
// @Tags Checklist
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param itemId path int true "Item ID"
// @Param file formData file true "Image"
// @Success 202 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Failure 415 {object} response.Envelope
// @Router /sessions/{id}/items/{itemId}/evidence [post]
func (h *ChecklistHandler) UploadEvidence(c *gin.Context) {
	if h.evidence == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "evidence service not configured"))
		return
	}
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}
	limit := h.evidence.MaxFileSize()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", limit)))
			return
		}
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	if fileHeader.Size > limit {
		response.Error(c, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", limit)))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close()

	accepted, err := h.evidence.Submit(c.Request.Context(), c.Param("id"), itemID, src)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, accepted)
}

// SetConfirmation godoc
// @Summary Toggle the final confirmation
// @Tags Checklist
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SetConfirmationRequest true "Confirmation"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/confirmation [put]
func (h *ChecklistHandler) SetConfirmation(c *gin.Context) {
	var req dto.SetConfirmationRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.service.SetConfirmation(c.Request.Context(), c.Param("id"), req)
	h.respond(c, session, err)
}

// Finalize godoc
// @Summary Finalize the checklist and record it in history
// @Tags Checklist
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /sessions/{id}/finalize [post]
func (h *ChecklistHandler) Finalize(c *gin.Context) {
	session, snapshot, err := h.service.Finalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.FinalizeResult{
		Session:  dto.NewSessionView(session),
		Snapshot: snapshot,
	})
}

// Teams godoc
// @Summary List teams
// @Tags Catalog
// @Produce json
// @Param sector query string false "STC or OBRAS"
// @Param modality query string false "LV or LM"
// @Success 200 {object} response.Envelope
// @Router /teams [get]
func (h *ChecklistHandler) Teams(c *gin.Context) {
	var query dto.TeamsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query"))
		return
	}
	teams, err := h.service.Teams(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teams, map[string]interface{}{"total": len(teams)})
}

// Categories godoc
// @Summary List category filter options
// @Tags Catalog
// @Produce json
// @Param sector query string false "STC or OBRAS"
// @Param mode query string false "VIATURA or COLABORADOR"
// @Success 200 {object} response.Envelope
// @Router /categories [get]
func (h *ChecklistHandler) Categories(c *gin.Context) {
	var query dto.CategoriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query"))
		return
	}
	options, err := h.service.Categories(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options)
}

func (h *ChecklistHandler) respond(c *gin.Context, session models.Session, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewSessionView(session))
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return false
	}
	return true
}

func itemIDParam(c *gin.Context) (int, bool) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "itemId must be an integer"))
		return 0, false
	}
	return itemID, true
}
