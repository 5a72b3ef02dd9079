package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/checklist-epi-api/internal/dto"
	"github.com/noah-isme/checklist-epi-api/internal/models"
	"github.com/noah-isme/checklist-epi-api/pkg/response"
)

type historyService interface {
	List(ctx context.Context) []models.Snapshot
	Get(ctx context.Context, id string) (models.Snapshot, error)
}

// HistoryHandler exposes the finalized checklist history.
type HistoryHandler struct {
	service historyService
}

// NewHistoryHandler constructs the handler.
func NewHistoryHandler(service historyService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// List godoc
// @Summary List recent finalized checklists, newest first
// @Tags History
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	snapshots := h.service.List(c.Request.Context())
	summaries := make([]dto.HistorySummary, 0, len(snapshots))
	for _, snap := range snapshots {
		summaries = append(summaries, dto.NewHistorySummary(snap))
	}
	response.JSON(c, http.StatusOK, summaries, map[string]interface{}{"total": len(summaries)})
}

// Get godoc
// @Summary Get a finalized checklist
// @Tags History
// @Produce json
// @Param id path string true "Snapshot ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /history/{id} [get]
func (h *HistoryHandler) Get(c *gin.Context) {
	snapshot, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot)
}
