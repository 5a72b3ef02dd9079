package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/checklist-epi-api/internal/checklist"
	"github.com/noah-isme/checklist-epi-api/internal/models"
)

// SelectSectorRequest switches the session sector. Empty clears it.
type SelectSectorRequest struct {
	Sector string `json:"setor" validate:"omitempty,oneof=STC OBRAS"`
}

// SelectModalityRequest switches the OBRAS modality.
type SelectModalityRequest struct {
	Modality string `json:"modalidadeObras" validate:"omitempty,oneof=LV LM"`
}

// SelectModeRequest switches between vehicle and collaborator checklists.
type SelectModeRequest struct {
	Mode string `json:"modoChecklist" validate:"omitempty,oneof=VIATURA COLABORADOR"`
}

// SelectTeamRequest sets the team code.
type SelectTeamRequest struct {
	TeamCode string `json:"codigoEquipe" validate:"max=32"`
}

// SetNamesRequest updates free-text header fields. Omitted fields are kept.
type SetNamesRequest struct {
	Electrician1 *string `json:"eletricista1" validate:"omitempty,max=120"`
	Electrician2 *string `json:"eletricista2" validate:"omitempty,max=120"`
	Collaborator *string `json:"colaboradorIndividual" validate:"omitempty,max=120"`
	Responsible  *string `json:"responsavelChecklist" validate:"omitempty,max=120"`
}

// SetFilterRequest sets the category filter (TODOS or a category).
type SetFilterRequest struct {
	Filter string `json:"filtroTipo" validate:"required"`
}

// SetConfirmationRequest toggles the final confirmation gate.
type SetConfirmationRequest struct {
	Confirmed *bool `json:"confirmacaoFinal" validate:"required"`
}

// UpdateItemRequest edits one field of a line item. Value is a non-negative
// integer or null for qtdeEncontrada and a string for observacao.
type UpdateItemRequest struct {
	Field string          `json:"campo" validate:"required,oneof=qtdeEncontrada observacao"`
	Value json.RawMessage `json:"valor"`
}

// SessionView is a session with every derived view the client renders.
type SessionView struct {
	models.Session
	VisibleItems    []models.LineItem       `json:"linhasFiltradas"`
	HeaderValid     bool                    `json:"cabecalhoValido"`
	MissingFields   []string                `json:"camposFaltando"`
	MissingItems    []checklist.MissingItem `json:"faltando"`
	CategoryOptions []string                `json:"tipos"`
	FiltersComplete bool                    `json:"filtrosPreenchidos"`
}

// NewSessionView derives the view of s.
func NewSessionView(s models.Session) SessionView {
	return SessionView{
		Session:         s,
		VisibleItems:    checklist.Visible(s),
		HeaderValid:     checklist.HeaderValid(s.Header),
		MissingFields:   checklist.MissingFields(s.Header),
		MissingItems:    checklist.Missing(s),
		CategoryOptions: checklist.CategoryOptions(s.Sector, s.Mode),
		FiltersComplete: checklist.FiltersComplete(s),
	}
}

// EvidenceAccepted acknowledges a queued evidence upload.
type EvidenceAccepted struct {
	JobID          string `json:"jobId"`
	ItemID         int    `json:"itemId"`
	CatalogVersion int    `json:"versaoCatalogo"`
}

// TeamsQuery narrows the team list.
type TeamsQuery struct {
	Sector   string `form:"sector" validate:"omitempty,oneof=STC OBRAS"`
	Modality string `form:"modality" validate:"omitempty,oneof=LV LM"`
}

// CategoriesQuery selects the category options to list.
type CategoriesQuery struct {
	Sector string `form:"sector" validate:"omitempty,oneof=STC OBRAS"`
	Mode   string `form:"mode" validate:"omitempty,oneof=VIATURA COLABORADOR"`
}

// HistorySummary is the list form of a history snapshot.
type HistorySummary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"criadoEm"`
	Title        string    `json:"titulo"`
	Sector       string    `json:"setor"`
	Mode         string    `json:"modoChecklist"`
	TeamCode     string    `json:"codigoEquipe"`
	Collaborator string    `json:"colaboradorIndividual"`
	ItemCount    int       `json:"totalItens"`
}

// NewHistorySummary summarises a snapshot.
func NewHistorySummary(s models.Snapshot) HistorySummary {
	return HistorySummary{
		ID:           s.ID,
		CreatedAt:    s.CreatedAt,
		Title:        s.Title,
		Sector:       string(s.Sector),
		Mode:         string(s.Mode),
		TeamCode:     s.TeamCode,
		Collaborator: s.Collaborator,
		ItemCount:    len(s.Items),
	}
}

// FinalizeResult is returned when a checklist is finalized.
type FinalizeResult struct {
	Session  SessionView     `json:"sessao"`
	Snapshot models.Snapshot `json:"snapshot"`
}
