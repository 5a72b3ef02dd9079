package models

import "time"

// Sector groups the inspected teams.
type Sector string

const (
	SectorNone  Sector = ""
	SectorSTC   Sector = "STC"
	SectorObras Sector = "OBRAS"
)

// Modality narrows the OBRAS sector to live-line or dead-line work.
type Modality string

const (
	ModalityNone Modality = ""
	ModalityLV   Modality = "LV"
	ModalityLM   Modality = "LM"
)

// Mode tells whether the checklist targets a vehicle/team or one collaborator.
type Mode string

const (
	ModeNone         Mode = ""
	ModeVehicle      Mode = "VIATURA"
	ModeCollaborator Mode = "COLABORADOR"
)

// TeamClass is the service-area designation of a team.
type TeamClass string

const (
	TeamClassUrban TeamClass = "URBANO"
	TeamClassRural TeamClass = "RURAL"
)

// Category tags a line item.
type Category string

const (
	CategoryEPI            Category = "EPI"
	CategoryEPC            Category = "EPC"
	CategoryIndividualTool Category = "Ferr. Ind"
	CategoryCollectiveTool Category = "Ferr. Colet"
)

// CategoryFilterAll disables the explicit category filter.
const CategoryFilterAll = "TODOS"

// Stage of a checklist session.
type Stage int

const (
	StageEditing Stage = 1
	StageSummary Stage = 2
)

// LineItem is one checkable piece of equipment or tool.
type LineItem struct {
	ID          int      `json:"id"`
	Category    Category `json:"tipo"`
	StandardQty int      `json:"qtdePadrao"`
	Description string   `json:"descricao"`
	RuralOnly   bool     `json:"somenteRural,omitempty"`
	FoundQty    *int     `json:"qtdeEncontrada"`
	Note        string   `json:"observacao"`
	Evidence    []string `json:"evidencias"`
}

// Clone returns a deep copy of the item.
func (i LineItem) Clone() LineItem {
	out := i
	if i.FoundQty != nil {
		found := *i.FoundQty
		out.FoundQty = &found
	}
	out.Evidence = append([]string{}, i.Evidence...)
	return out
}

// Found returns the recorded quantity, treating unset as zero.
func (i LineItem) Found() int {
	if i.FoundQty == nil {
		return 0
	}
	return *i.FoundQty
}

// Header identifies who and what is being inspected. For OBRAS in vehicle
// mode Electrician1 holds the supervisor (encarregado).
type Header struct {
	Sector       Sector    `json:"setor"`
	Modality     Modality  `json:"modalidadeObras"`
	Mode         Mode      `json:"modoChecklist"`
	TeamCode     string    `json:"codigoEquipe"`
	TeamClass    TeamClass `json:"tipoEquipe"`
	Electrician1 string    `json:"eletricista1"`
	Electrician2 string    `json:"eletricista2"`
	Responsible  string    `json:"responsavelChecklist"`
	Collaborator string    `json:"colaboradorIndividual"`
}

// Session is the checklist aggregate root.
type Session struct {
	ID string `json:"id"`
	Header
	Items          []LineItem `json:"linhas"`
	Filter         string     `json:"filtroTipo"`
	Stage          Stage      `json:"etapa"`
	Reviewed       bool       `json:"conferido"`
	Confirmed      bool       `json:"confirmacaoFinal"`
	CatalogVersion int        `json:"versaoCatalogo"`
	CreatedAt      time.Time  `json:"criadoEm"`
	UpdatedAt      time.Time  `json:"atualizadoEm"`
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	out := s
	out.Items = CloneItems(s.Items)
	return out
}

// CloneItems deep-copies a slice of line items.
func CloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// Snapshot is an immutable copy of a finalized session kept in history.
type Snapshot struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"criadoEm"`
	Title     string    `json:"titulo"`
	Header
	Items []LineItem `json:"linhas"`
}

// Team is a selectable team of a sector.
type Team struct {
	Code        string   `json:"codigo"`
	Description string   `json:"descricao"`
	Sector      Sector   `json:"setor"`
	Modality    Modality `json:"modalidadeObras"`
}
