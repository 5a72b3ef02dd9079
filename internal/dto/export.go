package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Export formats.
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatPDF  = "pdf"
	ExportFormatCSV  = "csv"
)

// ExportLine is one table row of a remote export request.
type ExportLine struct {
	Category    string   `json:"tipo"`
	Description string   `json:"descricao"`
	FoundQty    Quantity `json:"qtdeEncontrada"`
	Note        string   `json:"observacao"`
}

// Quantity is a found quantity that may be left blank. It decodes from an
// integer, a numeric string, an empty string or null.
type Quantity struct {
	Value *int
}

// NewQuantity returns a set quantity.
func NewQuantity(v int) Quantity {
	return Quantity{Value: &v}
}

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	q.Value = nil
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			return fmt.Errorf("qtdeEncontrada: %q is not a quantity", text)
		}
		q.Value = &v
		return nil
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("qtdeEncontrada: %w", err)
	}
	q.Value = &v
	return nil
}

// MarshalJSON implements json.Marshaler; a blank quantity encodes as null.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.Value == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(*q.Value)), nil
}

// ChecklistExportRequest is the payload accepted by the document endpoints.
type ChecklistExportRequest struct {
	Sector       string       `json:"setor" validate:"omitempty,oneof=STC OBRAS"`
	Mode         string       `json:"modoChecklist"`
	TeamClass    string       `json:"tipoEquipe"`
	TeamCode     string       `json:"codigoEquipe"`
	Electrician1 string       `json:"eletricista1"`
	Electrician2 string       `json:"eletricista2"`
	Collaborator string       `json:"colaboradorIndividual"`
	Responsible  string       `json:"responsavelChecklist"`
	Lines        []ExportLine `json:"linhas"`
}

// SessionExportQuery selects the format of a session export.
type SessionExportQuery struct {
	Format string `form:"format" validate:"omitempty,oneof=xlsx pdf csv"`
	Store  bool   `form:"store"`
}

// ExportFile is a rendered document ready to send.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// StoredExport describes an archived document and its signed download URL.
type StoredExport struct {
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
