package checklist

import "github.com/noah-isme/checklist-epi-api/internal/models"

// MissingItem is a visible item found below its standard quantity.
type MissingItem struct {
	Item      models.LineItem `json:"item"`
	Found     int             `json:"qtdeEncontrada"`
	Shortfall int             `json:"faltando"`
}

// Missing lists the shortfalls of a reviewed checklist. Unset quantities
// count as zero. Nothing is reported before review.
func Missing(s models.Session) []MissingItem {
	out := make([]MissingItem, 0)
	if !s.Reviewed {
		return out
	}
	for _, item := range Visible(s) {
		found := item.Found()
		if found < item.StandardQty {
			out = append(out, MissingItem{Item: item, Found: found, Shortfall: item.StandardQty - found})
		}
	}
	return out
}

// SnapshotTitle names a history entry after the team or the collaborator.
func SnapshotTitle(h models.Header) string {
	if h.Mode == models.ModeVehicle {
		code := h.TeamCode
		if code == "" {
			code = "sem equipe"
		}
		return "Caminhão/Viatura " + code
	}
	name := h.Collaborator
	if name == "" {
		name = "sem nome"
	}
	return "Colaborador " + name
}
