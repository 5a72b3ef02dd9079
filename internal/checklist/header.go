package checklist

import (
	"errors"
	"strings"

	"github.com/noah-isme/checklist-epi-api/internal/models"
)

// Header field labels used in validation messages.
const (
	LabelTeam         = "Equipe"
	LabelElectrician1 = "Eletricista 1"
	LabelElectrician2 = "Eletricista 2"
	LabelSupervisor   = "Encarregado"
	LabelCollaborator = "Colaborador"
	LabelResponsible  = "Responsável"
)

// ErrConfirmationRequired is returned by Finalize when the final
// confirmation gate is not checked.
var ErrConfirmationRequired = errors.New("final confirmation required")

// HeaderError lists the header fields missing for finalization.
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return "Preencha " + joinLabels(e.Missing) + " antes de finalizar."
}

// MissingFields returns the labels of the required header fields that are
// blank, in form order. Vehicle checklists need the team, the electricians
// (two for STC, the supervisor otherwise) and the responsible; collaborator
// checklists need the collaborator and the responsible.
func MissingFields(h models.Header) []string {
	missing := make([]string, 0, 4)
	if h.Mode == models.ModeVehicle {
		if blank(h.TeamCode) {
			missing = append(missing, LabelTeam)
		}
		switch h.Sector {
		case models.SectorSTC:
			if blank(h.Electrician1) {
				missing = append(missing, LabelElectrician1)
			}
			if blank(h.Electrician2) {
				missing = append(missing, LabelElectrician2)
			}
		case models.SectorObras:
			if blank(h.Electrician1) {
				missing = append(missing, LabelSupervisor)
			}
		default:
			if blank(h.Electrician1) {
				missing = append(missing, LabelElectrician1)
			}
		}
	} else if blank(h.Collaborator) {
		missing = append(missing, LabelCollaborator)
	}
	if blank(h.Responsible) {
		missing = append(missing, LabelResponsible)
	}
	return missing
}

// HeaderValid reports whether the header allows finalization.
func HeaderValid(h models.Header) bool {
	return len(MissingFields(h)) == 0
}

// joinLabels joins as "a", "a e b" or "a, b e c".
func joinLabels(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	}
	return strings.Join(labels[:len(labels)-1], ", ") + " e " + labels[len(labels)-1]
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
