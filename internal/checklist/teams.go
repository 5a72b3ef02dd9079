package checklist

import (
	"strings"

	"github.com/noah-isme/checklist-epi-api/internal/models"
)

var stcTeamCodes = []string{
	"ECBSN01", "ECBSN02", "ECBSN03", "ECBSN04", "ECBSN05", "ECBSN06", "ECBSN07", "ECBSN08", "ECBSN09",
	"ECBSN10", "ECBSN11", "ECBSN12", "ECBSN13", "ECBSN14", "ECBSN15", "ECBSN16", "ECBSN17",
	"ECHSN04", "ECHSN05", "EJANS02",
	"EMSSN01", "EMSSN02", "EMSSN03", "EMSSN04", "EMSSN05", "EMSSN06", "EMSSN07", "EMSSN08",
	"ENOBS01", "ENOBS03", "ENOBS04", "EROSS01", "EROSS02", "EROSS04", "MANSN01",
}

var obrasTeamCodes = []struct {
	code     string
	modality models.Modality
}{
	{"E-08", models.ModalityLM}, {"E-14", models.ModalityLM}, {"E-20", models.ModalityLM},
	{"E-24", models.ModalityLM}, {"E-25", models.ModalityLM}, {"E-29", models.ModalityLM},
	{"E-34", models.ModalityLM}, {"E-35", models.ModalityLM}, {"E-67", models.ModalityLM},
	{"E-91", models.ModalityLM}, {"E-92", models.ModalityLM}, {"E-100", models.ModalityLM},
	{"E-10", models.ModalityLV}, {"E-36", models.ModalityLV}, {"E-68", models.ModalityLV},
	{"E-99", models.ModalityLV},
}

var teams = buildTeams()

func buildTeams() []models.Team {
	out := make([]models.Team, 0, len(stcTeamCodes)+len(obrasTeamCodes))
	for _, code := range stcTeamCodes {
		out = append(out, models.Team{Code: code, Description: code, Sector: models.SectorSTC})
	}
	for _, t := range obrasTeamCodes {
		out = append(out, models.Team{
			Code:        t.code,
			Description: t.code + " (" + string(t.modality) + ")",
			Sector:      models.SectorObras,
			Modality:    t.modality,
		})
	}
	return out
}

// Teams returns the full team catalog.
func Teams() []models.Team {
	return append([]models.Team{}, teams...)
}

// TeamsFor lists the teams of a sector. OBRAS teams are narrowed to the
// modality once one is chosen.
func TeamsFor(sector models.Sector, modality models.Modality) []models.Team {
	out := make([]models.Team, 0)
	for _, t := range teams {
		if t.Sector != sector {
			continue
		}
		if sector == models.SectorObras && modality != models.ModalityNone && t.Modality != modality {
			continue
		}
		out = append(out, t)
	}
	return out
}

// DeriveTeamClass maps a team code to its class: ECB and EMS prefixes are
// urban, any other code is rural. An empty code keeps current.
func DeriveTeamClass(code string, current models.TeamClass) models.TeamClass {
	if code == "" {
		return current
	}
	if strings.HasPrefix(code, "ECB") || strings.HasPrefix(code, "EMS") {
		return models.TeamClassUrban
	}
	return models.TeamClassRural
}
