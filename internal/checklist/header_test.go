package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/checklist-epi-api/internal/models"
)

func TestMissingFields(t *testing.T) {
	cases := []struct {
		name    string
		header  models.Header
		missing []string
	}{
		{
			name:    "stc vehicle empty",
			header:  models.Header{Sector: models.SectorSTC, Mode: models.ModeVehicle},
			missing: []string{"Equipe", "Eletricista 1", "Eletricista 2", "Responsável"},
		},
		{
			name: "stc vehicle complete",
			header: models.Header{Sector: models.SectorSTC, Mode: models.ModeVehicle, TeamCode: "ECBSN01",
				Electrician1: "Ana", Electrician2: "Bruno", Responsible: "Carla"},
		},
		{
			name: "stc vehicle blank second electrician",
			header: models.Header{Sector: models.SectorSTC, Mode: models.ModeVehicle, TeamCode: "ECBSN01",
				Electrician1: "Ana", Electrician2: "   ", Responsible: "Carla"},
			missing: []string{"Eletricista 2"},
		},
		{
			name:    "obras vehicle empty",
			header:  models.Header{Sector: models.SectorObras, Mode: models.ModeVehicle},
			missing: []string{"Equipe", "Encarregado", "Responsável"},
		},
		{
			name: "obras vehicle needs one name",
			header: models.Header{Sector: models.SectorObras, Mode: models.ModeVehicle, TeamCode: "E-08",
				Electrician1: "Davi", Responsible: "Carla"},
		},
		{
			name:    "no sector vehicle",
			header:  models.Header{Mode: models.ModeVehicle, TeamCode: "X"},
			missing: []string{"Eletricista 1", "Responsável"},
		},
		{
			name:    "collaborator empty",
			header:  models.Header{Sector: models.SectorSTC, Mode: models.ModeCollaborator},
			missing: []string{"Colaborador", "Responsável"},
		},
		{
			name: "collaborator ignores team fields",
			header: models.Header{Sector: models.SectorObras, Mode: models.ModeCollaborator,
				Collaborator: "Eva", Responsible: "Carla"},
		},
		{
			name:    "no mode behaves as collaborator",
			header:  models.Header{Responsible: "Carla"},
			missing: []string{"Colaborador"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			missing := MissingFields(tc.header)
			if tc.missing == nil {
				assert.Empty(t, missing)
				assert.True(t, HeaderValid(tc.header))
				return
			}
			assert.Equal(t, tc.missing, missing)
			assert.False(t, HeaderValid(tc.header))
		})
	}
}

func TestHeaderErrorMessage(t *testing.T) {
	assert.Equal(t, "Preencha Equipe, Eletricista 1, Eletricista 2 e Responsável antes de finalizar.",
		(&HeaderError{Missing: []string{"Equipe", "Eletricista 1", "Eletricista 2", "Responsável"}}).Error())
	assert.Equal(t, "Preencha Colaborador e Responsável antes de finalizar.",
		(&HeaderError{Missing: []string{"Colaborador", "Responsável"}}).Error())
	assert.Equal(t, "Preencha Encarregado antes de finalizar.",
		(&HeaderError{Missing: []string{"Encarregado"}}).Error())
}
