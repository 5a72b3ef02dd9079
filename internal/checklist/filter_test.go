package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/checklist-epi-api/internal/models"
)

func sessionWith(items []models.LineItem, mutate func(*models.Session)) models.Session {
	s := models.Session{
		Header: models.Header{Sector: models.SectorSTC, TeamClass: models.TeamClassRural},
		Items:  items,
		Filter: models.CategoryFilterAll,
	}
	if mutate != nil {
		mutate(&s)
	}
	return s
}

func ids(items []models.LineItem) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestVisibleHidesRuralOnlyForUrbanTeams(t *testing.T) {
	items := []models.LineItem{
		{ID: 1, Category: models.CategoryEPC},
		{ID: 2, Category: models.CategoryEPC, RuralOnly: true},
	}
	rural := sessionWith(items, nil)
	assert.Equal(t, []int{1, 2}, ids(Visible(rural)))

	urban := sessionWith(items, func(s *models.Session) { s.TeamClass = models.TeamClassUrban })
	assert.Equal(t, []int{1}, ids(Visible(urban)))
}

func TestVisibleRestrictsByModeAndFilter(t *testing.T) {
	items := []models.LineItem{
		{ID: 1, Category: models.CategoryEPI},
		{ID: 2, Category: models.CategoryEPC},
		{ID: 3, Category: models.CategoryIndividualTool},
		{ID: 4, Category: models.CategoryCollectiveTool},
	}

	assert.Equal(t, []int{1, 2, 3, 4}, ids(Visible(sessionWith(items, nil))))

	vehicle := sessionWith(items, func(s *models.Session) { s.Mode = models.ModeVehicle })
	assert.Equal(t, []int{2, 4}, ids(Visible(vehicle)))

	collaborator := sessionWith(items, func(s *models.Session) { s.Mode = models.ModeCollaborator })
	assert.Equal(t, []int{1, 3}, ids(Visible(collaborator)))

	vehicle.Filter = string(models.CategoryCollectiveTool)
	assert.Equal(t, []int{4}, ids(Visible(vehicle)))

	vehicle.Filter = string(models.CategoryEPI)
	assert.Empty(t, Visible(vehicle))
}

func TestVisibleIsIdempotentSubsetInOrder(t *testing.T) {
	catalog := CatalogFor(models.SectorSTC, models.ModalityNone)
	cases := []func(*models.Session){
		nil,
		func(s *models.Session) { s.Mode = models.ModeVehicle },
		func(s *models.Session) { s.Mode = models.ModeCollaborator; s.TeamClass = models.TeamClassUrban },
		func(s *models.Session) { s.Mode = models.ModeVehicle; s.Filter = string(models.CategoryEPC) },
	}
	for _, mutate := range cases {
		s := sessionWith(catalog, mutate)
		first := Visible(s)

		again := s
		again.Items = first
		assert.Equal(t, first, Visible(again))

		pos := -1
		for _, id := range ids(first) {
			next := indexOf(catalog, id)
			assert.Greater(t, next, pos, "catalog order preserved")
			pos = next
		}
	}
}

func TestVisibleReturnsCopies(t *testing.T) {
	found := 1
	s := sessionWith([]models.LineItem{{ID: 1, Category: models.CategoryEPI, FoundQty: &found}}, nil)
	view := Visible(s)
	*view[0].FoundQty = 9
	assert.Equal(t, 1, *s.Items[0].FoundQty)
}

func TestCategoryOptions(t *testing.T) {
	assert.Equal(t, []string{"TODOS"}, CategoryOptions(models.SectorNone, models.ModeVehicle))
	assert.Equal(t, []string{"TODOS"}, CategoryOptions(models.SectorSTC, models.ModeNone))
	assert.Equal(t, []string{"TODOS", "EPC", "Ferr. Colet"}, CategoryOptions(models.SectorSTC, models.ModeVehicle))
	assert.Equal(t, []string{"TODOS", "EPI", "Ferr. Ind"}, CategoryOptions(models.SectorObras, models.ModeCollaborator))
}

func TestValidFilter(t *testing.T) {
	for _, f := range []string{"TODOS", "EPI", "EPC", "Ferr. Ind", "Ferr. Colet"} {
		assert.True(t, ValidFilter(f), f)
	}
	assert.False(t, ValidFilter(""))
	assert.False(t, ValidFilter("epi"))
}

func TestFiltersComplete(t *testing.T) {
	s := models.Session{}
	assert.False(t, FiltersComplete(s))

	s.Sector = models.SectorObras
	s.Mode = models.ModeVehicle
	s.TeamCode = "E-08"
	assert.False(t, FiltersComplete(s), "modality required for OBRAS")

	s.Modality = models.ModalityLM
	assert.True(t, FiltersComplete(s))

	s.Mode = models.ModeCollaborator
	assert.False(t, FiltersComplete(s))
	s.Collaborator = "  "
	assert.False(t, FiltersComplete(s))
	s.Collaborator = "Eva"
	assert.True(t, FiltersComplete(s))

	s.Mode = models.ModeNone
	assert.False(t, FiltersComplete(s))
}
