package checklist

import "github.com/noah-isme/checklist-epi-api/internal/models"

var modeCategories = map[models.Mode][]models.Category{
	models.ModeVehicle:      {models.CategoryEPC, models.CategoryCollectiveTool},
	models.ModeCollaborator: {models.CategoryEPI, models.CategoryIndividualTool},
}

// CategoryOptions lists the category filter values offered for the
// selections. Only TODOS is offered until both sector and mode are chosen.
func CategoryOptions(sector models.Sector, mode models.Mode) []string {
	options := []string{models.CategoryFilterAll}
	if sector == models.SectorNone || mode == models.ModeNone {
		return options
	}
	for _, c := range modeCategories[mode] {
		options = append(options, string(c))
	}
	return options
}

// ValidFilter reports whether filter is TODOS or a known category.
func ValidFilter(filter string) bool {
	switch filter {
	case models.CategoryFilterAll,
		string(models.CategoryEPI),
		string(models.CategoryEPC),
		string(models.CategoryIndividualTool),
		string(models.CategoryCollectiveTool):
		return true
	}
	return false
}

// Visible returns copies of the items that pass the session filters, in
// catalog order:
//   - rural-only items are hidden for urban teams
//   - the mode restricts items to its category pair
//   - a filter other than TODOS keeps that category only
func Visible(s models.Session) []models.LineItem {
	out := make([]models.LineItem, 0, len(s.Items))
	for _, item := range s.Items {
		if visible(s, item) {
			out = append(out, item.Clone())
		}
	}
	return out
}

func visible(s models.Session, item models.LineItem) bool {
	if s.TeamClass == models.TeamClassUrban && item.RuralOnly {
		return false
	}
	if allowed, ok := modeCategories[s.Mode]; ok && !containsCategory(allowed, item.Category) {
		return false
	}
	if s.Filter != "" && s.Filter != models.CategoryFilterAll && string(item.Category) != s.Filter {
		return false
	}
	return true
}

func containsCategory(list []models.Category, c models.Category) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

// FiltersComplete reports whether the selections are complete enough to
// show the item table.
func FiltersComplete(s models.Session) bool {
	if s.Sector == models.SectorNone {
		return false
	}
	if s.Sector == models.SectorObras && s.Modality == models.ModalityNone {
		return false
	}
	switch s.Mode {
	case models.ModeVehicle:
		return s.TeamCode != ""
	case models.ModeCollaborator:
		return !blank(s.Collaborator)
	default:
		return false
	}
}
