package checklist

import (
	"errors"
	"time"

	"github.com/noah-isme/checklist-epi-api/internal/models"
)

// ErrItemNotFound is returned when an action targets an unknown item id.
var ErrItemNotFound = errors.New("checklist item not found")

// ItemField names the editable fields of a line item.
type ItemField string

const (
	FieldFoundQty ItemField = "qtdeEncontrada"
	FieldNote     ItemField = "observacao"
)

// ItemPatch is a single-field edit of a line item. A nil FoundQty clears the
// recorded quantity.
type ItemPatch struct {
	Field    ItemField
	FoundQty *int
	Note     string
}

// Names carries optional updates of the free-text header fields.
type Names struct {
	Electrician1 *string
	Electrician2 *string
	Collaborator *string
	Responsible  *string
}

// NewSession builds a session in its initial state.
func NewSession(id string, now time.Time) models.Session {
	return Reset(models.Session{ID: id, CreatedAt: now}, now)
}

// Reset starts a new checklist in place: default catalog, vehicle mode,
// urban class and every header field and gate cleared.
func Reset(s models.Session, now time.Time) models.Session {
	return models.Session{
		ID:             s.ID,
		Header:         models.Header{Mode: models.ModeVehicle, TeamClass: models.TeamClassUrban},
		Items:          DefaultCatalog(),
		Filter:         models.CategoryFilterAll,
		Stage:          models.StageEditing,
		CatalogVersion: s.CatalogVersion + 1,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      now,
	}
}

// SelectSector switches the sector, clearing team and modality and
// reloading the catalog. Selecting the current sector changes nothing.
func SelectSector(s models.Session, sector models.Sector) models.Session {
	if sector == s.Sector {
		return s.Clone()
	}
	next := s.Clone()
	next.Sector = sector
	next.TeamCode = ""
	next.Modality = models.ModalityNone
	reload(&next)
	return next
}

// SelectModality switches the OBRAS modality and reloads the catalog.
// Selecting the current modality changes nothing.
func SelectModality(s models.Session, modality models.Modality) models.Session {
	if modality == s.Modality {
		return s.Clone()
	}
	next := s.Clone()
	next.Modality = modality
	reload(&next)
	return next
}

// SelectMode switches between vehicle and collaborator checklists.
func SelectMode(s models.Session, mode models.Mode) models.Session {
	next := s.Clone()
	next.Mode = mode
	next.Filter = models.CategoryFilterAll
	unreview(&next)
	return next
}

// SelectTeam sets the team code and derives the team class from it.
func SelectTeam(s models.Session, code string) models.Session {
	next := s.Clone()
	next.TeamCode = code
	next.TeamClass = DeriveTeamClass(code, next.TeamClass)
	unreview(&next)
	return next
}

// SetNames updates the provided free-text header fields.
func SetNames(s models.Session, names Names) models.Session {
	next := s.Clone()
	if names.Electrician1 != nil {
		next.Electrician1 = *names.Electrician1
	}
	if names.Electrician2 != nil {
		next.Electrician2 = *names.Electrician2
	}
	if names.Collaborator != nil {
		next.Collaborator = *names.Collaborator
	}
	if names.Responsible != nil {
		next.Responsible = *names.Responsible
	}
	return next
}

// SetFilter sets the explicit category filter.
func SetFilter(s models.Session, filter string) models.Session {
	next := s.Clone()
	next.Filter = filter
	unreview(&next)
	return next
}

// UpdateItem applies patch to the item with id. Any edit clears both gates
// and returns the session to editing.
func UpdateItem(s models.Session, id int, patch ItemPatch) (models.Session, error) {
	next := s.Clone()
	idx := indexOf(next.Items, id)
	if idx < 0 {
		return s, ErrItemNotFound
	}
	switch patch.Field {
	case FieldFoundQty:
		next.Items[idx].FoundQty = nil
		if patch.FoundQty != nil {
			found := *patch.FoundQty
			next.Items[idx].FoundQty = &found
		}
	case FieldNote:
		next.Items[idx].Note = patch.Note
	default:
		return s, errors.New("unknown item field " + string(patch.Field))
	}
	invalidate(&next)
	return next, nil
}

// AddEvidence appends a data URL to the item's evidence. It is a no-op
// returning false when version is not the current catalog version or the
// item no longer exists.
func AddEvidence(s models.Session, version, id int, dataURL string) (models.Session, bool) {
	if version != s.CatalogVersion {
		return s, false
	}
	idx := indexOf(s.Items, id)
	if idx < 0 {
		return s, false
	}
	next := s.Clone()
	next.Items[idx].Evidence = append(next.Items[idx].Evidence, dataURL)
	invalidate(&next)
	return next, true
}

// SetConfirmation toggles the final confirmation gate. Toggling it on a
// finalized checklist returns it to editing.
func SetConfirmation(s models.Session, checked bool) models.Session {
	next := s.Clone()
	next.Confirmed = checked
	if next.Stage == models.StageSummary {
		unreview(&next)
	}
	return next
}

// Finalize moves a valid, confirmed checklist to the summary stage and
// returns the snapshot to record in history.
func Finalize(s models.Session, now time.Time, snapshotID string) (models.Session, models.Snapshot, error) {
	if missing := MissingFields(s.Header); len(missing) > 0 {
		return s, models.Snapshot{}, &HeaderError{Missing: missing}
	}
	if !s.Confirmed {
		return s, models.Snapshot{}, ErrConfirmationRequired
	}
	next := s.Clone()
	next.Stage = models.StageSummary
	next.Reviewed = true

	snapshot := models.Snapshot{
		ID:        snapshotID,
		CreatedAt: now,
		Title:     SnapshotTitle(s.Header),
		Header:    s.Header,
		Items:     models.CloneItems(s.Items),
	}
	return next, snapshot, nil
}

func reload(s *models.Session) {
	s.Items = CatalogFor(s.Sector, s.Modality)
	s.Filter = models.CategoryFilterAll
	if s.Sector == models.SectorSTC {
		s.TeamClass = models.TeamClassUrban
	}
	s.Confirmed = false
	s.CatalogVersion++
	unreview(s)
}

func unreview(s *models.Session) {
	s.Reviewed = false
	s.Stage = models.StageEditing
}

func invalidate(s *models.Session) {
	s.Confirmed = false
	unreview(s)
}

func indexOf(items []models.LineItem, id int) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
