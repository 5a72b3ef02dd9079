package checklist

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/checklist-epi-api/internal/models"
)

var fixedNow = time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int        { return &v }

// readyVehicle returns a STC vehicle session with a complete header and the
// confirmation gate checked.
func readyVehicle(t *testing.T) models.Session {
	t.Helper()
	s := NewSession("s-1", fixedNow)
	s = SelectSector(s, models.SectorSTC)
	s = SelectMode(s, models.ModeVehicle)
	s = SelectTeam(s, "ECBSN01")
	s = SetNames(s, Names{Electrician1: strPtr("Ana"), Electrician2: strPtr("Bruno"), Responsible: strPtr("Carla")})
	return SetConfirmation(s, true)
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession("abc", fixedNow)
	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, models.ModeVehicle, s.Mode)
	assert.Equal(t, models.TeamClassUrban, s.TeamClass)
	assert.Equal(t, models.SectorNone, s.Sector)
	assert.Equal(t, models.CategoryFilterAll, s.Filter)
	assert.Equal(t, models.StageEditing, s.Stage)
	assert.False(t, s.Reviewed)
	assert.False(t, s.Confirmed)
	assert.Equal(t, 1, s.CatalogVersion)
	assert.Equal(t, DefaultCatalog(), s.Items)
	assert.Equal(t, fixedNow, s.CreatedAt)
}

func TestResetClearsEverything(t *testing.T) {
	s := readyVehicle(t)
	s, err := UpdateItem(s, 1050, ItemPatch{Field: FieldFoundQty, FoundQty: intPtr(3)})
	require.NoError(t, err)
	s = SetConfirmation(s, true)
	s, _, err = Finalize(s, fixedNow, "snap")
	require.NoError(t, err)

	version := s.CatalogVersion
	reset := Reset(s, fixedNow.Add(time.Minute))
	assert.Equal(t, models.Header{Mode: models.ModeVehicle, TeamClass: models.TeamClassUrban}, reset.Header)
	assert.Equal(t, DefaultCatalog(), reset.Items)
	assert.Equal(t, models.StageEditing, reset.Stage)
	assert.False(t, reset.Reviewed)
	assert.False(t, reset.Confirmed)
	assert.Equal(t, version+1, reset.CatalogVersion)
	assert.Equal(t, s.ID, reset.ID)
}

func TestCatalogReloadResetsFindings(t *testing.T) {
	s := readyVehicle(t)
	s, err := UpdateItem(s, 1050, ItemPatch{Field: FieldFoundQty, FoundQty: intPtr(4)})
	require.NoError(t, err)
	s, err = UpdateItem(s, 1051, ItemPatch{Field: FieldNote, Note: "rasgada"})
	require.NoError(t, err)
	s.Filter = string(models.CategoryEPC)

	for _, next := range []models.Session{
		SelectSector(s, models.SectorObras),
		SelectModality(SelectSector(s, models.SectorObras), models.ModalityLV),
		SelectSector(s, models.SectorNone),
	} {
		for _, item := range next.Items {
			assert.Nil(t, item.FoundQty)
			assert.Empty(t, item.Note)
			assert.Empty(t, item.Evidence)
		}
		assert.Equal(t, models.CategoryFilterAll, next.Filter)
		assert.Equal(t, models.StageEditing, next.Stage)
		assert.False(t, next.Confirmed)
		assert.Greater(t, next.CatalogVersion, s.CatalogVersion)
	}
	assert.Equal(t, 4, *s.Items[indexOf(s.Items, 1050)].FoundQty, "previous state untouched")
}

func TestSelectSectorClearsTeamAndModality(t *testing.T) {
	s := NewSession("s", fixedNow)
	s = SelectSector(s, models.SectorObras)
	s = SelectModality(s, models.ModalityLV)
	s = SelectTeam(s, "E-10")
	require.Equal(t, models.TeamClassRural, s.TeamClass)

	s = SelectSector(s, models.SectorNone)
	assert.Empty(t, s.TeamCode)
	assert.Equal(t, models.ModalityNone, s.Modality)
	assert.Empty(t, s.Items)
}

func TestReselectingSameSectorOrModalityKeepsWork(t *testing.T) {
	s := NewSession("s", fixedNow)
	s = SelectSector(s, models.SectorObras)
	s = SelectModality(s, models.ModalityLV)
	s = SelectTeam(s, "E-10")
	s, err := UpdateItem(s, 2001, ItemPatch{Field: FieldFoundQty, FoundQty: intPtr(3)})
	require.NoError(t, err)
	s, ok := AddEvidence(s, s.CatalogVersion, 2001, "data:image/png;base64,AAA")
	require.True(t, ok)
	s = SetConfirmation(s, true)

	for name, next := range map[string]models.Session{
		"sector":   SelectSector(s, models.SectorObras),
		"modality": SelectModality(s, models.ModalityLV),
	} {
		assert.Equal(t, s, next, name)
		assert.Equal(t, models.ModalityLV, next.Modality, name)
		assert.Equal(t, "E-10", next.TeamCode, name)
		item := next.Items[indexOf(next.Items, 2001)]
		require.NotNil(t, item.FoundQty, name)
		assert.Equal(t, 3, *item.FoundQty, name)
		assert.Len(t, item.Evidence, 1, name)
	}

	switched := SelectModality(s, models.ModalityLM)
	assert.Greater(t, switched.CatalogVersion, s.CatalogVersion)
}

func TestSTCForcesUrbanOverDerivedClass(t *testing.T) {
	s := NewSession("s", fixedNow)
	s = SelectSector(s, models.SectorSTC)
	s = SelectTeam(s, "EROSS01")
	require.Equal(t, models.TeamClassRural, s.TeamClass)

	s = SelectSector(SelectSector(s, models.SectorObras), models.SectorSTC)
	assert.Equal(t, models.TeamClassUrban, s.TeamClass)

	obras := SelectSector(SelectTeam(NewSession("o", fixedNow), "E-08"), models.SectorObras)
	assert.Equal(t, models.TeamClassRural, obras.TeamClass, "OBRAS keeps the derived class")
}

func TestSelectModeAndFilterResetReview(t *testing.T) {
	s, _, err := Finalize(readyVehicle(t), fixedNow, "x")
	require.NoError(t, err)
	require.Equal(t, models.StageSummary, s.Stage)

	moded := SelectMode(s, models.ModeCollaborator)
	assert.Equal(t, models.StageEditing, moded.Stage)
	assert.False(t, moded.Reviewed)
	assert.Equal(t, models.CategoryFilterAll, moded.Filter)

	filtered := SetFilter(s, string(models.CategoryEPC))
	assert.Equal(t, models.StageEditing, filtered.Stage)
	assert.Equal(t, "EPC", filtered.Filter)

	teamed := SelectTeam(s, "")
	assert.Equal(t, s.TeamClass, teamed.TeamClass)
	assert.False(t, teamed.Reviewed)
}

func TestSetNamesKeepsStage(t *testing.T) {
	s, _, err := Finalize(readyVehicle(t), fixedNow, "x")
	require.NoError(t, err)
	named := SetNames(s, Names{Collaborator: strPtr("Eva")})
	assert.Equal(t, "Eva", named.Collaborator)
	assert.Equal(t, "Ana", named.Electrician1)
	assert.Equal(t, models.StageSummary, named.Stage)
}

func TestEditWhileFinalizedRevertsToEditing(t *testing.T) {
	s, _, err := Finalize(readyVehicle(t), fixedNow, "x")
	require.NoError(t, err)

	edited, err := UpdateItem(s, 1050, ItemPatch{Field: FieldFoundQty, FoundQty: intPtr(6)})
	require.NoError(t, err)
	assert.Equal(t, models.StageEditing, edited.Stage)
	assert.False(t, edited.Reviewed)
	assert.False(t, edited.Confirmed)
	assert.Equal(t, 6, *edited.Items[indexOf(edited.Items, 1050)].FoundQty)

	cleared, err := UpdateItem(edited, 1050, ItemPatch{Field: FieldFoundQty})
	require.NoError(t, err)
	assert.Nil(t, cleared.Items[indexOf(cleared.Items, 1050)].FoundQty)

	_, err = UpdateItem(s, 99999, ItemPatch{Field: FieldNote, Note: "x"})
	assert.True(t, errors.Is(err, ErrItemNotFound))

	_, err = UpdateItem(s, 1050, ItemPatch{Field: "descricao"})
	assert.Error(t, err)
}

func TestConfirmationToggleWhileFinalized(t *testing.T) {
	s, _, err := Finalize(readyVehicle(t), fixedNow, "x")
	require.NoError(t, err)

	toggled := SetConfirmation(s, false)
	assert.Equal(t, models.StageEditing, toggled.Stage)
	assert.False(t, toggled.Reviewed)
	assert.False(t, toggled.Confirmed)

	editing := SetConfirmation(NewSession("n", fixedNow), true)
	assert.True(t, editing.Confirmed)
	assert.Equal(t, models.StageEditing, editing.Stage)
}

func TestAddEvidenceVersionGuard(t *testing.T) {
	s := readyVehicle(t)
	version := s.CatalogVersion

	next, ok := AddEvidence(s, version, 1050, "data:image/png;base64,AAA")
	require.True(t, ok)
	assert.Equal(t, []string{"data:image/png;base64,AAA"}, next.Items[indexOf(next.Items, 1050)].Evidence)
	assert.False(t, next.Confirmed)
	assert.Empty(t, s.Items[indexOf(s.Items, 1050)].Evidence)

	reloaded := SelectSector(next, models.SectorObras)
	stale, ok := AddEvidence(reloaded, version, 1050, "data:image/png;base64,BBB")
	assert.False(t, ok)
	assert.Equal(t, reloaded, stale)

	_, ok = AddEvidence(next, version, 424242, "data:image/png;base64,CCC")
	assert.False(t, ok)
}

func TestFinalizeRequiresHeader(t *testing.T) {
	s := SetConfirmation(SelectSector(NewSession("s", fixedNow), models.SectorSTC), true)
	_, _, err := Finalize(s, fixedNow, "x")
	var headerErr *HeaderError
	require.True(t, errors.As(err, &headerErr))
	assert.Equal(t, []string{"Equipe", "Eletricista 1", "Eletricista 2", "Responsável"}, headerErr.Missing)

	obras := SetConfirmation(SelectSector(NewSession("o", fixedNow), models.SectorObras), true)
	_, _, err = Finalize(obras, fixedNow, "x")
	require.True(t, errors.As(err, &headerErr))
	assert.Equal(t, "Preencha Equipe, Encarregado e Responsável antes de finalizar.", err.Error())
}

func TestFinalizeRequiresConfirmation(t *testing.T) {
	s := SetConfirmation(readyVehicle(t), false)
	out, _, err := Finalize(s, fixedNow, "x")
	assert.True(t, errors.Is(err, ErrConfirmationRequired))
	assert.Equal(t, s, out)
}

func TestFinalizeProducesSnapshot(t *testing.T) {
	s := readyVehicle(t)
	s, err := UpdateItem(s, 1050, ItemPatch{Field: FieldFoundQty, FoundQty: intPtr(5)})
	require.NoError(t, err)
	s = SetConfirmation(s, true)

	final, snap, err := Finalize(s, fixedNow, "snap-1")
	require.NoError(t, err)
	assert.Equal(t, models.StageSummary, final.Stage)
	assert.True(t, final.Reviewed)
	assert.Equal(t, "snap-1", snap.ID)
	assert.Equal(t, fixedNow, snap.CreatedAt)
	assert.Equal(t, "Caminhão/Viatura ECBSN01", snap.Title)
	assert.Equal(t, s.Header, snap.Header)
	assert.Len(t, snap.Items, len(s.Items), "snapshot keeps every item, not only visible ones")

	*final.Items[indexOf(final.Items, 1050)].FoundQty = 0
	assert.Equal(t, 5, *snap.Items[indexOf(snap.Items, 1050)].FoundQty)

	again, snap2, err := Finalize(final, fixedNow, "snap-2")
	require.NoError(t, err)
	assert.Equal(t, models.StageSummary, again.Stage)
	snap2.ID = snap.ID
	assert.NotEqual(t, snap, snap2, "second snapshot reflects the mutated session copy")
}

func TestFinalizeTwiceWithoutEditsYieldsEqualSnapshots(t *testing.T) {
	s := readyVehicle(t)
	s, first, err := Finalize(s, fixedNow, "a")
	require.NoError(t, err)
	_, second, err := Finalize(s, fixedNow, "b")
	require.NoError(t, err)

	second.ID = first.ID
	assert.Equal(t, first, second)

	history := PrependSnapshot(nil, first, HistoryCapacity)
	history = PrependSnapshot(history, second, HistoryCapacity)
	assert.Len(t, history, 2)
}

func TestHistoryKeepsTenNewestFirst(t *testing.T) {
	var history []models.Snapshot
	for i := 1; i <= 11; i++ {
		history = PrependSnapshot(history, models.Snapshot{ID: fmt.Sprintf("s%d", i)}, HistoryCapacity)
	}
	require.Len(t, history, 10)
	assert.Equal(t, "s11", history[0].ID)
	assert.Equal(t, "s2", history[9].ID)

	assert.Len(t, PrependSnapshot(history, models.Snapshot{ID: "x"}, 0), HistoryCapacity)
	assert.Len(t, PrependSnapshot(history, models.Snapshot{ID: "x"}, 3), 3)
}

func TestSnapshotTitle(t *testing.T) {
	assert.Equal(t, "Caminhão/Viatura sem equipe", SnapshotTitle(models.Header{Mode: models.ModeVehicle}))
	assert.Equal(t, "Colaborador sem nome", SnapshotTitle(models.Header{Mode: models.ModeCollaborator}))
	assert.Equal(t, "Colaborador Eva", SnapshotTitle(models.Header{Mode: models.ModeCollaborator, Collaborator: "Eva"}))
}
