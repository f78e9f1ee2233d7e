package usecase

import (
	"context"
	"testing"

	"go-surgical-scheduling/internal/delivery/dto"
	"go-surgical-scheduling/internal/domain/entity"
	"go-surgical-scheduling/internal/domain/grade"
	"go-surgical-scheduling/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlotEditor() (SlotEditorUsecase, *fakeRecordRepo, *fakeCache, *fakeAudit) {
	repo := newFakeRecordRepo()
	cache := newFakeCache()
	audit := &fakeAudit{}
	return NewSlotEditorUsecase(nil, testLogger(), repo, audit, cache), repo, cache, audit
}

func TestDayGradeReconstructsFromStore(t *testing.T) {
	u, repo, cache, _ := newSlotEditor()
	repo.seed(t, headerRecord(t, "hsp-01", "2026-01-05", "Ortopedia", "Dr. Silva"))
	repo.seed(t, slotRecord(t, "hsp-01", "2026-01-05", "Ortopedia", "Dr. Silva", "LCA"))

	got, err := u.DayGrade(context.Background(), "hsp-01", "2026-01-05")
	require.NoError(t, err)

	require.Len(t, got.Items, 2)
	assert.Equal(t, grade.KindSpecialtyHeader, got.Items[0].Kind)
	assert.Equal(t, grade.KindProcedureSlot, got.Items[1].Kind)

	// The flat rows were cached for the next read.
	assert.Equal(t, 1, cache.sets)
}

func TestDayGradeAcceptsDatetimeInput(t *testing.T) {
	u, repo, _, _ := newSlotEditor()
	repo.seed(t, headerRecord(t, "hsp-01", "2026-01-05", "Ortopedia", ""))

	got, err := u.DayGrade(context.Background(), "hsp-01", "2026-01-05T00:00:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-05", got.Date)
	require.Len(t, got.Items, 1)
}

func TestDayGradeServedFromCache(t *testing.T) {
	u, repo, cache, _ := newSlotEditor()
	repo.seed(t, headerRecord(t, "hsp-01", "2026-01-05", "Ortopedia", ""))

	_, err := u.DayGrade(context.Background(), "hsp-01", "2026-01-05")
	require.NoError(t, err)
	_, err = u.DayGrade(context.Background(), "hsp-01", "2026-01-05")
	require.NoError(t, err)

	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 1, cache.hitsRecorded)
}

func TestAddSpecialtyCreatesHeaderAndInvalidatesCache(t *testing.T) {
	u, repo, cache, audit := newSlotEditor()

	rec, err := u.AddSpecialty(context.Background(), "hsp-01", "2026-01-05", "  Ortopedia ", " Dr. Silva ")
	require.NoError(t, err)

	assert.Equal(t, "Ortopedia", rec.SpecialtyName)
	assert.Equal(t, "Dr. Silva", rec.PhysicianName)
	assert.True(t, rec.IsSpecialtyHeader())
	assert.True(t, rec.IsTemplateMarker)
	assert.Len(t, repo.records, 1)
	assert.Equal(t, []string{"hsp-01/2026-01-05"}, cache.invalidated)
	assert.Equal(t, []string{entity.AuditActionSpecialtyCreate}, audit.actions)
}

func TestAddSpecialtyRejectsEmptyName(t *testing.T) {
	u, repo, _, _ := newSlotEditor()

	_, err := u.AddSpecialty(context.Background(), "hsp-01", "2026-01-05", "   ", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Empty(t, repo.records)
}

func TestAddProcedureInheritsHeaderPhysician(t *testing.T) {
	u, repo, _, _ := newSlotEditor()
	headerID := repo.seed(t, headerRecord(t, "hsp-01", "2026-01-05", "Ortopedia", "Dr. Silva"))

	rec, err := u.AddProcedure(context.Background(), headerID, "LCA", "")
	require.NoError(t, err)

	assert.Equal(t, "Dr. Silva", rec.PhysicianName)
	assert.Equal(t, "Ortopedia", rec.SpecialtyName)
	assert.Equal(t, "2026-01-05", rec.DateString())
	assert.False(t, rec.IsSpecialtyHeader())
}

func TestAddProcedurePhysicianOverride(t *testing.T) {
	u, repo, _, _ := newSlotEditor()
	headerID := repo.seed(t, headerRecord(t, "hsp-01", "2026-01-05", "Ortopedia", "Dr. Silva"))

	rec, err := u.AddProcedure(context.Background(), headerID, "LCA", "Dr. Costa")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Costa", rec.PhysicianName)
}

func TestAddProcedureUnknownHeader(t *testing.T) {
	u, _, _, _ := newSlotEditor()

	_, err := u.AddProcedure(context.Background(), "missing", "LCA", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAddProcedureTargetMustBeHeader(t *testing.T) {
	u, repo, _, _ := newSlotEditor()
	slotID := repo.seed(t, slotRecord(t, "hsp-01", "2026-01-05", "Ortopedia", "", "LCA"))

	_, err := u.AddProcedure(context.Background(), slotID, "ARTROSCOPIA", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSetSpecificationBaseNameImmutableWithoutPrivilege(t *testing.T) {
	u, repo, _, _ := newSlotEditor()
	slotID := repo.seed(t, slotRecord(t, "hsp-01", "2026-01-05", "Ortopedia", "", "LCA"))

	_, err := u.SetSpecification(context.Background(), slotID, "JOELHO", "ARTROSCOPIA", false)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// Nothing was written.
	stored, _ := repo.FindByID(nil, slotID)
	assert.Equal(t, "LCA", stored.ProcedureBaseName)
	assert.Empty(t, stored.ProcedureSpecification)
}

func TestSetSpecificationPrivilegedOverrideUppercases(t *testing.T) {
	u, repo, _, _ := newSlotEditor()
	slotID := repo.seed(t, slotRecord(t, "hsp-01", "2026-01-05", "Ortopedia", "", "LCA"))

	rec, err := u.SetSpecification(context.Background(), slotID, "joelho esquerdo", "artroscopia", true)
	require.NoError(t, err)
	assert.Equal(t, "ARTROSCOPIA", rec.ProcedureBaseName)
	assert.Equal(t, "joelho esquerdo", rec.ProcedureSpecification)

	stored, _ := repo.FindByID(nil, slotID)
	assert.Equal(t, "ARTROSCOPIA", stored.ProcedureBaseName)
}

func TestSetSpecificationRejectsHeader(t *testing.T) {
	u, repo, _, _ := newSlotEditor()
	headerID := repo.seed(t, headerRecord(t, "hsp-01", "2026-01-05", "Ortopedia", ""))

	_, err := u.SetSpecification(context.Background(), headerID, "JOELHO", "", false)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAssignPatientValidatesBeforeStore(t *testing.T) {
	u, repo, _, _ := newSlotEditor()
	slotID := repo.seed(t, slotRecord(t, "hsp-01", "2026-01-05", "Ortopedia", "", "LCA"))

	tests := []struct {
		name    string
		patient grade.Patient
	}{
		{"missing name", grade.Patient{BirthDate: "1980-04-12"}},
		{"missing birth date", grade.Patient{Name: "Maria Souza"}},
		{"bad birth date", grade.Patient{Name: "Maria Souza", BirthDate: "not-a-date"}},
		{"bad consult date", grade.Patient{Name: "Maria Souza", BirthDate: "1980-04-12", ConsultDate: "someday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.AssignPatient(context.Background(), slotID, tt.patient)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

			stored, _ := repo.FindByID(nil, slotID)
			assert.False(t, stored.HasPatient(), "failed validation must not write")
		})
	}
}

func TestAssignPatientNormalizesDates(t *testing.T) {
	u, repo, _, _ := newSlotEditor()
	slotID := repo.seed(t, slotRecord(t, "hsp-01", "2026-01-05", "Ortopedia", "", "LCA"))

	rec, err := u.AssignPatient(context.Background(), slotID, grade.Patient{
		Name:        " Maria Souza ",
		BirthDate:   "12/04/1980",
		City:        "Campinas",
		ConsultDate: "2025/12/01",
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria Souza", rec.PatientName)
	assert.Equal(t, "1980-04-12", rec.PatientBirthDate)
	assert.Equal(t, "2025-12-01", rec.PatientConsultDate)

	stored, _ := repo.FindByID(nil, slotID)
	assert.True(t, stored.HasPatient())
}

func TestAssignPatientRejectsFilledSlot(t *testing.T) {
	u, repo, _, _ := newSlotEditor()
	slotID := repo.seed(t, bookedRecord(t, "hsp-01", "2026-01-05", "Ortopedia", "LCA", "Maria Souza"))

	_, err := u.AssignPatient(context.Background(), slotID, grade.Patient{Name: "João Lima", BirthDate: "1975-02-02"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	stored, _ := repo.FindByID(nil, slotID)
	assert.Equal(t, "Maria Souza", stored.PatientName)
}

func TestRemovePatientKeepsSlotOpen(t *testing.T) {
	u, repo, _, _ := newSlotEditor()
	slotID := repo.seed(t, bookedRecord(t, "hsp-01", "2026-01-05", "Ortopedia", "LCA", "Maria Souza"))

	rec, err := u.RemovePatient(context.Background(), slotID)
	require.NoError(t, err)
	assert.True(t, rec.IsOpen())

	stored, _ := repo.FindByID(nil, slotID)
	require.NotNil(t, stored)
	assert.True(t, stored.IsOpen())
	assert.Equal(t, "LCA", stored.ProcedureBaseName)
}

func TestAssignRemoveAssignRoundTrip(t *testing.T) {
	u, repo, _, _ := newSlotEditor()
	slotID := repo.seed(t, slotRecord(t, "hsp-01", "2026-01-05", "Ortopedia", "", "LCA"))

	_, err := u.AssignPatient(context.Background(), slotID, grade.Patient{Name: "Maria Souza", BirthDate: "1980-04-12"})
	require.NoError(t, err)
	_, err = u.RemovePatient(context.Background(), slotID)
	require.NoError(t, err)
	rec, err := u.AssignPatient(context.Background(), slotID, grade.Patient{Name: "João Lima", BirthDate: "1975-02-02"})
	require.NoError(t, err)

	assert.Equal(t, "João Lima", rec.PatientName)
}

func TestRemoveItemHeaderDoesNotCascade(t *testing.T) {
	u, repo, _, _ := newSlotEditor()
	headerID := repo.seed(t, headerRecord(t, "hsp-01", "2026-01-05", "Ortopedia", ""))
	repo.seed(t, slotRecord(t, "hsp-01", "2026-01-05", "Ortopedia", "", "LCA"))

	require.NoError(t, u.RemoveItem(context.Background(), headerID))

	// The procedure row survives and reappears under a synthesized header.
	got, err := u.DayGrade(context.Background(), "hsp-01", "2026-01-05")
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, grade.KindSpecialtyHeader, got.Items[0].Kind)
	assert.Empty(t, got.Items[0].SourceRecordID)
	assert.Equal(t, "LCA", got.Items[1].ProcedureBaseName)
}

func TestRemoveItemUnknownID(t *testing.T) {
	u, _, _, _ := newSlotEditor()

	err := u.RemoveItem(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestClearDayDeletesEverything(t *testing.T) {
	u, repo, cache, _ := newSlotEditor()
	repo.seed(t, headerRecord(t, "hsp-01", "2026-01-05", "Ortopedia", ""))
	repo.seed(t, bookedRecord(t, "hsp-01", "2026-01-05", "Ortopedia", "LCA", "Maria Souza"))
	repo.seed(t, headerRecord(t, "hsp-01", "2026-01-06", "Urologia", ""))

	deleted, err := u.ClearDay(context.Background(), "hsp-01", "2026-01-05")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// The other day is untouched.
	assert.Len(t, repo.records, 1)
	assert.Equal(t, "2026-01-06", repo.records[0].DateString())
	assert.Contains(t, cache.invalidated, "hsp-01/2026-01-05")
}

func TestImportRecordsAbortsOnBadRow(t *testing.T) {
	u, repo, _, _ := newSlotEditor()

	rows := []dto.ImportRecordRequest{
		{Date: "2026-01-05", Specialty: "Ortopedia"},
		{Date: "2026-01-05", Specialty: "Ortopedia", Procedure: "LCA"},
		{Date: "bad-date", Specialty: "Urologia"},
		{Date: "2026-01-06", Specialty: "Urologia"},
	}

	imported, err := u.ImportRecords(context.Background(), "hsp-01", rows)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// Rows before the bad one stay written.
	assert.Equal(t, 2, imported)
	assert.Len(t, repo.records, 2)
}

func TestImportRecordsFullBatch(t *testing.T) {
	u, repo, _, audit := newSlotEditor()

	rows := []dto.ImportRecordRequest{
		{Day: "05/01/2026", Specialty: "Ortopedia"},
		{Day: "05/01/2026", Specialty: "Ortopedia", Procedure: "LCA", PatientName: "Maria Souza", BirthDate: "12/04/1980"},
	}

	imported, err := u.ImportRecords(context.Background(), "hsp-01", rows)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	require.Len(t, repo.records, 2)
	assert.True(t, repo.records[0].IsSpecialtyHeader())
	assert.Equal(t, "1980-04-12", repo.records[1].PatientBirthDate)
	assert.Equal(t, []string{entity.AuditActionRecordImport}, audit.actions)
}
