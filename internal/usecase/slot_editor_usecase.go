package usecase

import (
	"context"
	"strings"
	"time"

	"go-surgical-scheduling/internal/converter"
	"go-surgical-scheduling/internal/delivery/dto"
	"go-surgical-scheduling/internal/domain/entity"
	"go-surgical-scheduling/internal/domain/grade"
	"go-surgical-scheduling/internal/domain/repository"
	"go-surgical-scheduling/internal/service"
	"go-surgical-scheduling/pkg/apperr"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RecordCache is the per-day flat record cache consumed by the usecases.
// Implementations must degrade to misses on failure; the cache can never
// fail an operation.
type RecordCache interface {
	GetDay(ctx context.Context, hospitalID, date string) ([]entity.ScheduleRecord, bool)
	SetDay(ctx context.Context, hospitalID, date string, records []entity.ScheduleRecord)
	InvalidateDay(ctx context.Context, hospitalID, date string)
}

// SlotEditorUsecase mutates individual rows of a day's grade. Every write
// goes through the store; the returned record lets handlers re-fetch and
// re-reconstruct the day for redisplay.
type SlotEditorUsecase interface {
	DayGrade(ctx context.Context, hospitalID, date string) (*grade.DayGrade, error)
	ListRecords(ctx context.Context, hospitalID string) ([]entity.ScheduleRecord, error)
	AddSpecialty(ctx context.Context, hospitalID, date, specialtyName, physicianName string) (*entity.ScheduleRecord, error)
	AddProcedure(ctx context.Context, headerRecordID, procedureBaseName, physicianName string) (*entity.ScheduleRecord, error)
	SetSpecification(ctx context.Context, slotID, specification, baseNameOverride string, allowBaseNameOverride bool) (*entity.ScheduleRecord, error)
	AssignPatient(ctx context.Context, slotID string, patient grade.Patient) (*entity.ScheduleRecord, error)
	RemovePatient(ctx context.Context, slotID string) (*entity.ScheduleRecord, error)
	RemoveItem(ctx context.Context, itemID string) error
	ClearDay(ctx context.Context, hospitalID, date string) (int64, error)
	ImportRecords(ctx context.Context, hospitalID string, rows []dto.ImportRecordRequest) (int, error)
}

type slotEditorUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	recordRepo repository.ScheduleRecordRepository
	auditSvc   service.AuditService
	cache      RecordCache
}

func NewSlotEditorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.ScheduleRecordRepository,
	auditSvc service.AuditService,
	cache RecordCache,
) SlotEditorUsecase {
	return &slotEditorUsecase{
		db:         db,
		log:        log,
		recordRepo: recordRepo,
		auditSvc:   auditSvc,
		cache:      cache,
	}
}

func (u *slotEditorUsecase) DayGrade(ctx context.Context, hospitalID, date string) (*grade.DayGrade, error) {
	if strings.TrimSpace(hospitalID) == "" {
		return nil, apperr.Validation("hospital id is required")
	}
	day, err := converter.NormalizeDate(date)
	if err != nil {
		return nil, err
	}

	records, err := u.dayRecords(ctx, hospitalID, day)
	if err != nil {
		return nil, err
	}
	return grade.Reconstruct(day, records), nil
}

func (u *slotEditorUsecase) ListRecords(ctx context.Context, hospitalID string) ([]entity.ScheduleRecord, error) {
	if strings.TrimSpace(hospitalID) == "" {
		return nil, apperr.Validation("hospital id is required")
	}

	records, err := u.recordRepo.FindByHospital(u.db, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find hospital records: %+v", err)
		return nil, apperr.Store(err, "failed to load records")
	}
	for i := range records {
		converter.NormalizeStoredRecord(&records[i])
	}
	return records, nil
}

// dayRecords loads one day's rows cache-first. Rows are normalized right
// after fetch so downstream code only sees the canonical shape.
func (u *slotEditorUsecase) dayRecords(ctx context.Context, hospitalID, day string) ([]entity.ScheduleRecord, error) {
	if records, ok := u.cache.GetDay(ctx, hospitalID, day); ok {
		return records, nil
	}

	records, err := u.recordRepo.FindByDay(u.db, hospitalID, day)
	if err != nil {
		u.log.Warnf("Failed to find day records: %+v", err)
		return nil, apperr.Store(err, "failed to load day records")
	}
	for i := range records {
		converter.NormalizeStoredRecord(&records[i])
	}
	u.cache.SetDay(ctx, hospitalID, day, records)
	return records, nil
}

func (u *slotEditorUsecase) AddSpecialty(ctx context.Context, hospitalID, date, specialtyName, physicianName string) (*entity.ScheduleRecord, error) {
	if strings.TrimSpace(hospitalID) == "" {
		return nil, apperr.Validation("hospital id is required")
	}
	name := strings.TrimSpace(specialtyName)
	if name == "" {
		return nil, apperr.Validation("specialty name is required")
	}
	day, err := converter.NormalizeDate(date)
	if err != nil {
		return nil, err
	}
	dayTime, err := time.Parse("2006-01-02", day)
	if err != nil {
		return nil, apperr.Validation("unrecognized date format %q", date)
	}

	record := &entity.ScheduleRecord{
		HospitalID:       hospitalID,
		Date:             dayTime,
		SpecialtyName:    name,
		PhysicianName:    strings.TrimSpace(physicianName),
		IsTemplateMarker: true,
	}
	if err := u.recordRepo.Create(u.db, record); err != nil {
		u.log.Warnf("Failed to create specialty header: %+v", err)
		return nil, apperr.Store(err, "failed to create specialty header")
	}

	u.cache.InvalidateDay(ctx, hospitalID, day)
	_ = u.auditSvc.LogCreate(ctx, u.db, entity.AuditActionSpecialtyCreate, "schedule_record", record.ID, record)
	return record, nil
}

func (u *slotEditorUsecase) AddProcedure(ctx context.Context, headerRecordID, procedureBaseName, physicianName string) (*entity.ScheduleRecord, error) {
	base := strings.TrimSpace(procedureBaseName)
	if base == "" {
		return nil, apperr.Validation("procedure base name is required")
	}

	header, err := u.recordRepo.FindByID(u.db, headerRecordID)
	if err != nil {
		u.log.Warnf("Failed to find header record: %+v", err)
		return nil, apperr.Store(err, "failed to find header record")
	}
	if header == nil {
		return nil, apperr.NotFound("header record %s not found", headerRecordID)
	}
	if !header.IsSpecialtyHeader() {
		return nil, apperr.Validation("record %s is not a specialty header", headerRecordID)
	}

	// The slot's physician defaults to its header's physician unless the
	// caller overrides it at creation.
	physician := strings.TrimSpace(physicianName)
	if physician == "" {
		physician = strings.TrimSpace(header.PhysicianName)
	}

	record := &entity.ScheduleRecord{
		HospitalID:        header.HospitalID,
		Date:              header.Date,
		SpecialtyName:     strings.TrimSpace(header.SpecialtyName),
		PhysicianName:     physician,
		ProcedureBaseName: base,
	}
	if err := u.recordRepo.Create(u.db, record); err != nil {
		u.log.Warnf("Failed to create procedure slot: %+v", err)
		return nil, apperr.Store(err, "failed to create procedure slot")
	}

	u.cache.InvalidateDay(ctx, header.HospitalID, header.DateString())
	_ = u.auditSvc.LogCreate(ctx, u.db, entity.AuditActionProcedureCreate, "schedule_record", record.ID, record)
	return record, nil
}

func (u *slotEditorUsecase) SetSpecification(ctx context.Context, slotID, specification, baseNameOverride string, allowBaseNameOverride bool) (*entity.ScheduleRecord, error) {
	override := strings.TrimSpace(baseNameOverride)
	if override != "" && !allowBaseNameOverride {
		return nil, apperr.Validation("procedure base name is immutable")
	}

	record, err := u.findSlot(slotID)
	if err != nil {
		return nil, err
	}

	old := *record
	record.ProcedureSpecification = strings.TrimSpace(specification)
	if override != "" {
		record.ProcedureBaseName = strings.ToUpper(override)
	}

	if err := u.recordRepo.Update(u.db, record); err != nil {
		u.log.Warnf("Failed to update specification: %+v", err)
		return nil, apperr.Store(err, "failed to update specification")
	}

	u.cache.InvalidateDay(ctx, record.HospitalID, record.DateString())
	_ = u.auditSvc.LogUpdate(ctx, u.db, entity.AuditActionSpecificationUpdate, "schedule_record", record.ID, old, record)
	return record, nil
}

func (u *slotEditorUsecase) AssignPatient(ctx context.Context, slotID string, patient grade.Patient) (*entity.ScheduleRecord, error) {
	// Required fields are checked before any store call.
	if strings.TrimSpace(patient.Name) == "" {
		return nil, apperr.Validation("patient name is required")
	}
	if strings.TrimSpace(patient.BirthDate) == "" {
		return nil, apperr.Validation("patient birth date is required")
	}
	birth, err := converter.NormalizeDate(patient.BirthDate)
	if err != nil {
		return nil, err
	}
	consult := ""
	if strings.TrimSpace(patient.ConsultDate) != "" {
		if consult, err = converter.NormalizeDate(patient.ConsultDate); err != nil {
			return nil, err
		}
	}

	record, err := u.findSlot(slotID)
	if err != nil {
		return nil, err
	}
	if record.HasPatient() {
		return nil, apperr.Conflict("slot %s already holds a patient", slotID)
	}

	record.SetPatient(strings.TrimSpace(patient.Name), birth, strings.TrimSpace(patient.City), strings.TrimSpace(patient.Phone), consult)
	if err := u.recordRepo.Update(u.db, record); err != nil {
		u.log.Warnf("Failed to assign patient: %+v", err)
		return nil, apperr.Store(err, "failed to assign patient")
	}

	u.cache.InvalidateDay(ctx, record.HospitalID, record.DateString())
	_ = u.auditSvc.LogUpdate(ctx, u.db, entity.AuditActionPatientAssign, "schedule_record", record.ID, nil, record)
	return record, nil
}

func (u *slotEditorUsecase) RemovePatient(ctx context.Context, slotID string) (*entity.ScheduleRecord, error) {
	record, err := u.findSlot(slotID)
	if err != nil {
		return nil, err
	}

	// The slot record is kept and becomes open again.
	old := *record
	record.ClearPatient()
	if err := u.recordRepo.Update(u.db, record); err != nil {
		u.log.Warnf("Failed to remove patient: %+v", err)
		return nil, apperr.Store(err, "failed to remove patient")
	}

	u.cache.InvalidateDay(ctx, record.HospitalID, record.DateString())
	_ = u.auditSvc.LogUpdate(ctx, u.db, entity.AuditActionPatientRemove, "schedule_record", record.ID, old, record)
	return record, nil
}

// RemoveItem deletes a single record. Deleting a specialty header does not
// cascade to its procedure rows; reconstruction keeps them visible under a
// synthesized header until they are removed or re-headed.
func (u *slotEditorUsecase) RemoveItem(ctx context.Context, itemID string) error {
	record, err := u.recordRepo.FindByID(u.db, itemID)
	if err != nil {
		u.log.Warnf("Failed to find record: %+v", err)
		return apperr.Store(err, "failed to find record")
	}
	if record == nil {
		return apperr.NotFound("record %s not found", itemID)
	}

	affected, err := u.recordRepo.Delete(u.db, itemID)
	if err != nil {
		u.log.Warnf("Failed to delete record: %+v", err)
		return apperr.Store(err, "failed to delete record")
	}
	if affected == 0 {
		return apperr.NotFound("record %s not found", itemID)
	}

	u.cache.InvalidateDay(ctx, record.HospitalID, record.DateString())
	_ = u.auditSvc.LogDelete(ctx, u.db, entity.AuditActionItemDelete, "schedule_record", itemID, record)
	return nil
}

func (u *slotEditorUsecase) ClearDay(ctx context.Context, hospitalID, date string) (int64, error) {
	if strings.TrimSpace(hospitalID) == "" {
		return 0, apperr.Validation("hospital id is required")
	}
	day, err := converter.NormalizeDate(date)
	if err != nil {
		return 0, err
	}

	deleted, err := u.recordRepo.DeleteByDay(u.db, hospitalID, day)
	if err != nil {
		u.log.Warnf("Failed to clear day: %+v", err)
		return 0, apperr.Store(err, "failed to clear day")
	}

	u.cache.InvalidateDay(ctx, hospitalID, day)
	_ = u.auditSvc.LogDelete(ctx, u.db, entity.AuditActionDayClear, "schedule_day", day, entity.JSON{"deleted": deleted})
	return deleted, nil
}

// ImportRecords feeds legacy rows through the normalizer and persists the
// canonical result one row at a time. A bad row aborts the import; rows
// already written stay written.
func (u *slotEditorUsecase) ImportRecords(ctx context.Context, hospitalID string, rows []dto.ImportRecordRequest) (int, error) {
	if strings.TrimSpace(hospitalID) == "" {
		return 0, apperr.Validation("hospital id is required")
	}

	imported := 0
	for i := range rows {
		record, err := converter.FromImportRequest(hospitalID, &rows[i])
		if err != nil {
			return imported, err
		}
		if err := u.recordRepo.Create(u.db, record); err != nil {
			u.log.Warnf("Failed to import record: %+v", err)
			return imported, apperr.Store(err, "import aborted after %d records", imported)
		}
		u.cache.InvalidateDay(ctx, hospitalID, record.DateString())
		imported++
	}

	_ = u.auditSvc.LogCreate(ctx, u.db, entity.AuditActionRecordImport, "schedule_record", "", entity.JSON{"imported": imported})
	return imported, nil
}

// findSlot loads a record that must be a procedure slot.
func (u *slotEditorUsecase) findSlot(slotID string) (*entity.ScheduleRecord, error) {
	record, err := u.recordRepo.FindByID(u.db, slotID)
	if err != nil {
		u.log.Warnf("Failed to find slot: %+v", err)
		return nil, apperr.Store(err, "failed to find slot")
	}
	if record == nil {
		return nil, apperr.NotFound("slot %s not found", slotID)
	}
	if record.IsSpecialtyHeader() {
		return nil, apperr.Validation("record %s is not a procedure slot", slotID)
	}
	return record, nil
}
