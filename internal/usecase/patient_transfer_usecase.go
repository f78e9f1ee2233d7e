package usecase

import (
	"context"
	"database/sql"
	"strings"

	"go-surgical-scheduling/internal/domain/entity"
	"go-surgical-scheduling/internal/domain/repository"
	"go-surgical-scheduling/internal/service"
	"go-surgical-scheduling/pkg/apperr"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// transactor runs a function inside one database transaction. *gorm.DB
// satisfies it directly.
type transactor interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// PatientTransferUsecase moves a patient between two existing slots. Both
// writes run in a single transaction and the destination's openness is
// re-verified inside it, so the patient can never end up on two records or
// on none.
type PatientTransferUsecase interface {
	MovePatient(ctx context.Context, sourceSlotID, destinationSlotID string) error
}

type patientTransferUsecase struct {
	db         *gorm.DB
	txer       transactor
	log        *logrus.Logger
	recordRepo repository.ScheduleRecordRepository
	auditSvc   service.AuditService
	cache      RecordCache
}

func NewPatientTransferUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.ScheduleRecordRepository,
	auditSvc service.AuditService,
	cache RecordCache,
) PatientTransferUsecase {
	return &patientTransferUsecase{
		db:         db,
		txer:       db,
		log:        log,
		recordRepo: recordRepo,
		auditSvc:   auditSvc,
		cache:      cache,
	}
}

func (u *patientTransferUsecase) MovePatient(ctx context.Context, sourceSlotID, destinationSlotID string) error {
	if strings.TrimSpace(sourceSlotID) == "" || strings.TrimSpace(destinationSlotID) == "" {
		return apperr.Validation("source and destination slot ids are required")
	}
	if sourceSlotID == destinationSlotID {
		return apperr.Validation("source and destination slots must differ")
	}

	var source, destination *entity.ScheduleRecord
	err := u.txer.Transaction(func(tx *gorm.DB) error {
		var err error
		source, err = u.findFilledSlot(tx, sourceSlotID)
		if err != nil {
			return err
		}

		// Openness is checked here, inside the transaction, not from an
		// earlier query: the destination may have been booked since.
		destination, err = u.recordRepo.FindByID(tx, destinationSlotID)
		if err != nil {
			return apperr.Store(err, "failed to find destination slot")
		}
		if destination == nil {
			return apperr.NotFound("destination slot %s not found", destinationSlotID)
		}
		if destination.IsSpecialtyHeader() {
			return apperr.Validation("record %s is not a procedure slot", destinationSlotID)
		}
		if destination.HasPatient() {
			return apperr.Conflict("destination slot %s already holds a patient", destinationSlotID)
		}

		destination.SetPatient(
			source.PatientName,
			source.PatientBirthDate,
			source.PatientCity,
			source.PatientPhone,
			source.PatientConsultDate,
		)
		if err := u.recordRepo.Update(tx, destination); err != nil {
			return apperr.Store(err, "failed to write destination slot")
		}

		source.ClearPatient()
		if err := u.recordRepo.Update(tx, source); err != nil {
			// Rolling back also restores the destination write above.
			return apperr.Store(err, "failed to clear source slot")
		}
		return nil
	})
	if err != nil {
		u.log.Warnf("Failed to move patient: %+v", err)
		return err
	}

	u.cache.InvalidateDay(ctx, source.HospitalID, source.DateString())
	u.cache.InvalidateDay(ctx, destination.HospitalID, destination.DateString())
	_ = u.auditSvc.LogUpdate(ctx, u.db, entity.AuditActionPatientMove, "schedule_record", destination.ID, entity.JSON{
		"source_slot_id":      sourceSlotID,
		"destination_slot_id": destinationSlotID,
	}, destination)
	return nil
}

func (u *patientTransferUsecase) findFilledSlot(tx *gorm.DB, slotID string) (*entity.ScheduleRecord, error) {
	record, err := u.recordRepo.FindByID(tx, slotID)
	if err != nil {
		return nil, apperr.Store(err, "failed to find source slot")
	}
	if record == nil {
		return nil, apperr.NotFound("source slot %s not found", slotID)
	}
	if record.IsSpecialtyHeader() {
		return nil, apperr.Validation("record %s is not a procedure slot", slotID)
	}
	if !record.HasPatient() {
		return nil, apperr.Conflict("source slot %s holds no patient", slotID)
	}
	return record, nil
}
