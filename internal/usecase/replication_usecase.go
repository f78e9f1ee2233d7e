package usecase

import (
	"context"
	"strings"
	"time"

	"go-surgical-scheduling/internal/converter"
	"go-surgical-scheduling/internal/domain/entity"
	"go-surgical-scheduling/internal/domain/repository"
	"go-surgical-scheduling/internal/service"
	"go-surgical-scheduling/pkg/apperr"
	"go-surgical-scheduling/pkg/calendar"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TargetMonth identifies one replication or cleanup target.
type TargetMonth struct {
	Year  int
	Month time.Month
}

// ReplicationResult reports how much work a Replicate run completed. On a
// mid-run failure the counts cover only the writes that were committed;
// there is no rollback.
type ReplicationResult struct {
	SpecialtiesCreated int `json:"specialties_created"`
	ProceduresCreated  int `json:"procedures_created"`
	DaysReplicated     int `json:"days_replicated"`
	DaysIgnored        int `json:"days_ignored"`
}

// ClearMonthsResult reports a bulk template cleanup. DaysProcessed counts
// days with at least one deletable row; DaysIgnored counts days that held
// records but nothing deletable (fully booked days).
type ClearMonthsResult struct {
	DeletedCount  int64 `json:"deleted_count"`
	DaysProcessed int   `json:"days_processed"`
	DaysIgnored   int   `json:"days_ignored"`
}

type ReplicationUsecase interface {
	Replicate(ctx context.Context, hospitalID, sourceDate string, targets []TargetMonth, dryRun bool) (*ReplicationResult, error)
	ClearMonths(ctx context.Context, hospitalID string, targets []TargetMonth, dryRun bool) (*ClearMonthsResult, error)
}

type replicationUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	recordRepo repository.ScheduleRecordRepository
	auditSvc   service.AuditService
	cache      RecordCache
}

func NewReplicationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.ScheduleRecordRepository,
	auditSvc service.AuditService,
	cache RecordCache,
) ReplicationUsecase {
	return &replicationUsecase{
		db:         db,
		log:        log,
		recordRepo: recordRepo,
		auditSvc:   auditSvc,
		cache:      cache,
	}
}

// templateGroup is one (specialty, physician) block of the source day, with
// its procedure base names. Specifications and patients are not part of the
// template.
type templateGroup struct {
	specialty  string
	physician  string
	procedures []string
}

// Replicate clones the source day's specialty/procedure template onto the
// weekday-ordinal-aligned date of each target month. Writes are issued
// sequentially and awaited one at a time; a failure aborts the remaining
// iterations and the partial counts are returned alongside the error.
func (u *replicationUsecase) Replicate(ctx context.Context, hospitalID, sourceDate string, targets []TargetMonth, dryRun bool) (*ReplicationResult, error) {
	if strings.TrimSpace(hospitalID) == "" {
		return nil, apperr.Validation("hospital id is required")
	}
	if len(targets) == 0 {
		return nil, apperr.Validation("at least one target month is required")
	}
	day, err := converter.NormalizeDate(sourceDate)
	if err != nil {
		return nil, err
	}
	source, err := calendar.ParseDate(day)
	if err != nil {
		return nil, apperr.Validation("unrecognized date format %q", sourceDate)
	}

	records, err := u.recordRepo.FindByDay(u.db, hospitalID, day)
	if err != nil {
		u.log.Warnf("Failed to load source day: %+v", err)
		return nil, apperr.Store(err, "failed to load source day")
	}

	weekday := source.Weekday()
	ordinal := calendar.OrdinalOfWeekday(source)
	result := &ReplicationResult{}

	for _, group := range sourceTemplateGroups(records) {
		for _, target := range targets {
			// An abandoned request stops issuing new writes between
			// iterations; writes already issued are not recalled.
			if err := ctx.Err(); err != nil {
				return result, apperr.Store(err, "replication aborted")
			}

			aligned, ok := calendar.AlignToMonth(weekday, ordinal, target.Year, target.Month)
			if !ok {
				result.DaysIgnored++
				continue
			}
			result.DaysReplicated++

			if dryRun {
				result.SpecialtiesCreated++
				result.ProceduresCreated += len(group.procedures)
				continue
			}

			alignedDay := calendar.FormatDate(aligned)
			header := &entity.ScheduleRecord{
				HospitalID:       hospitalID,
				Date:             aligned,
				SpecialtyName:    group.specialty,
				PhysicianName:    group.physician,
				IsTemplateMarker: true,
			}
			if err := u.recordRepo.Create(u.db, header); err != nil {
				u.log.Warnf("Replication aborted on header create: %+v", err)
				return result, apperr.Store(err, "replication aborted after partial completion")
			}
			result.SpecialtiesCreated++

			for _, procedure := range group.procedures {
				slot := &entity.ScheduleRecord{
					HospitalID:        hospitalID,
					Date:              aligned,
					SpecialtyName:     group.specialty,
					PhysicianName:     group.physician,
					ProcedureBaseName: procedure,
				}
				if err := u.recordRepo.Create(u.db, slot); err != nil {
					u.log.Warnf("Replication aborted on slot create: %+v", err)
					// The header above is already committed; a cached copy
					// of the day would hide it until the TTL expires.
					u.cache.InvalidateDay(ctx, hospitalID, alignedDay)
					return result, apperr.Store(err, "replication aborted after partial completion")
				}
				result.ProceduresCreated++
			}

			u.cache.InvalidateDay(ctx, hospitalID, alignedDay)
		}
	}

	if !dryRun {
		_ = u.auditSvc.LogCreate(ctx, u.db, entity.AuditActionReplicate, "schedule_day", day, result)
	}
	return result, nil
}

// ClearMonths deletes the unfilled rows of every day in the target months.
// Filled slots are always preserved. Deletes are issued day by day so a
// failure leaves a well-defined prefix of the work done.
func (u *replicationUsecase) ClearMonths(ctx context.Context, hospitalID string, targets []TargetMonth, dryRun bool) (*ClearMonthsResult, error) {
	if strings.TrimSpace(hospitalID) == "" {
		return nil, apperr.Validation("hospital id is required")
	}
	if len(targets) == 0 {
		return nil, apperr.Validation("at least one target month is required")
	}

	result := &ClearMonthsResult{}
	for _, target := range targets {
		first := time.Date(target.Year, target.Month, 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(target.Year, target.Month, calendar.DaysInMonth(target.Year, target.Month), 0, 0, 0, 0, time.UTC)

		counts, err := u.recordRepo.FindOpenCountsByRange(u.db, hospitalID, calendar.FormatDate(first), calendar.FormatDate(last))
		if err != nil {
			u.log.Warnf("Failed to scan target month: %+v", err)
			return result, apperr.Store(err, "cleanup aborted after partial completion")
		}

		for _, dayCount := range counts {
			if err := ctx.Err(); err != nil {
				return result, apperr.Store(err, "cleanup aborted")
			}
			if dayCount.Open == 0 {
				result.DaysIgnored++
				continue
			}

			if dryRun {
				result.DeletedCount += dayCount.Open
				result.DaysProcessed++
				continue
			}

			day := calendar.FormatDate(dayCount.Date)
			deleted, err := u.recordRepo.DeleteOpenByDay(u.db, hospitalID, day)
			if err != nil {
				u.log.Warnf("Cleanup aborted on delete: %+v", err)
				return result, apperr.Store(err, "cleanup aborted after partial completion")
			}
			result.DeletedCount += deleted
			result.DaysProcessed++
			u.cache.InvalidateDay(ctx, hospitalID, day)
		}
	}

	if !dryRun {
		_ = u.auditSvc.LogDelete(ctx, u.db, entity.AuditActionMonthsClear, "schedule_day", "", result)
	}
	return result, nil
}

// sourceTemplateGroups groups the source day's rows by (specialty,
// physician) in first-seen order, collecting procedure base names. Rows with
// an empty specialty are malformed and skipped; patients and specifications
// are ignored.
func sourceTemplateGroups(records []entity.ScheduleRecord) []*templateGroup {
	var order []*templateGroup
	index := make(map[[2]string]*templateGroup)

	for i := range records {
		rec := &records[i]
		specialty := strings.TrimSpace(rec.SpecialtyName)
		if specialty == "" {
			continue
		}
		physician := strings.TrimSpace(rec.PhysicianName)

		key := [2]string{specialty, physician}
		group, ok := index[key]
		if !ok {
			group = &templateGroup{specialty: specialty, physician: physician}
			index[key] = group
			order = append(order, group)
		}
		if !rec.IsSpecialtyHeader() {
			group.procedures = append(group.procedures, strings.TrimSpace(rec.ProcedureBaseName))
		}
	}

	return order
}
