package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"
	"testing"
	"time"

	"go-surgical-scheduling/internal/domain/entity"
	"go-surgical-scheduling/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeRecordRepo is an in-memory ScheduleRecordRepository preserving
// insertion order, matching the created_at ordering of the real store.
type fakeRecordRepo struct {
	records []entity.ScheduleRecord
	nextID  int

	failCreate bool
	// failCreateAfter fails the (n+1)th Create when >= 0.
	failCreateAfter int
	creates         int
	failUpdate      bool
	// failUpdateAfter fails the (n+1)th Update when >= 0.
	failUpdateAfter int
	updates         int
	failDelete      bool
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{failCreateAfter: -1, failUpdateAfter: -1}
}

func (r *fakeRecordRepo) seed(t *testing.T, rec entity.ScheduleRecord) string {
	t.Helper()
	require.NoError(t, r.Create(nil, &rec))
	return rec.ID
}

func (r *fakeRecordRepo) Create(_ *gorm.DB, record *entity.ScheduleRecord) error {
	if r.failCreate || (r.failCreateAfter >= 0 && r.creates >= r.failCreateAfter) {
		return fmt.Errorf("create rejected")
	}
	r.creates++
	if record.ID == "" {
		r.nextID++
		record.ID = fmt.Sprintf("rec-%d", r.nextID)
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeRecordRepo) FindByID(_ *gorm.DB, id string) (*entity.ScheduleRecord, error) {
	for i := range r.records {
		if r.records[i].ID == id {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *fakeRecordRepo) FindByHospital(_ *gorm.DB, hospitalID string) ([]entity.ScheduleRecord, error) {
	var out []entity.ScheduleRecord
	for _, rec := range r.records {
		if rec.HospitalID == hospitalID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) FindByDay(_ *gorm.DB, hospitalID, date string) ([]entity.ScheduleRecord, error) {
	var out []entity.ScheduleRecord
	for _, rec := range r.records {
		if rec.HospitalID == hospitalID && rec.DateString() == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) Update(_ *gorm.DB, record *entity.ScheduleRecord) error {
	if r.failUpdate || (r.failUpdateAfter >= 0 && r.updates >= r.failUpdateAfter) {
		return fmt.Errorf("update rejected")
	}
	r.updates++
	for i := range r.records {
		if r.records[i].ID == record.ID {
			r.records[i] = *record
			return nil
		}
	}
	return fmt.Errorf("record %s not found", record.ID)
}

func (r *fakeRecordRepo) Delete(_ *gorm.DB, id string) (int64, error) {
	if r.failDelete {
		return 0, fmt.Errorf("delete rejected")
	}
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeRecordRepo) DeleteByDay(_ *gorm.DB, hospitalID, date string) (int64, error) {
	return r.deleteWhere(func(rec *entity.ScheduleRecord) bool {
		return rec.HospitalID == hospitalID && rec.DateString() == date
	})
}

func (r *fakeRecordRepo) DeleteOpenByDay(_ *gorm.DB, hospitalID, date string) (int64, error) {
	return r.deleteWhere(func(rec *entity.ScheduleRecord) bool {
		return rec.HospitalID == hospitalID && rec.DateString() == date && !rec.HasPatient()
	})
}

func (r *fakeRecordRepo) deleteWhere(match func(*entity.ScheduleRecord) bool) (int64, error) {
	if r.failDelete {
		return 0, fmt.Errorf("delete rejected")
	}
	var kept []entity.ScheduleRecord
	var deleted int64
	for i := range r.records {
		if match(&r.records[i]) {
			deleted++
			continue
		}
		kept = append(kept, r.records[i])
	}
	r.records = kept
	return deleted, nil
}

func (r *fakeRecordRepo) FindOpenCountsByRange(_ *gorm.DB, hospitalID, from, to string) ([]repository.DayOpenCount, error) {
	byDay := make(map[string]*repository.DayOpenCount)
	for i := range r.records {
		rec := &r.records[i]
		day := rec.DateString()
		if rec.HospitalID != hospitalID || day < from || day > to {
			continue
		}
		count, ok := byDay[day]
		if !ok {
			count = &repository.DayOpenCount{Date: rec.Date}
			byDay[day] = count
		}
		count.Total++
		if !rec.HasPatient() {
			count.Open++
		}
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]repository.DayOpenCount, 0, len(days))
	for _, day := range days {
		out = append(out, *byDay[day])
	}
	return out, nil
}

// fakeCache records day hits and invalidations.
type fakeCache struct {
	days         map[string][]entity.ScheduleRecord
	invalidated  []string
	sets         int
	hitsRecorded int
}

func newFakeCache() *fakeCache {
	return &fakeCache{days: make(map[string][]entity.ScheduleRecord)}
}

func cacheKey(hospitalID, date string) string {
	return hospitalID + "/" + date
}

func (c *fakeCache) GetDay(_ context.Context, hospitalID, date string) ([]entity.ScheduleRecord, bool) {
	records, ok := c.days[cacheKey(hospitalID, date)]
	if ok {
		c.hitsRecorded++
	}
	return records, ok
}

func (c *fakeCache) SetDay(_ context.Context, hospitalID, date string, records []entity.ScheduleRecord) {
	c.sets++
	c.days[cacheKey(hospitalID, date)] = records
}

func (c *fakeCache) InvalidateDay(_ context.Context, hospitalID, date string) {
	delete(c.days, cacheKey(hospitalID, date))
	c.invalidated = append(c.invalidated, cacheKey(hospitalID, date))
}

// fakeAudit collects the actions logged by the usecases.
type fakeAudit struct {
	actions []string
}

func (a *fakeAudit) LogCreate(_ context.Context, _ *gorm.DB, action, _, _ string, _ interface{}) error {
	a.actions = append(a.actions, action)
	return nil
}

func (a *fakeAudit) LogUpdate(_ context.Context, _ *gorm.DB, action, _, _ string, _, _ interface{}) error {
	a.actions = append(a.actions, action)
	return nil
}

func (a *fakeAudit) LogDelete(_ context.Context, _ *gorm.DB, action, _, _ string, _ interface{}) error {
	a.actions = append(a.actions, action)
	return nil
}

// fakeTransactor runs the callback without a real database. Rollback is not
// simulated; tests assert failing paths return before the first write.
type fakeTransactor struct {
	calls int
}

func (t *fakeTransactor) Transaction(fc func(tx *gorm.DB) error, _ ...*sql.TxOptions) error {
	t.calls++
	return fc(nil)
}

// rollbackTransactor snapshots the repo before the callback and restores it
// when the callback fails, mimicking a real transaction rollback.
type rollbackTransactor struct {
	repo  *fakeRecordRepo
	calls int
}

func (t *rollbackTransactor) Transaction(fc func(tx *gorm.DB) error, _ ...*sql.TxOptions) error {
	t.calls++
	snapshot := append([]entity.ScheduleRecord(nil), t.repo.records...)
	if err := fc(nil); err != nil {
		t.repo.records = snapshot
		return err
	}
	return nil
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func headerRecord(t *testing.T, hospitalID, date, specialty, physician string) entity.ScheduleRecord {
	return entity.ScheduleRecord{
		HospitalID:       hospitalID,
		Date:             day(t, date),
		SpecialtyName:    specialty,
		PhysicianName:    physician,
		IsTemplateMarker: true,
	}
}

func slotRecord(t *testing.T, hospitalID, date, specialty, physician, procedure string) entity.ScheduleRecord {
	return entity.ScheduleRecord{
		HospitalID:        hospitalID,
		Date:              day(t, date),
		SpecialtyName:     specialty,
		PhysicianName:     physician,
		ProcedureBaseName: procedure,
	}
}

func bookedRecord(t *testing.T, hospitalID, date, specialty, procedure, patient string) entity.ScheduleRecord {
	rec := slotRecord(t, hospitalID, date, specialty, "", procedure)
	rec.SetPatient(patient, "1980-04-12", "Campinas", "19-99999-0000", "")
	return rec
}
