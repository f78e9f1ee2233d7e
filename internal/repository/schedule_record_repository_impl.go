package repository

import (
	"errors"

	"go-surgical-scheduling/internal/domain/entity"
	domainRepo "go-surgical-scheduling/internal/domain/repository"

	"gorm.io/gorm"
)

type scheduleRecordRepository struct{}

func NewScheduleRecordRepository() domainRepo.ScheduleRecordRepository {
	return &scheduleRecordRepository{}
}

func (r *scheduleRecordRepository) Create(db *gorm.DB, record *entity.ScheduleRecord) error {
	return db.Create(record).Error
}

func (r *scheduleRecordRepository) FindByID(db *gorm.DB, id string) (*entity.ScheduleRecord, error) {
	var record entity.ScheduleRecord
	err := db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *scheduleRecordRepository) FindByHospital(db *gorm.DB, hospitalID string) ([]entity.ScheduleRecord, error) {
	var records []entity.ScheduleRecord
	err := db.Where("hospital_id = ?", hospitalID).
		Order("date ASC, created_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FindByDay returns one day's records ordered by creation. The grade is
// rebuilt from this order, so it must be stable across fetches.
func (r *scheduleRecordRepository) FindByDay(db *gorm.DB, hospitalID, date string) ([]entity.ScheduleRecord, error) {
	var records []entity.ScheduleRecord
	err := db.Where("hospital_id = ? AND date = ?", hospitalID, date).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *scheduleRecordRepository) Update(db *gorm.DB, record *entity.ScheduleRecord) error {
	return db.Save(record).Error
}

func (r *scheduleRecordRepository) Delete(db *gorm.DB, id string) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.ScheduleRecord{})
	return affected.RowsAffected, affected.Error
}

func (r *scheduleRecordRepository) DeleteByDay(db *gorm.DB, hospitalID, date string) (int64, error) {
	affected := db.Where("hospital_id = ? AND date = ?", hospitalID, date).
		Delete(&entity.ScheduleRecord{})
	return affected.RowsAffected, affected.Error
}

// DeleteOpenByDay removes the day's unfilled rows only: headers and open
// slots. Filled slots are never touched by bulk cleanup.
func (r *scheduleRecordRepository) DeleteOpenByDay(db *gorm.DB, hospitalID, date string) (int64, error) {
	affected := db.Where("hospital_id = ? AND date = ? AND (patient_name IS NULL OR patient_name = '')", hospitalID, date).
		Delete(&entity.ScheduleRecord{})
	return affected.RowsAffected, affected.Error
}

func (r *scheduleRecordRepository) FindOpenCountsByRange(db *gorm.DB, hospitalID, from, to string) ([]domainRepo.DayOpenCount, error) {
	var counts []domainRepo.DayOpenCount
	err := db.Model(&entity.ScheduleRecord{}).
		Select("date, COUNT(*) AS total, COUNT(*) FILTER (WHERE patient_name IS NULL OR patient_name = '') AS open").
		Where("hospital_id = ? AND date BETWEEN ? AND ?", hospitalID, from, to).
		Group("date").
		Order("date ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
