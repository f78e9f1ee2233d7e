package repository

import (
	"time"

	"go-surgical-scheduling/internal/domain/entity"

	"gorm.io/gorm"
)

// DayOpenCount summarizes one calendar day's records: how many rows exist
// and how many of them carry no patient (headers included).
type DayOpenCount struct {
	Date  time.Time `json:"date"`
	Total int64     `json:"total"`
	Open  int64     `json:"open"`
}

type ScheduleRecordRepository interface {
	Create(db *gorm.DB, record *entity.ScheduleRecord) error
	FindByID(db *gorm.DB, id string) (*entity.ScheduleRecord, error)
	FindByHospital(db *gorm.DB, hospitalID string) ([]entity.ScheduleRecord, error)
	FindByDay(db *gorm.DB, hospitalID, date string) ([]entity.ScheduleRecord, error)
	Update(db *gorm.DB, record *entity.ScheduleRecord) error
	Delete(db *gorm.DB, id string) (int64, error)
	DeleteByDay(db *gorm.DB, hospitalID, date string) (int64, error)
	DeleteOpenByDay(db *gorm.DB, hospitalID, date string) (int64, error)
	FindOpenCountsByRange(db *gorm.DB, hospitalID, from, to string) ([]DayOpenCount, error)
}
