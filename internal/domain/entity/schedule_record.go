package entity

import (
	"strings"
	"time"
)

// ScheduleRecord is the single persisted row shape of the surgical grade.
// One row is either a specialty header (no procedure base name) declaring a
// specialty for a day, or a procedure slot that may hold a patient booking.
// The day hierarchy shown to operators is always derived from these rows,
// never stored.
type ScheduleRecord struct {
	ID                     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	HospitalID             string    `gorm:"type:varchar(64);not null;index:idx_schedule_records_day,priority:1" json:"hospital_id"`
	Date                   time.Time `gorm:"type:date;not null;index:idx_schedule_records_day,priority:2" json:"date"`
	SpecialtyName          string    `gorm:"type:varchar(120)" json:"specialty_name"`
	PhysicianName          string    `gorm:"type:varchar(120)" json:"physician_name"`
	ProcedureBaseName      string    `gorm:"type:varchar(160)" json:"procedure_base_name"`
	ProcedureSpecification string    `gorm:"type:varchar(255)" json:"procedure_specification"`
	IsTemplateMarker       bool      `gorm:"not null;default:false" json:"is_template_marker"`
	PatientName            string    `gorm:"type:varchar(160)" json:"patient_name"`
	PatientBirthDate       string    `gorm:"type:varchar(10)" json:"patient_birth_date"`
	PatientCity            string    `gorm:"type:varchar(120)" json:"patient_city"`
	PatientPhone           string    `gorm:"type:varchar(40)" json:"patient_phone"`
	PatientConsultDate     string    `gorm:"type:varchar(10)" json:"patient_consult_date"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ScheduleRecord) TableName() string {
	return "schedule_records"
}

// DateString returns the record's date in canonical YYYY-MM-DD form. All
// date comparisons go through this form; comparing raw time values has
// historically produced off-by-one-day bugs under timezone shifts.
func (r *ScheduleRecord) DateString() string {
	return r.Date.Format("2006-01-02")
}

// IsSpecialtyHeader reports whether the row declares a specialty for the day
// rather than an operable slot.
func (r *ScheduleRecord) IsSpecialtyHeader() bool {
	return strings.TrimSpace(r.ProcedureBaseName) == ""
}

// HasPatient reports whether the slot holds a booking.
func (r *ScheduleRecord) HasPatient() bool {
	return strings.TrimSpace(r.PatientName) != ""
}

// IsOpen reports whether the row is a procedure slot without a patient.
func (r *ScheduleRecord) IsOpen() bool {
	return !r.IsSpecialtyHeader() && !r.HasPatient()
}

// SetPatient writes the patient fields onto the record.
func (r *ScheduleRecord) SetPatient(name, birthDate, city, phone, consultDate string) {
	r.PatientName = name
	r.PatientBirthDate = birthDate
	r.PatientCity = city
	r.PatientPhone = phone
	r.PatientConsultDate = consultDate
}

// ClearPatient empties the patient fields, turning a filled slot back into
// an open one. The record itself is kept.
func (r *ScheduleRecord) ClearPatient() {
	r.PatientName = ""
	r.PatientBirthDate = ""
	r.PatientCity = ""
	r.PatientPhone = ""
	r.PatientConsultDate = ""
}
