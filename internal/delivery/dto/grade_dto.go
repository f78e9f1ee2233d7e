package dto

import "time"

// Request DTOs

type AddSpecialtyRequest struct {
	SpecialtyName string `json:"specialty_name" validate:"required"`
	PhysicianName string `json:"physician_name" validate:"omitempty,max=120"`
}

type AddProcedureRequest struct {
	HeaderRecordID    string `json:"header_record_id" validate:"required"`
	ProcedureBaseName string `json:"procedure_base_name" validate:"required"`
	PhysicianName     string `json:"physician_name" validate:"omitempty,max=120"`
}

type SetSpecificationRequest struct {
	Specification string `json:"specification" validate:"omitempty,max=255"`
	// ProcedureBaseName is honored only for callers holding the admin role;
	// for everyone else the base name is immutable.
	ProcedureBaseName string `json:"procedure_base_name" validate:"omitempty,max=160"`
}

type AssignPatientRequest struct {
	Name        string `json:"name" validate:"required"`
	BirthDate   string `json:"birth_date" validate:"required"`
	City        string `json:"city" validate:"omitempty,max=120"`
	Phone       string `json:"phone" validate:"omitempty,max=40"`
	ConsultDate string `json:"consult_date" validate:"omitempty"`
}

// Response DTOs

type PatientResponse struct {
	Name        string `json:"name"`
	BirthDate   string `json:"birth_date"`
	City        string `json:"city,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ConsultDate string `json:"consult_date,omitempty"`
}

type GradeItemResponse struct {
	Kind              string           `json:"kind"`
	DisplayText       string           `json:"display_text,omitempty"`
	ProcedureBaseName string           `json:"procedure_base_name,omitempty"`
	Specification     string           `json:"specification,omitempty"`
	PhysicianName     string           `json:"physician_name,omitempty"`
	Patient           *PatientResponse `json:"patient,omitempty"`
	SourceRecordID    string           `json:"source_record_id,omitempty"`
}

type DayGradeResponse struct {
	Date    string              `json:"date"`
	Weekday int                 `json:"weekday"`
	Items   []GradeItemResponse `json:"items"`
}

type ScheduleRecordResponse struct {
	ID                     string    `json:"id"`
	HospitalID             string    `json:"hospital_id"`
	Date                   string    `json:"date"`
	SpecialtyName          string    `json:"specialty_name,omitempty"`
	PhysicianName          string    `json:"physician_name,omitempty"`
	ProcedureBaseName      string    `json:"procedure_base_name,omitempty"`
	ProcedureSpecification string    `json:"procedure_specification,omitempty"`
	IsTemplateMarker       bool      `json:"is_template_marker"`
	PatientName            string    `json:"patient_name,omitempty"`
	PatientBirthDate       string    `json:"patient_birth_date,omitempty"`
	PatientCity            string    `json:"patient_city,omitempty"`
	PatientPhone           string    `json:"patient_phone,omitempty"`
	PatientConsultDate     string    `json:"patient_consult_date,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type RecordListResponse struct {
	Records []ScheduleRecordResponse `json:"records"`
	Total   int                      `json:"total"`
}

// MutationResponse pairs the touched record with the re-reconstructed day,
// so the UI can redisplay without a second round trip.
type MutationResponse struct {
	Record *ScheduleRecordResponse `json:"record,omitempty"`
	Grade  *DayGradeResponse       `json:"grade"`
}

type ClearDayResponse struct {
	Deleted int64 `json:"deleted"`
}
