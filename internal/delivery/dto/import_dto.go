package dto

// ImportRecordRequest is one legacy row. Older exports named some fields
// differently depending on which screen produced them, so both spellings are
// accepted; the normalizer coalesces them into the canonical record shape.
type ImportRecordRequest struct {
	Date string `json:"date"`
	Day  string `json:"day"` // legacy date field name

	SpecialtyName string `json:"specialty_name"`
	Specialty     string `json:"specialty"` // legacy

	PhysicianName string `json:"physician_name"`
	Physician     string `json:"physician"` // legacy

	ProcedureBaseName string `json:"procedure_base_name"`
	Procedure         string `json:"procedure"` // legacy

	Specification string `json:"specification"`

	PatientName        string `json:"patient_name"`
	PatientBirthDate   string `json:"patient_birth_date"`
	BirthDate          string `json:"birth_date"` // legacy
	PatientCity        string `json:"patient_city"`
	City               string `json:"city"` // legacy
	PatientPhone       string `json:"patient_phone"`
	Phone              string `json:"phone"` // legacy
	PatientConsultDate string `json:"patient_consult_date"`
	ConsultDate        string `json:"consult_date"` // legacy
}

type ImportRecordsRequest struct {
	Records []ImportRecordRequest `json:"records" validate:"required,min=1"`
}

type ImportResultResponse struct {
	Imported int `json:"imported"`
}
