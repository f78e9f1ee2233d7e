package converter

import (
	"strings"
	"time"

	"go-surgical-scheduling/internal/delivery/dto"
	"go-surgical-scheduling/internal/domain/entity"
	"go-surgical-scheduling/pkg/apperr"
)

// Accepted non-canonical date layouts, tried in order.
var legacyDateLayouts = []string{
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
}

// NormalizeDate canonicalizes a date string to YYYY-MM-DD. Datetime strings
// are truncated textually: converting through a timezone-aware value has
// historically shifted dates by one day, so the date portion is taken as
// written.
func NormalizeDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", apperr.Validation("date is required")
	}

	// ISO date or ISO datetime ("2026-01-05", "2026-01-05T14:30:00-03:00",
	// "2026-01-05 14:30:00").
	if len(s) >= 10 && s[4] == '-' && s[7] == '-' {
		candidate := s[:10]
		if _, err := time.Parse("2006-01-02", candidate); err == nil {
			return candidate, nil
		}
	}

	for _, layout := range legacyDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}

	return "", apperr.Validation("unrecognized date format %q, expected YYYY-MM-DD", raw)
}

// NormalizeStoredRecord canonicalizes a record immediately after fetch, so
// every downstream component only ever sees trimmed text and canonical
// patient date strings. Unparseable patient dates are left as stored.
func NormalizeStoredRecord(record *entity.ScheduleRecord) {
	record.SpecialtyName = strings.TrimSpace(record.SpecialtyName)
	record.PhysicianName = strings.TrimSpace(record.PhysicianName)
	record.ProcedureBaseName = strings.TrimSpace(record.ProcedureBaseName)
	record.ProcedureSpecification = strings.TrimSpace(record.ProcedureSpecification)
	record.PatientName = strings.TrimSpace(record.PatientName)
	record.PatientCity = strings.TrimSpace(record.PatientCity)
	record.PatientPhone = strings.TrimSpace(record.PatientPhone)
	record.PatientBirthDate = normalizeOptionalDate(record.PatientBirthDate)
	record.PatientConsultDate = normalizeOptionalDate(record.PatientConsultDate)
}

func normalizeOptionalDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if canonical, err := NormalizeDate(s); err == nil {
		return canonical
	}
	return s
}

// FromImportRequest builds a canonical record from a legacy row, coalescing
// the field-name variants older exports used.
func FromImportRequest(hospitalID string, req *dto.ImportRecordRequest) (*entity.ScheduleRecord, error) {
	day, err := NormalizeDate(firstNonEmpty(req.Date, req.Day))
	if err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		return nil, apperr.Validation("unrecognized date format %q", day)
	}

	specialty := strings.TrimSpace(firstNonEmpty(req.SpecialtyName, req.Specialty))
	if specialty == "" {
		return nil, apperr.Validation("specialty name is required")
	}

	procedure := strings.TrimSpace(firstNonEmpty(req.ProcedureBaseName, req.Procedure))
	record := &entity.ScheduleRecord{
		HospitalID:             hospitalID,
		Date:                   date,
		SpecialtyName:          specialty,
		PhysicianName:          strings.TrimSpace(firstNonEmpty(req.PhysicianName, req.Physician)),
		ProcedureBaseName:      procedure,
		ProcedureSpecification: strings.TrimSpace(req.Specification),
		IsTemplateMarker:       procedure == "",
	}

	if name := strings.TrimSpace(req.PatientName); name != "" {
		if record.IsSpecialtyHeader() {
			return nil, apperr.Validation("a specialty header row cannot hold a patient")
		}
		birth, err := NormalizeDate(firstNonEmpty(req.PatientBirthDate, req.BirthDate))
		if err != nil {
			return nil, err
		}
		record.SetPatient(
			name,
			birth,
			strings.TrimSpace(firstNonEmpty(req.PatientCity, req.City)),
			strings.TrimSpace(firstNonEmpty(req.PatientPhone, req.Phone)),
			normalizeOptionalDate(firstNonEmpty(req.PatientConsultDate, req.ConsultDate)),
		)
	}

	return record, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
