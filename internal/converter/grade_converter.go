package converter

import (
	"go-surgical-scheduling/internal/delivery/dto"
	"go-surgical-scheduling/internal/domain/entity"
	"go-surgical-scheduling/internal/domain/grade"
)

// RecordToResponse converts a ScheduleRecord entity to its response DTO
func RecordToResponse(record *entity.ScheduleRecord) *dto.ScheduleRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.ScheduleRecordResponse{
		ID:                     record.ID,
		HospitalID:             record.HospitalID,
		Date:                   record.DateString(),
		SpecialtyName:          record.SpecialtyName,
		PhysicianName:          record.PhysicianName,
		ProcedureBaseName:      record.ProcedureBaseName,
		ProcedureSpecification: record.ProcedureSpecification,
		IsTemplateMarker:       record.IsTemplateMarker,
		PatientName:            record.PatientName,
		PatientBirthDate:       record.PatientBirthDate,
		PatientCity:            record.PatientCity,
		PatientPhone:           record.PatientPhone,
		PatientConsultDate:     record.PatientConsultDate,
		CreatedAt:              record.CreatedAt,
		UpdatedAt:              record.UpdatedAt,
	}
}

// RecordsToResponses converts a slice of ScheduleRecord entities to DTOs
func RecordsToResponses(records []entity.ScheduleRecord) []dto.ScheduleRecordResponse {
	responses := make([]dto.ScheduleRecordResponse, len(records))
	for i := range records {
		responses[i] = *RecordToResponse(&records[i])
	}
	return responses
}

// DayGradeToResponse converts a reconstructed DayGrade to its response DTO
func DayGradeToResponse(dayGrade *grade.DayGrade) *dto.DayGradeResponse {
	if dayGrade == nil {
		return nil
	}

	items := make([]dto.GradeItemResponse, len(dayGrade.Items))
	for i, item := range dayGrade.Items {
		items[i] = dto.GradeItemResponse{
			Kind:              string(item.Kind),
			DisplayText:       item.DisplayText,
			ProcedureBaseName: item.ProcedureBaseName,
			Specification:     item.Specification,
			PhysicianName:     item.PhysicianName,
			SourceRecordID:    item.SourceRecordID,
		}
		if item.Patient != nil {
			items[i].Patient = &dto.PatientResponse{
				Name:        item.Patient.Name,
				BirthDate:   item.Patient.BirthDate,
				City:        item.Patient.City,
				Phone:       item.Patient.Phone,
				ConsultDate: item.Patient.ConsultDate,
			}
		}
	}

	return &dto.DayGradeResponse{
		Date:    dayGrade.Date,
		Weekday: int(dayGrade.Weekday),
		Items:   items,
	}
}
