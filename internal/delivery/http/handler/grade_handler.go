package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"go-surgical-scheduling/internal/converter"
	"go-surgical-scheduling/internal/delivery/dto"
	"go-surgical-scheduling/internal/domain/entity"
	"go-surgical-scheduling/internal/domain/grade"
	"go-surgical-scheduling/internal/usecase"
	"go-surgical-scheduling/pkg/authctx"
	"go-surgical-scheduling/pkg/response"
	"go-surgical-scheduling/pkg/validator"

	"github.com/gorilla/mux"
)

type GradeHandler struct {
	slotEditor usecase.SlotEditorUsecase
	validator  *validator.CustomValidator
}

func NewGradeHandler(slotEditor usecase.SlotEditorUsecase, validator *validator.CustomValidator) *GradeHandler {
	return &GradeHandler{
		slotEditor: slotEditor,
		validator:  validator,
	}
}

func (h *GradeHandler) GetDayGrade(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	dayGrade, err := h.slotEditor.DayGrade(r.Context(), vars["hospitalId"], vars["date"])
	if err != nil {
		writeAppError(w, err, "Failed to get day grade")
		return
	}

	response.Success(w, http.StatusOK, "Day grade retrieved successfully", converter.DayGradeToResponse(dayGrade))
}

func (h *GradeHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	records, err := h.slotEditor.ListRecords(r.Context(), vars["hospitalId"])
	if err != nil {
		writeAppError(w, err, "Failed to list records")
		return
	}

	response.Success(w, http.StatusOK, "Records retrieved successfully", &dto.RecordListResponse{
		Records: converter.RecordsToResponses(records),
		Total:   len(records),
	})
}

func (h *GradeHandler) AddSpecialty(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.AddSpecialtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.slotEditor.AddSpecialty(r.Context(), vars["hospitalId"], vars["date"], req.SpecialtyName, req.PhysicianName)
	if err != nil {
		writeAppError(w, err, "Failed to add specialty")
		return
	}

	result, err := h.mutationResponse(r.Context(), record)
	if err != nil {
		writeAppError(w, err, "Failed to reload day grade")
		return
	}
	response.Success(w, http.StatusCreated, "Specialty added successfully", result)
}

func (h *GradeHandler) AddProcedure(w http.ResponseWriter, r *http.Request) {
	var req dto.AddProcedureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.slotEditor.AddProcedure(r.Context(), req.HeaderRecordID, req.ProcedureBaseName, req.PhysicianName)
	if err != nil {
		writeAppError(w, err, "Failed to add procedure")
		return
	}

	result, err := h.mutationResponse(r.Context(), record)
	if err != nil {
		writeAppError(w, err, "Failed to reload day grade")
		return
	}
	response.Success(w, http.StatusCreated, "Procedure added successfully", result)
}

func (h *GradeHandler) SetSpecification(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.SetSpecificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	// Only admins may rename the base procedure; everyone else edits the
	// specification text only.
	roleID, _ := authctx.RoleID(r.Context())
	allowBaseNameOverride := roleID == entity.RoleIDAdmin

	record, err := h.slotEditor.SetSpecification(r.Context(), vars["id"], req.Specification, req.ProcedureBaseName, allowBaseNameOverride)
	if err != nil {
		writeAppError(w, err, "Failed to update specification")
		return
	}

	result, err := h.mutationResponse(r.Context(), record)
	if err != nil {
		writeAppError(w, err, "Failed to reload day grade")
		return
	}
	response.Success(w, http.StatusOK, "Specification updated successfully", result)
}

func (h *GradeHandler) AssignPatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.AssignPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.slotEditor.AssignPatient(r.Context(), vars["id"], grade.Patient{
		Name:        req.Name,
		BirthDate:   req.BirthDate,
		City:        req.City,
		Phone:       req.Phone,
		ConsultDate: req.ConsultDate,
	})
	if err != nil {
		writeAppError(w, err, "Failed to assign patient")
		return
	}

	result, err := h.mutationResponse(r.Context(), record)
	if err != nil {
		writeAppError(w, err, "Failed to reload day grade")
		return
	}
	response.Success(w, http.StatusOK, "Patient assigned successfully", result)
}

func (h *GradeHandler) RemovePatient(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	record, err := h.slotEditor.RemovePatient(r.Context(), vars["id"])
	if err != nil {
		writeAppError(w, err, "Failed to remove patient")
		return
	}

	result, err := h.mutationResponse(r.Context(), record)
	if err != nil {
		writeAppError(w, err, "Failed to reload day grade")
		return
	}
	response.Success(w, http.StatusOK, "Patient removed successfully", result)
}

func (h *GradeHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.slotEditor.RemoveItem(r.Context(), vars["id"]); err != nil {
		writeAppError(w, err, "Failed to delete item")
		return
	}

	response.Success(w, http.StatusOK, "Item deleted successfully", nil)
}

func (h *GradeHandler) ClearDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	deleted, err := h.slotEditor.ClearDay(r.Context(), vars["hospitalId"], vars["date"])
	if err != nil {
		writeAppError(w, err, "Failed to clear day")
		return
	}

	response.Success(w, http.StatusOK, "Day cleared successfully", &dto.ClearDayResponse{Deleted: deleted})
}

func (h *GradeHandler) ImportRecords(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.ImportRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	imported, err := h.slotEditor.ImportRecords(r.Context(), vars["hospitalId"], req.Records)
	if err != nil {
		if imported > 0 {
			response.PartialFailure(w, err.Error(), &dto.ImportResultResponse{Imported: imported})
			return
		}
		writeAppError(w, err, "Failed to import records")
		return
	}

	response.Success(w, http.StatusCreated, "Records imported successfully", &dto.ImportResultResponse{Imported: imported})
}

// mutationResponse pairs the mutated record with a freshly reconstructed
// day grade so the UI redisplays consistent state.
func (h *GradeHandler) mutationResponse(ctx context.Context, record *entity.ScheduleRecord) (*dto.MutationResponse, error) {
	dayGrade, err := h.slotEditor.DayGrade(ctx, record.HospitalID, record.DateString())
	if err != nil {
		return nil, err
	}
	return &dto.MutationResponse{
		Record: converter.RecordToResponse(record),
		Grade:  converter.DayGradeToResponse(dayGrade),
	}, nil
}
