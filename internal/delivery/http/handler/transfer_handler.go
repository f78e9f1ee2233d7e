package handler

import (
	"encoding/json"
	"net/http"

	"go-surgical-scheduling/internal/delivery/dto"
	"go-surgical-scheduling/internal/usecase"
	"go-surgical-scheduling/pkg/response"
	"go-surgical-scheduling/pkg/validator"
)

type TransferHandler struct {
	transfer  usecase.PatientTransferUsecase
	validator *validator.CustomValidator
}

func NewTransferHandler(transfer usecase.PatientTransferUsecase, validator *validator.CustomValidator) *TransferHandler {
	return &TransferHandler{
		transfer:  transfer,
		validator: validator,
	}
}

func (h *TransferHandler) MovePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.MovePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.transfer.MovePatient(r.Context(), req.SourceSlotID, req.DestinationSlotID); err != nil {
		writeAppError(w, err, "Failed to move patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient moved successfully", nil)
}
