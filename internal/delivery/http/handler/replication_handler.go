package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"go-surgical-scheduling/internal/delivery/dto"
	"go-surgical-scheduling/internal/usecase"
	"go-surgical-scheduling/pkg/response"
	"go-surgical-scheduling/pkg/validator"

	"github.com/gorilla/mux"
)

type ReplicationHandler struct {
	replication usecase.ReplicationUsecase
	validator   *validator.CustomValidator
}

func NewReplicationHandler(replication usecase.ReplicationUsecase, validator *validator.CustomValidator) *ReplicationHandler {
	return &ReplicationHandler{
		replication: replication,
		validator:   validator,
	}
}

func (h *ReplicationHandler) Replicate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.ReplicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.replication.Replicate(r.Context(), vars["hospitalId"], req.SourceDate, targetMonths(req.Targets), req.DryRun)
	if err != nil {
		// A mid-run failure still reports the work that was committed.
		if result != nil {
			response.PartialFailure(w, err.Error(), result)
			return
		}
		writeAppError(w, err, "Failed to replicate day")
		return
	}

	response.Success(w, http.StatusOK, "Replication completed successfully", result)
}

func (h *ReplicationHandler) ClearMonths(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.ClearMonthsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.replication.ClearMonths(r.Context(), vars["hospitalId"], targetMonths(req.Targets), req.DryRun)
	if err != nil {
		if result != nil {
			response.PartialFailure(w, err.Error(), result)
			return
		}
		writeAppError(w, err, "Failed to clear months")
		return
	}

	response.Success(w, http.StatusOK, "Cleanup completed successfully", result)
}

func targetMonths(targets []dto.TargetMonthRequest) []usecase.TargetMonth {
	months := make([]usecase.TargetMonth, len(targets))
	for i, t := range targets {
		months[i] = usecase.TargetMonth{Year: t.Year, Month: time.Month(t.Month)}
	}
	return months
}
