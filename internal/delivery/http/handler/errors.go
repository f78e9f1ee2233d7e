package handler

import (
	"net/http"

	"go-surgical-scheduling/pkg/apperr"
	"go-surgical-scheduling/pkg/response"
)

// writeAppError maps a typed usecase error to its HTTP status. Unknown
// errors get the fallback message so internals never leak to the client.
func writeAppError(w http.ResponseWriter, err error, fallback string) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case apperr.KindConflict:
		response.Conflict(w, err.Error())
	case apperr.KindNotFound:
		response.NotFound(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
