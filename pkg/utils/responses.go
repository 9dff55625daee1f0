package utils

import (
	"encoding/json"
	"net/http"

	"cinema-ticketing/pkg/apperr"
)

// errorEnvelope is the wire format for failures. Clients rely on code and
// details (e.g. held_seat_ids) to re-render the seat map without a reload.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ResponseJSON writes a JSON payload with the given status code.
func ResponseJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, payload any) {
	ResponseJSON(w, http.StatusOK, payload)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, payload any) {
	ResponseJSON(w, http.StatusCreated, payload)
}

// ResponseError renders any error: *apperr.Error keeps its code, message
// and details; everything else becomes an opaque 500.
func ResponseError(w http.ResponseWriter, err error) {
	appErr := apperr.From(err)
	ResponseJSON(w, appErr.HTTPStatus(), errorEnvelope{
		Error: errorBody{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}

// ResponseBadRequest writes a BAD_REQUEST failure with optional details.
func ResponseBadRequest(w http.ResponseWriter, message string, details map[string]any) {
	ResponseError(w, apperr.BadRequest(message).WithDetails(details))
}

// ResponseUnauthorized writes an UNAUTHENTICATED failure.
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseError(w, apperr.Unauthenticated(message))
}

// ResponseForbidden writes a FORBIDDEN failure.
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseError(w, apperr.Forbidden(message))
}

// ResponseNotFound writes a NOT_FOUND failure.
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseError(w, apperr.NotFound(message))
}

// ResponseInternalError writes an opaque 500.
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseError(w, apperr.Internal(message))
}
