package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/PredictionContest_Go/internal/logger"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// decodeRequest reads a JSON body into a T and validates its tags. When ok
// is false the error response has been written and the handler returns.
func decodeRequest[T any](w http.ResponseWriter, r *http.Request, op string) (req T, ok bool) {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		log.Warn("Undecodable request body", "operation", op, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return req, false
	}

	if err := validateRequest(req); err != nil {
		log.Debug("Request failed validation", "operation", op, "error", err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FieldErrors(err),
		})
		return req, false
	}
	return req, true
}

// getLimitParam parses the limit query parameter, clamped to max.
// ok is false when a response has already been written.
func getLimitParam(w http.ResponseWriter, r *http.Request, defaultValue, max int) (int, bool) {
	raw := r.URL.Query().Get(QueryLimit)
	if raw == "" {
		return defaultValue, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return 0, false
	}
	if limit > max {
		limit = max
	}
	return limit, true
}

// contestIDParam parses the {id} route parameter.
// ok is false when a response has already been written.
func contestIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, ParamContestID))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidContestID)
		return uuid.Nil, false
	}
	return id, true
}
