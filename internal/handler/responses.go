package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse reports a result that is not available yet
type StatusResponse struct {
	Status string `json:"status"`
	State  string `json:"state,omitempty"`
}

// maxPooledBuffer is the largest encode buffer put back into encodeBuffers
const maxPooledBuffer = 64 << 10

var encodeBuffers = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, 1024)) },
}

// respondJSON encodes payload before touching w, so an encoding failure
// still produces a 500 instead of a truncated body
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := encodeBuffers.Get().(*bytes.Buffer)
	defer func() {
		if buf.Cap() <= maxPooledBuffer {
			buf.Reset()
			encodeBuffers.Put(buf)
		}
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a service failure and writes the mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgContestNotFoundError   = "Contest not found"
	ErrMsgQuestionNotFoundError  = "Question not found"
	ErrMsgDeadlinePassedError    = "The submission deadline has passed"
	ErrMsgSubmissionLockedError  = "This prediction is locked"
	ErrMsgInvalidConfidenceError = "Confidence must be between 0 and 100"
	ErrMsgInvalidOptionError     = "That choice is not an option for this question"
	ErrMsgContestNotOpenError    = "The contest is not open yet"
	ErrMsgContestCancelledError  = "The contest has been cancelled"
	ErrMsgParticipantError       = "A participant ID is required"
	ErrMsgInvalidTransitionError = "The contest cannot make that transition"
	ErrMsgAlreadyFinalizedError  = "The contest is already finalized"
	ErrMsgInvalidConfigError     = "Invalid contest configuration"
	ErrMsgEvaluationFailedError  = "Contest evaluation failed and will be retried"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// user-facing messages. Unmapped errors become a generic 500.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrContestNotFound):
		return http.StatusNotFound, ErrMsgContestNotFoundError
	case errors.Is(err, domain.ErrQuestionNotFound):
		return http.StatusNotFound, ErrMsgQuestionNotFoundError

	case errors.Is(err, domain.ErrInvalidConfidence):
		return http.StatusBadRequest, ErrMsgInvalidConfidenceError
	case errors.Is(err, domain.ErrInvalidOption):
		return http.StatusBadRequest, ErrMsgInvalidOptionError
	case errors.Is(err, domain.ErrParticipantMissing):
		return http.StatusBadRequest, ErrMsgParticipantError
	case errors.Is(err, domain.ErrInvalidContestConfig),
		errors.Is(err, domain.ErrInvalidScoringRules),
		errors.Is(err, domain.ErrInvalidPrizePool):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary

	case errors.Is(err, domain.ErrDeadlinePassed):
		return http.StatusConflict, ErrMsgDeadlinePassedError
	case errors.Is(err, domain.ErrSubmissionLocked):
		return http.StatusConflict, ErrMsgSubmissionLockedError
	case errors.Is(err, domain.ErrContestNotOpen):
		return http.StatusConflict, ErrMsgContestNotOpenError
	case errors.Is(err, domain.ErrContestCancelled):
		return http.StatusConflict, ErrMsgContestCancelledError
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, ErrMsgInvalidTransitionError
	case errors.Is(err, domain.ErrAlreadyFinalized):
		return http.StatusConflict, ErrMsgAlreadyFinalizedError

	case errors.Is(err, domain.ErrPayoutSumMismatch),
		errors.Is(err, domain.ErrNegativeScore):
		return http.StatusInternalServerError, ErrMsgEvaluationFailedError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
