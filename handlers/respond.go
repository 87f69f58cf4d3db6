package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jwdavis0200/TaskFlow-sub001/logging"
	"github.com/jwdavis0200/TaskFlow-sub001/notifications"
	"github.com/jwdavis0200/TaskFlow-sub001/services"
)

// ErrorResponse is the error body shape for every endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_FAILED, Description: Failed to encode response: %v", err)
		}
	}
}

// respondError maps service error kinds to status codes. The handler layer
// never looks past the sentinel: 400 for bad input, 404 for missing entities,
// 500 for store failures and anything unclassified.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Message: errorMessage(err)})
	case errors.Is(err, services.ErrNotFound):
		respondJSON(w, http.StatusNotFound, ErrorResponse{Message: errorMessage(err)})
	case errors.Is(err, services.ErrTransactionFailed):
		logging.Logger.Errorf("Event ID: TRANSACTION_FAILED, Description: %v", err)
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "operation could not be completed", Details: errorMessage(err)})
	default:
		logging.Logger.Errorf("Event ID: UNCLASSIFIED_ERROR, Description: %v", err)
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "internal server error", Details: err.Error()})
	}
}

// respondFailure records the failure on the notification queue before
// answering, so the queue stays the terminal sink for user-visible errors.
func respondFailure(w http.ResponseWriter, q *notifications.Queue, err error, operationLabel string) {
	if q != nil {
		q.HandleError(err, operationLabel)
	}
	respondError(w, err)
}

// errorMessage strips the sentinel prefix ("invalid argument: ...") so the
// client sees only the human-readable part.
func errorMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
