package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/unihub/unihub-api/internal/domain/service"
	"github.com/unihub/unihub-api/pkg/logger/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError maps the service error taxonomy onto HTTP status codes. Unknown
// errors are logged and hidden behind a 500.
func writeError(w http.ResponseWriter, logger *types.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrIdentityNotFound):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotAMember):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrClubNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrLogNotFound),
		errors.Is(err, service.ErrNoPendingRequest),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrTargetNotAMember),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrNotAttending):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidQuestionType):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrAlreadyMemberOrPending),
		errors.Is(err, service.ErrNotEligibleForPromotion),
		errors.Is(err, service.ErrNotEligibleForDemotion),
		errors.Is(err, service.ErrOwnerCannotLeave),
		errors.Is(err, service.ErrShortNameTaken),
		errors.Is(err, service.ErrAlreadyAttending):
		status = http.StatusConflict
	case errors.Is(err, service.ErrTxConflict):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		logger.Errorf("request failed: %v", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
