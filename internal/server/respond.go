package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"aidconnect/pkg/types"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("failed to encode json response")
	}
}

func (s *Service) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// writeDomainError maps the error taxonomy onto HTTP statuses in one
// place. Unrecognized errors are logged and reported as a 500 without
// leaking internals.
func (s *Service) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case types.IsValidation(err):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, types.ErrRequestNotFound),
		errors.Is(err, types.ErrNGONotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, types.ErrDuplicateUser),
		errors.Is(err, types.ErrRequestClosed),
		errors.Is(err, types.ErrRequestNotClaimed):
		s.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, types.ErrInvalidCredentials):
		s.writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, types.ErrResetTokenInvalid),
		errors.Is(err, types.ErrResetTokenExpired):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, types.ErrExternalService):
		s.writeError(w, http.StatusBadGateway, "external service failure")
	default:
		s.logger.WithError(err).Error("unhandled error")
		s.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
