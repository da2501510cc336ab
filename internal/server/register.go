package server

import (
	"errors"
	"net/http"

	"aidconnect/internal/account"
	"aidconnect/pkg/types"
)

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Service) handlePostRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	var in account.RegisterInput
	if err := decoder.Decode(&in, r.PostForm); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	err := s.accounts.Register(r.Context(), in)
	if err != nil {
		if errors.Is(err, types.ErrDuplicateUser) {
			s.writeJSON(w, http.StatusConflict, registerResponse{
				Success: false,
				Message: "User already exists",
			})
			return
		}
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, registerResponse{
		Success: true,
		Message: "Registration successful",
	})
}
