package server

import (
	"fmt"
	"net/http"
)

func (s *Service) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	email := r.FormValue("email")
	if email == "" {
		s.writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := s.accounts.RequestPasswordReset(r.Context(), email, s.config.PublicBaseURL); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Password reset link sent to %s", email),
	})
}

func (s *Service) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	token := r.FormValue("token")
	password := r.FormValue("password")

	username, err := s.accounts.RedeemResetToken(r.Context(), token)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	if err := s.accounts.ResetPassword(r.Context(), username, password); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset successful"})
}
