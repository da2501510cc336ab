package server

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	session, err := s.accounts.Login(r.Context(), username, password)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	if err := s.setSessionCookie(w, *session); err != nil {
		s.logger.WithError(err).Error("failed to set session cookie")
		s.writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"role":     session.Role,
		"username": session.Username,
	}).Info("user logged in")

	s.writeJSON(w, http.StatusOK, session)
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
