package server

import (
	"context"
	"fmt"
	"net/http"

	"aidconnect/internal"
	"aidconnect/pkg/types"
)

func (s *Service) setSessionCookie(w http.ResponseWriter, session types.Session) error {
	encoded, err := s.cookie.Encode(internal.COOKIE_SESSION_NAME, session)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_SESSION_NAME,
		Value:    encoded,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.config.SessionMaxAgeSec,
		Path:     "/",
	})

	return nil
}

func (s *Service) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_SESSION_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Path:     "/",
	})
}

func (s *Service) sessionFromRequest(r *http.Request) (*types.Session, error) {
	cookie, err := r.Cookie(internal.COOKIE_SESSION_NAME)
	if err != nil {
		return nil, fmt.Errorf("no session cookie: %w", err)
	}

	var session types.Session
	if err := s.cookie.Decode(internal.COOKIE_SESSION_NAME, cookie.Value, &session); err != nil {
		return nil, fmt.Errorf("decode session cookie: %w", err)
	}

	return &session, nil
}

func (s *Service) sessionFromContext(ctx context.Context) (*types.Session, error) {
	session, ok := ctx.Value(contextKeySession).(*types.Session)
	if !ok {
		return nil, fmt.Errorf("session not found in context")
	}
	return session, nil
}
