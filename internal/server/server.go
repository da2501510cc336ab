// Package server exposes the HTTP operation surface: submission and the
// NGO lifecycle API, the credential workflow, and the admin endpoints.
package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"aidconnect/internal/account"
	"aidconnect/internal/aid"
	"aidconnect/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger   *logrus.Logger
	config   *types.Config
	aid      *aid.Service
	accounts *account.Service

	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	aidService *aid.Service,
	accounts *account.Service,
) (*Service, error) {
	mux := flow.New()

	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie hash key: %w", err)
	}
	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie block key: %w", err)
	}

	s := &Service{
		logger:   logger,
		config:   config,
		aid:      aidService,
		accounts: accounts,
		cookie:   securecookie.New(hashKey, blockKey),

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/register", s.handlePostRegister, http.MethodPost)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout, http.MethodGet)
	r.HandleFunc("/forgot-password", s.handleForgotPassword, http.MethodPost)
	r.HandleFunc("/reset-password", s.handleResetPassword, http.MethodPost)

	r.HandleFunc("/upload", s.handleUpload, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireRole(types.RoleNGO))

		r.HandleFunc("/api/uploads", s.handleListUploads, http.MethodGet)
		r.HandleFunc("/api/uploads/:id/claim", s.handleClaimUpload, http.MethodPost)
		r.HandleFunc("/api/uploads/:id/helped", s.handleMarkHelped, http.MethodPost)
		r.HandleFunc("/api/profile", s.handleProfile, http.MethodGet)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireRole(types.RoleAdmin))

		r.HandleFunc("/admin/ngos", s.handleListNGOs, http.MethodGet)
		r.HandleFunc("/admin/uploads", s.handleListAllUploads, http.MethodGet)
		r.HandleFunc("/admin/delete-ngo/:index", s.handleDeleteNGOAt, http.MethodDelete)
		r.HandleFunc("/admin/delete-post/:index", s.handleDeletePostAt, http.MethodDelete)
		r.HandleFunc("/admin/ngos/:username", s.handleDeleteNGO, http.MethodDelete)
		r.HandleFunc("/admin/requests/:id", s.handleDeleteRequest, http.MethodDelete)
		r.HandleFunc("/admin/export/ngos", s.handleExportNGOs, http.MethodGet)
		r.HandleFunc("/admin/export/uploads", s.handleExportUploads, http.MethodGet)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
