// Package account implements NGO registration, login, and the password
// reset workflow.
package account

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/url"
	"strings"
	"time"

	"aidconnect/internal/store"
	"aidconnect/internal/utils"
	"aidconnect/pkg/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Mailer delivers password reset links. Delivery failures are surfaced to
// the caller; nothing is retried.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, fullname, resetLink string) error
}

// Config carries the externally configured administrator credential and the
// reset token signing parameters.
type Config struct {
	AdminUsername string
	AdminPassword string
	TokenSecret   string
	TokenTTL      time.Duration
}

type Service struct {
	logger *logrus.Logger
	ngos   *store.NGORepository
	tokens *store.ResetTokenRepository
	mailer Mailer
	config Config
}

func NewService(
	logger *logrus.Logger,
	ngos *store.NGORepository,
	tokens *store.ResetTokenRepository,
	mailer Mailer,
	config Config,
) *Service {
	return &Service{
		logger: logger,
		ngos:   ngos,
		tokens: tokens,
		mailer: mailer,
		config: config,
	}
}

type RegisterInput struct {
	Fullname     string `form:"fullname"`
	Organization string `form:"organization"`
	Email        string `form:"email"`
	Username     string `form:"username"`
	Password     string `form:"password"`
}

// Register appends a new NGO record. A username or email already present in
// the collection rejects the registration without mutating it.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	switch {
	case strings.TrimSpace(in.Fullname) == "":
		return types.ValidationError{Field: "fullname"}
	case strings.TrimSpace(in.Organization) == "":
		return types.ValidationError{Field: "organization"}
	case strings.TrimSpace(in.Email) == "":
		return types.ValidationError{Field: "email"}
	case strings.TrimSpace(in.Username) == "":
		return types.ValidationError{Field: "username"}
	case in.Password == "":
		return types.ValidationError{Field: "password"}
	}

	exists, err := s.ngos.Exists(ctx, in.Username, in.Email)
	if err != nil {
		return err
	}
	if exists {
		return types.ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ngo := types.NGO{
		Fullname:     strings.TrimSpace(in.Fullname),
		Organization: strings.TrimSpace(in.Organization),
		Email:        strings.TrimSpace(in.Email),
		Username:     strings.TrimSpace(in.Username),
		Password:     string(hash),
	}

	if err := s.ngos.Append(ctx, ngo); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"username":     ngo.Username,
		"organization": ngo.Organization,
	}).Info("ngo registered")

	return nil
}

// Login resolves a credential pair to a session. The configured
// administrator credential is checked first; otherwise the NGO collection
// is consulted and the password verified against the stored hash.
func (s *Service) Login(ctx context.Context, username, password string) (*types.Session, error) {
	if s.isAdmin(username, password) {
		return &types.Session{Role: types.RoleAdmin}, nil
	}

	ngo, err := s.ngos.FindByUsername(ctx, username)
	if err != nil {
		return nil, types.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(ngo.Password), []byte(password)) != nil {
		return nil, types.ErrInvalidCredentials
	}

	return &types.Session{Role: types.RoleNGO, Username: ngo.Username}, nil
}

func (s *Service) isAdmin(username, password string) bool {
	if s.config.AdminUsername == "" || s.config.AdminPassword == "" {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.config.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.config.AdminPassword)) == 1

	return userOK && passOK
}

// RequestPasswordReset issues a signed single-use token for the NGO bound
// to email and mails it a reset link. The token record is only persisted
// after the mail send succeeds, so a failed delivery leaves no usable
// token behind.
func (s *Service) RequestPasswordReset(ctx context.Context, email, baseURL string) error {
	ngo, err := s.ngos.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	nonce := utils.Nonce()
	token := signToken(nonce, s.config.TokenSecret)

	resetLink := fmt.Sprintf("%s/reset-password?token=%s",
		strings.TrimRight(baseURL, "/"), url.QueryEscape(token))

	if err := s.mailer.SendPasswordReset(ctx, ngo.Email, ngo.Fullname, resetLink); err != nil {
		s.logger.WithError(err).Error("failed to send password reset mail")
		return fmt.Errorf("%w: send reset mail: %s", types.ErrExternalService, err)
	}

	record := types.ResetToken{
		Nonce:     nonce,
		Username:  ngo.Username,
		ExpiresAt: time.Now().UTC().Add(s.config.TokenTTL),
	}
	if err := s.tokens.Put(ctx, record); err != nil {
		return err
	}

	s.logger.WithField("username", ngo.Username).Info("password reset link issued")

	return nil
}

// RedeemResetToken verifies the token signature, consumes the nonce record,
// and returns the username it was issued for. Redemption is single-use: the
// record is removed even when it turns out to be expired.
func (s *Service) RedeemResetToken(ctx context.Context, token string) (string, error) {
	nonce, err := verifyToken(token, s.config.TokenSecret)
	if err != nil {
		return "", err
	}

	record, err := s.tokens.Take(ctx, nonce)
	if err != nil {
		return "", err
	}

	if time.Now().UTC().After(record.ExpiresAt) {
		return "", types.ErrResetTokenExpired
	}

	return record.Username, nil
}

// ResetPassword replaces the stored credential hash for username.
func (s *Service) ResetPassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return types.ValidationError{Field: "password"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.ngos.UpdatePassword(ctx, username, string(hash)); err != nil {
		return err
	}

	s.logger.WithField("username", username).Info("password reset")

	return nil
}

// Profile returns the NGO bound to username, without the credential.
func (s *Service) Profile(ctx context.Context, username string) (*types.PublicNGO, error) {
	ngo, err := s.ngos.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	public := ngo.Public()
	return &public, nil
}

// OrganizationFor resolves a username to its organization name.
func (s *Service) OrganizationFor(ctx context.Context, username string) (string, error) {
	ngo, err := s.ngos.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return ngo.Organization, nil
}

// All returns every registered NGO, without credentials, in insertion
// order.
func (s *Service) All(ctx context.Context) ([]types.PublicNGO, error) {
	ngos, err := s.ngos.All(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]types.PublicNGO, 0, len(ngos))
	for _, ngo := range ngos {
		public = append(public, ngo.Public())
	}

	return public, nil
}

// DeleteAt removes the NGO at the given position in the full listing.
func (s *Service) DeleteAt(ctx context.Context, index int) error {
	return s.ngos.DeleteAt(ctx, index)
}

func (s *Service) DeleteByUsername(ctx context.Context, username string) error {
	return s.ngos.DeleteByUsername(ctx, username)
}
