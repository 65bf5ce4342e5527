package service

import (
	"context"
	"time"

	"github.com/spec-kit/team-organiser/internal/auth"
	"github.com/spec-kit/team-organiser/internal/config"
	apperrors "github.com/spec-kit/team-organiser/pkg/util/errorutil"
)

// OperatorAuthService exchanges the operator passphrase for a bearer token.
type OperatorAuthService struct {
	passphraseHash string
	tokenMgr       *auth.TokenManager
}

// NewOperatorAuthService builds the service.
func NewOperatorAuthService(cfg config.AuthConfig) *OperatorAuthService {
	return &OperatorAuthService{
		passphraseHash: cfg.PassphraseHash,
		tokenMgr:       auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// Enabled reports whether a passphrase is configured.
func (s *OperatorAuthService) Enabled() bool {
	return s.passphraseHash != ""
}

// Login verifies passphrase and issues a token.
func (s *OperatorAuthService) Login(_ context.Context, passphrase string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, apperrors.NewValidationError("authentication is disabled", nil)
	}
	if err := auth.ComparePassphrase(s.passphraseHash, passphrase); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken()
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *OperatorAuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
