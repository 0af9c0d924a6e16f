package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aromex/aromex_backend/internal/core/domain"
	portssvc "github.com/aromex/aromex_backend/internal/core/ports/services"
	"github.com/aromex/aromex_backend/internal/utils"
)

type tokenService struct {
	secret         string
	expiryDuration time.Duration
	issuer         string
}

// NewTokenService creates a new token service.
func NewTokenService(secret string, expiryDuration time.Duration, issuer string) portssvc.TokenSvcFacade {
	return &tokenService{secret: secret, expiryDuration: expiryDuration, issuer: issuer}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a signed JWT for the user.
func (s *tokenService) GenerateAccessToken(_ context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.expiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.secret, s.expiryDuration, s.issuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}
