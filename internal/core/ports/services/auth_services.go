package services

import (
	"context"
	"time"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues application access tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user, returning the token and
	// its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleOAuthHandlerSvcFacade wraps the Google OAuth code-exchange and ID token
// validation flow.
type GoogleOAuthHandlerSvcFacade interface {
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error)
}
