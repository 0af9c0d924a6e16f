package services

import (
	"context"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/aromex/aromex_backend/internal/dto"
)

// UserSvcFacade manages operator accounts.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// CreateOAuthUser finds or creates an account for an externally authenticated user.
	CreateOAuthUser(ctx context.Context, name, email, provider, providerUserID string, emailVerified bool) (*domain.User, error)
}
