package repositories

import (
	"context"

	"github.com/aromex/aromex_backend/internal/core/domain"
)

// UserReader defines read operations for operator accounts.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByProviderID retrieves a user by their external auth provider subject.
	FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
}

// UserWriter defines write operations for operator accounts.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines the user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
