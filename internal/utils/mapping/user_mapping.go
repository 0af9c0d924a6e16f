package mapping

import (
	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/aromex/aromex_backend/internal/models"
)

// ToModelUser converts a domain user to its database model.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:         d.UserID,
		Username:       d.Username,
		Name:           d.Name,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		AuthProvider:   string(d.AuthProvider),
		ProviderUserID: d.ProviderUserID,
		EmailVerified:  d.EmailVerified,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a database user model to its domain representation.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:         m.UserID,
		Username:       m.Username,
		Name:           m.Name,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		AuthProvider:   domain.AuthProvider(m.AuthProvider),
		ProviderUserID: m.ProviderUserID,
		EmailVerified:  m.EmailVerified,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
