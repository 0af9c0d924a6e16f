package models

// User is the database representation of an operator account.
type User struct {
	UserID         string
	Username       string
	Name           string
	Email          string
	PasswordHash   string
	AuthProvider   string
	ProviderUserID string
	EmailVerified  bool
	AuditFields
}
