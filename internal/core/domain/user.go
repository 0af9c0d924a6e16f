package domain

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User is an operator account for the bookkeeping tool.
type User struct {
	UserID         string       `json:"userID"` // Primary Key (e.g., UUID)
	Username       string       `json:"username"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"`
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID string       `json:"-"` // Google's subject claim for OAuth users
	EmailVerified  bool         `json:"emailVerified"`
	AuditFields
}
