package domain

// Role enumerates account roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ValidRole reports whether r is one of the enumerated roles.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the domain model for client accounts.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	Role         Role
}
