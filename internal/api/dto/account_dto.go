package dto

import "github.com/spec-kit/bank-support/internal/domain"

// AccountResponse is the agent-console view of an account. The password hash
// never leaves the service.
type AccountResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UpdateRoleRequest payload for role changes.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// AccountFromDomain maps an account to its response shape.
func AccountFromDomain(u *domain.User) AccountResponse {
	return AccountResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}
