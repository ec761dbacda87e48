package domain

// Principal is the authenticated identity making a request. Services receive
// it as an explicit argument so authorization is a function of inputs rather
// than of ambient request state.
type Principal struct {
	UserID int64
	Email  string
	Role   Role
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
