package auth

// Role is the account's role
type Role string

const (
	// RoleUser is an ordinary customer account
	RoleUser Role = "user"
	// RoleAdmin is a moderation account (i.e. user listing, bans, product review)
	RoleAdmin Role = "admin"
	// RoleSuperAdmin is the top-level account (i.e. everything, plus admin creation)
	RoleSuperAdmin Role = "superadmin"
)

// IsValid checks if the role is one of the predefined valid roles.
// Any other value must be treated as unauthenticated by callers.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// IsElevated checks if this role has moderation access
func (r Role) IsElevated() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// IsSuperAdmin checks if this role is the top-level role
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []Role {
	return []Role{
		RoleUser,
		RoleAdmin,
		RoleSuperAdmin,
	}
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}
