package identity

// Role classifies what a registered account may do.
type Role string

const (
	RoleClient     Role = "client"
	RoleSubAdmin   Role = "subadmin"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole maps a stored role string onto a known Role, defaulting to
// client for empty or unrecognized values.
func ParseRole(value string) Role {
	switch Role(value) {
	case RoleSubAdmin:
		return RoleSubAdmin
	case RoleSuperAdmin:
		return RoleSuperAdmin
	default:
		return RoleClient
	}
}

// Account is a durable registered-user record. Passwords are stored as
// entered; this core simulates a backend and never leaves the local store.
type Account struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}
