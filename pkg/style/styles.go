package style

import "strings"

// Role is a semantic styling token. Call sites say what a piece of text is
// (an error, a key, a border) and the active Theme decides how it looks.
type Role string

// The closed set of roles understood by every theme.
const (
	RolePrimary   Role = "primary"
	RoleSecondary Role = "secondary"
	RoleAccent    Role = "accent"
	RoleSuccess   Role = "success"
	RoleWarning   Role = "warning"
	RoleError     Role = "error"
	RoleInfo      Role = "info"
	RoleMuted     Role = "muted"
	RoleBorder    Role = "border"
	RoleKey       Role = "key"
	RoleValue     Role = "value"
	RoleHeader    Role = "header"
	RoleText      Role = "text"

	// RoleNone marks unstyled text.
	RoleNone Role = ""
)

// Roles lists every known role in a stable order.
var Roles = []Role{
	RolePrimary,
	RoleSecondary,
	RoleAccent,
	RoleSuccess,
	RoleWarning,
	RoleError,
	RoleInfo,
	RoleMuted,
	RoleBorder,
	RoleKey,
	RoleValue,
	RoleHeader,
	RoleText,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole maps a user-supplied name to a Role. The second result is false
// for unknown names.
func ParseRole(name string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(name)))
	if r == "warn" {
		r = RoleWarning
	}
	return r, r.Valid()
}
