package models

// Profile document fields as stored in the "users" collection, keyed by auth uid.
const (
	UserCollection = "users"

	FieldEmail = "email"
	FieldRole  = "role"
)

// Role is the access level of a signed-in user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a stored role value to a Role. Anything other than "admin"
// is a plain user.
func ParseRole(v any) Role {
	if s, ok := v.(string); ok && Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// IsAdmin reports whether r may mutate the trail catalog.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// UserProfile is the stored profile of an authenticated user.
type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Session is the identity of the caller, taken from a verified ID token and
// passed explicitly into every operation.
type Session struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
