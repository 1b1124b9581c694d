package models

// Role is the closed set of roles the API knows about. Anything else is
// treated as RoleGuest for rate-limiting purposes.
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a raw role string onto the closed Role set. The second
// return value reports whether the string named a known role.
func ParseRole(s string) (Role, bool) {
	switch s {
	case string(RoleGuest):
		return RoleGuest, true
	case string(RoleUser):
		return RoleUser, true
	case string(RoleAdmin):
		return RoleAdmin, true
	default:
		return RoleGuest, false
	}
}

// RequestsPerMinute returns the sliding-window request quota for the role.
func (r Role) RequestsPerMinute() int {
	switch r {
	case RoleAdmin:
		return 20
	case RoleUser:
		return 10
	default:
		return 5
	}
}

func (r Role) String() string {
	return string(r)
}
