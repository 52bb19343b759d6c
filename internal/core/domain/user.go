package domain

import "strings"

// Role is the session role carried in the JWT.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleOwner    Role = "OWNER"
	RoleDev      Role = "DEV"
)

// Profile is the visibility level derived from a Role.
type Profile string

const (
	ProfileFull       Profile = "FULL"
	ProfileRestricted Profile = "RESTRICTED"
)

// ParseRole normalizes a role string. Unknown values are returned as-is and map to
// the restricted profile.
func ParseRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// Profile returns the visibility profile of the role. Anything that is not
// OWNER or DEV is restricted.
func (r Role) Profile() Profile {
	switch r {
	case RoleOwner, RoleDev:
		return ProfileFull
	}
	return ProfileRestricted
}

// IsFull reports whether the role sees the full, unfiltered ledger.
func (r Role) IsFull() bool { return r.Profile() == ProfileFull }

// User is a statically configured operator account.
type User struct {
	Username     string `json:"username"`
	Role         Role   `json:"role"`
	PasswordHash string `json:"-"`
}
