package models

// Role is the identity metadata role claim
type Role string

const (
	RoleStudent  Role = "student"
	RoleEmployer Role = "employer"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleEmployer
}
