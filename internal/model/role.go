package model

// Role is a flat access level. There is no privilege matrix: USER submits
// daily entries for their own team, ADMIN additionally views reports for
// their team, SUPER_ADMIN manages products and users across teams.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin || r == RoleSuperAdmin
}
