package model

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID string
	Name   string
	Role   Role
}

func (p Principal) IsLeader() bool  { return p.Role == RoleLeader }
func (p Principal) IsChecker() bool { return p.Role == RoleChecker }
func (p Principal) IsOwner() bool   { return p.Role == RoleOwner }
func (p Principal) IsAdmin() bool   { return p.Role == RoleAdmin }

// SeesAllProjects reports whether the caller may read records across all
// leaders. Leaders are scoped to their own projects.
func (p Principal) SeesAllProjects() bool {
	return p.Role == RoleChecker || p.Role == RoleOwner || p.Role == RoleAdmin
}
