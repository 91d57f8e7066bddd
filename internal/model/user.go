package model

import "time"

type Role string

const (
	RoleLeader  Role = "leader"
	RoleChecker Role = "checker"
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
)

func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleLeader, RoleChecker, RoleOwner, RoleAdmin:
		return Role(raw), true
	default:
		return "", false
	}
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
