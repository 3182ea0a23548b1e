package domain

import "github.com/google/uuid"

type Role string

const (
	RoleStudent Role = "mahasiswa"
	RoleAdvisor Role = "dosen"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleAdvisor || r == RoleAdmin
}

// ParseRole accepts both the Indonesian role names and their English aliases.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "mahasiswa", "student":
		return RoleStudent, true
	case "dosen", "advisor":
		return RoleAdvisor, true
	case "admin":
		return RoleAdmin, true
	default:
		return "", false
	}
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

func (u UserStatus) String() string {
	return string(u)
}

func (u UserStatus) IsValid() bool {
	return u == UserStatusActive || u == UserStatusInactive
}

// Principal is the authenticated caller of an engine operation.
type Principal struct {
	ID     uuid.UUID
	Role   Role
	Status UserStatus
}

func (p Principal) IsActive() bool {
	return p.Status == UserStatusActive
}

func (p Principal) Is(role Role) bool {
	return p.Role == role
}
