package domain

import "time"

// Role enumerates the three actor roles in the system.
type Role string

const (
	RoleManager Role = "MANAGER"
	RoleSupport Role = "SUPPORT"
	RoleUser    Role = "USER"
)

// ParseRole validates a role string supplied at the boundary.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleManager, RoleSupport, RoleUser:
		return Role(s), true
	}
	return "", false
}

// User is the domain model for every account: end-users, support staff
// and managers, differentiated only by role.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the already-authenticated caller passed explicitly into
// every core operation. It is immutable for the duration of a request.
type Principal struct {
	ID   int64
	Role Role
}
