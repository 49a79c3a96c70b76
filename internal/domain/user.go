package domain

import "time"

// UserRole separates portal administrators from school-level accounts.
type UserRole string

const (
	UserRoleAdmin       UserRole = "admin"
	UserRoleSchoolAdmin UserRole = "school_admin"
)

// UserStatus represents lifecycle states for a portal account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// ValidUserRole reports whether r is a member of the enum.
func ValidUserRole(r UserRole) bool {
	return r == UserRoleAdmin || r == UserRoleSchoolAdmin
}

// ValidUserStatus reports whether s is a member of the enum.
func ValidUserStatus(s UserStatus) bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	}
	return false
}

// User is a portal account. A school_admin owns exactly one school
// (SchoolID set); admins see every school.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	SchoolID     *string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ScopedToSchool returns the school filter implied by the account, or nil
// for admins.
func (u *User) ScopedToSchool() *string {
	if u == nil || u.Role == UserRoleAdmin {
		return nil
	}
	return u.SchoolID
}
