package domain

import "time"

// SchoolStatus enumerates lifecycle states for a school.
type SchoolStatus string

const (
	SchoolStatusActive           SchoolStatus = "active"
	SchoolStatusInactive         SchoolStatus = "inactive"
	SchoolStatusUnderMaintenance SchoolStatus = "under_maintenance"
)

// ValidSchoolStatus reports whether s is a member of the enum.
func ValidSchoolStatus(s SchoolStatus) bool {
	switch s {
	case SchoolStatusActive, SchoolStatusInactive, SchoolStatusUnderMaintenance:
		return true
	}
	return false
}

// School is a client site owning assets and raising tickets.
type School struct {
	ID           string
	Name         string
	Address      string
	Region       string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Status       SchoolStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
