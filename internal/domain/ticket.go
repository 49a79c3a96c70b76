package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew              TicketStatus = "new"
	TicketStatusAssigned         TicketStatus = "assigned"
	TicketStatusInProgress       TicketStatus = "in_progress"
	TicketStatusAwaitingCustomer TicketStatus = "awaiting_customer"
	TicketStatusResolved         TicketStatus = "resolved"
	TicketStatusClosed           TicketStatus = "closed"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityP1 TicketPriority = "P1"
	TicketPriorityP2 TicketPriority = "P2"
	TicketPriorityP3 TicketPriority = "P3"
	TicketPriorityP4 TicketPriority = "P4"
)

// TicketCategory classifies the reported issue.
type TicketCategory string

const (
	TicketCategoryHardware TicketCategory = "hardware"
	TicketCategorySoftware TicketCategory = "software"
	TicketCategoryNetwork  TicketCategory = "network"
	TicketCategoryFacility TicketCategory = "facility"
	TicketCategoryOther    TicketCategory = "other"
)

// ValidTicketStatus reports whether s is a member of the status enum.
// Transitions are unrestricted beyond enum membership; the status
// dropdowns expose every state from every state.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusNew, TicketStatusAssigned, TicketStatusInProgress,
		TicketStatusAwaitingCustomer, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// ValidTicketPriority reports whether p is a member of the priority enum.
func ValidTicketPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityP1, TicketPriorityP2, TicketPriorityP3, TicketPriorityP4:
		return true
	}
	return false
}

// ValidTicketCategory reports whether c is a member of the category enum.
func ValidTicketCategory(c TicketCategory) bool {
	switch c {
	case TicketCategoryHardware, TicketCategorySoftware, TicketCategoryNetwork,
		TicketCategoryFacility, TicketCategoryOther:
		return true
	}
	return false
}

// TicketSLA holds the deadlines snapshotted at creation time and the met
// flags, each recorded exactly once when the corresponding action happens.
type TicketSLA struct {
	ResponseDeadline   time.Time
	ResolutionDeadline time.Time
	ResponseMet        *bool
	ResolutionMet      *bool
}

// Ticket is the aggregate for support requests raised against a school.
type Ticket struct {
	ID           string
	TicketNumber string
	SchoolID     string
	AssetID      *string
	Title        string
	Description  string
	Category     TicketCategory
	Priority     TicketPriority
	Status       TicketStatus
	RaisedBy     string
	AssignedTo   *string
	SLA          TicketSLA
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FirstResponseStatus reports whether entering s counts as the first
// response on a ticket.
func FirstResponseStatus(s TicketStatus) bool {
	return s == TicketStatusAssigned || s == TicketStatusInProgress
}
