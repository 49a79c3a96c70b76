package domain

import "time"

// SLATarget defines the response/resolution commitment for one priority.
type SLATarget struct {
	ResponseHours   int
	ResolutionHours int
}

// SLAPolicy maps ticket priority to its SLA target. Policies are read at
// ticket creation time only; later edits never move already-issued deadlines.
type SLAPolicy map[TicketPriority]SLATarget

// DefaultSLAPolicy returns the stock policy table.
func DefaultSLAPolicy() SLAPolicy {
	return SLAPolicy{
		TicketPriorityP1: {ResponseHours: 4, ResolutionHours: 24},
		TicketPriorityP2: {ResponseHours: 8, ResolutionHours: 48},
		TicketPriorityP3: {ResponseHours: 24, ResolutionHours: 120},
		TicketPriorityP4: {ResponseHours: 48, ResolutionHours: 240},
	}
}

// Deadlines computes the SLA snapshot for a ticket created at createdAt.
// Unknown priorities fall back to the P3 target.
func (p SLAPolicy) Deadlines(priority TicketPriority, createdAt time.Time) TicketSLA {
	target, ok := p[priority]
	if !ok {
		target = p[TicketPriorityP3]
	}
	return TicketSLA{
		ResponseDeadline:   createdAt.Add(time.Duration(target.ResponseHours) * time.Hour),
		ResolutionDeadline: createdAt.Add(time.Duration(target.ResolutionHours) * time.Hour),
	}
}
