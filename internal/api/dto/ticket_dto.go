package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	SchoolID    string                `json:"school_id" validate:"required"`
	AssetID     *string               `json:"asset_id"`
	Title       string                `json:"title" validate:"required"`
	Description string                `json:"description" validate:"required"`
	Category    domain.TicketCategory `json:"category" validate:"required"`
	Priority    domain.TicketPriority `json:"priority"`
	RaisedBy    string                `json:"raised_by"`
}

// UpdateTicketRequest carries a status change or an assignment.
type UpdateTicketRequest struct {
	Status     *domain.TicketStatus `json:"status"`
	AssignedTo *string              `json:"assigned_to"`
}

// TicketSLAResponse exposes the SLA snapshot.
type TicketSLAResponse struct {
	ResponseDeadline   time.Time `json:"response_deadline"`
	ResolutionDeadline time.Time `json:"resolution_deadline"`
	ResponseMet        *bool     `json:"response_met,omitempty"`
	ResolutionMet      *bool     `json:"resolution_met,omitempty"`
}

// TicketResponse is the full ticket view.
type TicketResponse struct {
	ID           string                `json:"id"`
	TicketNumber string                `json:"ticket_number"`
	SchoolID     string                `json:"school_id"`
	AssetID      *string               `json:"asset_id,omitempty"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Category     domain.TicketCategory `json:"category"`
	Priority     domain.TicketPriority `json:"priority"`
	Status       domain.TicketStatus   `json:"status"`
	RaisedBy     string                `json:"raised_by"`
	AssignedTo   *string               `json:"assigned_to,omitempty"`
	SLA          TicketSLAResponse     `json:"sla"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// NewTicketResponse maps the domain aggregate.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:           ticket.ID,
		TicketNumber: ticket.TicketNumber,
		SchoolID:     ticket.SchoolID,
		AssetID:      ticket.AssetID,
		Title:        ticket.Title,
		Description:  ticket.Description,
		Category:     ticket.Category,
		Priority:     ticket.Priority,
		Status:       ticket.Status,
		RaisedBy:     ticket.RaisedBy,
		AssignedTo:   ticket.AssignedTo,
		SLA: TicketSLAResponse{
			ResponseDeadline:   ticket.SLA.ResponseDeadline,
			ResolutionDeadline: ticket.SLA.ResolutionDeadline,
			ResponseMet:        ticket.SLA.ResponseMet,
			ResolutionMet:      ticket.SLA.ResolutionMet,
		},
		CreatedAt: ticket.CreatedAt,
		UpdatedAt: ticket.UpdatedAt,
	}
}

// NewTicketResponses maps a slice.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, NewTicketResponse(&tickets[i]))
	}
	return items
}
