package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventSLABreached         EventType = "sla_breached"
	EventAssetAssigned       EventType = "asset_assigned"
	EventAssetDeassigned     EventType = "asset_deassigned"
	EventInquiryReceived     EventType = "inquiry_received"
)

// Actor identifies who triggered an event. UserID is empty for
// unauthenticated marketing-site submissions.
type Actor struct {
	UserID string `json:"user_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketNumber string                `json:"ticket_number"`
	SchoolID     string                `json:"school_id"`
	Priority     domain.TicketPriority `json:"priority"`
	Title        string                `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssignedTo string `json:"assigned_to"`
}

// SLABreachedPayload marks a response or resolution deadline missed at the
// moment the corresponding action was recorded.
type SLABreachedPayload struct {
	TicketNumber string    `json:"ticket_number"`
	Stage        string    `json:"stage"` // "response" or "resolution"
	Deadline     time.Time `json:"deadline"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// AssetAssignedPayload payload.
type AssetAssignedPayload struct {
	ProductID string `json:"product_id"`
	SchoolID  string `json:"school_id"`
}

// AssetDeassignedPayload payload.
type AssetDeassignedPayload struct {
	ProductID string `json:"product_id"`
}

// InquiryReceivedPayload payload.
type InquiryReceivedPayload struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
}
