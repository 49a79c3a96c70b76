package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TicketService is the ticket lifecycle engine: creation with SLA
// snapshotting, status transitions with one-shot met flags, and the
// filtered read path.
type TicketService struct {
	tickets    repository.TicketRepository
	schools    repository.SchoolRepository
	assets     repository.AssetRepository
	users      repository.UserRepository
	numbers    repository.TicketNumberAllocator
	policy     domain.SLAPolicy
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	SchoolRepo repository.SchoolRepository
	AssetRepo  repository.AssetRepository
	UserRepo   repository.UserRepository
	Numbers    repository.TicketNumberAllocator
	Policy     domain.SLAPolicy
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	SchoolID    string
	AssetID     *string
	Title       string
	Description string
	Category    domain.TicketCategory
	Priority    domain.TicketPriority
	RaisedBy    string
}

// TicketListInput describes the filters of the ticket read path.
type TicketListInput struct {
	Search   *string
	Status   *domain.TicketStatus
	SchoolID *string
	Category *domain.TicketCategory
	Limit    int
	Offset   int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	policy := deps.Policy
	if policy == nil {
		policy = domain.DefaultSLAPolicy()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		schools:    deps.SchoolRepo,
		assets:     deps.AssetRepo,
		users:      deps.UserRepo,
		numbers:    deps.Numbers,
		policy:     policy,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Create validates references, snapshots SLA deadlines from the policy
// table and persists the ticket with status "new".
func (s *TicketService) Create(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if input.SchoolID == "" || strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("school_id, title, description required", nil)
	}
	if !domain.ValidTicketCategory(input.Category) {
		return nil, apperrors.NewValidationError("invalid category", map[string]any{"category": input.Category})
	}
	if input.Priority == "" {
		input.Priority = domain.TicketPriorityP3
	}
	if !domain.ValidTicketPriority(input.Priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}

	if _, err := s.schools.GetByID(ctx, input.SchoolID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("school", map[string]any{"school_id": input.SchoolID})
		}
		return nil, apperrors.MapError(err)
	}
	if input.AssetID != nil {
		asset, err := s.assets.GetByID(ctx, *input.AssetID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("asset", map[string]any{"asset_id": *input.AssetID})
			}
			return nil, apperrors.MapError(err)
		}
		if asset.SchoolID != input.SchoolID {
			return nil, apperrors.NewValidationError("asset does not belong to school", nil)
		}
	}

	now := s.now()
	ticket := &domain.Ticket{
		TicketNumber: s.numbers.Next(ctx),
		SchoolID:     input.SchoolID,
		AssetID:      input.AssetID,
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Category:     input.Category,
		Priority:     input.Priority,
		Status:       domain.TicketStatusNew,
		RaisedBy:     input.RaisedBy,
		SLA:          s.policy.Deadlines(input.Priority, now),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if ticket.RaisedBy == "" && actor != nil {
		ticket.RaisedBy = actor.Name
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, actor, events.Event{
		Type:      events.EventTicketCreated,
		SubjectID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			TicketNumber: ticket.TicketNumber,
			SchoolID:     ticket.SchoolID,
			Priority:     ticket.Priority,
			Title:        ticket.Title,
		},
	})
	return ticket, nil
}

// Transition moves a ticket to newStatus. Only enum membership is checked;
// ordering is unrestricted. The first entry into a response-indicating
// state records sla.response_met, the first entry into resolved records
// sla.resolution_met; neither flag is ever overwritten.
func (s *TicketService) Transition(ctx context.Context, actor *domain.User, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !domain.ValidTicketStatus(newStatus) {
		return nil, apperrors.NewInvalidStatus(string(newStatus))
	}

	ticket, err := s.getScoped(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	oldStatus := ticket.Status
	ticket.Status = newStatus
	ticket.UpdatedAt = now

	if domain.FirstResponseStatus(newStatus) && ticket.SLA.ResponseMet == nil {
		met := !now.After(ticket.SLA.ResponseDeadline)
		ticket.SLA.ResponseMet = &met
		if !met {
			s.publishBreach(ctx, actor, ticket, "response", ticket.SLA.ResponseDeadline, now)
		}
	}
	if newStatus == domain.TicketStatusResolved && ticket.SLA.ResolutionMet == nil {
		met := !now.After(ticket.SLA.ResolutionDeadline)
		ticket.SLA.ResolutionMet = &met
		if !met {
			s.publishBreach(ctx, actor, ticket, "resolution", ticket.SLA.ResolutionDeadline, now)
		}
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, actor, events.Event{
		Type:      events.EventTicketStatusChanged,
		SubjectID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

// Assign sets the assignee. Assignment counts as the first response when
// none has been recorded yet, and moves a fresh ticket to "assigned".
func (s *TicketService) Assign(ctx context.Context, actor *domain.User, ticketID, userID string) (*domain.Ticket, error) {
	assignee, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	ticket, err := s.getScoped(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ticket.AssignedTo = &assignee.ID
	ticket.UpdatedAt = now
	if ticket.Status == domain.TicketStatusNew {
		ticket.Status = domain.TicketStatusAssigned
	}
	if ticket.SLA.ResponseMet == nil {
		met := !now.After(ticket.SLA.ResponseDeadline)
		ticket.SLA.ResponseMet = &met
		if !met {
			s.publishBreach(ctx, actor, ticket, "response", ticket.SLA.ResponseDeadline, now)
		}
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, actor, events.Event{
		Type:      events.EventTicketAssigned,
		SubjectID: ticket.ID,
		Payload:   events.TicketAssignedPayload{AssignedTo: assignee.ID},
	})
	return ticket, nil
}

// Get fetches a ticket respecting the actor's school scope.
func (s *TicketService) Get(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	return s.getScoped(ctx, actor, ticketID)
}

// List returns tickets matching the filters, scoped to the actor's school
// for school_admin accounts.
func (s *TicketService) List(ctx context.Context, actor *domain.User, input TicketListInput) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{
		Search:   input.Search,
		Status:   input.Status,
		SchoolID: input.SchoolID,
		Category: input.Category,
		Limit:    input.Limit,
		Offset:   input.Offset,
	}
	if scope := actor.ScopedToSchool(); scope != nil {
		filter.SchoolID = scope
	}
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

func (s *TicketService) getScoped(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if scope := actor.ScopedToSchool(); scope != nil && ticket.SchoolID != *scope {
		return nil, apperrors.NewForbidden("ticket belongs to another school")
	}
	return ticket, nil
}

func (s *TicketService) publishBreach(ctx context.Context, actor *domain.User, ticket *domain.Ticket, stage string, deadline, at time.Time) {
	s.publish(ctx, actor, events.Event{
		Type:      events.EventSLABreached,
		SubjectID: ticket.ID,
		Payload: events.SLABreachedPayload{
			TicketNumber: ticket.TicketNumber,
			Stage:        stage,
			Deadline:     deadline,
			RecordedAt:   at,
		},
	})
}

func (s *TicketService) publish(ctx context.Context, actor *domain.User, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if actor != nil {
		event.Actor = events.Actor{UserID: actor.ID}
	}
	// Handler failures must not fail the write that triggered the event.
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("subject_id", event.SubjectID),
			zap.Error(err))
	}
}
