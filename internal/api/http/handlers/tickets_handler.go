package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	ticket, err := h.service.Create(c.Context(), actor, service.TicketCreateInput{
		SchoolID:    req.SchoolID,
		AssetID:     req.AssetID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		RaisedBy:    req.RaisedBy,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(dto.NewTicketResponse(ticket)))
}

// List GET /api/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	limit, offset := pagination(c)
	input := service.TicketListInput{
		Search:   queryString(c, "search"),
		SchoolID: queryString(c, "school_id"),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := queryString(c, "status"); raw != nil {
		status := domain.TicketStatus(*raw)
		if !domain.ValidTicketStatus(status) {
			return apperrors.NewInvalidStatus(*raw)
		}
		input.Status = &status
	}
	if raw := queryString(c, "category"); raw != nil {
		category := domain.TicketCategory(*raw)
		if !domain.ValidTicketCategory(category) {
			return apperrors.NewValidationError("invalid category", map[string]any{"category": *raw})
		}
		input.Category = &category
	}

	tickets, err := h.service.List(c.Context(), actor, input)
	if err != nil {
		return err
	}
	items := dto.NewTicketResponses(tickets)
	return c.JSON(dto.OKList(items, len(items)))
}

// Get GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.service.Get(c.Context(), actorFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewTicketResponse(ticket)))
}

// Update PUT /api/tickets/:id. The portal sends either a status change
// (from the dropdown) or an assignment.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == nil && req.AssignedTo == nil {
		return apperrors.NewValidationError("status or assigned_to required", nil)
	}

	var (
		ticket *domain.Ticket
		err    error
	)
	if req.AssignedTo != nil {
		ticket, err = h.service.Assign(c.Context(), actor, c.Params("id"), *req.AssignedTo)
		if err != nil {
			return err
		}
	}
	if req.Status != nil {
		ticket, err = h.service.Transition(c.Context(), actor, c.Params("id"), *req.Status)
		if err != nil {
			return err
		}
	}
	return c.JSON(dto.OK(dto.NewTicketResponse(ticket)))
}

func actorFromContext(c *fiber.Ctx) *domain.User {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil
	}
	return principal.User
}
