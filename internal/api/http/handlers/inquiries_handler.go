package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// InquiriesHandler covers the public contact form, the admin lead queue
// and the newsletter subscription endpoints.
type InquiriesHandler struct {
	service *service.InquiryService
}

// NewInquiriesHandler constructs handler.
func NewInquiriesHandler(inquiryService *service.InquiryService) *InquiriesHandler {
	return &InquiriesHandler{service: inquiryService}
}

// Create POST /api/inquiries. Public.
func (h *InquiriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	inquiry, err := h.service.SubmitInquiry(c.Context(), service.InquiryInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(dto.NewInquiryResponse(inquiry)))
}

// Update PUT /api/inquiries/:id. Admin only.
func (h *InquiriesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	inquiry, err := h.service.UpdateInquiryStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewInquiryResponse(inquiry)))
}

// List GET /api/inquiries. Admin only.
func (h *InquiriesHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	filter := repository.InquiryFilter{
		Search: queryString(c, "search"),
		Limit:  int64(limit),
		Offset: int64(offset),
	}
	if raw := queryString(c, "status"); raw != nil {
		status := domain.InquiryStatus(*raw)
		if !domain.ValidInquiryStatus(status) {
			return apperrors.NewInvalidStatus(*raw)
		}
		filter.Status = &status
	}

	inquiries, err := h.service.ListInquiries(c.Context(), filter)
	if err != nil {
		return err
	}
	items := dto.NewInquiryResponses(inquiries)
	return c.JSON(dto.OKList(items, len(items)))
}

// Subscribe POST /api/subscriptions. Public.
func (h *InquiriesHandler) Subscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	sub, err := h.service.Subscribe(c.Context(), req.Email)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(dto.NewSubscriptionResponse(sub)))
}

// Unsubscribe POST /api/subscriptions/unsubscribe. Public.
func (h *InquiriesHandler) Unsubscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.service.Unsubscribe(c.Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(dto.OK(nil))
}

// ListSubscriptions GET /api/subscriptions. Admin only.
func (h *InquiriesHandler) ListSubscriptions(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	var status *domain.SubscriptionStatus
	if raw := queryString(c, "status"); raw != nil {
		s := domain.SubscriptionStatus(*raw)
		if !domain.ValidSubscriptionStatus(s) {
			return apperrors.NewInvalidStatus(*raw)
		}
		status = &s
	}

	subs, err := h.service.ListSubscriptions(c.Context(), status, int64(limit), int64(offset))
	if err != nil {
		return err
	}
	items := dto.NewSubscriptionResponses(subs)
	return c.JSON(dto.OKList(items, len(items)))
}
