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

// SchoolsHandler manages school endpoints.
type SchoolsHandler struct {
	service *service.SchoolService
}

// NewSchoolsHandler constructs handler.
func NewSchoolsHandler(schoolService *service.SchoolService) *SchoolsHandler {
	return &SchoolsHandler{service: schoolService}
}

// Create POST /api/schools.
func (h *SchoolsHandler) Create(c *fiber.Ctx) error {
	var req dto.SchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	school, err := h.service.Create(c.Context(), schoolInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(dto.NewSchoolResponse(school)))
}

// Update PUT /api/schools/:id.
func (h *SchoolsHandler) Update(c *fiber.Ctx) error {
	var req dto.SchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	school, err := h.service.Update(c.Context(), c.Params("id"), schoolInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewSchoolResponse(school)))
}

// Get GET /api/schools/:id.
func (h *SchoolsHandler) Get(c *fiber.Ctx) error {
	school, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewSchoolResponse(school)))
}

// List GET /api/schools.
func (h *SchoolsHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	filter := repository.SchoolFilter{
		Search: queryString(c, "search"),
		Region: queryString(c, "region"),
		Limit:  limit,
		Offset: offset,
	}
	if raw := queryString(c, "status"); raw != nil {
		status := domain.SchoolStatus(*raw)
		if !domain.ValidSchoolStatus(status) {
			return apperrors.NewInvalidStatus(*raw)
		}
		filter.Status = &status
	}

	schools, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := dto.NewSchoolResponses(schools)
	return c.JSON(dto.OKList(items, len(items)))
}

func schoolInput(req dto.SchoolRequest) service.SchoolInput {
	return service.SchoolInput{
		Name:         req.Name,
		Address:      req.Address,
		Region:       req.Region,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Status:       req.Status,
	}
}
