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

// AssetsHandler manages asset and product endpoints.
type AssetsHandler struct {
	service *service.AssetService
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assetService *service.AssetService) *AssetsHandler {
	return &AssetsHandler{service: assetService}
}

// Assign POST /api/assets/assign.
func (h *AssetsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	asset, err := h.service.Assign(c.Context(), actorFromContext(c), service.AssignInput{
		ProductID: req.ProductID,
		SchoolID:  req.SchoolID,
		Location:  req.Location,
		Condition: req.Condition,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(dto.NewAssetResponse(asset)))
}

// Deassign POST /api/assets/:id/deassign. DELETE /api/assets/:id routes
// here too; the portal's delete button deassigns.
func (h *AssetsHandler) Deassign(c *fiber.Ctx) error {
	if err := h.service.Deassign(c.Context(), actorFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.OK(nil))
}

// Update PUT /api/assets/:id.
func (h *AssetsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	asset, err := h.service.Update(c.Context(), actorFromContext(c), c.Params("id"), service.AssetUpdateInput{
		Status:    req.Status,
		Condition: req.Condition,
		Location:  req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewAssetResponse(asset)))
}

// Get GET /api/assets/:id.
func (h *AssetsHandler) Get(c *fiber.Ctx) error {
	asset, err := h.service.Get(c.Context(), actorFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewAssetResponse(asset)))
}

// List GET /api/assets.
func (h *AssetsHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	input := service.AssetListInput{
		Search:   queryString(c, "search"),
		SchoolID: queryString(c, "school_id"),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := queryString(c, "status"); raw != nil {
		status := domain.AssetStatus(*raw)
		if !domain.ValidAssetStatus(status) {
			return apperrors.NewInvalidStatus(*raw)
		}
		input.Status = &status
	}

	assets, err := h.service.List(c.Context(), actorFromContext(c), input)
	if err != nil {
		return err
	}
	items := dto.NewAssetResponses(assets)
	return c.JSON(dto.OKList(items, len(items)))
}

// CreateProduct POST /api/products.
func (h *AssetsHandler) CreateProduct(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	product, err := h.service.CreateProduct(c.Context(), domain.Product{
		Category:           req.Category,
		Brand:              req.Brand,
		Model:              req.Model,
		PurchaseDate:       req.PurchaseDate,
		WarrantyExpiryDate: req.WarrantyExpiryDate,
		PurchasePrice:      req.PurchasePrice,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.OK(dto.NewProductResponse(product)))
}

// GetProduct GET /api/products/:id.
func (h *AssetsHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewProductResponse(product)))
}

// ListProducts GET /api/products.
func (h *AssetsHandler) ListProducts(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	filter := repository.ProductFilter{
		Search:   queryString(c, "search"),
		Category: queryString(c, "category"),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := queryString(c, "status"); raw != nil {
		status := domain.ProductStatus(*raw)
		if !domain.ValidProductStatus(status) {
			return apperrors.NewInvalidStatus(*raw)
		}
		filter.Status = &status
	}

	products, err := h.service.ListProducts(c.Context(), filter)
	if err != nil {
		return err
	}
	items := dto.NewProductResponses(products)
	return c.JSON(dto.OKList(items, len(items)))
}
