package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// AssignAssetRequest payload.
type AssignAssetRequest struct {
	ProductID string                `json:"product_id" validate:"required"`
	SchoolID  string                `json:"school_id" validate:"required"`
	Location  string                `json:"location"`
	Condition domain.AssetCondition `json:"condition"`
}

// UpdateAssetRequest carries the optional field patch.
type UpdateAssetRequest struct {
	Status    *domain.AssetStatus    `json:"status"`
	Condition *domain.AssetCondition `json:"condition"`
	Location  *string                `json:"location"`
}

// AssetResponse is the asset view.
type AssetResponse struct {
	ID           string                `json:"id"`
	ProductID    string                `json:"product_id"`
	SchoolID     string                `json:"school_id"`
	AssignedDate time.Time             `json:"assigned_date"`
	Status       domain.AssetStatus    `json:"status"`
	Condition    domain.AssetCondition `json:"condition"`
	Location     string                `json:"location"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// NewAssetResponse maps the domain record.
func NewAssetResponse(asset *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:           asset.ID,
		ProductID:    asset.ProductID,
		SchoolID:     asset.SchoolID,
		AssignedDate: asset.AssignedDate,
		Status:       asset.Status,
		Condition:    asset.Condition,
		Location:     asset.Location,
		CreatedAt:    asset.CreatedAt,
		UpdatedAt:    asset.UpdatedAt,
	}
}

// NewAssetResponses maps a slice.
func NewAssetResponses(assets []domain.Asset) []AssetResponse {
	items := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		items = append(items, NewAssetResponse(&assets[i]))
	}
	return items
}

// CreateProductRequest payload.
type CreateProductRequest struct {
	Category           string     `json:"category" validate:"required"`
	Brand              string     `json:"brand"`
	Model              string     `json:"model"`
	PurchaseDate       *time.Time `json:"purchase_date"`
	WarrantyExpiryDate *time.Time `json:"warranty_expiry_date"`
	PurchasePrice      float64    `json:"purchase_price" validate:"gte=0"`
}

// ProductResponse is the product view.
type ProductResponse struct {
	ID                 string               `json:"id"`
	Category           string               `json:"category"`
	Brand              string               `json:"brand"`
	Model              string               `json:"model"`
	PurchaseDate       *time.Time           `json:"purchase_date,omitempty"`
	WarrantyExpiryDate *time.Time           `json:"warranty_expiry_date,omitempty"`
	PurchasePrice      float64              `json:"purchase_price"`
	Status             domain.ProductStatus `json:"status"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// NewProductResponse maps the domain record.
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:                 product.ID,
		Category:           product.Category,
		Brand:              product.Brand,
		Model:              product.Model,
		PurchaseDate:       product.PurchaseDate,
		WarrantyExpiryDate: product.WarrantyExpiryDate,
		PurchasePrice:      product.PurchasePrice,
		Status:             product.Status,
		CreatedAt:          product.CreatedAt,
		UpdatedAt:          product.UpdatedAt,
	}
}

// NewProductResponses maps a slice.
func NewProductResponses(products []domain.Product) []ProductResponse {
	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, NewProductResponse(&products[i]))
	}
	return items
}
