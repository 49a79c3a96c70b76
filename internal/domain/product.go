package domain

import "time"

// ProductStatus tracks whether an inventory item is deployed.
type ProductStatus string

const (
	ProductStatusAvailable ProductStatus = "available"
	ProductStatusAssigned  ProductStatus = "assigned"
	ProductStatusRetired   ProductStatus = "retired"
)

// ValidProductStatus reports whether s is a member of the enum.
func ValidProductStatus(s ProductStatus) bool {
	switch s {
	case ProductStatusAvailable, ProductStatusAssigned, ProductStatusRetired:
		return true
	}
	return false
}

// Product is an inventory item that may or may not currently be assigned.
// status=assigned holds exactly when one active Asset references it.
type Product struct {
	ID                 string
	Category           string
	Brand              string
	Model              string
	PurchaseDate       *time.Time
	WarrantyExpiryDate *time.Time
	PurchasePrice      float64
	Status             ProductStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
