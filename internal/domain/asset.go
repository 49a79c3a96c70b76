package domain

import "time"

// AssetStatus tracks the operational state of a deployed product.
// Independent of ProductStatus; only deassignment touches the product.
type AssetStatus string

const (
	AssetStatusInService   AssetStatus = "in_service"
	AssetStatusUnderRepair AssetStatus = "under_repair"
	AssetStatusRetired     AssetStatus = "retired"
	AssetStatusLost        AssetStatus = "lost"
)

// AssetCondition grades physical condition.
type AssetCondition string

const (
	AssetConditionExcellent AssetCondition = "excellent"
	AssetConditionGood      AssetCondition = "good"
	AssetConditionFair      AssetCondition = "fair"
	AssetConditionPoor      AssetCondition = "poor"
)

// ValidAssetStatus reports whether s is a member of the enum.
func ValidAssetStatus(s AssetStatus) bool {
	switch s {
	case AssetStatusInService, AssetStatusUnderRepair, AssetStatusRetired, AssetStatusLost:
		return true
	}
	return false
}

// ValidAssetCondition reports whether c is a member of the enum.
func ValidAssetCondition(c AssetCondition) bool {
	switch c {
	case AssetConditionExcellent, AssetConditionGood, AssetConditionFair, AssetConditionPoor:
		return true
	}
	return false
}

// Asset records a Product assigned to a School. Deassignment archives the
// record (DeassignedAt set) rather than deleting it; archived assets are
// excluded from listings.
type Asset struct {
	ID           string
	ProductID    string
	SchoolID     string
	AssignedDate time.Time
	DeassignedAt *time.Time
	Status       AssetStatus
	Condition    AssetCondition
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active reports whether the assignment is still current.
func (a *Asset) Active() bool {
	return a.DeassignedAt == nil
}
