package models

import "time"

// AssetType represents the kind of asset.
type AssetType string

const (
	AssetTypeRealEstate AssetType = "real_estate"
	AssetTypeVehicle    AssetType = "vehicle"
	AssetTypeOther      AssetType = "other"
)

// Asset represents a physical possession tracked as part of the user's
// patrimony (house, car, jewelry and the like).
type Asset struct {
	Base
	UserID         string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string     `gorm:"not null" json:"name"`
	Type           AssetType  `gorm:"not null" json:"type"`
	EstimatedValue int64      `gorm:"type:bigint;not null" json:"estimated_value"`
	PurchaseValue  *int64     `gorm:"type:bigint" json:"purchase_value,omitempty"`
	PurchaseDate   *time.Time `json:"purchase_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	Icon           string     `json:"icon,omitempty"`
	Color          string     `json:"color,omitempty"`
}
