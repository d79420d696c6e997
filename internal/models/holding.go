package models

// AssetType classifies a holding.
type AssetType string

const (
	AssetTypeStock      AssetType = "Stock"
	AssetTypeCrypto     AssetType = "Cryptocurrency"
	AssetTypeETF        AssetType = "ETF"
	AssetTypeRealEstate AssetType = "Real Estate"
	AssetTypeBond       AssetType = "Bond"
	AssetTypeOther      AssetType = "Other"
)

// Holding represents a user's position in a single asset.
// CurrentValue is the market value of the entire holding, not per unit;
// the per-unit price is derived as CurrentValue / Quantity.
type Holding struct {
	Base
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	AssetName     string    `gorm:"not null" json:"asset_name"`
	AssetType     AssetType `gorm:"not null" json:"asset_type"`
	Quantity      float64   `gorm:"not null" json:"quantity"`
	PurchasePrice float64   `gorm:"not null" json:"purchase_price"`
	CurrentValue  float64   `gorm:"not null" json:"current_value"`
}
