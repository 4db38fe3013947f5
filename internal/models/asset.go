package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Asset categories as stored in the asset_type column.
const (
	CategoryCurrency         = "Currency"
	CategoryCommodity        = "Commodity"
	CategoryIranianStockFund = "Iranian Stock Exchange"
	CategoryCrypto           = "Crypto Currency"
)

// Asset is a trackable financial instrument. The Persian display name is the
// unique natural key; metadata is written once at creation and never edited
// afterwards.
type Asset struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	Name        string    `json:"asset_name" gorm:"column:asset_name;uniqueIndex;not null"`
	EnglishName string    `json:"asset_name_en" gorm:"column:asset_name_en"`
	Category    string    `json:"asset_type" gorm:"column:asset_type"`
	Description string    `json:"description" gorm:"column:description"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
}

// TableName keeps the table name from the original schema.
func (Asset) TableName() string { return "assets" }

// Validate validates the asset data
func (a *Asset) Validate() error {
	if a.Name == "" {
		return errors.New("asset_name is required")
	}
	if len(a.Name) > 200 {
		return errors.New("asset_name must be 200 characters or less")
	}
	if a.Category != "" && !IsValidCategory(a.Category) {
		return errors.New("unknown asset_type: " + a.Category)
	}
	return nil
}

// IsValidCategory checks if the category is one of the tracked asset types
func IsValidCategory(category string) bool {
	switch category {
	case CategoryCurrency, CategoryCommodity, CategoryIranianStockFund, CategoryCrypto:
		return true
	}
	return false
}

// AssetSpec is the identity and metadata a price source supplies when its
// asset is first registered. Later mismatching metadata is ignored
// (first-write-wins).
type AssetSpec struct {
	Name        string
	EnglishName string
	Category    string
	Description string
}

// AssetListing is one row of the paginated asset explorer: the asset plus its
// latest observed price, if any.
type AssetListing struct {
	ID          int              `json:"id"`
	Name        string           `json:"asset_name"`
	EnglishName string           `json:"asset_name_en"`
	Category    string           `json:"asset_type"`
	LatestPrice *decimal.Decimal `json:"latest_price"` // nil when never observed
	RecordedAt  *time.Time       `json:"recorded_at"`
}

// AssetOption is a (value, label) pair for selection dropdowns.
type AssetOption struct {
	ID   int    `json:"value"`
	Name string `json:"label"`
}
