package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// PriceObservation is one timestamped price sample for an asset. Rows are
// append-only: they are never updated, and only removed by the cascade when
// their asset is deleted.
type PriceObservation struct {
	ID         int             `json:"id" gorm:"primaryKey"`
	AssetID    int             `json:"asset_id" gorm:"column:asset_id;not null;index;index:idx_price_history_asset_time,priority:1"`
	Price      decimal.Decimal `json:"price" gorm:"column:price;type:decimal(20,2);not null"`
	RecordedAt time.Time       `json:"recorded_at" gorm:"column:recorded_at;index:idx_price_history_asset_time,priority:2"`
	Source     string          `json:"source" gorm:"column:source"`

	Asset *Asset `json:"-" gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the table name from the original schema.
func (PriceObservation) TableName() string { return "price_history" }

// Validate validates the observation before it is appended
func (p *PriceObservation) Validate() error {
	if p.AssetID <= 0 {
		return errors.New("asset_id is required")
	}
	if p.Price.IsZero() || p.Price.IsNegative() {
		return errors.New("price must be positive")
	}
	if p.RecordedAt.IsZero() {
		return errors.New("recorded_at is required")
	}
	if p.Source == "" {
		return errors.New("source is required")
	}
	return nil
}

// HistoryPoint is one row of a windowed batch read, already joined with the
// asset's display name for charting.
type HistoryPoint struct {
	AssetID    int             `json:"asset_id"`
	AssetName  string          `json:"asset_name"`
	Price      decimal.Decimal `json:"price"`
	RecordedAt time.Time       `json:"recorded_at"`
}
