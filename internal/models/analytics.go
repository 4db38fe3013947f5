package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PerformancePoint is one sample of a normalized performance series.
type PerformancePoint struct {
	RecordedAt time.Time       `json:"recorded_at"`
	Value      decimal.Decimal `json:"value"`
}

// PerformanceSeries is one asset's price history rebased so the first sample
// equals 100. A series whose first price is zero is passed through unrebased.
type PerformanceSeries struct {
	AssetID   int                `json:"asset_id"`
	AssetName string             `json:"asset_name"`
	Points    []PerformancePoint `json:"points"`
}

// PivotColumn is one asset's prices aligned onto the shared timestamp axis.
// A nil entry means the asset had no observation at that timestamp.
type PivotColumn struct {
	AssetID   int                `json:"asset_id"`
	AssetName string             `json:"asset_name"`
	Values    []*decimal.Decimal `json:"values"`
}

// PivotTable aligns several assets' series on the union of their observed
// timestamps. Columns with no values at all are dropped during construction.
type PivotTable struct {
	Timestamps []time.Time   `json:"timestamps"`
	Columns    []PivotColumn `json:"columns"`
}

// CorrelationMatrix is the pairwise Pearson correlation of the assets'
// percentage-change returns.
type CorrelationMatrix struct {
	Assets []string    `json:"assets"`
	Matrix [][]float64 `json:"matrix"`
}

// ReturnPoint is one (asset, daily return) pair of the volatility
// distribution. Returns are fractional, not percentages.
type ReturnPoint struct {
	AssetName string  `json:"asset_name"`
	Return    float64 `json:"daily_return"`
}

// VolatilityReport exposes the full per-asset return distribution so the
// presentation layer can draw box plots rather than a single scalar.
type VolatilityReport struct {
	Points []ReturnPoint `json:"points"`
}

// ValuationItem is one held asset's contribution to the portfolio value.
type ValuationItem struct {
	AssetID      int             `json:"asset_id"`
	AssetName    string          `json:"asset_name"`
	Category     string          `json:"asset_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Value        decimal.Decimal `json:"value"`
	PriceMissing bool            `json:"price_missing"`
}

// PortfolioValuation is the result of valuing a quantity map against the
// latest observed prices. When ConversionEnabled is false the requested
// foreign currency was unavailable and all figures are in local currency.
type PortfolioValuation struct {
	Currency          string                     `json:"currency"`
	ConversionEnabled bool                       `json:"conversion_enabled"`
	Total             decimal.Decimal            `json:"total"`
	Items             []ValuationItem            `json:"items"`
	ByCategory        map[string]decimal.Decimal `json:"by_category"`
}
