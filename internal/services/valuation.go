package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/MinisterHD/Assets-Value-App/internal/errors"
	"github.com/MinisterHD/Assets-Value-App/internal/models"
)

// LocalCurrency is the currency of record all sources quote in.
const LocalCurrency = "IRR"

// Valuation prices a portfolio snapshot against the latest observations. The
// portfolio itself is owned by the client (session storage); it arrives as a
// plain quantity map and is never persisted here.
type Valuation struct {
	db      *gorm.DB
	history PriceHistory
	rate    ReferenceRate
}

func NewValuation(db *gorm.DB, history PriceHistory, rate ReferenceRate) *Valuation {
	return &Valuation{db: db, history: history, rate: rate}
}

// Value computes value = quantity x latest price per held asset plus the
// total and per-category breakdown. Quantities at or below zero are treated
// as "not held". A held asset with no observed price contributes zero and is
// flagged, never fatal. currency "USD" rebases through the reference rate
// when it is available; otherwise conversion is reported disabled and the
// figures stay in local currency.
func (v *Valuation) Value(ctx context.Context, quantities map[string]decimal.Decimal, currency string) (*models.PortfolioValuation, error) {
	result := &models.PortfolioValuation{
		Currency:          LocalCurrency,
		ConversionEnabled: true,
		Total:             decimal.Zero,
		Items:             []models.ValuationItem{},
		ByCategory:        map[string]decimal.Decimal{},
	}

	held := make(map[int]decimal.Decimal, len(quantities))
	for rawID, qty := range quantities {
		if !qty.IsPositive() {
			continue
		}
		id, err := strconv.Atoi(rawID)
		if err != nil {
			return nil, &apperrors.ErrValidation{Field: "portfolio", Message: fmt.Sprintf("invalid asset id %q", rawID)}
		}
		held[id] = qty
	}
	if len(held) == 0 {
		return result, nil
	}

	ids := lo.Keys(held)
	var assets []*models.Asset
	if err := v.db.WithContext(ctx).Where("id IN ?", ids).Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	latest, err := v.history.LatestBatch(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, asset := range assets {
		item := models.ValuationItem{
			AssetID:   asset.ID,
			AssetName: asset.Name,
			Category:  asset.Category,
			Quantity:  held[asset.ID],
		}
		if obs, ok := latest[asset.ID]; ok {
			item.Price = obs.Price
			item.Value = held[asset.ID].Mul(obs.Price)
		} else {
			item.PriceMissing = true
		}
		result.Total = result.Total.Add(item.Value)
		result.ByCategory[asset.Category] = result.ByCategory[asset.Category].Add(item.Value)
		result.Items = append(result.Items, item)
	}
	sort.Slice(result.Items, func(i, j int) bool { return result.Items[i].AssetID < result.Items[j].AssetID })

	if currency == "USD" {
		rate, ok := v.rate.Rate(ctx)
		if !ok {
			result.ConversionEnabled = false
			return result, nil
		}
		result.Currency = "USD"
		result.Total = result.Total.Div(rate)
		for i := range result.Items {
			result.Items[i].Price = result.Items[i].Price.Div(rate)
			result.Items[i].Value = result.Items[i].Value.Div(rate)
		}
		for category, value := range result.ByCategory {
			result.ByCategory[category] = value.Div(rate)
		}
	}

	return result, nil
}
