package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MinisterHD/Assets-Value-App/internal/db"
	"github.com/MinisterHD/Assets-Value-App/internal/models"
)

func valuationFixture(t *testing.T) (*db.DB, *Valuation, map[string]*models.Asset) {
	t.Helper()
	database := setupTestDB(t)
	store := NewPriceHistory(database)

	assets := map[string]*models.Asset{
		"gold": mustCreateAsset(t, database, "طلای 18 عیار", "Gold18K", models.CategoryCommodity),
		"usd":  mustCreateAsset(t, database, "دلار", "USD", models.CategoryCurrency),
		"exir": mustCreateAsset(t, database, "اکسیر یکم", "Exir Yekom", models.CategoryIranianStockFund),
	}

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	mustAppend(t, store, assets["gold"].ID, 50_000_000, base)
	mustAppend(t, store, assets["usd"].ID, 1_000_000, base)
	// exir deliberately has no observations.

	rate := NewReferenceRate(database.DB, store, time.Hour, testLogger())
	return database, NewValuation(database.DB, store, rate), assets
}

func TestValuation_EmptyPortfolio(t *testing.T) {
	_, valuation, _ := valuationFixture(t)

	result, err := valuation.Value(context.Background(), map[string]decimal.Decimal{}, "IRR")
	require.NoError(t, err)
	assert.True(t, result.Total.IsZero())
	assert.Empty(t, result.Items)
	assert.Empty(t, result.ByCategory)
}

func TestValuation_ZeroQuantitiesAreNotHeld(t *testing.T) {
	_, valuation, assets := valuationFixture(t)

	result, err := valuation.Value(context.Background(), map[string]decimal.Decimal{
		strconv.Itoa(assets["gold"].ID): decimal.Zero,
		strconv.Itoa(assets["usd"].ID):  decimal.NewFromInt(-3),
	}, "IRR")
	require.NoError(t, err)
	assert.True(t, result.Total.IsZero())
	assert.Empty(t, result.Items)
}

func TestValuation_TotalAndCategoryBreakdown(t *testing.T) {
	_, valuation, assets := valuationFixture(t)

	result, err := valuation.Value(context.Background(), map[string]decimal.Decimal{
		strconv.Itoa(assets["gold"].ID): decimal.NewFromInt(2),
		strconv.Itoa(assets["usd"].ID):  decimal.NewFromInt(500),
	}, "IRR")
	require.NoError(t, err)

	assert.Equal(t, LocalCurrency, result.Currency)
	assert.True(t, result.ConversionEnabled)
	// 2 x 50M + 500 x 1M = 600M rials
	assert.True(t, result.Total.Equal(decimal.NewFromInt(600_000_000)))
	assert.True(t, result.ByCategory[models.CategoryCommodity].Equal(decimal.NewFromInt(100_000_000)))
	assert.True(t, result.ByCategory[models.CategoryCurrency].Equal(decimal.NewFromInt(500_000_000)))
	require.Len(t, result.Items, 2)
}

func TestValuation_MissingPriceIsFlaggedNotFatal(t *testing.T) {
	_, valuation, assets := valuationFixture(t)

	result, err := valuation.Value(context.Background(), map[string]decimal.Decimal{
		strconv.Itoa(assets["gold"].ID): decimal.NewFromInt(1),
		strconv.Itoa(assets["exir"].ID): decimal.NewFromInt(10),
	}, "IRR")
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	var exirItem *models.ValuationItem
	for i := range result.Items {
		if result.Items[i].AssetID == assets["exir"].ID {
			exirItem = &result.Items[i]
		}
	}
	require.NotNil(t, exirItem)
	assert.True(t, exirItem.PriceMissing)
	assert.True(t, exirItem.Value.IsZero())
	assert.True(t, result.Total.Equal(decimal.NewFromInt(50_000_000)))
}

func TestValuation_USDConversion(t *testing.T) {
	_, valuation, assets := valuationFixture(t)

	result, err := valuation.Value(context.Background(), map[string]decimal.Decimal{
		strconv.Itoa(assets["gold"].ID): decimal.NewFromInt(2),
	}, "USD")
	require.NoError(t, err)

	assert.Equal(t, "USD", result.Currency)
	assert.True(t, result.ConversionEnabled)
	// 100M rials at 1M rials/USD
	assert.True(t, result.Total.Equal(decimal.NewFromInt(100)))
}

func TestValuation_USDDisabledWhenRateIsSentinel(t *testing.T) {
	database := setupTestDB(t)
	store := NewPriceHistory(database)
	gold := mustCreateAsset(t, database, "طلای 18 عیار", "Gold18K", models.CategoryCommodity)
	usd := mustCreateAsset(t, database, "دلار", "USD", models.CategoryCurrency)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	mustAppend(t, store, gold.ID, 50_000_000, base)
	mustAppend(t, store, usd.ID, 1, base) // never-fetched sentinel

	rate := NewReferenceRate(database.DB, store, time.Hour, testLogger())
	valuation := NewValuation(database.DB, store, rate)

	result, err := valuation.Value(context.Background(), map[string]decimal.Decimal{
		strconv.Itoa(gold.ID): decimal.NewFromInt(1),
	}, "USD")
	require.NoError(t, err)

	// Figures stay in rials and the caller is told conversion is off.
	assert.False(t, result.ConversionEnabled)
	assert.Equal(t, LocalCurrency, result.Currency)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(50_000_000)))
}

func TestValuation_RejectsMalformedAssetID(t *testing.T) {
	_, valuation, _ := valuationFixture(t)

	_, err := valuation.Value(context.Background(), map[string]decimal.Decimal{
		"not-a-number": decimal.NewFromInt(1),
	}, "IRR")
	assert.Error(t, err)
}
