package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MinisterHD/Assets-Value-App/internal/models"
)

// AssetRegistry resolves a canonical asset name to its stored row, creating
// the asset on first sight. Repeated or concurrent calls with the same name
// converge to one id; metadata supplied after creation is ignored.
type AssetRegistry interface {
	ResolveOrCreate(ctx context.Context, spec models.AssetSpec) (*models.Asset, error)
}

// PriceHistory is the append-only time-series store. It exposes no update or
// delete operations on observations.
type PriceHistory interface {
	Append(ctx context.Context, obs *models.PriceObservation) error
	Latest(ctx context.Context, assetID int) (*models.PriceObservation, error)
	LatestBatch(ctx context.Context, assetIDs []int) (map[int]*models.PriceObservation, error)
	Window(ctx context.Context, assetID int, since time.Time) ([]*models.PriceObservation, error)
	WindowBatch(ctx context.Context, assetIDs []int, since time.Time) ([]*models.HistoryPoint, error)
}

// Ingestion runs one fetch-all-then-persist-all cycle with all-or-nothing
// commit semantics.
type Ingestion interface {
	RunCycle(ctx context.Context) (*models.IngestionReport, error)
}

// ReferenceRate supplies the latest USD/rial rate for currency rebasing.
// ok is false when the rate is unavailable or degenerate (the "not fetched"
// sentinel value of 1), in which case conversion must be disabled.
type ReferenceRate interface {
	Rate(ctx context.Context) (rate decimal.Decimal, ok bool)
}

// Query is the read surface consumed by presentation layers. It never
// mutates state.
type Query interface {
	ListAssets(ctx context.Context, search string, categories []string, page, pageSize int) ([]*models.AssetListing, int64, error)
	AssetOptions(ctx context.Context, categories []string) ([]models.AssetOption, error)
}
