package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/MinisterHD/Assets-Value-App/internal/db"
	apperrors "github.com/MinisterHD/Assets-Value-App/internal/errors"
	"github.com/MinisterHD/Assets-Value-App/internal/models"
)

// Latest-price ties on recorded_at are broken by the highest row id, so
// repeated reads always pick the same observation.
const latestOrder = "recorded_at DESC, id DESC"

type priceHistory struct {
	db *gorm.DB
}

// NewPriceHistory creates the time-series store service on the given
// connection or transaction handle.
func NewPriceHistory(database *db.DB) PriceHistory {
	return &priceHistory{db: database.DB}
}

// newPriceHistoryTx scopes the store to an open transaction.
func newPriceHistoryTx(tx *gorm.DB) PriceHistory {
	return &priceHistory{db: tx}
}

func (s *priceHistory) Append(ctx context.Context, obs *models.PriceObservation) error {
	if err := obs.Validate(); err != nil {
		return fmt.Errorf("invalid observation: %w", err)
	}
	if err := s.db.WithContext(ctx).Create(obs).Error; err != nil {
		return &apperrors.PersistenceError{Op: "append observation", Cause: err}
	}
	return nil
}

func (s *priceHistory) Latest(ctx context.Context, assetID int) (*models.PriceObservation, error) {
	var obs models.PriceObservation
	err := s.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order(latestOrder).
		First(&obs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return &obs, nil
}

func (s *priceHistory) LatestBatch(ctx context.Context, assetIDs []int) (map[int]*models.PriceObservation, error) {
	if len(assetIDs) == 0 {
		return map[int]*models.PriceObservation{}, nil
	}

	// Correlated subquery instead of DISTINCT ON so the same statement runs
	// on Postgres and on the SQLite test database.
	var rows []*models.PriceObservation
	err := s.db.WithContext(ctx).
		Where("asset_id IN ?", assetIDs).
		Where(`id = (SELECT p2.id FROM price_history p2
			WHERE p2.asset_id = price_history.asset_id
			ORDER BY p2.recorded_at DESC, p2.id DESC LIMIT 1)`).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	latest := make(map[int]*models.PriceObservation, len(rows))
	for _, obs := range rows {
		latest[obs.AssetID] = obs
	}
	return latest, nil
}

func (s *priceHistory) Window(ctx context.Context, assetID int, since time.Time) ([]*models.PriceObservation, error) {
	var rows []*models.PriceObservation
	err := s.db.WithContext(ctx).
		Where("asset_id = ? AND recorded_at >= ?", assetID, since).
		Order("recorded_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return rows, nil
}

func (s *priceHistory) WindowBatch(ctx context.Context, assetIDs []int, since time.Time) ([]*models.HistoryPoint, error) {
	if len(assetIDs) == 0 {
		return nil, nil
	}

	var points []*models.HistoryPoint
	err := s.db.WithContext(ctx).
		Table("price_history").
		Select("price_history.asset_id, assets.asset_name, price_history.price, price_history.recorded_at").
		Joins("JOIN assets ON assets.id = price_history.asset_id").
		Where("price_history.asset_id IN ? AND price_history.recorded_at >= ?", assetIDs, since).
		Order("price_history.recorded_at ASC, price_history.id ASC").
		Scan(&points).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return points, nil
}
