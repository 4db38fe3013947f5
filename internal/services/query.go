package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"

	apperrors "github.com/MinisterHD/Assets-Value-App/internal/errors"
	"github.com/MinisterHD/Assets-Value-App/internal/models"
)

const (
	DefaultPageSize = 15
	maxPageSize     = 100
)

type queryService struct {
	db      *gorm.DB
	history PriceHistory
}

// NewQuery creates the read-only query facade used by presentation layers.
func NewQuery(db *gorm.DB, history PriceHistory) Query {
	return &queryService{db: db, history: history}
}

// ListAssets returns one page of the asset explorer and the total row count.
// search matches case-insensitively against both name fields; categories
// filters by asset type; pagination is stable, ordered by asset id. Each row
// carries the asset's latest price, nil when it was never observed.
func (s *queryService) ListAssets(ctx context.Context, search string, categories []string, page, pageSize int) ([]*models.AssetListing, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = DefaultPageSize
	}

	filtered := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Asset{})
		if search != "" {
			like := "%" + strings.ToLower(search) + "%"
			q = q.Where("LOWER(asset_name) LIKE ? OR LOWER(asset_name_en) LIKE ?", like, like)
		}
		if len(categories) > 0 {
			q = q.Where("asset_type IN ?", categories)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	var assets []*models.Asset
	err := filtered().
		Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&assets).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	ids := lo.Map(assets, func(a *models.Asset, _ int) int { return a.ID })
	latest, err := s.history.LatestBatch(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	listings := lo.Map(assets, func(a *models.Asset, _ int) *models.AssetListing {
		row := &models.AssetListing{
			ID:          a.ID,
			Name:        a.Name,
			EnglishName: a.EnglishName,
			Category:    a.Category,
		}
		if obs, ok := latest[a.ID]; ok {
			price := obs.Price
			recordedAt := obs.RecordedAt
			row.LatestPrice = &price
			row.RecordedAt = &recordedAt
		}
		return row
	})
	return listings, total, nil
}

// AssetOptions returns (id, display name) pairs for the given categories,
// sorted by display name. No categories means no options, matching the
// dropdown it feeds.
func (s *queryService) AssetOptions(ctx context.Context, categories []string) ([]models.AssetOption, error) {
	if len(categories) == 0 {
		return []models.AssetOption{}, nil
	}

	var assets []*models.Asset
	err := s.db.WithContext(ctx).
		Where("asset_type IN ?", categories).
		Order("asset_name ASC").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}

	return lo.Map(assets, func(a *models.Asset, _ int) models.AssetOption {
		return models.AssetOption{ID: a.ID, Name: a.Name}
	}), nil
}
