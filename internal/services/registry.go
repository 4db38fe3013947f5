package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/MinisterHD/Assets-Value-App/internal/models"
)

type assetRegistry struct {
	db *gorm.DB
}

// NewAssetRegistry creates an asset registry on the given connection. Passing
// a transaction handle scopes all registry work to that transaction, which is
// how the ingestion cycle keeps creation and observation writes atomic.
func NewAssetRegistry(db *gorm.DB) AssetRegistry {
	return &assetRegistry{db: db}
}

func (r *assetRegistry) ResolveOrCreate(ctx context.Context, spec models.AssetSpec) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).Where("asset_name = ?", spec.Name).First(&asset).Error
	if err == nil {
		return &asset, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up asset %q: %w", spec.Name, err)
	}

	asset = models.Asset{
		Name:        spec.Name,
		EnglishName: spec.EnglishName,
		Category:    spec.Category,
		Description: spec.Description,
	}
	if err := asset.Validate(); err != nil {
		return nil, fmt.Errorf("invalid asset spec: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(&asset).Error; err != nil {
		// A concurrent creator may have won the race; the unique index on
		// asset_name guarantees a single surviving row.
		var existing models.Asset
		if lookupErr := r.db.WithContext(ctx).Where("asset_name = ?", spec.Name).First(&existing).Error; lookupErr == nil {
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to create asset %q: %w", spec.Name, err)
	}
	return &asset, nil
}
