package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MinisterHD/Assets-Value-App/internal/models"
)

// referenceRate reads the latest USD observation from the store and caches it
// for a TTL, so a long-running process never keeps serving a rate fetched at
// startup. An unavailable rate, or the sentinel value 1 a source writes when
// the dollar was never fetched, disables conversion rather than silently
// mislabeling unconverted numbers.
type referenceRate struct {
	db      *gorm.DB
	history PriceHistory
	ttl     time.Duration
	logger  *zap.Logger

	mu        sync.Mutex
	cached    decimal.Decimal
	cachedOK  bool
	fetchedAt time.Time
}

func NewReferenceRate(db *gorm.DB, history PriceHistory, ttl time.Duration, logger *zap.Logger) ReferenceRate {
	return &referenceRate{db: db, history: history, ttl: ttl, logger: logger}
}

func (r *referenceRate) Rate(ctx context.Context) (decimal.Decimal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.fetchedAt.IsZero() && time.Since(r.fetchedAt) < r.ttl {
		return r.cached, r.cachedOK
	}

	rate, ok := r.lookup(ctx)
	r.cached = rate
	r.cachedOK = ok
	r.fetchedAt = time.Now()
	return rate, ok
}

func (r *referenceRate) lookup(ctx context.Context) (decimal.Decimal, bool) {
	var usd models.Asset
	err := r.db.WithContext(ctx).Where("asset_name_en = ?", "USD").First(&usd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, false
	}
	if err != nil {
		r.logger.Warn("reference rate lookup failed", zap.Error(err))
		return decimal.Zero, false
	}

	latest, err := r.history.Latest(ctx, usd.ID)
	if err != nil {
		r.logger.Warn("reference rate read failed", zap.Error(err))
		return decimal.Zero, false
	}
	if latest == nil || !latest.Price.IsPositive() || latest.Price.Equal(decimal.NewFromInt(1)) {
		return decimal.Zero, false
	}
	return latest.Price, true
}
