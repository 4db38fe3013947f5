package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/MinisterHD/Assets-Value-App/internal/errors"
	"github.com/MinisterHD/Assets-Value-App/internal/models"
	"github.com/MinisterHD/Assets-Value-App/internal/scraper"
)

type ingestionService struct {
	db      *gorm.DB
	sources []scraper.Source
	logger  *zap.Logger
}

// NewIngestion creates the ingestion job over a fixed set of sources.
func NewIngestion(db *gorm.DB, sources []scraper.Source, logger *zap.Logger) Ingestion {
	return &ingestionService{db: db, sources: sources, logger: logger}
}

// RunCycle fetches every source sequentially, then persists all observations
// in one transaction, or nothing at all. A single shared recorded_at is used
// for the whole batch so prices within a cycle compare at the same instant.
// The returned report is non-nil even when the cycle fails.
func (s *ingestionService) RunCycle(ctx context.Context) (*models.IngestionReport, error) {
	report := &models.IngestionReport{
		CycleID:   uuid.NewString(),
		StartedAt: time.Now(),
	}
	log := s.logger.With(zap.String("cycle_id", report.CycleID))

	type fetched struct {
		source scraper.Source
		price  decimal.Decimal
	}
	var results []fetched
	var failures []error

	for _, src := range s.sources {
		price, err := src.Fetch(ctx)
		res := models.SourceResult{Source: src.Name(), Asset: src.AssetSpec().Name}
		if err != nil {
			res.Error = err.Error()
			failures = append(failures, err)
			log.Warn("source fetch failed",
				zap.String("source", src.Name()),
				zap.Error(err))
		} else {
			p := price
			res.Price = &p
			results = append(results, fetched{source: src, price: price})
		}
		report.Sources = append(report.Sources, res)
	}

	// A single flaky source abandons the whole cycle: partially updated
	// snapshots would break cross-asset comparisons made "as of" one tick.
	if len(failures) > 0 {
		report.FinishedAt = time.Now()
		log.Error("cycle aborted, nothing written",
			zap.Int("failed_sources", len(failures)),
			zap.Int("total_sources", len(s.sources)))
		return report, errors.Join(failures...)
	}

	recordedAt := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		registry := NewAssetRegistry(tx)
		store := newPriceHistoryTx(tx)

		for _, f := range results {
			asset, err := registry.ResolveOrCreate(ctx, f.source.AssetSpec())
			if err != nil {
				return err
			}
			obs := &models.PriceObservation{
				AssetID:    asset.ID,
				Price:      f.price,
				RecordedAt: recordedAt,
				Source:     f.source.Name(),
			}
			if err := store.Append(ctx, obs); err != nil {
				return err
			}
			report.RowsWritten++
		}
		return nil
	})
	if err != nil {
		report.RowsWritten = 0
		report.FinishedAt = time.Now()
		perr := &apperrors.PersistenceError{Op: "commit cycle", Cause: err}
		log.Error("cycle persistence failed, rolled back", zap.Error(err))
		return report, perr
	}

	report.Committed = true
	report.RecordedAt = &recordedAt
	report.FinishedAt = time.Now()
	log.Info("cycle committed",
		zap.Int("rows_written", report.RowsWritten),
		zap.Time("recorded_at", recordedAt),
		zap.Duration("took", report.FinishedAt.Sub(report.StartedAt)))
	return report, nil
}
