package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceResult records the outcome of one source fetch within a cycle.
type SourceResult struct {
	Source string           `json:"source"`
	Asset  string           `json:"asset"`
	Price  *decimal.Decimal `json:"price,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// IngestionReport summarizes one ingestion cycle. When any source fails the
// cycle commits nothing and RowsWritten stays zero.
type IngestionReport struct {
	CycleID     string         `json:"cycle_id"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
	RecordedAt  *time.Time     `json:"recorded_at,omitempty"` // shared timestamp of the committed batch
	Sources     []SourceResult `json:"sources"`
	RowsWritten int            `json:"rows_written"`
	Committed   bool           `json:"committed"`
}

// Failures returns the results of the sources that failed this cycle.
func (r *IngestionReport) Failures() []SourceResult {
	var failed []SourceResult
	for _, s := range r.Sources {
		if s.Error != "" {
			failed = append(failed, s)
		}
	}
	return failed
}
