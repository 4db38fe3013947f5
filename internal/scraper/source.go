package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/MinisterHD/Assets-Value-App/internal/errors"
	"github.com/MinisterHD/Assets-Value-App/internal/models"
)

// The upstream pages refuse requests without a browser User-Agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/95.0.4638.69 Safari/537.36"

// Source fetches and parses one external page into a single price. A Source
// never retries; all transport and parse failures surface as *SourceError.
type Source interface {
	// Name identifies the origin in logs and in the source column.
	Name() string
	// AssetSpec describes the asset this source observes, used by the
	// registry on first sight.
	AssetSpec() models.AssetSpec
	// Fetch performs one blocking retrieval, bounded by ctx and the
	// client timeout, and returns the cleaned positive price.
	Fetch(ctx context.Context) (decimal.Decimal, error)
}

// NewClient builds the HTTP client shared by all sources. The timeout must be
// finite so a hung page cannot stall the ingestion loop.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// get performs a GET with the browser User-Agent and returns the response on
// HTTP 200; anything else is an error.
func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp, nil
}

var numeralCleaner = strings.NewReplacer(
	",", "", // ASCII thousands separator
	"٬", "", // Arabic thousands separator
	" ", "",
	" ", "",
	"٫", ".", // Arabic decimal separator
)

// ParsePrice cleans a scraped numeral of locale separators, translates
// Persian and Arabic-Indic digits to ASCII, and parses it as a positive
// decimal. Anything else is a DataQualityError.
func ParsePrice(raw string) (decimal.Decimal, error) {
	cleaned := numeralCleaner.Replace(strings.TrimSpace(raw))
	cleaned = strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹': // Persian digits
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩': // Arabic-Indic digits
			return '0' + (r - '٠')
		}
		return r
	}, cleaned)

	if cleaned == "" {
		return decimal.Zero, &apperrors.DataQualityError{Value: raw, Message: "empty after cleaning"}
	}
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &apperrors.DataQualityError{Value: raw, Message: "not a number"}
	}
	if !price.IsPositive() {
		return decimal.Zero, &apperrors.DataQualityError{Value: raw, Message: "price must be positive"}
	}
	return price, nil
}
