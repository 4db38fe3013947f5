package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	apperrors "github.com/MinisterHD/Assets-Value-App/internal/errors"
	"github.com/MinisterHD/Assets-Value-App/internal/models"
)

// BrsAPISource reads 18k gold from the BrsApi JSON market feed. It is an
// alternative to scraping the tgju table and is only wired in when an API key
// is configured. The feed quotes tomans; prices are stored in rials.
type BrsAPISource struct {
	client *http.Client
	url    string
	spec   models.AssetSpec
}

type brsGoldResponse struct {
	Gold []struct {
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
	} `json:"gold"`
}

func NewBrsAPISource(client *http.Client, apiKey string, spec models.AssetSpec) *BrsAPISource {
	return &BrsAPISource{
		client: client,
		url:    "https://BrsApi.ir/Api/Market/Gold_Currency.php?key=" + apiKey,
		spec:   spec,
	}
}

func (s *BrsAPISource) Name() string { return "brsapi.ir/gold" }

func (s *BrsAPISource) AssetSpec() models.AssetSpec { return s.spec }

func (s *BrsAPISource) Fetch(ctx context.Context) (decimal.Decimal, error) {
	resp, err := get(ctx, s.client, s.url)
	if err != nil {
		return decimal.Zero, apperrors.NewSourceError(s.Name(), err)
	}
	defer resp.Body.Close()

	var payload brsGoldResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, apperrors.NewSourceError(s.Name(), fmt.Errorf("failed to decode response: %w", err))
	}
	if len(payload.Gold) == 0 {
		return decimal.Zero, apperrors.NewSourceError(s.Name(), fmt.Errorf("gold list empty in response"))
	}

	// First entry is 18k gold, quoted in tomans.
	price := payload.Gold[0].Price.Mul(decimal.NewFromInt(10))
	if !price.IsPositive() {
		return decimal.Zero, apperrors.NewSourceError(s.Name(),
			&apperrors.DataQualityError{Value: payload.Gold[0].Price.String(), Message: "price must be positive"})
	}
	return price, nil
}
