package scraper

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	apperrors "github.com/MinisterHD/Assets-Value-App/internal/errors"
	"github.com/MinisterHD/Assets-Value-App/internal/models"
)

// NAV figure on Agah research fund pages.
const agahPriceSelector = "span.top-info_price-number__ZEf_q"

// AgahFundSource scrapes the net asset value of one mutual fund from an Agah
// research page.
type AgahFundSource struct {
	client *http.Client
	url    string
	spec   models.AssetSpec
}

func NewAgahFundSource(client *http.Client, url string, spec models.AssetSpec) *AgahFundSource {
	return &AgahFundSource{client: client, url: url, spec: spec}
}

func (s *AgahFundSource) Name() string { return "agah.com/" + s.spec.EnglishName }

func (s *AgahFundSource) AssetSpec() models.AssetSpec { return s.spec }

func (s *AgahFundSource) Fetch(ctx context.Context) (decimal.Decimal, error) {
	resp, err := get(ctx, s.client, s.url)
	if err != nil {
		return decimal.Zero, apperrors.NewSourceError(s.Name(), err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return decimal.Zero, apperrors.NewSourceError(s.Name(), fmt.Errorf("failed to parse page: %w", err))
	}

	elem := doc.Find(agahPriceSelector).First()
	if elem.Length() == 0 {
		return decimal.Zero, apperrors.NewSourceError(s.Name(), fmt.Errorf("price element %q not found", agahPriceSelector))
	}

	price, err := ParsePrice(elem.Text())
	if err != nil {
		return decimal.Zero, apperrors.NewSourceError(s.Name(), err)
	}
	return price, nil
}
