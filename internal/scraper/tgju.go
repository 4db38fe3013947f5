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

// TGJUSource scrapes one market row from a tgju.org quote table. Rows are
// addressed by their data-market-nameslug attribute; the price sits in the
// first td.nf cell.
type TGJUSource struct {
	client *http.Client
	url    string
	slug   string
	spec   models.AssetSpec
}

func NewTGJUSource(client *http.Client, url, slug string, spec models.AssetSpec) *TGJUSource {
	return &TGJUSource{client: client, url: url, slug: slug, spec: spec}
}

func (s *TGJUSource) Name() string { return "tgju.org/" + s.slug }

func (s *TGJUSource) AssetSpec() models.AssetSpec { return s.spec }

func (s *TGJUSource) Fetch(ctx context.Context) (decimal.Decimal, error) {
	resp, err := get(ctx, s.client, s.url)
	if err != nil {
		return decimal.Zero, apperrors.NewSourceError(s.Name(), err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return decimal.Zero, apperrors.NewSourceError(s.Name(), fmt.Errorf("failed to parse page: %w", err))
	}

	row := doc.Find(fmt.Sprintf("tr[data-market-nameslug=%s]", s.slug)).First()
	if row.Length() == 0 {
		return decimal.Zero, apperrors.NewSourceError(s.Name(), fmt.Errorf("market row %q not found", s.slug))
	}
	cell := row.Find("td.nf").First()
	if cell.Length() == 0 {
		return decimal.Zero, apperrors.NewSourceError(s.Name(), fmt.Errorf("price cell not found in row %q", s.slug))
	}

	price, err := ParsePrice(cell.Text())
	if err != nil {
		return decimal.Zero, apperrors.NewSourceError(s.Name(), err)
	}
	return price, nil
}
