package scraper

import (
	"net/http"

	"github.com/MinisterHD/Assets-Value-App/internal/models"
)

// Pages the tracked assets are scraped from.
const (
	urlExir    = "https://research.agah.com/fund/mutual/14004329930"
	urlFirouze = "https://research.agah.com/fund/mutual/10320814789"
	urlGold    = "https://www.tgju.org/"
	urlUSD     = "https://www.tgju.org/%D9%82%DB%8C%D9%85%D8%AA-%D8%AF%D9%84%D8%A7%D8%B1"
)

// Tracked returns the fixed set of sources one ingestion cycle covers. When
// brsAPIKey is non-empty the BrsApi JSON feed replaces the tgju table scrape
// for 18k gold.
func Tracked(client *http.Client, brsAPIKey string) []Source {
	goldSpec := models.AssetSpec{
		Name:        "طلای 18 عیار",
		EnglishName: "Gold18K",
		Category:    models.CategoryCommodity,
		Description: "18 karat gold, one gram, in rials",
	}

	sources := []Source{
		NewAgahFundSource(client, urlExir, models.AssetSpec{
			Name:        "اکسیر یکم",
			EnglishName: "Exir Yekom",
			Category:    models.CategoryIranianStockFund,
			Description: "Farabi Exir Yekom mutual fund NAV",
		}),
		NewAgahFundSource(client, urlFirouze, models.AssetSpec{
			Name:        "فیروزه موفقیت",
			EnglishName: "Firouzeh Movafaghiat",
			Category:    models.CategoryIranianStockFund,
			Description: "Firouzeh Movafaghiat mutual fund NAV",
		}),
	}

	if brsAPIKey != "" {
		sources = append(sources, NewBrsAPISource(client, brsAPIKey, goldSpec))
	} else {
		sources = append(sources, NewTGJUSource(client, urlGold, "geram18", goldSpec))
	}

	sources = append(sources, NewTGJUSource(client, urlUSD, "price_dollar_rl", models.AssetSpec{
		Name:        "دلار",
		EnglishName: "USD",
		Category:    models.CategoryCurrency,
		Description: "US dollar free-market rate in rials",
	}))

	return sources
}
