package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/MinisterHD/Assets-Value-App/internal/errors"
	"github.com/MinisterHD/Assets-Value-App/internal/models"
)

const agahPage = `<html><body>
<div class="top-info">
  <span class="top-info_price-number__ZEf_q">45,790</span>
</div>
</body></html>`

const tgjuPage = `<html><body><table>
<tr data-market-nameslug="geram18"><th>gold</th><td class="nf">52,145,000</td><td>+0.3%</td></tr>
<tr data-market-nameslug="price_dollar_rl"><th>usd</th><td class="nf">987,500</td><td>-0.1%</td></tr>
</table></body></html>`

func testSpec() models.AssetSpec {
	return models.AssetSpec{Name: "دلار", EnglishName: "USD", Category: models.CategoryCurrency}
}

func TestAgahFundSource_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header")
		}
		fmt.Fprint(w, agahPage)
	}))
	defer ts.Close()

	src := NewAgahFundSource(ts.Client(), ts.URL, models.AssetSpec{
		Name: "اکسیر یکم", EnglishName: "Exir Yekom", Category: models.CategoryIranianStockFund,
	})

	price, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !price.Equal(decimal.NewFromInt(45790)) {
		t.Errorf("expected 45790, got %s", price)
	}
}

func TestAgahFundSource_MissingMarker(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>redesigned page</p></body></html>")
	}))
	defer ts.Close()

	src := NewAgahFundSource(ts.Client(), ts.URL, testSpec())
	_, err := src.Fetch(context.Background())
	assertSourceError(t, err)
}

func TestTGJUSource_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, tgjuPage)
	}))
	defer ts.Close()

	gold := NewTGJUSource(ts.Client(), ts.URL, "geram18", models.AssetSpec{
		Name: "طلای 18 عیار", EnglishName: "Gold18K", Category: models.CategoryCommodity,
	})
	price, err := gold.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !price.Equal(decimal.NewFromInt(52145000)) {
		t.Errorf("expected 52145000, got %s", price)
	}

	usd := NewTGJUSource(ts.Client(), ts.URL, "price_dollar_rl", testSpec())
	price, err = usd.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !price.Equal(decimal.NewFromInt(987500)) {
		t.Errorf("expected 987500, got %s", price)
	}
}

func TestTGJUSource_UnknownSlug(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, tgjuPage)
	}))
	defer ts.Close()

	src := NewTGJUSource(ts.Client(), ts.URL, "geram24", testSpec())
	_, err := src.Fetch(context.Background())
	assertSourceError(t, err)
}

func TestSource_HTTPErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer ts.Close()

	src := NewTGJUSource(ts.Client(), ts.URL, "geram18", testSpec())
	_, err := src.Fetch(context.Background())
	assertSourceError(t, err)
}

func TestSource_GarbageNumeralIsDataQuality(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><table>
<tr data-market-nameslug="geram18"><td class="nf">N/A</td></tr>
</table></body></html>`)
	}))
	defer ts.Close()

	src := NewTGJUSource(ts.Client(), ts.URL, "geram18", testSpec())
	_, err := src.Fetch(context.Background())
	assertSourceError(t, err)

	var dq *apperrors.DataQualityError
	if !errors.As(err, &dq) {
		t.Errorf("expected DataQualityError inside the source error, got %v", err)
	}
}

func TestBrsAPISource_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"gold":[{"name":"18K","price":5214500}]}`)
	}))
	defer ts.Close()

	src := NewBrsAPISource(ts.Client(), "test-key", models.AssetSpec{
		Name: "طلای 18 عیار", EnglishName: "Gold18K", Category: models.CategoryCommodity,
	})
	src.url = ts.URL

	price, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	// Toman feed, stored in rials.
	if !price.Equal(decimal.NewFromInt(52145000)) {
		t.Errorf("expected 52145000, got %s", price)
	}
}

func TestBrsAPISource_EmptyGoldList(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"gold":[]}`)
	}))
	defer ts.Close()

	src := NewBrsAPISource(ts.Client(), "test-key", testSpec())
	src.url = ts.URL
	_, err := src.Fetch(context.Background())
	assertSourceError(t, err)
}

func TestSource_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, tgjuPage)
	}))
	defer ts.Close()

	src := NewTGJUSource(NewClient(20*time.Millisecond), ts.URL, "geram18", testSpec())
	_, err := src.Fetch(context.Background())
	assertSourceError(t, err)
}

func assertSourceError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var srcErr *apperrors.SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected SourceError, got %T: %v", err, err)
	}
	if srcErr.Source == "" {
		t.Error("source error must carry the source identity")
	}
}
