package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/MinisterHD/Assets-Value-App/internal/services"
)

type AssetHandler struct {
	query   services.Query
	history services.PriceHistory
	rate    services.ReferenceRate
}

func NewAssetHandler(query services.Query, history services.PriceHistory, rate services.ReferenceRate) *AssetHandler {
	return &AssetHandler{query: query, history: history, rate: rate}
}

// HandleList handles GET /api/assets?search=&category=&page=&page_size=
func (h *AssetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))
	if pageSize < 1 {
		pageSize = services.DefaultPageSize
	}

	rows, total, err := h.query.ListAssets(r.Context(), q.Get("search"), q["category"], page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assets":      rows,
		"total_count": total,
		"page_count":  int(math.Ceil(float64(total) / float64(pageSize))),
	})
}

// HandleOptions handles GET /api/assets/options?category=...
func (h *AssetHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	options, err := h.query.AssetOptions(r.Context(), r.URL.Query()["category"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, options)
}

// HandleHistory handles GET /api/assets/{id}/prices?days=90&currency=IRR.
// Requesting USD rebases every price through the reference rate; when the
// rate is unavailable the response stays in local currency with
// conversion_enabled false.
func (h *AssetHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	assetID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid asset id", http.StatusBadRequest)
		return
	}
	days := parseDays(r.URL.Query().Get("days"), 90)
	since := time.Now().AddDate(0, 0, -days)

	rows, err := h.history.Window(r.Context(), assetID, since)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	currency := services.LocalCurrency
	enabled := true
	if r.URL.Query().Get("currency") == "USD" {
		if rate, ok := h.rate.Rate(r.Context()); ok {
			currency = "USD"
			for _, obs := range rows {
				obs.Price = obs.Price.Div(rate)
			}
		} else {
			enabled = false
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"currency":           currency,
		"conversion_enabled": enabled,
		"prices":             rows,
	})
}

// PriceHandler serves latest-price lookups.
type PriceHandler struct {
	history services.PriceHistory
}

func NewPriceHandler(history services.PriceHistory) *PriceHandler {
	return &PriceHandler{history: history}
}

// HandleLatest handles GET /api/prices/latest?ids=1&ids=2
func (h *PriceHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ids, err := parseIDList(r.URL.Query()["ids"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if len(ids) == 0 {
		http.Error(w, "ids is required", http.StatusBadRequest)
		return
	}

	latest, err := h.history.LatestBatch(r.Context(), ids)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	type latestEntry struct {
		Price      decimal.Decimal `json:"price"`
		RecordedAt time.Time       `json:"recorded_at"`
		Source     string          `json:"source"`
	}
	out := make(map[string]*latestEntry, len(latest))
	for _, id := range ids {
		var entry *latestEntry
		if obs, ok := latest[id]; ok {
			entry = &latestEntry{Price: obs.Price, RecordedAt: obs.RecordedAt, Source: obs.Source}
		}
		out[strconv.Itoa(id)] = entry
	}
	writeJSON(w, http.StatusOK, out)
}
