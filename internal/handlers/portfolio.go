package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/MinisterHD/Assets-Value-App/internal/services"
)

type PortfolioHandler struct {
	valuation *services.Valuation
}

func NewPortfolioHandler(valuation *services.Valuation) *PortfolioHandler {
	return &PortfolioHandler{valuation: valuation}
}

// ValuationRequest carries a client-held portfolio snapshot: asset id (as a
// string key, matching how the client stores it) to quantity.
type ValuationRequest struct {
	Quantities map[string]decimal.Decimal `json:"quantities"`
	Currency   string                     `json:"currency"`
}

// HandleValuation handles POST /api/portfolio/valuation
func (h *PortfolioHandler) HandleValuation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.valuation.Value(r.Context(), req.Quantities, req.Currency)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
